package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ActivityColName = "activity"

type ActivityKind string

const (
	ActivityEventCreated  ActivityKind = "event.created"
	ActivityEventUpdated  ActivityKind = "event.updated"
	ActivityEventDeleted  ActivityKind = "event.deleted"
	ActivityRSVPSaved     ActivityKind = "rsvp.saved"
	ActivityRSVPWithdrawn ActivityKind = "rsvp.withdrawn"
)

// ActivityEntry records one successful mutation.
type ActivityEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Kind      ActivityKind       `bson:"kind" json:"kind"`
	ActorID   uint               `bson:"actor_id" json:"actorId"`
	EventID   uint               `bson:"event_id" json:"eventId"`
	Status    RSVPStatus         `bson:"status,omitempty" json:"status,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

type ActivityRepo interface {
	RecordActivity(ctx context.Context, entry ActivityEntry) error
	ListActivity(ctx context.Context, eventID uint, limit int) ([]ActivityEntry, error)
}

func (a *ActivityEntry) BeforeCreate() {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
}

func (mdb *MongodbRepo) GetCollection(ctx context.Context, colName string) (*mongo.Collection, error) {
	if mdb.mongodbClient == nil {
		return nil, fmt.Errorf("mongodb client is not initialized")
	}
	return mdb.mongodbClient.Database(mdb.dbName).Collection(colName), nil
}

// EnsureActivityIndexes creates the per-event lookup index.
func (mdb *MongodbRepo) EnsureActivityIndexes(ctx context.Context) error {
	col, err := mdb.GetCollection(ctx, ActivityColName)
	if err != nil {
		return err
	}
	_, err = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "event_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("error creating activity index: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) RecordActivity(ctx context.Context, entry ActivityEntry) error {
	col, err := mdb.GetCollection(ctx, ActivityColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}
	entry.BeforeCreate()
	if _, err := col.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("error inserting activity: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) ListActivity(ctx context.Context, eventID uint, limit int) ([]ActivityEntry, error) {
	col, err := mdb.GetCollection(ctx, ActivityColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := col.Find(ctx, bson.M{"event_id": eventID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding activity: %v", err)
	}
	defer cursor.Close(ctx)

	entries := []ActivityEntry{}
	for cursor.Next(ctx) {
		var entry ActivityEntry
		if err := cursor.Decode(&entry); err != nil {
			return nil, fmt.Errorf("error decoding activity: %v", err)
		}
		entries = append(entries, entry)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}
	return entries, nil
}

// NopActivityRepo is used when no MongoDB is configured.
type NopActivityRepo struct{}

func (NopActivityRepo) RecordActivity(context.Context, ActivityEntry) error { return nil }

func (NopActivityRepo) ListActivity(context.Context, uint, int) ([]ActivityEntry, error) {
	return []ActivityEntry{}, nil
}
