package models

import (
	"context"
	"time"

	"gorm.io/gorm/clause"
)

type RegistrationRepo interface {
	UpsertRegistration(ctx context.Context, userID, eventID uint, status RSVPStatus) (*Registration, error)
	DeleteRegistration(ctx context.Context, userID, eventID uint) error
	GetRegistration(ctx context.Context, userID, eventID uint) (*Registration, error)
}

// UpsertRegistration creates the (user, event) registration or overwrites
// its status in a single statement, so concurrent RSVPs for the same pair
// serialize on the unique index and the last writer wins. The original
// registration time is kept.
func (r *GormRepo) UpsertRegistration(ctx context.Context, userID, eventID uint, status RSVPStatus) (*Registration, error) {
	now := time.Now()
	reg := Registration{
		UserID:       userID,
		EventID:      eventID,
		Status:       status,
		RegisteredAt: now,
		UpdatedAt:    now,
	}

	err := r.db.WithContext(ctx).
		Omit("User").
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "event_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"status":     status,
				"updated_at": now,
			}),
		}).
		Create(&reg).Error
	if err != nil {
		return nil, StoreError("save registration", err, "")
	}

	return r.GetRegistration(ctx, userID, eventID)
}

func (r *GormRepo) GetRegistration(ctx context.Context, userID, eventID uint) (*Registration, error) {
	var reg Registration
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		First(&reg).Error
	if err != nil {
		return nil, StoreError("get registration", err, "registration not found")
	}
	return &reg, nil
}

// DeleteRegistration removes the pair's registration. Deleting one that
// does not exist is a not-found error, not a silent success.
func (r *GormRepo) DeleteRegistration(ctx context.Context, userID, eventID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Delete(&Registration{})
	if res.Error != nil {
		return StoreError("delete registration", res.Error, "registration not found")
	}
	if res.RowsAffected == 0 {
		return NotFound("registration not found")
	}
	return nil
}
