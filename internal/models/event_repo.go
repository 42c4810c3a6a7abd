package models

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
)

type EventRepo interface {
	CreateEvent(ctx context.Context, event *Event) (*Event, error)
	GetEventByID(ctx context.Context, id uint) (*Event, error)
	ListEvents(ctx context.Context, filter EventFilter) ([]Event, error)
	UpdateEvent(ctx context.Context, id uint, fields EventFields, categoryID *uint) (*Event, error)
	DeleteEvent(ctx context.Context, id uint) error
	ListAttendees(ctx context.Context, eventID uint) ([]Attendee, error)
}

// withDetails preloads everything the event views render.
func withDetails(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Category").
		Preload("Creator").
		Preload("Registrations", func(db *gorm.DB) *gorm.DB {
			return db.Order("registered_at ASC, id ASC")
		}).
		Preload("Registrations.User")
}

func (r *GormRepo) CreateEvent(ctx context.Context, event *Event) (*Event, error) {
	if err := r.db.WithContext(ctx).Omit("Category", "Creator", "Registrations").Create(event).Error; err != nil {
		return nil, StoreError("create event", err, "")
	}
	return r.GetEventByID(ctx, event.ID)
}

func (r *GormRepo) GetEventByID(ctx context.Context, id uint) (*Event, error) {
	if id == 0 {
		return nil, NotFound("event not found")
	}
	var event Event
	if err := withDetails(r.db.WithContext(ctx)).First(&event, id).Error; err != nil {
		return nil, StoreError("get event", err, "event not found")
	}
	return &event, nil
}

func (r *GormRepo) ListEvents(ctx context.Context, filter EventFilter) ([]Event, error) {
	q := withDetails(r.db.WithContext(ctx).Model(&Event{}))

	if search := strings.ToLower(StringTrim(filter.Search)); search != "" {
		q = q.Where("LOWER(title) LIKE ? ESCAPE '!'", "%"+escapeLike(search)+"%")
	}
	if filter.CategoryID != 0 {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if key := CategoryKey(filter.CategoryName); key != "" {
		q = q.Where("category_id IN (?)", r.db.Model(&Category{}).Select("id").Where("name_key = ?", key))
	}
	if date := StringTrim(filter.Date); date != "" {
		q = q.Where("event_date = ?", date)
	}

	var events []Event
	if err := q.Order("event_date ASC, event_time ASC, id ASC").Find(&events).Error; err != nil {
		return nil, StoreError("list events", err, "")
	}
	return events, nil
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// escapeLike makes s match itself literally inside a LIKE pattern that
// uses '!' as its escape character.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (r *GormRepo) UpdateEvent(ctx context.Context, id uint, fields EventFields, categoryID *uint) (*Event, error) {
	res := r.db.WithContext(ctx).Model(&Event{}).Where("id = ?", id).Updates(map[string]interface{}{
		"title":         fields.Title,
		"description":   fields.Description,
		"location":      fields.Location,
		"event_date":    fields.EventDate,
		"event_time":    fields.EventTime,
		"category_id":   categoryID,
		"max_attendees": fields.MaxAttendees,
		"updated_at":    time.Now(),
	})
	if res.Error != nil {
		return nil, StoreError("update event", res.Error, "event not found")
	}
	// MySQL counts unchanged rows as unaffected, so a missing event is
	// detected by the reload instead of RowsAffected.
	return r.GetEventByID(ctx, id)
}

// DeleteEvent removes an event and its registrations in one transaction.
func (r *GormRepo) DeleteEvent(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&Registration{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&Event{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return NotFound("event not found")
		}
		return nil
	})
	return StoreError("delete event", err, "event not found")
}

func (r *GormRepo) ListAttendees(ctx context.Context, eventID uint) ([]Attendee, error) {
	attendees := []Attendee{}
	err := r.db.WithContext(ctx).
		Table("registrations").
		Select("users.id AS user_id, users.username, users.email, registrations.status, registrations.registered_at").
		Joins("JOIN users ON users.id = registrations.user_id").
		Where("registrations.event_id = ?", eventID).
		Order("registrations.registered_at ASC, registrations.id ASC").
		Scan(&attendees).Error
	if err != nil {
		return nil, StoreError("list attendees", err, "")
	}
	return attendees, nil
}
