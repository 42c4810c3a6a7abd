package models

import (
	"time"
)

type Event struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"size:200;not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	Location     string    `gorm:"size:255" json:"location"`
	EventDate    string    `gorm:"size:10;not null;index" json:"eventDate"` // e.g., "2025-10-01"
	EventTime    string    `gorm:"size:5;not null" json:"eventTime"`        // e.g., "18:30"
	CategoryID   *uint     `gorm:"index" json:"categoryId"`
	CreatorID    uint      `gorm:"not null;index" json:"creatorId"`
	MaxAttendees *int      `json:"maxAttendees"` // nil means unlimited
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Category      *Category      `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Creator       *User          `gorm:"foreignKey:CreatorID" json:"-"`
	Registrations []Registration `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"registrations"`
}

// EventView is the wire form of an event. It replaces the full creator
// record with a summary so password hashes and emails never leave the API.
type EventView struct {
	Event
	Creator       *UserSummary       `json:"creator,omitempty"`
	Registrations []RegistrationView `json:"registrations"`
}

func NewEventView(e *Event) EventView {
	view := EventView{Event: *e, Registrations: make([]RegistrationView, 0, len(e.Registrations))}
	for i := range e.Registrations {
		view.Registrations = append(view.Registrations, NewRegistrationView(&e.Registrations[i]))
	}
	view.Creator = NewUserSummary(e.Creator)
	return view
}

func NewEventViews(events []Event) []EventView {
	views := make([]EventView, 0, len(events))
	for i := range events {
		views = append(views, NewEventView(&events[i]))
	}
	return views
}

// EventFilter narrows ListEvents. Zero values mean "no filter".
type EventFilter struct {
	Search       string
	CategoryID   uint
	CategoryName string
	Date         string
}
