package models

import (
	"time"
)

type RSVPStatus string

const (
	StatusGoing    RSVPStatus = "going"
	StatusMaybe    RSVPStatus = "maybe"
	StatusNotGoing RSVPStatus = "notgoing"
)

func (s RSVPStatus) Valid() bool {
	switch s {
	case StatusGoing, StatusMaybe, StatusNotGoing:
		return true
	}
	return false
}

// Registration is a user's RSVP. There is at most one per (user, event).
type Registration struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"not null;uniqueIndex:idx_registrations_user_event" json:"userId"`
	EventID      uint       `gorm:"not null;uniqueIndex:idx_registrations_user_event;index" json:"eventId"`
	Status       RSVPStatus `gorm:"size:16;not null" json:"status"`
	RegisteredAt time.Time  `gorm:"autoCreateTime" json:"registeredAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// RegistrationView is the wire form of a registration with its user summary.
type RegistrationView struct {
	Registration
	User *UserSummary `json:"user,omitempty"`
}

func NewRegistrationView(r *Registration) RegistrationView {
	view := RegistrationView{Registration: *r, User: NewUserSummary(r.User)}
	if view.User != nil {
		view.User.Role = ""
	}
	return view
}

// Attendee is one row of an event's attendee list.
type Attendee struct {
	UserID       uint       `json:"userId"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	Status       RSVPStatus `json:"status"`
	RegisteredAt time.Time  `json:"registeredAt"`
}

// Attendance summarizes RSVPs against an event's capacity.
type Attendance struct {
	MaxAttendees     *int `json:"maxAttendees"`
	AttendeeCount    int  `json:"attendeeCount"`
	GoingCount       int  `json:"goingCount"`
	HasCapacityLimit bool `json:"hasCapacityLimit"`
	SpotsLeft        *int `json:"spotsLeft"`
	IsFull           bool `json:"isFull"`
}

// SummarizeAttendance applies the capacity display rule: everyone who has
// not declined counts toward capacity, and a limit of zero or less means
// unlimited. Capacity is advisory; it never blocks an RSVP.
func SummarizeAttendance(maxAttendees *int, statuses []RSVPStatus) Attendance {
	a := Attendance{MaxAttendees: maxAttendees}
	for _, s := range statuses {
		if s != StatusNotGoing {
			a.AttendeeCount++
		}
		if s == StatusGoing {
			a.GoingCount++
		}
	}

	if maxAttendees == nil || *maxAttendees <= 0 {
		return a
	}
	a.HasCapacityLimit = true
	left := *maxAttendees - a.AttendeeCount
	if left < 0 {
		left = 0
	}
	a.SpotsLeft = &left
	a.IsFull = a.AttendeeCount >= *maxAttendees
	return a
}

// AttendeeList is an event's attendee roster with its capacity summary.
type AttendeeList struct {
	EventID   uint       `json:"eventId"`
	Attendees []Attendee `json:"attendees"`
	Summary   Attendance `json:"summary"`
}
