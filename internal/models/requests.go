package models

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	eventDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	eventTimePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

type SignUpRequest struct {
	Username       string `json:"username" validate:"required,min=3,max=64"`
	Email          string `json:"email" validate:"required,email,max=255"`
	Password       string `json:"password" validate:"required,min=6,max=72"`
	Role           string `json:"role" validate:"omitempty,oneof=user admin"`
	AdminInviteKey string `json:"adminInviteKey"`
}

type SignInRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RecoverPasswordRequest struct {
	Username    string `json:"username" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=72"`
}

// EventFields are the editable attributes shared by create and edit.
type EventFields struct {
	Title        string `json:"title" validate:"required,max=200"`
	Description  string `json:"description" validate:"max=5000"`
	Location     string `json:"location" validate:"required,max=255"`
	EventDate    string `json:"eventDate" validate:"required,eventdate"`
	EventTime    string `json:"eventTime" validate:"required,eventtime"`
	Category     string `json:"category" validate:"max=100"`
	MaxAttendees *int   `json:"maxAttendees" validate:"omitempty,min=0"`
}

type CreateEventRequest struct {
	EventFields
	CreatorID uint `json:"creatorId"`
}

type EditEventRequest struct {
	EventFields
	ID            uint   `json:"id" validate:"required"`
	CreatorID     uint   `json:"creatorId"`
	RequesterRole string `json:"requesterRole" validate:"omitempty,oneof=user admin"`
}

type DeleteEventRequest struct {
	ID            uint   `json:"id" validate:"required"`
	CreatorID     uint   `json:"creatorId"`
	RequesterRole string `json:"requesterRole" validate:"omitempty,oneof=user admin"`
}

type RegisterRequest struct {
	UserID  uint       `json:"userId"`
	EventID uint       `json:"eventId" validate:"required"`
	Status  RSVPStatus `json:"status" validate:"required,rsvpstatus"`
}

type UnregisterRequest struct {
	UserID  uint `json:"userId"`
	EventID uint `json:"eventId" validate:"required"`
}

// Normalize trims free-text fields in place.
func (f *EventFields) Normalize() {
	f.Title = StringTrim(f.Title)
	f.Description = StringTrim(f.Description)
	f.Location = StringTrim(f.Location)
	f.EventDate = StringTrim(f.EventDate)
	f.EventTime = StringTrim(f.EventTime)
	f.Category = StringTrim(f.Category)
}

func StringTrim(s string) string {
	return strings.TrimSpace(s)
}

func registerRules(v *validator.Validate) {
	_ = v.RegisterValidation("eventdate", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if !eventDatePattern.MatchString(s) {
			return false
		}
		_, err := time.Parse("2006-01-02", s)
		return err == nil
	})
	_ = v.RegisterValidation("eventtime", func(fl validator.FieldLevel) bool {
		return eventTimePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("rsvpstatus", func(fl validator.FieldLevel) bool {
		return RSVPStatus(fl.Field().String()).Valid()
	})
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
}

// ValidateRequest checks a request struct and returns one readable message
// per violated rule, or nil when the request is valid.
func ValidateRequest(req any) []string {
	err := Validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return msgs
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s cannot be less than %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s cannot be more than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "eventdate":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)
	case "eventtime":
		return fmt.Sprintf("%s must be a time in HH:MM format", field)
	case "rsvpstatus":
		return fmt.Sprintf("%s must be one of: going, maybe, notgoing", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
