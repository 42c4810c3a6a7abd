package services

import (
	"context"
	"log/slog"

	"github.com/joshua-takyi/eventhub/internal/models"
)

type RegistrationService struct {
	registrationRepo models.RegistrationRepo
	eventRepo        models.EventRepo
	userRepo         models.UserRepo
	activity         models.ActivityRepo
	logger           *slog.Logger
}

func NewRegistrationService(
	registrationRepo models.RegistrationRepo,
	eventRepo models.EventRepo,
	userRepo models.UserRepo,
	activity models.ActivityRepo,
	logger *slog.Logger,
) *RegistrationService {
	if activity == nil {
		activity = models.NopActivityRepo{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RegistrationService{
		registrationRepo: registrationRepo,
		eventRepo:        eventRepo,
		userRepo:         userRepo,
		activity:         activity,
		logger:           logger,
	}
}

// Register records the user's RSVP for an event, creating it or replacing
// its status. Repeating the same RSVP is a no-op.
func (rs *RegistrationService) Register(ctx context.Context, req *models.RegisterRequest) (*models.Registration, error) {
	if msgs := models.ValidateRequest(req); len(msgs) > 0 {
		return nil, models.ValidationError(msgs)
	}
	if req.UserID == 0 {
		return nil, models.InvalidInput("userId is required")
	}

	if _, err := rs.userRepo.GetUserByID(ctx, req.UserID); err != nil {
		return nil, err
	}
	if _, err := rs.eventRepo.GetEventByID(ctx, req.EventID); err != nil {
		return nil, err
	}

	reg, err := rs.registrationRepo.UpsertRegistration(ctx, req.UserID, req.EventID, req.Status)
	if err != nil {
		return nil, err
	}

	recordActivity(ctx, rs.activity, rs.logger, models.ActivityEntry{
		Kind:    models.ActivityRSVPSaved,
		ActorID: req.UserID,
		EventID: req.EventID,
		Status:  req.Status,
	})
	return reg, nil
}

// Unregister withdraws an RSVP. Withdrawing one that does not exist is
// reported as not found.
func (rs *RegistrationService) Unregister(ctx context.Context, req *models.UnregisterRequest) error {
	if msgs := models.ValidateRequest(req); len(msgs) > 0 {
		return models.ValidationError(msgs)
	}
	if req.UserID == 0 {
		return models.InvalidInput("userId is required")
	}

	if err := rs.registrationRepo.DeleteRegistration(ctx, req.UserID, req.EventID); err != nil {
		return err
	}

	recordActivity(ctx, rs.activity, rs.logger, models.ActivityEntry{
		Kind:    models.ActivityRSVPWithdrawn,
		ActorID: req.UserID,
		EventID: req.EventID,
	})
	return nil
}
