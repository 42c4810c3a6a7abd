package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/joshua-takyi/eventhub/internal/models"
	"github.com/joshua-takyi/eventhub/internal/policy"
)

const (
	defaultActivityLimit = 20
	maxActivityLimit     = 100
)

const permissionDenied = "you do not have permission to modify this event"

type EventService struct {
	eventRepo    models.EventRepo
	categoryRepo models.CategoryRepo
	userRepo     models.UserRepo
	activity     models.ActivityRepo
	logger       *slog.Logger
}

func NewEventService(
	eventRepo models.EventRepo,
	categoryRepo models.CategoryRepo,
	userRepo models.UserRepo,
	activity models.ActivityRepo,
	logger *slog.Logger,
) *EventService {
	if activity == nil {
		activity = models.NopActivityRepo{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &EventService{
		eventRepo:    eventRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		activity:     activity,
		logger:       logger,
	}
}

func (es *EventService) CreateEvent(ctx context.Context, req *models.CreateEventRequest) (*models.Event, error) {
	req.Normalize()
	if msgs := models.ValidateRequest(req); len(msgs) > 0 {
		return nil, models.ValidationError(msgs)
	}
	if req.CreatorID == 0 {
		return nil, models.InvalidInput("creatorId is required")
	}

	if _, err := es.userRepo.GetUserByID(ctx, req.CreatorID); err != nil {
		return nil, err
	}

	categoryID, err := es.categoryRepo.ResolveCategoryID(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	event, err := es.eventRepo.CreateEvent(ctx, &models.Event{
		Title:        req.Title,
		Description:  req.Description,
		Location:     req.Location,
		EventDate:    req.EventDate,
		EventTime:    req.EventTime,
		CategoryID:   categoryID,
		CreatorID:    req.CreatorID,
		MaxAttendees: req.MaxAttendees,
	})
	if err != nil {
		return nil, err
	}

	es.record(ctx, models.ActivityEntry{Kind: models.ActivityEventCreated, ActorID: req.CreatorID, EventID: event.ID})
	return event, nil
}

func (es *EventService) ListEvents(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	if filter.Date != "" {
		if err := models.Validate.Var(filter.Date, "eventdate"); err != nil {
			return nil, models.InvalidInput("date must be a date in YYYY-MM-DD format")
		}
	}
	return es.eventRepo.ListEvents(ctx, filter)
}

func (es *EventService) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	return es.eventRepo.GetEventByID(ctx, id)
}

// UpdateEvent replaces an event's editable fields. The event must exist
// before the requester's permission is checked.
func (es *EventService) UpdateEvent(ctx context.Context, req *models.EditEventRequest) (*models.Event, error) {
	req.Normalize()
	if msgs := models.ValidateRequest(req); len(msgs) > 0 {
		return nil, models.ValidationError(msgs)
	}

	existing, err := es.eventRepo.GetEventByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if err := es.authorize(ctx, req.CreatorID, req.RequesterRole, existing.CreatorID); err != nil {
		return nil, err
	}

	categoryID, err := es.categoryRepo.ResolveCategoryID(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	event, err := es.eventRepo.UpdateEvent(ctx, req.ID, req.EventFields, categoryID)
	if err != nil {
		return nil, err
	}

	es.record(ctx, models.ActivityEntry{Kind: models.ActivityEventUpdated, ActorID: req.CreatorID, EventID: event.ID})
	return event, nil
}

func (es *EventService) DeleteEvent(ctx context.Context, req *models.DeleteEventRequest) error {
	if msgs := models.ValidateRequest(req); len(msgs) > 0 {
		return models.ValidationError(msgs)
	}

	existing, err := es.eventRepo.GetEventByID(ctx, req.ID)
	if err != nil {
		return err
	}
	if err := es.authorize(ctx, req.CreatorID, req.RequesterRole, existing.CreatorID); err != nil {
		return err
	}

	if err := es.eventRepo.DeleteEvent(ctx, req.ID); err != nil {
		return err
	}

	es.record(ctx, models.ActivityEntry{Kind: models.ActivityEventDeleted, ActorID: req.CreatorID, EventID: req.ID})
	return nil
}

// authorize applies the owner-or-admin rule. The requester's role comes
// from their stored account; a role asserted in the request body is only
// logged. Unknown and non-owning requesters get the same error.
func (es *EventService) authorize(ctx context.Context, requesterID uint, assertedRole string, ownerID uint) error {
	if requesterID == 0 {
		return models.Forbidden(permissionDenied)
	}

	requester, err := es.userRepo.GetUserByID(ctx, requesterID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.Forbidden(permissionDenied)
		}
		return err
	}

	role := policy.EffectiveRole(requester.Username, requester.Role)
	if assertedRole != "" && policy.ParseRole(assertedRole) != role {
		es.logger.Warn("Ignoring asserted requester role",
			"user_id", requesterID,
			"asserted_role", assertedRole,
			"stored_role", role,
		)
	}

	if !policy.CanMutate(requesterID, role, ownerID) {
		return models.Forbidden(permissionDenied)
	}
	return nil
}

func (es *EventService) ListAttendees(ctx context.Context, eventID uint) (*models.AttendeeList, error) {
	event, err := es.eventRepo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	attendees, err := es.eventRepo.ListAttendees(ctx, eventID)
	if err != nil {
		return nil, err
	}

	statuses := make([]models.RSVPStatus, 0, len(attendees))
	for _, a := range attendees {
		statuses = append(statuses, a.Status)
	}

	return &models.AttendeeList{
		EventID:   event.ID,
		Attendees: attendees,
		Summary:   models.SummarizeAttendance(event.MaxAttendees, statuses),
	}, nil
}

func (es *EventService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return es.categoryRepo.ListCategories(ctx)
}

func (es *EventService) ListActivity(ctx context.Context, eventID uint, limit int) ([]models.ActivityEntry, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}
	entries, err := es.activity.ListActivity(ctx, eventID, limit)
	if err != nil {
		return nil, models.Internal("failed to load activity", err)
	}
	return entries, nil
}

func (es *EventService) record(ctx context.Context, entry models.ActivityEntry) {
	recordActivity(ctx, es.activity, es.logger, entry)
}

// recordActivity writes an activity entry without failing the mutation
// that produced it.
func recordActivity(ctx context.Context, repo models.ActivityRepo, logger *slog.Logger, entry models.ActivityEntry) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := repo.RecordActivity(ctx, entry); err != nil {
		logger.Warn("Failed to record activity",
			"kind", entry.Kind,
			"event_id", entry.EventID,
			"error", err,
		)
	}
}
