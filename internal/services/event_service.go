package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"social-service/internal/apperrors"
	"social-service/internal/auth"
	"social-service/internal/models"
	"social-service/internal/repositories"
	"social-service/internal/telemetry"
)

// EventInput carries the fields of the event form. Date uses models.EventDateLayout.
type EventInput struct {
	Title       string
	Description string
	Date        string
}

type EventService interface {
	Create(ctx context.Context, actor auth.Principal, in EventInput) (models.Event, error)
	ListCurrentMonth(ctx context.Context, actor auth.Principal) ([]models.Event, error)
	ListAll(ctx context.Context, actor auth.Principal) ([]models.Event, error)
	Get(ctx context.Context, actor auth.Principal, id int) (models.Event, error)
	Update(ctx context.Context, actor auth.Principal, id int, in EventInput) (models.Event, error)
	Delete(ctx context.Context, actor auth.Principal, id int) error
}

type EventSvc struct {
	events repositories.EventRepository
	audit  AuditEmitter
	now    Clock
}

func NewEventService(events repositories.EventRepository, audit AuditEmitter, now Clock) *EventSvc {
	return &EventSvc{events: events, audit: auditOrNoop(audit), now: clockOrNow(now)}
}

func validateEvent(in EventInput) (string, time.Time, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return "", time.Time{}, apperrors.NewValidationError("title is required")
	}
	if utf8.RuneCountInString(title) > models.EventTitleMaxLength {
		return "", time.Time{}, apperrors.NewValidationError(fmt.Sprintf("title must be at most %d characters", models.EventTitleMaxLength))
	}
	if strings.TrimSpace(in.Date) == "" {
		return "", time.Time{}, apperrors.NewValidationError("date is required")
	}
	date, err := time.Parse(models.EventDateLayout, strings.TrimSpace(in.Date))
	if err != nil {
		return "", time.Time{}, apperrors.NewValidationError("date must be in YYYY-MM-DD format")
	}
	return title, date, nil
}

func (s *EventSvc) Create(ctx context.Context, actor auth.Principal, in EventInput) (models.Event, error) {
	if err := requirePrincipal(actor); err != nil {
		return models.Event{}, err
	}
	title, date, err := validateEvent(in)
	if err != nil {
		return models.Event{}, err
	}

	event, err := s.events.Create(ctx, actor.ID, title, in.Description, date)
	if err != nil {
		return models.Event{}, fmt.Errorf("create event: %w", err)
	}
	s.audit.Emit(ctx, telemetry.EventEventCreated, actor.ID, map[string]any{"event_id": event.ID})
	return event, nil
}

// ListCurrentMonth returns actor's events dated within the clock's current
// year and month, by date.
func (s *EventSvc) ListCurrentMonth(ctx context.Context, actor auth.Principal) ([]models.Event, error) {
	if err := requirePrincipal(actor); err != nil {
		return nil, err
	}
	from, to := monthBounds(s.now())
	return s.events.ListByOwnerBetween(ctx, actor.ID, from, to)
}

func monthBounds(now time.Time) (time.Time, time.Time) {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

func (s *EventSvc) ListAll(ctx context.Context, actor auth.Principal) ([]models.Event, error) {
	if err := requirePrincipal(actor); err != nil {
		return nil, err
	}
	return s.events.ListByOwner(ctx, actor.ID)
}

func (s *EventSvc) Get(ctx context.Context, actor auth.Principal, id int) (models.Event, error) {
	if err := requirePrincipal(actor); err != nil {
		return models.Event{}, err
	}
	event, err := s.events.Get(ctx, id)
	if errors.Is(err, repositories.ErrEventNotFound) {
		return models.Event{}, apperrors.NewNotFoundError("event not found")
	}
	if err != nil {
		return models.Event{}, fmt.Errorf("load event: %w", err)
	}
	if event.OwnerID != actor.ID {
		return models.Event{}, apperrors.NewForbiddenError("you can only change your own events")
	}
	return event, nil
}

func (s *EventSvc) Update(ctx context.Context, actor auth.Principal, id int, in EventInput) (models.Event, error) {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return models.Event{}, err
	}
	title, date, err := validateEvent(in)
	if err != nil {
		return models.Event{}, err
	}

	event, err := s.events.Update(ctx, id, title, in.Description, date)
	if errors.Is(err, repositories.ErrEventNotFound) {
		return models.Event{}, apperrors.NewNotFoundError("event not found")
	}
	if err != nil {
		return models.Event{}, fmt.Errorf("update event: %w", err)
	}
	s.audit.Emit(ctx, telemetry.EventEventUpdated, actor.ID, map[string]any{"event_id": id})
	return event, nil
}

func (s *EventSvc) Delete(ctx context.Context, actor auth.Principal, id int) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}
	err := s.events.Delete(ctx, id)
	if errors.Is(err, repositories.ErrEventNotFound) {
		return apperrors.NewNotFoundError("event not found")
	}
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	s.audit.Emit(ctx, telemetry.EventEventDeleted, actor.ID, map[string]any{"event_id": id})
	return nil
}
