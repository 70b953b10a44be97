package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"social-service/internal/models"
)

var ErrEventNotFound = errors.New("event not found")

// EventRepository abstracts calendar event persistence.
type EventRepository interface {
	Create(ctx context.Context, ownerID int, title, description string, date time.Time) (models.Event, error)
	Get(ctx context.Context, id int) (models.Event, error)
	ListByOwner(ctx context.Context, ownerID int) ([]models.Event, error)
	ListByOwnerBetween(ctx context.Context, ownerID int, from, to time.Time) ([]models.Event, error)
	Update(ctx context.Context, id int, title, description string, date time.Time) (models.Event, error)
	Delete(ctx context.Context, id int) error
}

// EventRepo is a sqlx implementation of EventRepository.
type EventRepo struct {
	db *sqlx.DB
}

// NewEventRepo constructs an EventRepo.
func NewEventRepo(db *sqlx.DB) *EventRepo {
	return &EventRepo{db: db}
}

func (r *EventRepo) Create(ctx context.Context, ownerID int, title, description string, date time.Time) (models.Event, error) {
	var event models.Event
	err := r.db.GetContext(ctx, &event, `INSERT INTO events (owner_id, title, description, date) VALUES ($1, $2, $3, $4)
        RETURNING id, owner_id, title, description, date`, ownerID, title, description, date)
	return event, err
}

func (r *EventRepo) Get(ctx context.Context, id int) (models.Event, error) {
	var event models.Event
	err := r.db.GetContext(ctx, &event, `SELECT id, owner_id, title, description, date FROM events WHERE id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Event{}, ErrEventNotFound
	}
	return event, err
}

// ListByOwner returns the owner's events by date.
func (r *EventRepo) ListByOwner(ctx context.Context, ownerID int) ([]models.Event, error) {
	events := []models.Event{}
	err := r.db.SelectContext(ctx, &events, `SELECT id, owner_id, title, description, date FROM events
        WHERE owner_id=$1 ORDER BY date ASC, id ASC`, ownerID)
	return events, err
}

// ListByOwnerBetween returns the owner's events with from <= date < to, by date.
func (r *EventRepo) ListByOwnerBetween(ctx context.Context, ownerID int, from, to time.Time) ([]models.Event, error) {
	events := []models.Event{}
	err := r.db.SelectContext(ctx, &events, `SELECT id, owner_id, title, description, date FROM events
        WHERE owner_id=$1 AND date >= $2 AND date < $3 ORDER BY date ASC, id ASC`, ownerID, from, to)
	return events, err
}

func (r *EventRepo) Update(ctx context.Context, id int, title, description string, date time.Time) (models.Event, error) {
	var event models.Event
	err := r.db.GetContext(ctx, &event, `UPDATE events SET title=$2, description=$3, date=$4 WHERE id=$1
        RETURNING id, owner_id, title, description, date`, id, title, description, date)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Event{}, ErrEventNotFound
	}
	return event, err
}

func (r *EventRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id=$1`, id)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrEventNotFound
	}
	return nil
}
