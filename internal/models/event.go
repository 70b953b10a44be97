package models

import "time"

// EventTitleMaxLength bounds Event.Title.
const EventTitleMaxLength = 100

// EventDateLayout is the wire and form format of Event.Date.
const EventDateLayout = "2006-01-02"

// Event is a personal calendar entry.
type Event struct {
	ID          int       `db:"id" json:"id"`
	OwnerID     int       `db:"owner_id" json:"owner_id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Date        time.Time `db:"date" json:"date"`
}
