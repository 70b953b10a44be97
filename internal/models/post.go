package models

import "time"

// Post is a text post with an optional image.
type Post struct {
	ID             int       `db:"id" json:"id"`
	AuthorID       int       `db:"author_id" json:"author_id"`
	AuthorUsername string    `db:"author_username" json:"author_username"`
	Content        string    `db:"content" json:"content"`
	ImagePath      *string   `db:"image_path" json:"image_path,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
