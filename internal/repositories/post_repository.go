package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"social-service/internal/models"
)

var ErrPostNotFound = errors.New("post not found")

const postColumns = `p.id, p.author_id, a.username AS author_username, p.content, p.image_path, p.created_at`

// PostRepository abstracts post persistence.
type PostRepository interface {
	Create(ctx context.Context, authorID int, content string, imagePath *string) (models.Post, error)
	Get(ctx context.Context, id int) (models.Post, error)
	ListAll(ctx context.Context) ([]models.Post, error)
	ListByAuthor(ctx context.Context, authorID int) ([]models.Post, error)
	Update(ctx context.Context, id int, content string, imagePath *string) (models.Post, error)
	Delete(ctx context.Context, id int) error
}

// PostRepo is a sqlx implementation of PostRepository.
type PostRepo struct {
	db *sqlx.DB
}

// NewPostRepo constructs a PostRepo.
func NewPostRepo(db *sqlx.DB) *PostRepo {
	return &PostRepo{db: db}
}

// Create stores a post and returns it with the author's username.
func (r *PostRepo) Create(ctx context.Context, authorID int, content string, imagePath *string) (models.Post, error) {
	var post models.Post
	err := r.db.GetContext(ctx, &post, `WITH p AS (
            INSERT INTO posts (author_id, content, image_path) VALUES ($1, $2, $3)
            RETURNING id, author_id, content, image_path, created_at
        )
        SELECT `+postColumns+` FROM p JOIN accounts a ON a.id = p.author_id`, authorID, content, imagePath)
	return post, err
}

// Get fetches a single post.
func (r *PostRepo) Get(ctx context.Context, id int) (models.Post, error) {
	var post models.Post
	err := r.db.GetContext(ctx, &post, `SELECT `+postColumns+` FROM posts p JOIN accounts a ON a.id = p.author_id WHERE p.id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Post{}, ErrPostNotFound
	}
	return post, err
}

// ListAll returns every post, newest first.
func (r *PostRepo) ListAll(ctx context.Context) ([]models.Post, error) {
	posts := []models.Post{}
	err := r.db.SelectContext(ctx, &posts, `SELECT `+postColumns+` FROM posts p JOIN accounts a ON a.id = p.author_id
        ORDER BY p.created_at DESC, p.id DESC`)
	return posts, err
}

// ListByAuthor returns the author's posts, newest first.
func (r *PostRepo) ListByAuthor(ctx context.Context, authorID int) ([]models.Post, error) {
	posts := []models.Post{}
	err := r.db.SelectContext(ctx, &posts, `SELECT `+postColumns+` FROM posts p JOIN accounts a ON a.id = p.author_id
        WHERE p.author_id=$1 ORDER BY p.created_at DESC, p.id DESC`, authorID)
	return posts, err
}

// Update overwrites content and image of a post.
func (r *PostRepo) Update(ctx context.Context, id int, content string, imagePath *string) (models.Post, error) {
	var post models.Post
	err := r.db.GetContext(ctx, &post, `WITH p AS (
            UPDATE posts SET content=$2, image_path=$3 WHERE id=$1
            RETURNING id, author_id, content, image_path, created_at
        )
        SELECT `+postColumns+` FROM p JOIN accounts a ON a.id = p.author_id`, id, content, imagePath)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Post{}, ErrPostNotFound
	}
	return post, err
}

// Delete removes a post.
func (r *PostRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrPostNotFound
	}
	return nil
}
