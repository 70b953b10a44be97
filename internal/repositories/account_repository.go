package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"social-service/internal/models"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrUsernameTaken   = errors.New("username already taken")
)

// AccountRepository abstracts account persistence.
type AccountRepository interface {
	Create(ctx context.Context, username, passwordHash string) (models.Account, error)
	GetByID(ctx context.Context, id int) (models.Account, error)
	GetByUsername(ctx context.Context, username string) (models.Account, error)
	ListExcept(ctx context.Context, id int) ([]models.AccountSummary, error)
}

// AccountRepo is a sqlx implementation of AccountRepository.
type AccountRepo struct {
	db *sqlx.DB
}

// NewAccountRepo constructs an AccountRepo.
func NewAccountRepo(db *sqlx.DB) *AccountRepo {
	return &AccountRepo{db: db}
}

// Create inserts an account; a taken username yields ErrUsernameTaken.
func (r *AccountRepo) Create(ctx context.Context, username, passwordHash string) (models.Account, error) {
	var account models.Account
	err := r.db.GetContext(ctx, &account, `INSERT INTO accounts (username, password_hash) VALUES ($1, $2)
        RETURNING id, username, password_hash, created_at`, username, passwordHash)
	if isUniqueViolation(err) {
		return models.Account{}, ErrUsernameTaken
	}
	return account, err
}

// GetByID fetches an account by id.
func (r *AccountRepo) GetByID(ctx context.Context, id int) (models.Account, error) {
	var account models.Account
	err := r.db.GetContext(ctx, &account, `SELECT id, username, password_hash, created_at FROM accounts WHERE id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, ErrAccountNotFound
	}
	return account, err
}

// GetByUsername fetches an account by its unique username.
func (r *AccountRepo) GetByUsername(ctx context.Context, username string) (models.Account, error) {
	var account models.Account
	err := r.db.GetContext(ctx, &account, `SELECT id, username, password_hash, created_at FROM accounts WHERE username=$1`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, ErrAccountNotFound
	}
	return account, err
}

// ListExcept returns every account other than id, ordered by username.
func (r *AccountRepo) ListExcept(ctx context.Context, id int) ([]models.AccountSummary, error) {
	accounts := []models.AccountSummary{}
	err := r.db.SelectContext(ctx, &accounts, `SELECT id, username FROM accounts WHERE id <> $1 ORDER BY username ASC`, id)
	return accounts, err
}
