package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"social-service/internal/models"
)

var (
	ErrRequestNotFound = errors.New("friend request not found")
	ErrRequestExists   = errors.New("friend request already exists")
)

const requestColumns = `fr.id, fr.from_user_id, fa.username AS from_username, fr.to_user_id, ta.username AS to_username, fr.is_approved, fr.created_at`

const requestJoins = ` JOIN accounts fa ON fa.id = fr.from_user_id JOIN accounts ta ON ta.id = fr.to_user_id`

// FriendshipRepository abstracts friend request persistence. Friendship
// itself is never stored; it is derived from approved requests.
type FriendshipRepository interface {
	CreateRequestIfAbsent(ctx context.Context, fromID, toID int) (models.FriendshipRequest, bool, error)
	GetRequest(ctx context.Context, id int) (models.FriendshipRequest, error)
	Approve(ctx context.Context, requestID, approverID int) (models.FriendshipRequest, error)
	ListPendingIncoming(ctx context.Context, userID int) ([]models.FriendshipRequest, error)
	ListFriends(ctx context.Context, userID int) ([]models.AccountSummary, error)
	AreFriends(ctx context.Context, userID, otherID int) (bool, error)
}

// FriendshipRepo is a sqlx implementation of FriendshipRepository.
type FriendshipRepo struct {
	db *sqlx.DB
}

// NewFriendshipRepo constructs a FriendshipRepo.
func NewFriendshipRepo(db *sqlx.DB) *FriendshipRepo {
	return &FriendshipRepo{db: db}
}

// CreateRequestIfAbsent inserts a pending request from fromID to toID unless a
// request between the two accounts exists in either direction. In that case
// the existing request is returned with created == false. The pair is
// serialized with a transaction-scoped advisory lock so concurrent requests in
// opposite directions cannot both insert.
func (r *FriendshipRepo) CreateRequestIfAbsent(ctx context.Context, fromID, toID int) (models.FriendshipRequest, bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.FriendshipRequest{}, false, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(LEAST($1::int, $2::int), GREATEST($1::int, $2::int))`, fromID, toID); err != nil {
		return models.FriendshipRequest{}, false, err
	}

	var existing []models.FriendshipRequest
	if err = tx.SelectContext(ctx, &existing, `SELECT `+requestColumns+` FROM friendship_requests fr`+requestJoins+`
        WHERE (fr.from_user_id=$1 AND fr.to_user_id=$2) OR (fr.from_user_id=$2 AND fr.to_user_id=$1)
        ORDER BY fr.id ASC`, fromID, toID); err != nil {
		return models.FriendshipRequest{}, false, err
	}
	if len(existing) > 0 {
		err = tx.Commit()
		return preferredRequest(existing, fromID), false, err
	}

	var req models.FriendshipRequest
	if err = tx.GetContext(ctx, &req, `WITH fr AS (
            INSERT INTO friendship_requests (from_user_id, to_user_id) VALUES ($1, $2)
            RETURNING id, from_user_id, to_user_id, is_approved, created_at
        )
        SELECT `+requestColumns+` FROM fr`+requestJoins, fromID, toID); err != nil {
		if isUniqueViolation(err) {
			err = ErrRequestExists
		}
		return models.FriendshipRequest{}, false, err
	}

	if err = tx.Commit(); err != nil {
		return models.FriendshipRequest{}, false, err
	}
	return req, true, nil
}

// preferredRequest picks the caller's own request when both directions exist,
// which can only happen for rows written before the pair lock was in place.
func preferredRequest(reqs []models.FriendshipRequest, fromID int) models.FriendshipRequest {
	for _, req := range reqs {
		if req.FromUserID == fromID {
			return req
		}
	}
	return reqs[0]
}

// GetRequest fetches a request by id.
func (r *FriendshipRepo) GetRequest(ctx context.Context, id int) (models.FriendshipRequest, error) {
	var req models.FriendshipRequest
	err := r.db.GetContext(ctx, &req, `SELECT `+requestColumns+` FROM friendship_requests fr`+requestJoins+` WHERE fr.id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.FriendshipRequest{}, ErrRequestNotFound
	}
	return req, err
}

// Approve marks a pending request approved if approverID is its recipient.
// A request that is already approved yields ErrRequestNotFound.
func (r *FriendshipRepo) Approve(ctx context.Context, requestID, approverID int) (models.FriendshipRequest, error) {
	var req models.FriendshipRequest
	err := r.db.GetContext(ctx, &req, `WITH fr AS (
            UPDATE friendship_requests SET is_approved = TRUE WHERE id=$1 AND to_user_id=$2 AND is_approved = FALSE
            RETURNING id, from_user_id, to_user_id, is_approved, created_at
        )
        SELECT `+requestColumns+` FROM fr`+requestJoins, requestID, approverID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.FriendshipRequest{}, ErrRequestNotFound
	}
	return req, err
}

// ListPendingIncoming returns unapproved requests addressed to userID, oldest first.
func (r *FriendshipRepo) ListPendingIncoming(ctx context.Context, userID int) ([]models.FriendshipRequest, error) {
	reqs := []models.FriendshipRequest{}
	err := r.db.SelectContext(ctx, &reqs, `SELECT `+requestColumns+` FROM friendship_requests fr`+requestJoins+`
        WHERE fr.to_user_id=$1 AND fr.is_approved = FALSE ORDER BY fr.created_at ASC, fr.id ASC`, userID)
	return reqs, err
}

// ListFriends returns the union of approved requests sent and received by userID.
func (r *FriendshipRepo) ListFriends(ctx context.Context, userID int) ([]models.AccountSummary, error) {
	friends := []models.AccountSummary{}
	err := r.db.SelectContext(ctx, &friends, `SELECT a.id, a.username FROM accounts a WHERE a.id IN (
            SELECT to_user_id FROM friendship_requests WHERE from_user_id=$1 AND is_approved = TRUE
            UNION
            SELECT from_user_id FROM friendship_requests WHERE to_user_id=$1 AND is_approved = TRUE
        ) ORDER BY a.username ASC`, userID)
	return friends, err
}

// AreFriends reports whether an approved request exists in either direction.
func (r *FriendshipRepo) AreFriends(ctx context.Context, userID, otherID int) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM friendship_requests
        WHERE is_approved = TRUE AND ((from_user_id=$1 AND to_user_id=$2) OR (from_user_id=$2 AND to_user_id=$1)))`, userID, otherID)
	return exists, err
}
