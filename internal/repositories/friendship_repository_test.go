package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var requestCols = []string{"id", "from_user_id", "from_username", "to_user_id", "to_username", "is_approved", "created_at"}

func TestFriendshipRepoCreateRequestInserts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFriendshipRepo(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec("pg_advisory_xact_lock").WithArgs(1, 2).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT fr.id").WithArgs(1, 2).WillReturnRows(sqlmock.NewRows(requestCols))
	mock.ExpectQuery("INSERT INTO friendship_requests").WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows(requestCols).AddRow(10, 1, "alice", 2, "bob", false, now))
	mock.ExpectCommit()

	req, created, err := repo.CreateRequestIfAbsent(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 10, req.ID)
	assert.Equal(t, "bob", req.ToUsername)
}

func TestFriendshipRepoCreateRequestReturnsExisting(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFriendshipRepo(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec("pg_advisory_xact_lock").WithArgs(2, 1).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT fr.id").WithArgs(2, 1).
		WillReturnRows(sqlmock.NewRows(requestCols).AddRow(10, 1, "alice", 2, "bob", false, now))
	mock.ExpectCommit()

	req, created, err := repo.CreateRequestIfAbsent(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 1, req.FromUserID)
}

func TestFriendshipRepoCreateRequestUniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFriendshipRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("pg_advisory_xact_lock").WithArgs(1, 2).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT fr.id").WithArgs(1, 2).WillReturnRows(sqlmock.NewRows(requestCols))
	mock.ExpectQuery("INSERT INTO friendship_requests").WithArgs(1, 2).
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	_, created, err := repo.CreateRequestIfAbsent(context.Background(), 1, 2)
	assert.False(t, created)
	assert.ErrorIs(t, err, ErrRequestExists)
}

func TestFriendshipRepoApproveNotRecipient(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFriendshipRepo(db)

	mock.ExpectQuery("UPDATE friendship_requests SET is_approved = TRUE WHERE id=\\$1 AND to_user_id=\\$2 AND is_approved = FALSE").WithArgs(10, 1).
		WillReturnRows(sqlmock.NewRows(requestCols))

	_, err := repo.Approve(context.Background(), 10, 1)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestFriendshipRepoListFriends(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFriendshipRepo(db)

	mock.ExpectQuery("UNION").WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(2, "bob").AddRow(3, "carol"))

	friends, err := repo.ListFriends(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, friends, 2)
	assert.Equal(t, "carol", friends[1].Username)
}

func TestFriendshipRepoAreFriends(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFriendshipRepo(db)

	mock.ExpectQuery("SELECT EXISTS").WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.AreFriends(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFriendshipRepoGetRequestMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFriendshipRepo(db)

	mock.ExpectQuery("WHERE fr.id=\\$1").WithArgs(9).WillReturnRows(sqlmock.NewRows(requestCols))

	_, err := repo.GetRequest(context.Background(), 9)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}
