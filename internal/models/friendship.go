package models

import "time"

// FriendshipRequest is a directed friend request. Two accounts are friends
// once a request between them, in either direction, is approved.
type FriendshipRequest struct {
	ID           int       `db:"id" json:"id"`
	FromUserID   int       `db:"from_user_id" json:"from_user_id"`
	FromUsername string    `db:"from_username" json:"from_username"`
	ToUserID     int       `db:"to_user_id" json:"to_user_id"`
	ToUsername   string    `db:"to_username" json:"to_username"`
	IsApproved   bool      `db:"is_approved" json:"is_approved"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// FriendWithUnread is a friend together with the caller's unread count from them.
type FriendWithUnread struct {
	AccountSummary
	UnreadCount int `json:"unread_count"`
}
