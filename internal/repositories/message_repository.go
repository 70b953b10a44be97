package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"social-service/internal/models"
)

var ErrMessageNotFound = errors.New("message not found")

const messageSelect = `SELECT m.id, m.sender_id, s.username AS sender_username, m.receiver_id, m.message, m.timestamp, m.is_read
        FROM chat_messages m JOIN accounts s ON s.id = m.sender_id`

const conversationQuery = messageSelect + `
        WHERE (m.sender_id=$1 AND m.receiver_id=$2) OR (m.sender_id=$2 AND m.receiver_id=$1)
        ORDER BY m.timestamp ASC, m.id ASC`

// MessageRepository defines interactions for direct messages.
type MessageRepository interface {
	Create(ctx context.Context, senderID, receiverID int, text string, sentAt time.Time) (models.ChatMessage, error)
	Get(ctx context.Context, messageID int) (models.ChatMessage, error)
	ListConversation(ctx context.Context, userID, peerID int) ([]models.ChatMessage, error)
	ListUnreadFrom(ctx context.Context, receiverID, senderID int) ([]models.ChatMessage, error)
	MarkRead(ctx context.Context, receiverID, senderID int) (int64, error)
	OpenConversation(ctx context.Context, userID, peerID int) ([]models.ChatMessage, int64, error)
	CountUnread(ctx context.Context, receiverID int) (int, error)
	CountUnreadFrom(ctx context.Context, receiverID, senderID int) (int, error)
	CountUnreadBySender(ctx context.Context, receiverID int) (map[int]int, error)
	UpdateText(ctx context.Context, messageID, senderID int, text string) (models.ChatMessage, error)
	Delete(ctx context.Context, messageID, senderID int) error
}

// MessageRepo is a sqlx-backed repository.
type MessageRepo struct {
	db *sqlx.DB
}

// NewMessageRepo constructs MessageRepo.
func NewMessageRepo(db *sqlx.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// Create stores an unread message.
func (r *MessageRepo) Create(ctx context.Context, senderID, receiverID int, text string, sentAt time.Time) (models.ChatMessage, error) {
	var msg models.ChatMessage
	err := r.db.GetContext(ctx, &msg, `WITH m AS (
            INSERT INTO chat_messages (sender_id, receiver_id, message, timestamp) VALUES ($1, $2, $3, $4)
            RETURNING id, sender_id, receiver_id, message, timestamp, is_read
        )
        SELECT m.id, m.sender_id, s.username AS sender_username, m.receiver_id, m.message, m.timestamp, m.is_read
        FROM m JOIN accounts s ON s.id = m.sender_id`, senderID, receiverID, text, sentAt)
	return msg, err
}

// Get retrieves a single message.
func (r *MessageRepo) Get(ctx context.Context, messageID int) (models.ChatMessage, error) {
	var msg models.ChatMessage
	err := r.db.GetContext(ctx, &msg, messageSelect+` WHERE m.id=$1`, messageID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ChatMessage{}, ErrMessageNotFound
	}
	return msg, err
}

// ListConversation returns the messages exchanged between the two accounts in
// both directions, oldest first.
func (r *MessageRepo) ListConversation(ctx context.Context, userID, peerID int) ([]models.ChatMessage, error) {
	msgs := []models.ChatMessage{}
	err := r.db.SelectContext(ctx, &msgs, conversationQuery, userID, peerID)
	return msgs, err
}

// ListUnreadFrom returns unread messages from senderID to receiverID without
// marking them read.
func (r *MessageRepo) ListUnreadFrom(ctx context.Context, receiverID, senderID int) ([]models.ChatMessage, error) {
	msgs := []models.ChatMessage{}
	err := r.db.SelectContext(ctx, &msgs, messageSelect+`
        WHERE m.sender_id=$1 AND m.receiver_id=$2 AND m.is_read = FALSE
        ORDER BY m.timestamp ASC, m.id ASC`, senderID, receiverID)
	return msgs, err
}

// MarkRead flags every unread message from senderID to receiverID as read.
func (r *MessageRepo) MarkRead(ctx context.Context, receiverID, senderID int) (int64, error) {
	return markRead(ctx, r.db, receiverID, senderID)
}

// OpenConversation marks the peer's messages read and lists the conversation
// in a single transaction. The listing reflects the marked state.
func (r *MessageRepo) OpenConversation(ctx context.Context, userID, peerID int) ([]models.ChatMessage, int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var marked int64
	if marked, err = markRead(ctx, tx, userID, peerID); err != nil {
		return nil, 0, err
	}

	msgs := []models.ChatMessage{}
	if err = tx.SelectContext(ctx, &msgs, conversationQuery, userID, peerID); err != nil {
		return nil, 0, err
	}

	if err = tx.Commit(); err != nil {
		return nil, 0, err
	}
	return msgs, marked, nil
}

func markRead(ctx context.Context, exec sqlx.ExecerContext, receiverID, senderID int) (int64, error) {
	res, err := exec.ExecContext(ctx, `UPDATE chat_messages SET is_read = TRUE
        WHERE sender_id=$1 AND receiver_id=$2 AND is_read = FALSE`, senderID, receiverID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CountUnread counts every unread message addressed to receiverID.
func (r *MessageRepo) CountUnread(ctx context.Context, receiverID int) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM chat_messages WHERE receiver_id=$1 AND is_read = FALSE`, receiverID)
	return count, err
}

// CountUnreadFrom counts unread messages from senderID to receiverID.
func (r *MessageRepo) CountUnreadFrom(ctx context.Context, receiverID, senderID int) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM chat_messages
        WHERE receiver_id=$1 AND sender_id=$2 AND is_read = FALSE`, receiverID, senderID)
	return count, err
}

// CountUnreadBySender groups the receiver's unread messages by sender.
func (r *MessageRepo) CountUnreadBySender(ctx context.Context, receiverID int) (map[int]int, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT sender_id, COUNT(*) FROM chat_messages
        WHERE receiver_id=$1 AND is_read = FALSE GROUP BY sender_id`, receiverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[int]int{}
	for rows.Next() {
		var senderID, count int
		if err := rows.Scan(&senderID, &count); err != nil {
			return nil, err
		}
		counts[senderID] = count
	}
	return counts, rows.Err()
}

// UpdateText overwrites the text of a message sent by senderID. The timestamp
// and read flag are left untouched.
func (r *MessageRepo) UpdateText(ctx context.Context, messageID, senderID int, text string) (models.ChatMessage, error) {
	var msg models.ChatMessage
	err := r.db.GetContext(ctx, &msg, `WITH m AS (
            UPDATE chat_messages SET message=$3 WHERE id=$1 AND sender_id=$2
            RETURNING id, sender_id, receiver_id, message, timestamp, is_read
        )
        SELECT m.id, m.sender_id, s.username AS sender_username, m.receiver_id, m.message, m.timestamp, m.is_read
        FROM m JOIN accounts s ON s.id = m.sender_id`, messageID, senderID, text)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ChatMessage{}, ErrMessageNotFound
	}
	return msg, err
}

// Delete removes a message sent by senderID.
func (r *MessageRepo) Delete(ctx context.Context, messageID, senderID int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM chat_messages WHERE id=$1 AND sender_id=$2`, messageID, senderID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrMessageNotFound
	}
	return nil
}
