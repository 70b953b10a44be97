package models

import "time"

// ChatMessage is a direct message between two accounts.
type ChatMessage struct {
	ID             int       `db:"id" json:"id"`
	SenderID       int       `db:"sender_id" json:"sender_id"`
	SenderUsername string    `db:"sender_username" json:"sender_username"`
	ReceiverID     int       `db:"receiver_id" json:"receiver_id"`
	Message        string    `db:"message" json:"message"`
	Timestamp      time.Time `db:"timestamp" json:"timestamp"`
	IsRead         bool      `db:"is_read" json:"is_read"`
}

// PollTimestampLayout renders message timestamps for the polling endpoint.
const PollTimestampLayout = "2006/0102 15:04"

// PolledMessage is the wire form returned to polling clients.
type PolledMessage struct {
	Sender    string `json:"sender"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Polled converts the message for the polling endpoint. Timestamps are
// rendered in UTC.
func (m ChatMessage) Polled() PolledMessage {
	return PolledMessage{
		Sender:    m.SenderUsername,
		Message:   m.Message,
		Timestamp: m.Timestamp.UTC().Format(PollTimestampLayout),
	}
}
