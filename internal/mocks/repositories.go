package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"social-service/internal/models"
	"social-service/internal/repositories"
)

type AccountRepositoryMock struct {
	mock.Mock
}

func (m *AccountRepositoryMock) Create(ctx context.Context, username, passwordHash string) (models.Account, error) {
	args := m.Called(ctx, username, passwordHash)
	var account models.Account
	if val := args.Get(0); val != nil {
		account = val.(models.Account)
	}
	return account, args.Error(1)
}

func (m *AccountRepositoryMock) GetByID(ctx context.Context, id int) (models.Account, error) {
	args := m.Called(ctx, id)
	var account models.Account
	if val := args.Get(0); val != nil {
		account = val.(models.Account)
	}
	return account, args.Error(1)
}

func (m *AccountRepositoryMock) GetByUsername(ctx context.Context, username string) (models.Account, error) {
	args := m.Called(ctx, username)
	var account models.Account
	if val := args.Get(0); val != nil {
		account = val.(models.Account)
	}
	return account, args.Error(1)
}

func (m *AccountRepositoryMock) ListExcept(ctx context.Context, id int) ([]models.AccountSummary, error) {
	args := m.Called(ctx, id)
	var list []models.AccountSummary
	if val := args.Get(0); val != nil {
		list = val.([]models.AccountSummary)
	}
	return list, args.Error(1)
}

type FriendshipRepositoryMock struct {
	mock.Mock
}

func (m *FriendshipRepositoryMock) CreateRequestIfAbsent(ctx context.Context, fromID, toID int) (models.FriendshipRequest, bool, error) {
	args := m.Called(ctx, fromID, toID)
	var req models.FriendshipRequest
	if val := args.Get(0); val != nil {
		req = val.(models.FriendshipRequest)
	}
	return req, args.Bool(1), args.Error(2)
}

func (m *FriendshipRepositoryMock) GetRequest(ctx context.Context, id int) (models.FriendshipRequest, error) {
	args := m.Called(ctx, id)
	var req models.FriendshipRequest
	if val := args.Get(0); val != nil {
		req = val.(models.FriendshipRequest)
	}
	return req, args.Error(1)
}

func (m *FriendshipRepositoryMock) Approve(ctx context.Context, requestID, approverID int) (models.FriendshipRequest, error) {
	args := m.Called(ctx, requestID, approverID)
	var req models.FriendshipRequest
	if val := args.Get(0); val != nil {
		req = val.(models.FriendshipRequest)
	}
	return req, args.Error(1)
}

func (m *FriendshipRepositoryMock) ListPendingIncoming(ctx context.Context, userID int) ([]models.FriendshipRequest, error) {
	args := m.Called(ctx, userID)
	var list []models.FriendshipRequest
	if val := args.Get(0); val != nil {
		list = val.([]models.FriendshipRequest)
	}
	return list, args.Error(1)
}

func (m *FriendshipRepositoryMock) ListFriends(ctx context.Context, userID int) ([]models.AccountSummary, error) {
	args := m.Called(ctx, userID)
	var list []models.AccountSummary
	if val := args.Get(0); val != nil {
		list = val.([]models.AccountSummary)
	}
	return list, args.Error(1)
}

func (m *FriendshipRepositoryMock) AreFriends(ctx context.Context, userID, otherID int) (bool, error) {
	args := m.Called(ctx, userID, otherID)
	return args.Bool(0), args.Error(1)
}

type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) Create(ctx context.Context, senderID, receiverID int, text string, sentAt time.Time) (models.ChatMessage, error) {
	args := m.Called(ctx, senderID, receiverID, text, sentAt)
	var msg models.ChatMessage
	if val := args.Get(0); val != nil {
		msg = val.(models.ChatMessage)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) Get(ctx context.Context, messageID int) (models.ChatMessage, error) {
	args := m.Called(ctx, messageID)
	var msg models.ChatMessage
	if val := args.Get(0); val != nil {
		msg = val.(models.ChatMessage)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) ListConversation(ctx context.Context, userID, peerID int) ([]models.ChatMessage, error) {
	args := m.Called(ctx, userID, peerID)
	var list []models.ChatMessage
	if val := args.Get(0); val != nil {
		list = val.([]models.ChatMessage)
	}
	return list, args.Error(1)
}

func (m *MessageRepositoryMock) ListUnreadFrom(ctx context.Context, receiverID, senderID int) ([]models.ChatMessage, error) {
	args := m.Called(ctx, receiverID, senderID)
	var list []models.ChatMessage
	if val := args.Get(0); val != nil {
		list = val.([]models.ChatMessage)
	}
	return list, args.Error(1)
}

func (m *MessageRepositoryMock) MarkRead(ctx context.Context, receiverID, senderID int) (int64, error) {
	args := m.Called(ctx, receiverID, senderID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MessageRepositoryMock) OpenConversation(ctx context.Context, userID, peerID int) ([]models.ChatMessage, int64, error) {
	args := m.Called(ctx, userID, peerID)
	var list []models.ChatMessage
	if val := args.Get(0); val != nil {
		list = val.([]models.ChatMessage)
	}
	return list, args.Get(1).(int64), args.Error(2)
}

func (m *MessageRepositoryMock) CountUnread(ctx context.Context, receiverID int) (int, error) {
	args := m.Called(ctx, receiverID)
	return args.Int(0), args.Error(1)
}

func (m *MessageRepositoryMock) CountUnreadFrom(ctx context.Context, receiverID, senderID int) (int, error) {
	args := m.Called(ctx, receiverID, senderID)
	return args.Int(0), args.Error(1)
}

func (m *MessageRepositoryMock) CountUnreadBySender(ctx context.Context, receiverID int) (map[int]int, error) {
	args := m.Called(ctx, receiverID)
	var counts map[int]int
	if val := args.Get(0); val != nil {
		counts = val.(map[int]int)
	}
	return counts, args.Error(1)
}

func (m *MessageRepositoryMock) UpdateText(ctx context.Context, messageID, senderID int, text string) (models.ChatMessage, error) {
	args := m.Called(ctx, messageID, senderID, text)
	var msg models.ChatMessage
	if val := args.Get(0); val != nil {
		msg = val.(models.ChatMessage)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) Delete(ctx context.Context, messageID, senderID int) error {
	args := m.Called(ctx, messageID, senderID)
	return args.Error(0)
}

type PostRepositoryMock struct {
	mock.Mock
}

func (m *PostRepositoryMock) Create(ctx context.Context, authorID int, content string, imagePath *string) (models.Post, error) {
	args := m.Called(ctx, authorID, content, imagePath)
	var post models.Post
	if val := args.Get(0); val != nil {
		post = val.(models.Post)
	}
	return post, args.Error(1)
}

func (m *PostRepositoryMock) Get(ctx context.Context, id int) (models.Post, error) {
	args := m.Called(ctx, id)
	var post models.Post
	if val := args.Get(0); val != nil {
		post = val.(models.Post)
	}
	return post, args.Error(1)
}

func (m *PostRepositoryMock) ListAll(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	var list []models.Post
	if val := args.Get(0); val != nil {
		list = val.([]models.Post)
	}
	return list, args.Error(1)
}

func (m *PostRepositoryMock) ListByAuthor(ctx context.Context, authorID int) ([]models.Post, error) {
	args := m.Called(ctx, authorID)
	var list []models.Post
	if val := args.Get(0); val != nil {
		list = val.([]models.Post)
	}
	return list, args.Error(1)
}

func (m *PostRepositoryMock) Update(ctx context.Context, id int, content string, imagePath *string) (models.Post, error) {
	args := m.Called(ctx, id, content, imagePath)
	var post models.Post
	if val := args.Get(0); val != nil {
		post = val.(models.Post)
	}
	return post, args.Error(1)
}

func (m *PostRepositoryMock) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type EventRepositoryMock struct {
	mock.Mock
}

func (m *EventRepositoryMock) Create(ctx context.Context, ownerID int, title, description string, date time.Time) (models.Event, error) {
	args := m.Called(ctx, ownerID, title, description, date)
	var event models.Event
	if val := args.Get(0); val != nil {
		event = val.(models.Event)
	}
	return event, args.Error(1)
}

func (m *EventRepositoryMock) Get(ctx context.Context, id int) (models.Event, error) {
	args := m.Called(ctx, id)
	var event models.Event
	if val := args.Get(0); val != nil {
		event = val.(models.Event)
	}
	return event, args.Error(1)
}

func (m *EventRepositoryMock) ListByOwner(ctx context.Context, ownerID int) ([]models.Event, error) {
	args := m.Called(ctx, ownerID)
	var list []models.Event
	if val := args.Get(0); val != nil {
		list = val.([]models.Event)
	}
	return list, args.Error(1)
}

func (m *EventRepositoryMock) ListByOwnerBetween(ctx context.Context, ownerID int, from, to time.Time) ([]models.Event, error) {
	args := m.Called(ctx, ownerID, from, to)
	var list []models.Event
	if val := args.Get(0); val != nil {
		list = val.([]models.Event)
	}
	return list, args.Error(1)
}

func (m *EventRepositoryMock) Update(ctx context.Context, id int, title, description string, date time.Time) (models.Event, error) {
	args := m.Called(ctx, id, title, description, date)
	var event models.Event
	if val := args.Get(0); val != nil {
		event = val.(models.Event)
	}
	return event, args.Error(1)
}

func (m *EventRepositoryMock) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var (
	_ repositories.AccountRepository    = (*AccountRepositoryMock)(nil)
	_ repositories.FriendshipRepository = (*FriendshipRepositoryMock)(nil)
	_ repositories.MessageRepository    = (*MessageRepositoryMock)(nil)
	_ repositories.PostRepository       = (*PostRepositoryMock)(nil)
	_ repositories.EventRepository      = (*EventRepositoryMock)(nil)
)
