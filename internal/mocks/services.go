package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"social-service/internal/auth"
	"social-service/internal/models"
	"social-service/internal/services"
)

type AccountServiceMock struct {
	mock.Mock
}

func (m *AccountServiceMock) Signup(ctx context.Context, username, password string) (models.Account, error) {
	args := m.Called(ctx, username, password)
	var account models.Account
	if val := args.Get(0); val != nil {
		account = val.(models.Account)
	}
	return account, args.Error(1)
}

func (m *AccountServiceMock) Login(ctx context.Context, username, password string) (services.LoginResult, error) {
	args := m.Called(ctx, username, password)
	var res services.LoginResult
	if val := args.Get(0); val != nil {
		res = val.(services.LoginResult)
	}
	return res, args.Error(1)
}

func (m *AccountServiceMock) Get(ctx context.Context, id int) (models.Account, error) {
	args := m.Called(ctx, id)
	var account models.Account
	if val := args.Get(0); val != nil {
		account = val.(models.Account)
	}
	return account, args.Error(1)
}

func (m *AccountServiceMock) ListOthers(ctx context.Context, actor auth.Principal) ([]models.AccountSummary, error) {
	args := m.Called(ctx, actor)
	var list []models.AccountSummary
	if val := args.Get(0); val != nil {
		list = val.([]models.AccountSummary)
	}
	return list, args.Error(1)
}

type FriendshipServiceMock struct {
	mock.Mock
}

func (m *FriendshipServiceMock) SendRequest(ctx context.Context, actor auth.Principal, toID int) (models.FriendshipRequest, error) {
	args := m.Called(ctx, actor, toID)
	var req models.FriendshipRequest
	if val := args.Get(0); val != nil {
		req = val.(models.FriendshipRequest)
	}
	return req, args.Error(1)
}

func (m *FriendshipServiceMock) Approve(ctx context.Context, actor auth.Principal, requestID int) (models.FriendshipRequest, error) {
	args := m.Called(ctx, actor, requestID)
	var req models.FriendshipRequest
	if val := args.Get(0); val != nil {
		req = val.(models.FriendshipRequest)
	}
	return req, args.Error(1)
}

func (m *FriendshipServiceMock) IsFriend(ctx context.Context, a, b int) (bool, error) {
	args := m.Called(ctx, a, b)
	return args.Bool(0), args.Error(1)
}

func (m *FriendshipServiceMock) FriendsOf(ctx context.Context, actor auth.Principal) ([]models.AccountSummary, error) {
	args := m.Called(ctx, actor)
	var list []models.AccountSummary
	if val := args.Get(0); val != nil {
		list = val.([]models.AccountSummary)
	}
	return list, args.Error(1)
}

func (m *FriendshipServiceMock) PendingIncoming(ctx context.Context, actor auth.Principal) ([]models.FriendshipRequest, error) {
	args := m.Called(ctx, actor)
	var list []models.FriendshipRequest
	if val := args.Get(0); val != nil {
		list = val.([]models.FriendshipRequest)
	}
	return list, args.Error(1)
}

func (m *FriendshipServiceMock) FriendsWithUnread(ctx context.Context, actor auth.Principal) ([]models.FriendWithUnread, error) {
	args := m.Called(ctx, actor)
	var list []models.FriendWithUnread
	if val := args.Get(0); val != nil {
		list = val.([]models.FriendWithUnread)
	}
	return list, args.Error(1)
}

type MessagingServiceMock struct {
	mock.Mock
}

func (m *MessagingServiceMock) ListConversation(ctx context.Context, actor auth.Principal, peerID int) ([]models.ChatMessage, error) {
	args := m.Called(ctx, actor, peerID)
	var list []models.ChatMessage
	if val := args.Get(0); val != nil {
		list = val.([]models.ChatMessage)
	}
	return list, args.Error(1)
}

func (m *MessagingServiceMock) PeekUnread(ctx context.Context, actor auth.Principal, peerID int) ([]models.ChatMessage, error) {
	args := m.Called(ctx, actor, peerID)
	var list []models.ChatMessage
	if val := args.Get(0); val != nil {
		list = val.([]models.ChatMessage)
	}
	return list, args.Error(1)
}

func (m *MessagingServiceMock) MarkRead(ctx context.Context, actor auth.Principal, peerID int) (int64, error) {
	args := m.Called(ctx, actor, peerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MessagingServiceMock) OpenConversation(ctx context.Context, actor auth.Principal, peerID int) (models.AccountSummary, []models.ChatMessage, error) {
	args := m.Called(ctx, actor, peerID)
	var peer models.AccountSummary
	if val := args.Get(0); val != nil {
		peer = val.(models.AccountSummary)
	}
	var list []models.ChatMessage
	if val := args.Get(1); val != nil {
		list = val.([]models.ChatMessage)
	}
	return peer, list, args.Error(2)
}

func (m *MessagingServiceMock) Send(ctx context.Context, actor auth.Principal, peerID int, text string) (models.ChatMessage, error) {
	args := m.Called(ctx, actor, peerID, text)
	var msg models.ChatMessage
	if val := args.Get(0); val != nil {
		msg = val.(models.ChatMessage)
	}
	return msg, args.Error(1)
}

func (m *MessagingServiceMock) UnreadCount(ctx context.Context, actor auth.Principal) (int, error) {
	args := m.Called(ctx, actor)
	return args.Int(0), args.Error(1)
}

func (m *MessagingServiceMock) UnreadCountFrom(ctx context.Context, actor auth.Principal, peerID int) (int, error) {
	args := m.Called(ctx, actor, peerID)
	return args.Int(0), args.Error(1)
}

func (m *MessagingServiceMock) Get(ctx context.Context, actor auth.Principal, messageID int) (models.ChatMessage, error) {
	args := m.Called(ctx, actor, messageID)
	var msg models.ChatMessage
	if val := args.Get(0); val != nil {
		msg = val.(models.ChatMessage)
	}
	return msg, args.Error(1)
}

func (m *MessagingServiceMock) Edit(ctx context.Context, actor auth.Principal, messageID int, text string) (models.ChatMessage, error) {
	args := m.Called(ctx, actor, messageID, text)
	var msg models.ChatMessage
	if val := args.Get(0); val != nil {
		msg = val.(models.ChatMessage)
	}
	return msg, args.Error(1)
}

func (m *MessagingServiceMock) Delete(ctx context.Context, actor auth.Principal, messageID int) error {
	args := m.Called(ctx, actor, messageID)
	return args.Error(0)
}

type PostServiceMock struct {
	mock.Mock
}

func (m *PostServiceMock) Create(ctx context.Context, actor auth.Principal, in services.PostInput) (models.Post, error) {
	args := m.Called(ctx, actor, in)
	var post models.Post
	if val := args.Get(0); val != nil {
		post = val.(models.Post)
	}
	return post, args.Error(1)
}

func (m *PostServiceMock) ListAll(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	var list []models.Post
	if val := args.Get(0); val != nil {
		list = val.([]models.Post)
	}
	return list, args.Error(1)
}

func (m *PostServiceMock) ListOwn(ctx context.Context, actor auth.Principal) ([]models.Post, error) {
	args := m.Called(ctx, actor)
	var list []models.Post
	if val := args.Get(0); val != nil {
		list = val.([]models.Post)
	}
	return list, args.Error(1)
}

func (m *PostServiceMock) Get(ctx context.Context, actor auth.Principal, id int) (models.Post, error) {
	args := m.Called(ctx, actor, id)
	var post models.Post
	if val := args.Get(0); val != nil {
		post = val.(models.Post)
	}
	return post, args.Error(1)
}

func (m *PostServiceMock) Update(ctx context.Context, actor auth.Principal, id int, in services.PostInput) (models.Post, error) {
	args := m.Called(ctx, actor, id, in)
	var post models.Post
	if val := args.Get(0); val != nil {
		post = val.(models.Post)
	}
	return post, args.Error(1)
}

func (m *PostServiceMock) Delete(ctx context.Context, actor auth.Principal, id int) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

type EventServiceMock struct {
	mock.Mock
}

func (m *EventServiceMock) Create(ctx context.Context, actor auth.Principal, in services.EventInput) (models.Event, error) {
	args := m.Called(ctx, actor, in)
	var event models.Event
	if val := args.Get(0); val != nil {
		event = val.(models.Event)
	}
	return event, args.Error(1)
}

func (m *EventServiceMock) ListCurrentMonth(ctx context.Context, actor auth.Principal) ([]models.Event, error) {
	args := m.Called(ctx, actor)
	var list []models.Event
	if val := args.Get(0); val != nil {
		list = val.([]models.Event)
	}
	return list, args.Error(1)
}

func (m *EventServiceMock) ListAll(ctx context.Context, actor auth.Principal) ([]models.Event, error) {
	args := m.Called(ctx, actor)
	var list []models.Event
	if val := args.Get(0); val != nil {
		list = val.([]models.Event)
	}
	return list, args.Error(1)
}

func (m *EventServiceMock) Get(ctx context.Context, actor auth.Principal, id int) (models.Event, error) {
	args := m.Called(ctx, actor, id)
	var event models.Event
	if val := args.Get(0); val != nil {
		event = val.(models.Event)
	}
	return event, args.Error(1)
}

func (m *EventServiceMock) Update(ctx context.Context, actor auth.Principal, id int, in services.EventInput) (models.Event, error) {
	args := m.Called(ctx, actor, id, in)
	var event models.Event
	if val := args.Get(0); val != nil {
		event = val.(models.Event)
	}
	return event, args.Error(1)
}

func (m *EventServiceMock) Delete(ctx context.Context, actor auth.Principal, id int) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

var (
	_ services.AccountService    = (*AccountServiceMock)(nil)
	_ services.FriendshipService = (*FriendshipServiceMock)(nil)
	_ services.MessagingService  = (*MessagingServiceMock)(nil)
	_ services.PostService       = (*PostServiceMock)(nil)
	_ services.EventService      = (*EventServiceMock)(nil)
)
