package services_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"social-service/internal/models"
	"social-service/internal/repositories"
)

// memStore is an in-memory stand-in for the account, friendship and message
// tables, used to check cross-operation properties.
type memStore struct {
	mu       sync.Mutex
	accounts map[int]models.Account
	requests []models.FriendshipRequest
	messages []models.ChatMessage
	nextID   int
}

func newMemStore(usernames ...string) *memStore {
	s := &memStore{accounts: map[int]models.Account{}}
	for _, name := range usernames {
		s.nextID++
		s.accounts[s.nextID] = models.Account{ID: s.nextID, Username: name}
	}
	return s
}

func (s *memStore) id() int {
	s.nextID++
	return s.nextID
}

func (s *memStore) Create(ctx context.Context, username, passwordHash string) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.Username == username {
			return models.Account{}, repositories.ErrUsernameTaken
		}
	}
	a := models.Account{ID: s.id(), Username: username, PasswordHash: passwordHash}
	s.accounts[a.ID] = a
	return a, nil
}

func (s *memStore) GetByID(ctx context.Context, id int) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return models.Account{}, repositories.ErrAccountNotFound
	}
	return a, nil
}

func (s *memStore) GetByUsername(ctx context.Context, username string) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.Username == username {
			return a, nil
		}
	}
	return models.Account{}, repositories.ErrAccountNotFound
}

func (s *memStore) ListExcept(ctx context.Context, id int) ([]models.AccountSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.AccountSummary{}
	for _, a := range s.accounts {
		if a.ID != id {
			out = append(out, a.Summary())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

type memFriendships struct{ *memStore }

func (s memFriendships) CreateRequestIfAbsent(ctx context.Context, fromID, toID int) (models.FriendshipRequest, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.requests {
		if (r.FromUserID == fromID && r.ToUserID == toID) || (r.FromUserID == toID && r.ToUserID == fromID) {
			return r, false, nil
		}
	}
	r := models.FriendshipRequest{
		ID: s.id(), FromUserID: fromID, FromUsername: s.accounts[fromID].Username,
		ToUserID: toID, ToUsername: s.accounts[toID].Username,
	}
	s.requests = append(s.requests, r)
	return r, true, nil
}

func (s memFriendships) GetRequest(ctx context.Context, id int) (models.FriendshipRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.requests {
		if r.ID == id {
			return r, nil
		}
	}
	return models.FriendshipRequest{}, repositories.ErrRequestNotFound
}

func (s memFriendships) Approve(ctx context.Context, requestID, approverID int) (models.FriendshipRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.requests {
		if r.ID == requestID && r.ToUserID == approverID && !r.IsApproved {
			s.requests[i].IsApproved = true
			return s.requests[i], nil
		}
	}
	return models.FriendshipRequest{}, repositories.ErrRequestNotFound
}

func (s memFriendships) ListPendingIncoming(ctx context.Context, userID int) ([]models.FriendshipRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.FriendshipRequest{}
	for _, r := range s.requests {
		if r.ToUserID == userID && !r.IsApproved {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s memFriendships) ListFriends(ctx context.Context, userID int) ([]models.AccountSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.AccountSummary{}
	for _, r := range s.requests {
		if !r.IsApproved {
			continue
		}
		switch userID {
		case r.FromUserID:
			out = append(out, s.accounts[r.ToUserID].Summary())
		case r.ToUserID:
			out = append(out, s.accounts[r.FromUserID].Summary())
		}
	}
	return out, nil
}

func (s memFriendships) AreFriends(ctx context.Context, userID, otherID int) (bool, error) {
	friends, _ := s.ListFriends(ctx, userID)
	for _, f := range friends {
		if f.ID == otherID {
			return true, nil
		}
	}
	return false, nil
}

type memMessages struct{ *memStore }

func (s memMessages) Create(ctx context.Context, senderID, receiverID int, text string, sentAt time.Time) (models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := models.ChatMessage{
		ID: s.id(), SenderID: senderID, SenderUsername: s.accounts[senderID].Username,
		ReceiverID: receiverID, Message: text, Timestamp: sentAt,
	}
	s.messages = append(s.messages, m)
	return m, nil
}

func (s memMessages) Get(ctx context.Context, messageID int) (models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.messages {
		if m.ID == messageID {
			return m, nil
		}
	}
	return models.ChatMessage{}, repositories.ErrMessageNotFound
}

func (s memMessages) filter(keep func(models.ChatMessage) bool) []models.ChatMessage {
	out := []models.ChatMessage{}
	for _, m := range s.messages {
		if keep(m) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID < out[j].ID
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

func (s memMessages) ListConversation(ctx context.Context, userID, peerID int) ([]models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter(func(m models.ChatMessage) bool {
		return (m.SenderID == userID && m.ReceiverID == peerID) || (m.SenderID == peerID && m.ReceiverID == userID)
	}), nil
}

func (s memMessages) ListUnreadFrom(ctx context.Context, receiverID, senderID int) ([]models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter(func(m models.ChatMessage) bool {
		return m.SenderID == senderID && m.ReceiverID == receiverID && !m.IsRead
	}), nil
}

func (s memMessages) markRead(receiverID, senderID int) int64 {
	var n int64
	for i, m := range s.messages {
		if m.SenderID == senderID && m.ReceiverID == receiverID && !m.IsRead {
			s.messages[i].IsRead = true
			n++
		}
	}
	return n
}

func (s memMessages) MarkRead(ctx context.Context, receiverID, senderID int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.markRead(receiverID, senderID), nil
}

func (s memMessages) OpenConversation(ctx context.Context, userID, peerID int) ([]models.ChatMessage, int64, error) {
	s.mu.Lock()
	n := s.markRead(userID, peerID)
	s.mu.Unlock()
	msgs, err := s.ListConversation(ctx, userID, peerID)
	return msgs, n, err
}

func (s memMessages) CountUnread(ctx context.Context, receiverID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.filter(func(m models.ChatMessage) bool { return m.ReceiverID == receiverID && !m.IsRead })), nil
}

func (s memMessages) CountUnreadFrom(ctx context.Context, receiverID, senderID int) (int, error) {
	msgs, err := s.ListUnreadFrom(ctx, receiverID, senderID)
	return len(msgs), err
}

func (s memMessages) CountUnreadBySender(ctx context.Context, receiverID int) (map[int]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := map[int]int{}
	for _, m := range s.messages {
		if m.ReceiverID == receiverID && !m.IsRead {
			counts[m.SenderID]++
		}
	}
	return counts, nil
}

func (s memMessages) UpdateText(ctx context.Context, messageID, senderID int, text string) (models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, m := range s.messages {
		if m.ID == messageID && m.SenderID == senderID {
			s.messages[i].Message = text
			return s.messages[i], nil
		}
	}
	return models.ChatMessage{}, repositories.ErrMessageNotFound
}

func (s memMessages) Delete(ctx context.Context, messageID, senderID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, m := range s.messages {
		if m.ID == messageID && m.SenderID == senderID {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
			return nil
		}
	}
	return repositories.ErrMessageNotFound
}

var (
	_ repositories.AccountRepository    = (*memStore)(nil)
	_ repositories.FriendshipRepository = memFriendships{}
	_ repositories.MessageRepository    = memMessages{}
)
