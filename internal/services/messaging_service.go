package services

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"social-service/internal/apperrors"
	"social-service/internal/auth"
	"social-service/internal/logger"
	"social-service/internal/models"
	"social-service/internal/observability"
	"social-service/internal/repositories"
	"social-service/internal/telemetry"
)

type MessagingService interface {
	ListConversation(ctx context.Context, actor auth.Principal, peerID int) ([]models.ChatMessage, error)
	PeekUnread(ctx context.Context, actor auth.Principal, peerID int) ([]models.ChatMessage, error)
	MarkRead(ctx context.Context, actor auth.Principal, peerID int) (int64, error)
	OpenConversation(ctx context.Context, actor auth.Principal, peerID int) (models.AccountSummary, []models.ChatMessage, error)
	Send(ctx context.Context, actor auth.Principal, peerID int, text string) (models.ChatMessage, error)
	UnreadCount(ctx context.Context, actor auth.Principal) (int, error)
	UnreadCountFrom(ctx context.Context, actor auth.Principal, peerID int) (int, error)
	Get(ctx context.Context, actor auth.Principal, messageID int) (models.ChatMessage, error)
	Edit(ctx context.Context, actor auth.Principal, messageID int, text string) (models.ChatMessage, error)
	Delete(ctx context.Context, actor auth.Principal, messageID int) error
}

// MessagingSvc manages direct messages between two accounts.
type MessagingSvc struct {
	accounts repositories.AccountRepository
	messages repositories.MessageRepository
	audit    AuditEmitter
	now      Clock
}

func NewMessagingService(accounts repositories.AccountRepository, messages repositories.MessageRepository, audit AuditEmitter, now Clock) *MessagingSvc {
	return &MessagingSvc{accounts: accounts, messages: messages, audit: auditOrNoop(audit), now: clockOrNow(now)}
}

func (s *MessagingSvc) peer(ctx context.Context, actor auth.Principal, peerID int) (models.AccountSummary, error) {
	if err := requirePrincipal(actor); err != nil {
		return models.AccountSummary{}, err
	}
	account, err := s.accounts.GetByID(ctx, peerID)
	if errors.Is(err, repositories.ErrAccountNotFound) {
		return models.AccountSummary{}, apperrors.NewNotFoundError("user not found")
	}
	if err != nil {
		return models.AccountSummary{}, fmt.Errorf("load peer: %w", err)
	}
	return account.Summary(), nil
}

// ListConversation returns every message between actor and peer in both
// directions, oldest first. It does not change read state.
func (s *MessagingSvc) ListConversation(ctx context.Context, actor auth.Principal, peerID int) ([]models.ChatMessage, error) {
	if _, err := s.peer(ctx, actor, peerID); err != nil {
		return nil, err
	}
	return s.messages.ListConversation(ctx, actor.ID, peerID)
}

// PeekUnread returns the messages peer sent actor that actor has not read.
func (s *MessagingSvc) PeekUnread(ctx context.Context, actor auth.Principal, peerID int) ([]models.ChatMessage, error) {
	if _, err := s.peer(ctx, actor, peerID); err != nil {
		return nil, err
	}
	return s.messages.ListUnreadFrom(ctx, actor.ID, peerID)
}

// MarkRead flips every unread message from peer to actor and returns how many changed.
func (s *MessagingSvc) MarkRead(ctx context.Context, actor auth.Principal, peerID int) (int64, error) {
	if _, err := s.peer(ctx, actor, peerID); err != nil {
		return 0, err
	}
	n, err := s.messages.MarkRead(ctx, actor.ID, peerID)
	if err != nil {
		return 0, fmt.Errorf("mark read: %w", err)
	}
	s.recordRead(ctx, actor, peerID, n)
	return n, nil
}

// OpenConversation marks the conversation read and lists it in one transaction.
func (s *MessagingSvc) OpenConversation(ctx context.Context, actor auth.Principal, peerID int) (models.AccountSummary, []models.ChatMessage, error) {
	ctx, span := telemetry.StartSpan(ctx, "MessagingService.OpenConversation",
		attribute.Int("actor.id", actor.ID), attribute.Int("peer.id", peerID))
	defer span.End()

	peer, err := s.peer(ctx, actor, peerID)
	if err != nil {
		return models.AccountSummary{}, nil, err
	}
	msgs, n, err := s.messages.OpenConversation(ctx, actor.ID, peerID)
	if err != nil {
		return models.AccountSummary{}, nil, fmt.Errorf("open conversation: %w", err)
	}
	span.SetAttributes(attribute.Int64("messages.marked_read", n))
	s.recordRead(ctx, actor, peerID, n)
	return peer, msgs, nil
}

func (s *MessagingSvc) recordRead(ctx context.Context, actor auth.Principal, peerID int, n int64) {
	if n == 0 {
		return
	}
	observability.AddMessagesMarkedRead(n)
	s.audit.Emit(ctx, telemetry.EventConversationRead, actor.ID, map[string]any{"peer_id": peerID, "marked": n})
}

// Send stores an unread message from actor to peer stamped with the current time.
func (s *MessagingSvc) Send(ctx context.Context, actor auth.Principal, peerID int, text string) (models.ChatMessage, error) {
	ctx, span := telemetry.StartSpan(ctx, "MessagingService.Send",
		attribute.Int("actor.id", actor.ID), attribute.Int("peer.id", peerID))
	defer span.End()

	if _, err := s.peer(ctx, actor, peerID); err != nil {
		return models.ChatMessage{}, err
	}
	if actor.ID == peerID {
		return models.ChatMessage{}, apperrors.NewValidationError("you cannot send a message to yourself")
	}
	if isBlank(text) {
		return models.ChatMessage{}, apperrors.NewValidationError("message must not be empty")
	}

	msg, err := s.messages.Create(ctx, actor.ID, peerID, text, s.now())
	if err != nil {
		return models.ChatMessage{}, fmt.Errorf("create message: %w", err)
	}

	observability.IncMessagesSent()
	logger.Debug().Int("message_id", msg.ID).Int("sender", actor.ID).Int("receiver", peerID).Msg("message sent")
	s.audit.Emit(ctx, telemetry.EventMessageSent, actor.ID, map[string]any{"message_id": msg.ID, "receiver_id": peerID})
	return msg, nil
}

func (s *MessagingSvc) UnreadCount(ctx context.Context, actor auth.Principal) (int, error) {
	if err := requirePrincipal(actor); err != nil {
		return 0, err
	}
	return s.messages.CountUnread(ctx, actor.ID)
}

func (s *MessagingSvc) UnreadCountFrom(ctx context.Context, actor auth.Principal, peerID int) (int, error) {
	if err := requirePrincipal(actor); err != nil {
		return 0, err
	}
	return s.messages.CountUnreadFrom(ctx, actor.ID, peerID)
}

// Get returns a message its sender is about to edit or delete.
func (s *MessagingSvc) Get(ctx context.Context, actor auth.Principal, messageID int) (models.ChatMessage, error) {
	if err := requirePrincipal(actor); err != nil {
		return models.ChatMessage{}, err
	}
	msg, err := s.messages.Get(ctx, messageID)
	if errors.Is(err, repositories.ErrMessageNotFound) {
		return models.ChatMessage{}, apperrors.NewNotFoundError("message not found")
	}
	if err != nil {
		return models.ChatMessage{}, fmt.Errorf("load message: %w", err)
	}
	if msg.SenderID != actor.ID {
		return models.ChatMessage{}, apperrors.NewForbiddenError("only the sender can change this message")
	}
	return msg, nil
}

// Edit replaces the text of actor's own message. Timestamp and read flag are kept.
func (s *MessagingSvc) Edit(ctx context.Context, actor auth.Principal, messageID int, text string) (models.ChatMessage, error) {
	if _, err := s.Get(ctx, actor, messageID); err != nil {
		return models.ChatMessage{}, err
	}
	if isBlank(text) {
		return models.ChatMessage{}, apperrors.NewValidationError("message must not be empty")
	}

	msg, err := s.messages.UpdateText(ctx, messageID, actor.ID, text)
	if errors.Is(err, repositories.ErrMessageNotFound) {
		return models.ChatMessage{}, apperrors.NewNotFoundError("message not found")
	}
	if err != nil {
		return models.ChatMessage{}, fmt.Errorf("update message: %w", err)
	}
	s.audit.Emit(ctx, telemetry.EventMessageEdited, actor.ID, map[string]any{"message_id": messageID})
	return msg, nil
}

func (s *MessagingSvc) Delete(ctx context.Context, actor auth.Principal, messageID int) error {
	if _, err := s.Get(ctx, actor, messageID); err != nil {
		return err
	}
	err := s.messages.Delete(ctx, messageID, actor.ID)
	if errors.Is(err, repositories.ErrMessageNotFound) {
		return apperrors.NewNotFoundError("message not found")
	}
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	s.audit.Emit(ctx, telemetry.EventMessageDeleted, actor.ID, map[string]any{"message_id": messageID})
	return nil
}
