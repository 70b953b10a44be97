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

type FriendshipService interface {
	SendRequest(ctx context.Context, actor auth.Principal, toID int) (models.FriendshipRequest, error)
	Approve(ctx context.Context, actor auth.Principal, requestID int) (models.FriendshipRequest, error)
	IsFriend(ctx context.Context, a, b int) (bool, error)
	FriendsOf(ctx context.Context, actor auth.Principal) ([]models.AccountSummary, error)
	PendingIncoming(ctx context.Context, actor auth.Principal) ([]models.FriendshipRequest, error)
	FriendsWithUnread(ctx context.Context, actor auth.Principal) ([]models.FriendWithUnread, error)
}

// FriendshipSvc derives the symmetric friend relation from directed requests.
type FriendshipSvc struct {
	accounts repositories.AccountRepository
	requests repositories.FriendshipRepository
	messages repositories.MessageRepository
	audit    AuditEmitter
}

func NewFriendshipService(accounts repositories.AccountRepository, requests repositories.FriendshipRepository, messages repositories.MessageRepository, audit AuditEmitter) *FriendshipSvc {
	return &FriendshipSvc{accounts: accounts, requests: requests, messages: messages, audit: auditOrNoop(audit)}
}

// SendRequest records a pending request from actor to toID. At most one
// request exists per pair of accounts: a repeat in either direction is a
// Conflict and changes nothing.
func (s *FriendshipSvc) SendRequest(ctx context.Context, actor auth.Principal, toID int) (models.FriendshipRequest, error) {
	ctx, span := telemetry.StartSpan(ctx, "FriendshipService.SendRequest",
		attribute.Int("actor.id", actor.ID), attribute.Int("to.id", toID))
	defer span.End()

	if err := requirePrincipal(actor); err != nil {
		return models.FriendshipRequest{}, err
	}
	if _, err := s.accounts.GetByID(ctx, toID); err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return models.FriendshipRequest{}, apperrors.NewNotFoundError("user not found")
		}
		return models.FriendshipRequest{}, fmt.Errorf("load recipient: %w", err)
	}
	if actor.ID == toID {
		observability.IncFriendRequest("rejected")
		return models.FriendshipRequest{}, apperrors.NewValidationError("you cannot send a friend request to yourself")
	}

	req, created, err := s.requests.CreateRequestIfAbsent(ctx, actor.ID, toID)
	if errors.Is(err, repositories.ErrRequestExists) {
		observability.IncFriendRequest("rejected")
		return models.FriendshipRequest{}, apperrors.NewConflictError("friend request already sent")
	}
	if err != nil {
		return models.FriendshipRequest{}, fmt.Errorf("create friend request: %w", err)
	}
	if !created {
		observability.IncFriendRequest("rejected")
		return req, apperrors.NewConflictError(existingRequestMessage(req, actor.ID))
	}

	observability.IncFriendRequest("sent")
	logger.Info().Int("request_id", req.ID).Int("from", actor.ID).Int("to", toID).Msg("friend request sent")
	s.audit.Emit(ctx, telemetry.EventFriendRequestSent, actor.ID, map[string]any{"request_id": req.ID, "to_user_id": toID})
	return req, nil
}

func existingRequestMessage(req models.FriendshipRequest, actorID int) string {
	switch {
	case req.IsApproved:
		return "you are already friends"
	case req.FromUserID == actorID:
		return "friend request already sent"
	default:
		return "this user already sent you a friend request; approve it instead"
	}
}

// Approve marks a request addressed to actor as approved. Requests that do
// not exist or belong to someone else are reported as NotFound. Approving
// twice is a no-op.
func (s *FriendshipSvc) Approve(ctx context.Context, actor auth.Principal, requestID int) (models.FriendshipRequest, error) {
	ctx, span := telemetry.StartSpan(ctx, "FriendshipService.Approve",
		attribute.Int("actor.id", actor.ID), attribute.Int("request.id", requestID))
	defer span.End()

	if err := requirePrincipal(actor); err != nil {
		return models.FriendshipRequest{}, err
	}

	req, err := s.requests.GetRequest(ctx, requestID)
	if errors.Is(err, repositories.ErrRequestNotFound) || (err == nil && req.ToUserID != actor.ID) {
		return models.FriendshipRequest{}, apperrors.NewNotFoundError("friend request not found")
	}
	if err != nil {
		return models.FriendshipRequest{}, fmt.Errorf("load friend request: %w", err)
	}
	if req.IsApproved {
		return req, nil
	}

	req, err = s.requests.Approve(ctx, requestID, actor.ID)
	if errors.Is(err, repositories.ErrRequestNotFound) {
		// approved concurrently since the read above
		return s.requests.GetRequest(ctx, requestID)
	}
	if err != nil {
		return models.FriendshipRequest{}, fmt.Errorf("approve friend request: %w", err)
	}

	observability.IncFriendRequest("approved")
	logger.Info().Int("request_id", req.ID).Int("approver", actor.ID).Msg("friend request approved")
	s.audit.Emit(ctx, telemetry.EventFriendRequestApproved, actor.ID, map[string]any{"request_id": req.ID, "from_user_id": req.FromUserID})
	return req, nil
}

func (s *FriendshipSvc) IsFriend(ctx context.Context, a, b int) (bool, error) {
	if a == b {
		return false, nil
	}
	return s.requests.AreFriends(ctx, a, b)
}

func (s *FriendshipSvc) FriendsOf(ctx context.Context, actor auth.Principal) ([]models.AccountSummary, error) {
	if err := requirePrincipal(actor); err != nil {
		return nil, err
	}
	return s.requests.ListFriends(ctx, actor.ID)
}

func (s *FriendshipSvc) PendingIncoming(ctx context.Context, actor auth.Principal) ([]models.FriendshipRequest, error) {
	if err := requirePrincipal(actor); err != nil {
		return nil, err
	}
	return s.requests.ListPendingIncoming(ctx, actor.ID)
}

// FriendsWithUnread lists actor's friends with the number of unread messages
// each one has sent to actor.
func (s *FriendshipSvc) FriendsWithUnread(ctx context.Context, actor auth.Principal) ([]models.FriendWithUnread, error) {
	friends, err := s.FriendsOf(ctx, actor)
	if err != nil {
		return nil, err
	}
	counts, err := s.messages.CountUnreadBySender(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("count unread: %w", err)
	}

	out := make([]models.FriendWithUnread, 0, len(friends))
	for _, f := range friends {
		out = append(out, models.FriendWithUnread{AccountSummary: f, UnreadCount: counts[f.ID]})
	}
	return out, nil
}
