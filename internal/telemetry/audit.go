package telemetry

import (
	"context"
	"time"

	"social-service/internal/logger"
)

// Publisher delivers a serialized event under a routing key.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
	Close() error
}

// Audit event types.
const (
	EventAccountCreated        = "account.created"
	EventFriendRequestSent     = "friend_request.sent"
	EventFriendRequestApproved = "friend_request.approved"
	EventMessageSent           = "message.sent"
	EventMessageEdited         = "message.edited"
	EventMessageDeleted        = "message.deleted"
	EventConversationRead      = "conversation.read"
	EventPostCreated           = "post.created"
	EventPostUpdated           = "post.updated"
	EventPostDeleted           = "post.deleted"
	EventEventCreated          = "event.created"
	EventEventUpdated          = "event.updated"
	EventEventDeleted          = "event.deleted"
)

// AuditEmitter publishes audit envelopes for completed domain writes.
type AuditEmitter struct {
	publisher   Publisher
	routingKey  string
	service     string
	environment string
	now         func() time.Time
}

type AuditEnvelope struct {
	SchemaVersion int            `json:"schema_version"`
	EventType     string         `json:"event_type"`
	OccurredAt    string         `json:"occurred_at"`
	Service       string         `json:"service"`
	Environment   string         `json:"environment"`
	RequestID     string         `json:"request_id,omitempty"`
	TraceID       string         `json:"trace_id,omitempty"`
	ActorID       int            `json:"actor_id"`
	Payload       map[string]any `json:"payload,omitempty"`
}

func NewAuditEmitter(publisher Publisher, routingKey, service, environment string) *AuditEmitter {
	return &AuditEmitter{
		publisher:   publisher,
		routingKey:  routingKey,
		service:     service,
		environment: environment,
		now:         time.Now,
	}
}

// Emit publishes one event. Failures are logged and never returned: an audit
// outage must not fail the write that already committed.
func (e *AuditEmitter) Emit(ctx context.Context, eventType string, actorID int, payload map[string]any) {
	if e == nil || e.publisher == nil {
		return
	}

	envelope := AuditEnvelope{
		SchemaVersion: 1,
		EventType:     eventType,
		OccurredAt:    e.now().UTC().Format(time.RFC3339Nano),
		Service:       e.service,
		Environment:   e.environment,
		RequestID:     RequestIDFromContext(ctx),
		TraceID:       TraceIDFromContext(ctx),
		ActorID:       actorID,
		Payload:       payload,
	}

	if err := e.publisher.Publish(ctx, e.routingKey+"."+eventType, envelope); err != nil {
		logger.Warn().Err(err).Str("event_type", eventType).Str("request_id", envelope.RequestID).Msg("audit publish failed")
		return
	}
	logger.Debug().Str("event_type", eventType).Int("actor_id", actorID).Msg("audit emitted")
}
