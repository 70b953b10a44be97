package services

import (
	"context"
	"strings"
	"time"

	"social-service/internal/apperrors"
	"social-service/internal/auth"
)

// AuditEmitter records completed writes. *telemetry.AuditEmitter satisfies it.
type AuditEmitter interface {
	Emit(ctx context.Context, eventType string, actorID int, payload map[string]any)
}

type noopAudit struct{}

func (noopAudit) Emit(context.Context, string, int, map[string]any) {}

func auditOrNoop(a AuditEmitter) AuditEmitter {
	if a == nil {
		return noopAudit{}
	}
	return a
}

// Clock returns the current time.
type Clock func() time.Time

func clockOrNow(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}

func requirePrincipal(p auth.Principal) error {
	if p.IsZero() {
		return apperrors.NewForbiddenError("authentication required")
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
