package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"social-service/internal/middleware"
	"social-service/internal/services"
)

// RegisterDebugRoutes wires debug-only endpoints behind auth.
func RegisterDebugRoutes(group gin.IRoutes, emitter services.AuditEmitter, enabled bool) {
	if !enabled {
		return
	}

	group.GET("/debug/audit-test", func(c *gin.Context) {
		if emitter == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "audit emitter not configured"})
			return
		}
		p := middleware.PrincipalFrom(c)
		emitter.Emit(c.Request.Context(), "debug.audit_test", p.ID, map[string]any{"request_id": middleware.RequestIDFrom(c)})
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
