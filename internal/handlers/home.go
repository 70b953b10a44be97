package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"social-service/internal/middleware"
	"social-service/internal/services"
)

type HomeHandler struct {
	messages services.MessagingService
}

func NewHomeHandler(messages services.MessagingService) *HomeHandler {
	return &HomeHandler{messages: messages}
}

// Home reports how many unread messages the caller has.
func (h *HomeHandler) Home(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	count, err := h.messages.UnreadCount(c.Request.Context(), p)
	if err != nil {
		respondError(c, err, "/login")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": p.ID, "username": p.Username, "unread_count": count})
}
