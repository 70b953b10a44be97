package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"social-service/internal/apperrors"
	"social-service/internal/logger"
	"social-service/internal/middleware"
	"social-service/internal/models"
	"social-service/internal/services"
)

type messageRequest struct {
	Message string `form:"message" json:"message"`
}

// ChatHandler serves direct messaging between the caller and a peer.
type ChatHandler struct {
	messages services.MessagingService
}

func NewChatHandler(messages services.MessagingService) *ChatHandler {
	return &ChatHandler{messages: messages}
}

func chatPath(peerID int) string {
	return "/chat/" + strconv.Itoa(peerID)
}

// View marks the peer's messages read and returns the whole conversation.
func (h *ChatHandler) View(c *gin.Context) {
	peerID, ok := intParam(c, "userId", "user id")
	if !ok {
		return
	}

	peer, msgs, err := h.messages.OpenConversation(c.Request.Context(), middleware.PrincipalFrom(c), peerID)
	if err != nil {
		respondError(c, err, "/friends")
		return
	}
	c.JSON(http.StatusOK, gin.H{"friend": peer, "messages": msgs})
}

// Post stores a message and sends the caller back to the conversation.
func (h *ChatHandler) Post(c *gin.Context) {
	peerID, ok := intParam(c, "userId", "user id")
	if !ok {
		return
	}
	var req messageRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.messages.Send(c.Request.Context(), middleware.PrincipalFrom(c), peerID, req.Message); err != nil {
		respondError(c, err, "/friends")
		return
	}
	c.Redirect(http.StatusSeeOther, chatPath(peerID))
}

// SendAsync stores a message for the polling client and answers with a status.
func (h *ChatHandler) SendAsync(c *gin.Context) {
	peerID, ok := intParam(c, "userId", "user id")
	if !ok {
		return
	}
	var req messageRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "error"})
		return
	}

	_, err := h.messages.Send(c.Request.Context(), middleware.PrincipalFrom(c), peerID, req.Message)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respondError(c, err, "/friends")
	case errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(http.StatusOK, gin.H{"status": "error"})
	default:
		logger.Error().Err(err).Int("peer_id", peerID).Str("request_id", middleware.RequestIDFrom(c)).Msg("async send failed")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error"})
	}
}

// Poll returns the peer's unread messages without marking them read.
func (h *ChatHandler) Poll(c *gin.Context) {
	peerID, ok := intParam(c, "userId", "user id")
	if !ok {
		return
	}

	unread, err := h.messages.PeekUnread(c.Request.Context(), middleware.PrincipalFrom(c), peerID)
	if err != nil {
		respondError(c, err, "/friends")
		return
	}

	out := make([]models.PolledMessage, 0, len(unread))
	for _, m := range unread {
		out = append(out, m.Polled())
	}
	c.JSON(http.StatusOK, gin.H{"messages": out})
}

func (h *ChatHandler) chatIDs(c *gin.Context) (int, int, bool) {
	peerID, ok := intParam(c, "userId", "user id")
	if !ok {
		return 0, 0, false
	}
	msgID, ok := intParam(c, "msgId", "message id")
	if !ok {
		return 0, 0, false
	}
	return peerID, msgID, true
}

// MessageForm returns the caller's own message for the edit and delete pages.
func (h *ChatHandler) MessageForm(c *gin.Context) {
	peerID, msgID, ok := h.chatIDs(c)
	if !ok {
		return
	}

	msg, err := h.messages.Get(c.Request.Context(), middleware.PrincipalFrom(c), msgID)
	if err != nil {
		respondError(c, err, chatPath(peerID))
		return
	}
	c.JSON(http.StatusOK, gin.H{"form": gin.H{"message": msg.Message}, "chat_message": msg, "friend_id": peerID})
}

func (h *ChatHandler) Edit(c *gin.Context) {
	peerID, msgID, ok := h.chatIDs(c)
	if !ok {
		return
	}
	var req messageRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.messages.Edit(c.Request.Context(), middleware.PrincipalFrom(c), msgID, req.Message)
	if err != nil {
		respondError(c, err, chatPath(peerID))
		return
	}
	c.JSON(http.StatusOK, gin.H{"chat_message": msg})
}

func (h *ChatHandler) Delete(c *gin.Context) {
	peerID, msgID, ok := h.chatIDs(c)
	if !ok {
		return
	}

	if err := h.messages.Delete(c.Request.Context(), middleware.PrincipalFrom(c), msgID); err != nil {
		respondError(c, err, chatPath(peerID))
		return
	}
	c.Status(http.StatusNoContent)
}
