package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"social-service/internal/apperrors"
	"social-service/internal/middleware"
	"social-service/internal/services"
)

type FriendHandler struct {
	friends services.FriendshipService
}

func NewFriendHandler(friends services.FriendshipService) *FriendHandler {
	return &FriendHandler{friends: friends}
}

// SendRequest sends a friend request. Requests to oneself and repeats are
// reported informationally and change nothing.
func (h *FriendHandler) SendRequest(c *gin.Context) {
	toID, ok := intParam(c, "userId", "user id")
	if !ok {
		return
	}

	req, err := h.friends.SendRequest(c.Request.Context(), middleware.PrincipalFrom(c), toID)
	if errors.Is(err, apperrors.ErrValidationFailed) {
		c.JSON(http.StatusOK, gin.H{"message": apperrors.Message(err, "nothing changed")})
		return
	}
	if err != nil {
		respondError(c, err, "/users")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"request": req, "message": "friend request sent to " + req.ToUsername})
}

func (h *FriendHandler) ListRequests(c *gin.Context) {
	reqs, err := h.friends.PendingIncoming(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		respondError(c, err, "/")
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": reqs})
}

func (h *FriendHandler) Approve(c *gin.Context) {
	requestID, ok := intParam(c, "requestId", "request id")
	if !ok {
		return
	}

	req, err := h.friends.Approve(c.Request.Context(), middleware.PrincipalFrom(c), requestID)
	if err != nil {
		respondError(c, err, "/friend_requests")
		return
	}
	c.JSON(http.StatusOK, gin.H{"request": req, "message": "approved friend request from " + req.FromUsername})
}

// ListFriends lists mutual friends with the unread count from each.
func (h *FriendHandler) ListFriends(c *gin.Context) {
	friends, err := h.friends.FriendsWithUnread(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		respondError(c, err, "/")
		return
	}
	c.JSON(http.StatusOK, gin.H{"friends": friends})
}
