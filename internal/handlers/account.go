package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"social-service/internal/auth"
	"social-service/internal/logger"
	"social-service/internal/middleware"
	"social-service/internal/services"
)

type credentialsRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// AccountHandler serves signup, login, logout and the user directory.
type AccountHandler struct {
	accounts services.AccountService
	sessions *middleware.SessionManager
}

func NewAccountHandler(accounts services.AccountService, sessions *middleware.SessionManager) *AccountHandler {
	return &AccountHandler{accounts: accounts, sessions: sessions}
}

// CredentialsForm returns the empty signup/login form.
func (h *AccountHandler) CredentialsForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"form": gin.H{"username": "", "password": ""}})
}

func (h *AccountHandler) Signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.accounts.Signup(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err, "/signup")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"account": account.Summary(), "message": "signup complete, please log in"})
}

// Login returns an access token and also starts a cookie session.
func (h *AccountHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.accounts.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err, "/login")
		return
	}

	if h.sessions != nil {
		if err := h.sessions.Start(c.Writer, c.Request, auth.Principal{ID: res.Account.ID, Username: res.Account.Username}); err != nil {
			logger.Warn().Err(err).Int("account_id", res.Account.ID).Msg("failed to start session")
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"account":      res.Account.Summary(),
		"access_token": res.Token,
		"token_type":   "Bearer",
		"expires_at":   res.ExpiresAt,
	})
}

func (h *AccountHandler) Logout(c *gin.Context) {
	if h.sessions != nil {
		if err := h.sessions.Clear(c.Writer, c.Request); err != nil {
			logger.Warn().Err(err).Msg("failed to clear session")
		}
	}
	c.Redirect(http.StatusSeeOther, "/login")
}

// ListUsers lists every account except the caller.
func (h *AccountHandler) ListUsers(c *gin.Context) {
	users, err := h.accounts.ListOthers(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		respondError(c, err, "/")
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}
