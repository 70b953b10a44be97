package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"social-service/internal/apperrors"
	"social-service/internal/auth"
	"social-service/internal/logger"
	"social-service/internal/models"
	"social-service/internal/repositories"
	"social-service/internal/telemetry"
)

const usernameMaxLength = 150

// TokenIssuer signs access tokens for an authenticated principal.
type TokenIssuer interface {
	Issue(p auth.Principal) (string, time.Time, error)
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Account   models.Account
	Token     string
	ExpiresAt time.Time
}

type AccountService interface {
	Signup(ctx context.Context, username, password string) (models.Account, error)
	Login(ctx context.Context, username, password string) (LoginResult, error)
	Get(ctx context.Context, id int) (models.Account, error)
	ListOthers(ctx context.Context, actor auth.Principal) ([]models.AccountSummary, error)
}

type AccountSvc struct {
	accounts repositories.AccountRepository
	tokens   TokenIssuer
	audit    AuditEmitter
}

func NewAccountService(accounts repositories.AccountRepository, tokens TokenIssuer, audit AuditEmitter) *AccountSvc {
	return &AccountSvc{accounts: accounts, tokens: tokens, audit: auditOrNoop(audit)}
}

func (s *AccountSvc) Signup(ctx context.Context, username, password string) (models.Account, error) {
	ctx, span := telemetry.StartSpan(ctx, "AccountService.Signup")
	defer span.End()

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.Account{}, apperrors.NewValidationError("username and password are required")
	}
	if len(username) > usernameMaxLength {
		return models.Account{}, apperrors.NewValidationError(fmt.Sprintf("username must be at most %d characters", usernameMaxLength))
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.Account{}, fmt.Errorf("hash password: %w", err)
	}

	account, err := s.accounts.Create(ctx, username, hash)
	if errors.Is(err, repositories.ErrUsernameTaken) {
		return models.Account{}, apperrors.NewConflictError("username already taken")
	}
	if err != nil {
		return models.Account{}, fmt.Errorf("create account: %w", err)
	}

	span.SetAttributes(attribute.Int("account.id", account.ID))
	logger.Info().Int("account_id", account.ID).Str("username", account.Username).Msg("account created")
	s.audit.Emit(ctx, telemetry.EventAccountCreated, account.ID, map[string]any{"username": account.Username})
	return account, nil
}

func (s *AccountSvc) Login(ctx context.Context, username, password string) (LoginResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "AccountService.Login")
	defer span.End()

	account, err := s.accounts.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, repositories.ErrAccountNotFound) {
		return LoginResult{}, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, fmt.Errorf("load account: %w", err)
	}
	if !auth.CheckPassword(account.PasswordHash, password) {
		return LoginResult{}, apperrors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(auth.Principal{ID: account.ID, Username: account.Username})
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue token: %w", err)
	}
	return LoginResult{Account: account, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *AccountSvc) Get(ctx context.Context, id int) (models.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrAccountNotFound) {
		return models.Account{}, apperrors.NewNotFoundError("user not found")
	}
	return account, err
}

// ListOthers returns every account except the caller, ordered by username.
func (s *AccountSvc) ListOthers(ctx context.Context, actor auth.Principal) ([]models.AccountSummary, error) {
	if err := requirePrincipal(actor); err != nil {
		return nil, err
	}
	return s.accounts.ListExcept(ctx, actor.ID)
}
