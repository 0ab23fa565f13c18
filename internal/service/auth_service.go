package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/booksfrog/booksfrog/internal/auth"
	"github.com/booksfrog/booksfrog/internal/config"
	"github.com/booksfrog/booksfrog/internal/domain"
	"github.com/booksfrog/booksfrog/internal/events"
	"github.com/booksfrog/booksfrog/internal/repository"
	apperrors "github.com/booksfrog/booksfrog/pkg/util"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	ledger     *LedgerService
	dispatcher events.Dispatcher
	tokenMgr   *auth.TokenManager
	bcryptCost int
	starting   int
}

// AuthDependencies encapsulates collaborator requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Ledger     *LedgerService
	Dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		ledger:     deps.Ledger,
		dispatcher: deps.Dispatcher,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLHours),
		bcryptCost: cfg.Auth.BcryptCost,
		starting:   cfg.Ledger.StartingBalance,
	}
}

// RegisterInput carries registration fields; Premium and ProfilePicture are
// optional.
type RegisterInput struct {
	Username       string
	Email          string
	Password       string
	Premium        bool
	ProfilePicture []byte
}

// LoginResult bundles the session response for a successful login.
type LoginResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
	Balance   int
}

// Register creates a new user and its token account.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("username, email and password are mandatory", nil)
	}

	taken, err := s.users.UsernameTaken(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if !taken {
		if taken, err = s.users.EmailTaken(ctx, input.Email); err != nil {
			return nil, err
		}
	}
	if taken {
		return nil, apperrors.NewConflict("username or email already taken", nil)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:       input.Username,
		Email:          input.Email,
		PasswordHash:   hash,
		Premium:        input.Premium,
		ProfilePicture: input.ProfilePicture,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.ledger.InitializeAccount(ctx, user.ID); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventUserRegistered,
			UserID:    user.ID,
			Timestamp: time.Now(),
			Payload: events.UserRegisteredPayload{
				Username:        user.Username,
				Premium:         user.Premium,
				StartingBalance: s.starting,
			},
		})
	}

	return user, nil
}

// Login authenticates a user and issues a session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokenMgr.Issue(user.Username)
	if err != nil {
		return nil, err
	}

	balance, err := s.ledger.BalanceOf(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: user, Token: token, ExpiresAt: expiresAt, Balance: balance}, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
