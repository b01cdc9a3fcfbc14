package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/fwtracker/backend/internal/domain"
	"github.com/fwtracker/backend/internal/repository"
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9_]{3,30}$`)

// CredentialsRequest carries a username/password pair for register and login.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionInfo is an established session handed back to the HTTP layer,
// which turns it into a cookie.
type SessionInfo struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// AuthService implements registration, login and session resolution.
type AuthService interface {
	Register(ctx context.Context, req CredentialsRequest) (*SessionInfo, error)
	Login(ctx context.Context, req CredentialsRequest) (*SessionInfo, error)
	Logout(ctx context.Context, token string) error
	// CurrentUser resolves a session token to its user, failing with
	// ErrUnauthorized for unknown or expired sessions.
	CurrentUser(ctx context.Context, token string) (*domain.User, error)
}

type authService struct {
	users      repository.UserRepository
	sessionTTL time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(users repository.UserRepository, sessionTTL time.Duration) AuthService {
	return &authService{users: users, sessionTTL: sessionTTL}
}

func (s *authService) Register(ctx context.Context, req CredentialsRequest) (*SessionInfo, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if !usernamePattern.MatchString(username) {
		return nil, fmt.Errorf("%w: username must be 3-30 chars (letters, numbers, underscore)", ErrValidation)
	}
	if len(req.Password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}
	if len(req.Password) > 128 {
		return nil, fmt.Errorf("%w: password too long", ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{Username: username, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: username already taken", ErrConflict)
		}
		return nil, err
	}
	return s.establishSession(ctx, user)
}

func (s *authService) Login(ctx context.Context, req CredentialsRequest) (*SessionInfo, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		// Same response for unknown user and wrong password.
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	return s.establishSession(ctx, user)
}

func (s *authService) establishSession(ctx context.Context, user *domain.User) (*SessionInfo, error) {
	session := &domain.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.users.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return &SessionInfo{Token: session.Token, ExpiresAt: session.ExpiresAt, User: user}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.users.DeleteSession(ctx, token)
}

func (s *authService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: no session", ErrUnauthorized)
	}
	session, err := s.users.FindSession(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid session", ErrUnauthorized)
		}
		return nil, err
	}
	if time.Now().After(session.ExpiresAt) {
		_ = s.users.DeleteSession(ctx, token)
		return nil, fmt.Errorf("%w: session expired", ErrUnauthorized)
	}
	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid session", ErrUnauthorized)
	}
	return user, nil
}
