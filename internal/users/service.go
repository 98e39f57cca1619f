package users

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"doclearn-backend/internal/sessions"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrEmailExists       = errors.New("email already registered")
	ErrInvalidCredential = errors.New("invalid email or password")
)

// Service handles account registration and credential login. Session tokens
// come from the sessions service so logout and idle expiry apply uniformly.
type Service struct {
	Repo     Repo
	Sessions *sessions.Service
}

// NewService constructs a Service.
func NewService(repo Repo, sess *sessions.Service) *Service {
	return &Service{Repo: repo, Sessions: sess}
}

// AuthResult is a logged-in identity with its session token.
type AuthResult struct {
	Token string
	User  User
}

// Register creates an account and logs it in.
func (s *Service) Register(ctx context.Context, email, name, password string) (AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	name = strings.TrimSpace(name)
	password = strings.TrimSpace(password)

	if email == "" || password == "" || len(password) < 8 || !strings.Contains(email, "@") {
		return AuthResult{}, ErrInvalidInput
	}

	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return AuthResult{}, ErrEmailExists
	} else if !errors.Is(err, ErrNotFound) {
		return AuthResult{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, err
	}

	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return AuthResult{}, err
	}

	token, err := s.Sessions.Issue(user.ID, user.Email, user.Name)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: token, User: user}, nil
}

// Login verifies credentials and issues a session token.
func (s *Service) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return AuthResult{}, ErrInvalidInput
	}

	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return AuthResult{}, ErrInvalidCredential
		}
		return AuthResult{}, err
	}
	if user.PasswordHash == "" {
		return AuthResult{}, ErrInvalidCredential
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return AuthResult{}, ErrInvalidCredential
	}

	token, err := s.Sessions.Issue(user.ID, user.Email, user.Name)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: token, User: user}, nil
}

// Logout revokes the user's outstanding session tokens.
func (s *Service) Logout(userID string) {
	s.Sessions.Logout(userID)
}

// UpsertFromAuth persists an externally-authenticated identity (OAuth).
func (s *Service) UpsertFromAuth(ctx context.Context, user User) error {
	if strings.TrimSpace(user.ID) == "" || strings.TrimSpace(user.Email) == "" {
		return ErrInvalidInput
	}
	return s.Repo.Upsert(ctx, user)
}

// GetByID fetches a user profile.
func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if strings.TrimSpace(userID) == "" {
		return User{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID)
}
