package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"doclearn-backend/internal/sessions"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	sess, err := sessions.New("test-secret", "dev", time.Minute)
	if err != nil {
		t.Fatalf("sessions.New: %v", err)
	}
	return NewService(NewMemoryRepo(), sess)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, "Ada@Example.com", "Ada", "hunter2secret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if reg.Token == "" {
		t.Fatalf("expected a session token on register")
	}
	if reg.User.Email != "ada@example.com" {
		t.Fatalf("expected lowercased email, got %q", reg.User.Email)
	}

	login, err := svc.Login(ctx, "ada@example.com", "hunter2secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.User.ID != reg.User.ID {
		t.Fatalf("login returned a different user")
	}
	if login.Token == "" {
		t.Fatalf("expected a session token on login")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "ada@example.com", "Ada", "hunter2secret"); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := svc.Register(ctx, "ada@example.com", "Other Ada", "anotherpassword")
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestRegisterRejectsWeakInput(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"missing email", "", "hunter2secret"},
		{"not an email", "ada.example.com", "hunter2secret"},
		{"short password", "ada@example.com", "short"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.email, "Ada", tc.password)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "ada@example.com", "Ada", "hunter2secret"); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := svc.Login(ctx, "ada@example.com", "wrong-password")
	if !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Login(context.Background(), "nobody@example.com", "hunter2secret")
	if !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential, got %v", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, "ada@example.com", "Ada", "hunter2secret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Sessions.Authenticate(reg.Token); err != nil {
		t.Fatalf("authenticate before logout: %v", err)
	}

	svc.Logout(reg.User.ID)

	if _, err := svc.Sessions.Authenticate(reg.Token); err == nil {
		t.Fatalf("expected token to be rejected after logout")
	}
}
