package sessions

import (
	"sync"
	"time"

	"doclearn-backend/internal/shared/telemetry"
)

// Service issues and authenticates session tokens and owns per-user idle
// expiry. Tokens issued before a user's last revocation are rejected, so an
// idle sign-out invalidates outstanding tokens without server-side sessions.
type Service struct {
	issuer  *TokenIssuer
	tracker *Tracker

	mu        sync.Mutex
	revokedAt map[string]time.Time
}

// New builds a session service with the given signing secret and idle TTL.
func New(secret, env string, idleTTL time.Duration) (*Service, error) {
	issuer, err := NewTokenIssuer(secret, env, 0)
	if err != nil {
		return nil, err
	}
	if idleTTL <= 0 {
		idleTTL = 30 * time.Minute
	}
	s := &Service{
		issuer:    issuer,
		revokedAt: make(map[string]time.Time),
	}
	s.tracker = NewTracker(idleTTL, s.expire)
	return s, nil
}

// Issue signs a fresh token and arms the user's idle timer.
func (s *Service) Issue(userID, email, name string) (string, error) {
	token, err := s.issuer.Issue(userID, email, name)
	if err != nil {
		return "", err
	}
	s.tracker.Touch(userID)
	return token, nil
}

// Authenticate verifies a token, rejects revoked sessions, and counts the
// request as activity.
func (s *Service) Authenticate(raw string) (Claims, error) {
	claims, err := s.issuer.Verify(raw)
	if err != nil {
		return Claims{}, err
	}
	s.mu.Lock()
	revoked, ok := s.revokedAt[claims.Subject]
	s.mu.Unlock()
	if ok && claims.IssuedAt != nil && !claims.IssuedAt.Time.After(revoked) {
		return Claims{}, ErrInvalidToken
	}
	s.tracker.Touch(claims.Subject)
	return claims, nil
}

// Logout revokes the user's outstanding tokens and tears the timer down.
func (s *Service) Logout(userID string) {
	s.tracker.Signout(userID)
	s.revoke(userID)
}

func (s *Service) expire(userID string) {
	s.revoke(userID)
	telemetry.Info("session.idle_expired", map[string]any{"user_id": userID})
}

func (s *Service) revoke(userID string) {
	s.mu.Lock()
	s.revokedAt[userID] = time.Now().UTC()
	s.mu.Unlock()
}
