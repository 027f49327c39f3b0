// Package auth implements the teacher session. There is no process-global
// session state: sessions live in the cache (redis in production) and are
// carried through each request explicitly.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/conjugo/quiz-service/internal/cache"
)

const (
	// SessionTTL is how long a teacher login stays valid.
	SessionTTL = 12 * time.Hour

	RoleTeacher = "teacher"

	sessionKeyPrefix = "session:"
)

var (
	ErrInvalidPassword = errors.New("invalid teacher password")
	ErrSessionNotFound = errors.New("session expired or unknown")
	ErrLoginDisabled   = errors.New("teacher login is not configured")
)

// Session identifies an authenticated teacher for the token's lifetime.
type Session struct {
	Token     string    `json:"token"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionService issues and resolves opaque session tokens.
type SessionService interface {
	Login(ctx context.Context, password string) (*Session, error)
	Get(ctx context.Context, token string) (*Session, error)
	Logout(ctx context.Context, token string) error
}

type sessionService struct {
	store    cache.CacheService
	password string
	now      func() time.Time
}

// NewSessionService creates a session service backed by the given cache.
// password is the shared teacher password; an empty password disables
// login entirely rather than allowing empty-string logins.
func NewSessionService(store cache.CacheService, password string) SessionService {
	return &sessionService{store: store, password: password, now: time.Now}
}

func (s *sessionService) Login(ctx context.Context, password string) (*Session, error) {
	if s.password == "" {
		return nil, ErrLoginDisabled
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) != 1 {
		return nil, ErrInvalidPassword
	}

	now := s.now()
	session := &Session{
		Token:     uuid.NewString(),
		Role:      RoleTeacher,
		CreatedAt: now,
		ExpiresAt: now.Add(SessionTTL),
	}

	if err := s.store.Set(ctx, sessionKeyPrefix+session.Token, session, SessionTTL); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return session, nil
}

func (s *sessionService) Get(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}

	var session Session
	err := s.store.Get(ctx, sessionKeyPrefix+token, &session)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	// Redis enforces the TTL itself; the memory cache relies on this check.
	if s.now().After(session.ExpiresAt) {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

func (s *sessionService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.store.Delete(ctx, sessionKeyPrefix+token)
}
