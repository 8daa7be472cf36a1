// Package session holds the signed-in user and bearer token.
//
// Role checks on the session only decide what the console offers; the API
// enforces access.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"

	"github.com/ngmaloney/vessel-console/internal/logging"
	"github.com/ngmaloney/vessel-console/internal/models"
)

// Authenticator is the part of the API client a login needs.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context) (*models.User, error)
}

// Session is the explicit session context. The zero value is not usable;
// call New. A nil store keeps the session in memory only.
type Session struct {
	mu    sync.RWMutex
	store *Store
	token string
	user  *models.User
	now   func() time.Time
}

func New(store *Store) *Session {
	return &Session{store: store, now: time.Now}
}

// Init restores a stored session. An expired token is discarded.
func (s *Session) Init(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	token, user, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}
	if Expired(token, s.now()) {
		logging.Entry(ctx).Info("Stored session expired")
		return s.store.Clear(ctx)
	}

	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()
	return nil
}

// Login signs in, fetches the profile and persists both. On failure the
// session stays signed out.
func (s *Session) Login(ctx context.Context, auth Authenticator, email, password string) (*models.User, error) {
	token, err := auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	// Me authenticates through this session's token
	s.mu.Lock()
	s.token = token
	s.user = nil
	s.mu.Unlock()

	user, err := auth.Me(ctx)
	if err != nil {
		s.clear()
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.Save(ctx, token, user); err != nil {
			logging.Entry(ctx).WithError(err).Warn("Session not persisted")
		}
	}
	logging.Entry(ctx).WithFields(log.Fields{"user": user.Email, "role": user.Role}).Info("Signed in")
	return user, nil
}

// Teardown signs out and forgets the stored session.
func (s *Session) Teardown(ctx context.Context) error {
	s.clear()
	if s.store == nil {
		return nil
	}
	return s.store.Clear(ctx)
}

// Invalidate is called when the API rejects the token.
func (s *Session) Invalidate() {
	if s.Token() == "" {
		return
	}
	log.Warn("Session rejected by the API, signing out")
	if err := s.Teardown(context.Background()); err != nil {
		log.WithError(err).Warn("Failed to clear stored session")
	}
}

func (s *Session) clear() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the signed-in user, or nil.
func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Authenticated reports whether both token and user are present.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

// IsEmployee reports whether the signed-in user has crew access only.
func (s *Session) IsEmployee() bool {
	u := s.User()
	return u != nil && u.IsEmployee()
}

func (s *Session) CanManageUsers() bool {
	u := s.User()
	return u != nil && u.CanManageUsers()
}

// Expired reports whether token is a JWT whose exp lies before now.
// Opaque tokens and tokens without exp never expire locally.
func Expired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(now)
}
