package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/jobdeck/jobdeck/internal/models"
	"gorm.io/gorm"
)

// SessionCookie is the name of the cookie carrying the opaque session id.
const SessionCookie = "jobdeck_session"

// StateCookie carries the short-lived OAuth state token across the redirect
// round-trip.
const StateCookie = "jobdeck_oauth_state"

// ErrNoSession is returned when a session id is unknown or expired.
var ErrNoSession = errors.New("session not found")

// SessionManager creates and resolves DB-backed login sessions.
type SessionManager struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewSessionManager(db *gorm.DB, ttl time.Duration) *SessionManager {
	return &SessionManager{db: db, ttl: ttl}
}

// Create opens a new session for a user and returns it.
func (m *SessionManager) Create(ctx context.Context, userID string) (*models.Session, error) {
	session := &models.Session{
		ID:        newSessionID(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(m.ttl),
	}
	if err := m.db.WithContext(ctx).Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

// Resolve looks up a session by id. Expired sessions are deleted on sight and
// reported the same way as unknown ones.
func (m *SessionManager) Resolve(ctx context.Context, id string) (*models.Session, error) {
	if id == "" {
		return nil, ErrNoSession
	}

	var session models.Session
	err := m.db.WithContext(ctx).First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}

	if session.Expired() {
		m.db.WithContext(ctx).Delete(&models.Session{}, "id = ?", id)
		return nil, ErrNoSession
	}
	return &session, nil
}

// Destroy terminates a session. Destroying an unknown id is a no-op.
func (m *SessionManager) Destroy(ctx context.Context, id string) error {
	return m.db.WithContext(ctx).Delete(&models.Session{}, "id = ?", id).Error
}

// TTL returns the configured session lifetime.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

func newSessionID() string {
	buf := make([]byte, 32)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}
