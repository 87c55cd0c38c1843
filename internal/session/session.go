// Package session keeps server-side login sessions.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hospital-gin/internal/models"

	"github.com/google/uuid"
)

// ErrNoSession is returned for unknown, expired or destroyed sessions.
var ErrNoSession = errors.New("no active session")

// Identity is what a successful login establishes.
type Identity struct {
	UserID    int         `json:"user_id"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
}

// Session is an authenticated identity bound to an opaque id.
type Session struct {
	ID string `json:"id"`
	Identity
	CreatedAt time.Time `json:"created_at"`
	LastSeen  time.Time `json:"last_seen"`
	// RotatedTo marks a retired id that still forwards to its successor.
	RotatedTo string `json:"rotated_to,omitempty"`
}

// RotationGrace is how long a rotated-away id keeps resolving, so requests
// already in flight with the old cookie are not logged out.
const RotationGrace = 30 * time.Second

// Store persists sessions until their ttl runs out.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Put(ctx context.Context, s *Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

// Manager applies the idle timeout and id rotation on top of a Store.
type Manager struct {
	store       Store
	idleTimeout time.Duration
	rotateEvery time.Duration
	now         func() time.Time
}

func NewManager(store Store, idleTimeout, rotateEvery time.Duration) *Manager {
	return &Manager{store: store, idleTimeout: idleTimeout, rotateEvery: rotateEvery, now: time.Now}
}

// IdleTimeout is how long a session survives without requests.
func (m *Manager) IdleTimeout() time.Duration { return m.idleTimeout }

// Create starts a session for ident.
func (m *Manager) Create(ctx context.Context, ident Identity) (*Session, error) {
	now := m.now()
	s := &Session{ID: uuid.NewString(), Identity: ident, CreatedAt: now, LastSeen: now}
	if err := m.store.Put(ctx, s, m.idleTimeout); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return s, nil
}

// Resolve returns the live session for id and refreshes its idle deadline.
// When the session is older than the rotation interval it is moved to a new
// id and the old id forwards to it for RotationGrace; callers must compare
// the returned ID with the one they sent.
func (m *Manager) Resolve(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrNoSession
	}
	s, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.RotatedTo != "" {
		id = s.RotatedTo
		if s, err = m.store.Get(ctx, id); err != nil {
			return nil, err
		}
	}
	now := m.now()
	if now.Sub(s.LastSeen) > m.idleTimeout {
		_ = m.store.Delete(ctx, id)
		return nil, ErrNoSession
	}
	s.LastSeen = now

	if now.Sub(s.CreatedAt) > m.rotateEvery {
		s.ID = uuid.NewString()
		s.CreatedAt = now
		if err := m.store.Put(ctx, s, m.idleTimeout); err != nil {
			return nil, fmt.Errorf("rotate session: %w", err)
		}
		forward := &Session{ID: id, RotatedTo: s.ID, CreatedAt: now, LastSeen: now}
		if err := m.store.Put(ctx, forward, RotationGrace); err != nil {
			return nil, fmt.Errorf("rotate session: %w", err)
		}
		return s, nil
	}

	if err := m.store.Put(ctx, s, m.idleTimeout); err != nil {
		return nil, fmt.Errorf("touch session: %w", err)
	}
	return s, nil
}

// Destroy ends the session. A retired id also ends the session it forwards
// to. Unknown ids are not an error.
func (m *Manager) Destroy(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	s, err := m.store.Get(ctx, id)
	if err != nil && !errors.Is(err, ErrNoSession) {
		return err
	}
	if err == nil && s.RotatedTo != "" {
		if err := m.store.Delete(ctx, s.RotatedTo); err != nil {
			return err
		}
	}
	return m.store.Delete(ctx, id)
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session stored by NewContext, if any.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}
