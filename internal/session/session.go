// Package session holds the current user of a running process.
//
// A Session associates one User reference with an identifier and a creation
// time. Create logs the user in and, on success, stores the reference itself,
// so callers can rely on identity: after Create(ctx, u) returns nil, User()
// returns exactly u.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// User is the collaborator a Session is created for. Create only rejects a nil
// interface; a typed nil pointer is passed to Login like any other value.
type User interface {
	// Login is invoked exactly once per Create, before the reference is stored.
	Login(ctx context.Context) error
}

// Session stores the current user reference. It is safe for concurrent use.
type Session struct {
	opts options

	mu        sync.RWMutex
	user      User
	id        string
	createdAt time.Time
}

// New creates an empty Session.
func New(opts ...Option) *Session {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Session{opts: o}
}

// Create logs user in and makes it the current user.
// On error the previous user, ID and creation time are left untouched.
func (s *Session) Create(ctx context.Context, user User) error {
	opts := s.options()
	if user == nil {
		opts.Metrics.recordCreate(resultNilUser)
		return ErrNilUser
	}

	loginCtx := ctx
	if opts.LoginTimeout > 0 {
		var cancel context.CancelFunc
		loginCtx, cancel = context.WithTimeout(ctx, opts.LoginTimeout)
		defer cancel()
	}

	done := opts.Metrics.timeLogin()
	err := user.Login(loginCtx)
	done()
	if err != nil {
		opts.Metrics.recordCreate(resultLoginFailed)
		if errors.Is(loginCtx.Err(), context.DeadlineExceeded) && !errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w (%w)", err, context.DeadlineExceeded)
		}
		return fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}

	id := opts.NewID()
	now := opts.Clock()

	s.mu.Lock()
	s.user = user
	s.id = id
	s.createdAt = now
	s.mu.Unlock()

	opts.Metrics.recordCreate(resultSuccess)
	opts.debugf("created session %s for %s", id, Describe(user))
	return nil
}

// User returns the current user, or nil if none has been created.
func (s *Session) User() User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// ID returns the identifier assigned by the latest successful Create.
func (s *Session) ID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}

// CreatedAt returns when the latest successful Create completed.
func (s *Session) CreatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.createdAt
}

// Snapshot is a consistent copy of a Session's state.
type Snapshot struct {
	User      User
	ID        string
	CreatedAt time.Time
}

// Snapshot returns the current user, ID and creation time read under one lock.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{User: s.user, ID: s.id, CreatedAt: s.createdAt}
}

// Clear drops the current user. Clearing an empty session is a no-op.
func (s *Session) Clear() {
	s.mu.Lock()
	id := s.id
	s.user = nil
	s.id = ""
	s.createdAt = time.Time{}
	opts := s.opts
	s.mu.Unlock()

	if id == "" {
		return
	}
	opts.Metrics.recordClear()
	opts.debugf("cleared session %s", id)
}

// Describe returns a display label for u: its String method when it has one,
// otherwise its Go type.
func Describe(u User) string {
	if u == nil {
		return ""
	}
	if str, ok := u.(fmt.Stringer); ok {
		return str.String()
	}
	return fmt.Sprintf("%T", u)
}

// Configure applies opts to an existing Session. Calls to Create already in
// flight keep the options they started with.
func (s *Session) Configure(opts ...Option) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, opt := range opts {
		opt(&s.opts)
	}
}

func (s *Session) options() options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.opts
}
