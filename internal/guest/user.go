// Package guest provides a named session user that needs no credentials.
package guest

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"
)

// ErrEmptyName is returned by Login when the user has no name.
var ErrEmptyName = errors.New("guest: name is required")

// User is a session.User identified only by name.
type User struct {
	name   string
	logger *log.Logger
	now    func() time.Time

	mu         sync.RWMutex
	loggedInAt time.Time
}

// New creates a guest user. The name is trimmed; validation happens on Login.
func New(name string, logger *log.Logger) *User {
	if logger == nil {
		logger = log.New(log.Writer(), "[GUEST] ", log.LstdFlags)
	}
	return &User{
		name:   strings.TrimSpace(name),
		logger: logger,
		now:    time.Now,
	}
}

// Login implements session.User. A nil *User has no name and fails with
// ErrEmptyName.
func (u *User) Login(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if u == nil || u.name == "" {
		return ErrEmptyName
	}

	u.mu.Lock()
	u.loggedInAt = u.now()
	u.mu.Unlock()

	u.logger.Printf("guest %q logged in", u.name)
	return nil
}

// Name returns the trimmed name.
func (u *User) Name() string { return u.name }

// String implements fmt.Stringer.
func (u *User) String() string { return u.name }

// LoggedInAt returns when Login last succeeded, or the zero time.
func (u *User) LoggedInAt() time.Time {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.loggedInAt
}
