package session

import (
	"context"
	"sync"
)

var (
	defaultSession *Session
	defaultOnce    sync.Once
)

// Default returns the process-wide session.
func Default() *Session {
	defaultOnce.Do(func() {
		defaultSession = New()
	})
	return defaultSession
}

// Create logs user in on the process-wide session.
func Create(ctx context.Context, user User) error {
	return Default().Create(ctx, user)
}

// CurrentUser returns the user of the process-wide session.
func CurrentUser() User {
	return Default().User()
}
