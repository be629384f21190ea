// Package sessiontest provides session.User test doubles.
//
// StubUser is a minimal, content-free implementation that satisfies the
// interface without observable effects. MockUser and SpyUser record Login
// invocations so tests can assert on them: MockUser through testify's mock
// package, SpyUser through plain accessors.
package sessiontest

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/goatkit/goatsession/internal/session"
)

var (
	_ session.User = (*StubUser)(nil)
	_ session.User = (*MockUser)(nil)
	_ session.User = (*SpyUser)(nil)
)

// StubUser does nothing on Login.
type StubUser struct {
	// Name only distinguishes stubs in test output.
	Name string
}

// Login implements session.User.
func (s *StubUser) Login(context.Context) error { return nil }

// MockUser records Login calls via testify's mock.Mock.
type MockUser struct {
	mock.Mock
}

// NewMockUser returns a MockUser whose Login returns err.
func NewMockUser(err error) *MockUser {
	m := &MockUser{}
	m.On("Login", mock.Anything).Return(err)
	return m
}

// Login implements session.User.
func (m *MockUser) Login(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// SpyUser counts Login calls and keeps the last context it saw.
type SpyUser struct {
	// Err is returned from every Login call.
	Err error

	mu      sync.Mutex
	calls   int
	lastCtx context.Context
}

// Login implements session.User.
func (s *SpyUser) Login(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.lastCtx = ctx
	return s.Err
}

// Calls returns how many times Login ran.
func (s *SpyUser) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Called reports whether Login ran at least once.
func (s *SpyUser) Called() bool {
	return s.Calls() > 0
}

// LastContext returns the context passed to the most recent Login call.
func (s *SpyUser) LastContext() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastCtx
}

// BlockingUser waits in Login until its context is done.
type BlockingUser struct{}

// Login implements session.User.
func (BlockingUser) Login(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}
