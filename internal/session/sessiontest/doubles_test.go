package sessiontest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStubUser(t *testing.T) {
	stub := &StubUser{Name: "stub"}
	assert.NoError(t, stub.Login(context.Background()))
}

func TestMockUser(t *testing.T) {
	t.Run("ReturnsConfiguredError", func(t *testing.T) {
		cause := errors.New("refused")
		m := NewMockUser(cause)

		err := m.Login(context.Background())
		assert.ErrorIs(t, err, cause)
		m.AssertNumberOfCalls(t, "Login", 1)
	})

	t.Run("NilError", func(t *testing.T) {
		m := NewMockUser(nil)

		require.NoError(t, m.Login(context.Background()))
		require.NoError(t, m.Login(context.Background()))
		m.AssertCalled(t, "Login", mock.Anything)
		m.AssertNumberOfCalls(t, "Login", 2)
	})

	t.Run("NotCalled", func(t *testing.T) {
		m := NewMockUser(nil)
		m.AssertNotCalled(t, "Login", mock.Anything)
	})
}

func TestSpyUser(t *testing.T) {
	t.Run("RecordsCalls", func(t *testing.T) {
		spy := &SpyUser{}
		assert.False(t, spy.Called())
		assert.Nil(t, spy.LastContext())

		ctx := context.Background()
		require.NoError(t, spy.Login(ctx))
		require.NoError(t, spy.Login(ctx))

		assert.True(t, spy.Called())
		assert.Equal(t, 2, spy.Calls())
		assert.Equal(t, ctx, spy.LastContext())
	})

	t.Run("ReturnsErr", func(t *testing.T) {
		cause := errors.New("locked")
		spy := &SpyUser{Err: cause}

		assert.ErrorIs(t, spy.Login(context.Background()), cause)
		assert.Equal(t, 1, spy.Calls())
	})
}

func TestBlockingUser(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := BlockingUser{}.Login(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
