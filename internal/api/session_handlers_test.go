package api

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goatkit/goatsession/internal/apierrors"
	"github.com/goatkit/goatsession/internal/guest"
	"github.com/goatkit/goatsession/internal/session"
	"github.com/goatkit/goatsession/internal/session/sessiontest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var discard = log.New(io.Discard, "", 0)

func newTestSession(opts ...session.Option) *session.Session {
	base := []session.Option{
		session.WithLogger(discard),
		session.WithMetrics(nil),
	}
	return session.New(append(base, opts...)...)
}

func newHandlerRouter(h *SessionHandler) *gin.Engine {
	r := gin.New()
	r.POST("/api/session", h.Create)
	r.GET("/api/session", h.Get)
	r.DELETE("/api/session", h.Delete)
	return r
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) apierrors.APIError {
	t.Helper()
	var resp struct {
		Error apierrors.APIError `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func TestSessionHandler_Create(t *testing.T) {
	t.Run("CreatesGuestSession", func(t *testing.T) {
		at := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)
		sess := newTestSession(
			session.WithClock(func() time.Time { return at }),
			session.WithIDGenerator(func() string { return "sess-1" }),
		)
		r := newHandlerRouter(NewSessionHandler(sess, discard))

		w := doJSON(r, http.MethodPost, "/api/session", `{"user":"alice"}`)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var view SessionView
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
		assert.Equal(t, "sess-1", view.SessionID)
		assert.Equal(t, "alice", view.User)
		assert.True(t, at.Equal(view.CreatedAt))

		u, ok := sess.User().(*guest.User)
		require.True(t, ok)
		assert.Equal(t, "alice", u.Name())
		assert.False(t, u.LoggedInAt().IsZero())
	})

	t.Run("StoresTheUserItCreated", func(t *testing.T) {
		sess := newTestSession()
		h := NewSessionHandler(sess, discard)
		spy := &sessiontest.SpyUser{}
		h.newUser = func(string) session.User { return spy }

		w := doJSON(newHandlerRouter(h), http.MethodPost, "/api/session", `{"user":"spy"}`)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Same(t, spy, sess.User())
		assert.Equal(t, 1, spy.Calls())
	})

	t.Run("MalformedBody", func(t *testing.T) {
		r := newHandlerRouter(NewSessionHandler(newTestSession(), discard))

		w := doJSON(r, http.MethodPost, "/api/session", `{"user":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apierrors.CodeInvalidRequest, decodeError(t, w).Code)
	})

	t.Run("MissingUser", func(t *testing.T) {
		r := newHandlerRouter(NewSessionHandler(newTestSession(), discard))

		w := doJSON(r, http.MethodPost, "/api/session", `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		apiErr := decodeError(t, w)
		assert.Equal(t, apierrors.CodeValidationFailed, apiErr.Code)
		assert.Contains(t, apiErr.Message, "User")
	})

	t.Run("BlankNameFailsLogin", func(t *testing.T) {
		sess := newTestSession()
		r := newHandlerRouter(NewSessionHandler(sess, discard))

		w := doJSON(r, http.MethodPost, "/api/session", `{"user":"   "}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		apiErr := decodeError(t, w)
		assert.Equal(t, CodeLoginFailed, apiErr.Code)
		assert.Contains(t, apiErr.Message, guest.ErrEmptyName.Error())
		assert.Nil(t, sess.User())
	})

	t.Run("LoginErrorKeepsPreviousUser", func(t *testing.T) {
		sess := newTestSession()
		prev := &sessiontest.StubUser{Name: "prev"}
		require.NoError(t, sess.Create(t.Context(), prev))

		h := NewSessionHandler(sess, discard)
		h.newUser = func(string) session.User { return &sessiontest.SpyUser{Err: errors.New("denied")} }

		w := doJSON(newHandlerRouter(h), http.MethodPost, "/api/session", `{"user":"bob"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Same(t, prev, sess.User())
	})

	t.Run("LoginTimeout", func(t *testing.T) {
		sess := newTestSession(session.WithLoginTimeout(10 * time.Millisecond))
		h := NewSessionHandler(sess, discard)
		h.newUser = func(string) session.User { return sessiontest.BlockingUser{} }

		w := doJSON(newHandlerRouter(h), http.MethodPost, "/api/session", `{"user":"slow"}`)

		assert.Equal(t, http.StatusGatewayTimeout, w.Code)
		assert.Equal(t, CodeLoginTimeout, decodeError(t, w).Code)
		assert.Nil(t, sess.User())
	})
}

func TestSessionHandler_GetAndDelete(t *testing.T) {
	sess := newTestSession(session.WithIDGenerator(func() string { return "sess-2" }))
	r := newHandlerRouter(NewSessionHandler(sess, discard))

	w := doJSON(r, http.MethodGet, "/api/session", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, CodeNoUser, decodeError(t, w).Code)

	require.NoError(t, sess.Create(t.Context(), guest.New("carol", discard)))

	w = doJSON(r, http.MethodGet, "/api/session", "")
	require.Equal(t, http.StatusOK, w.Code)
	var view SessionView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "sess-2", view.SessionID)
	assert.Equal(t, "carol", view.User)

	w = doJSON(r, http.MethodDelete, "/api/session", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, sess.User())

	w = doJSON(r, http.MethodGet, "/api/session", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNewSessionView(t *testing.T) {
	assert.Equal(t, SessionView{}, NewSessionView(session.Snapshot{}))

	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	view := NewSessionView(session.Snapshot{User: &sessiontest.StubUser{}, ID: "x", CreatedAt: at})
	assert.Equal(t, "*sessiontest.StubUser", view.User)
	assert.Equal(t, "x", view.SessionID)
	assert.Equal(t, at, view.CreatedAt)
}

func TestSessionErrorsRegistered(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{CodeNoUser, http.StatusNotFound},
		{CodeLoginFailed, http.StatusUnprocessableEntity},
		{CodeLoginTimeout, http.StatusGatewayTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			_, ok := apierrors.Registry.Get(tt.code)
			assert.True(t, ok)
			assert.Equal(t, tt.status, apierrors.Registry.HTTPStatus(tt.code))
		})
	}
	assert.Len(t, apierrors.Registry.ByNamespace("session"), 3)
}
