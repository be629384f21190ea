package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/goatkit/goatsession/internal/apierrors"
	"github.com/goatkit/goatsession/internal/guest"
	"github.com/goatkit/goatsession/internal/session"
)

// SessionView is the wire form of a session, shared by the HTTP API and the CLI.
type SessionView struct {
	SessionID string    `json:"session_id" yaml:"session_id"`
	User      string    `json:"user" yaml:"user"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// NewSessionView renders snap. The user field is empty when nobody is logged in.
func NewSessionView(snap session.Snapshot) SessionView {
	return SessionView{
		SessionID: snap.ID,
		User:      session.Describe(snap.User),
		CreatedAt: snap.CreatedAt,
	}
}

type createSessionRequest struct {
	User string `json:"user" binding:"required"`
}

// SessionHandler serves /api/session against a single Session.
type SessionHandler struct {
	session *session.Session
	logger  *log.Logger
	newUser func(name string) session.User
}

// NewSessionHandler returns a handler that logs guest users in on sess.
func NewSessionHandler(sess *session.Session, logger *log.Logger) *SessionHandler {
	if logger == nil {
		logger = log.New(log.Writer(), "[API] ", log.LstdFlags)
	}
	return &SessionHandler{
		session: sess,
		logger:  logger,
		newUser: func(name string) session.User { return guest.New(name, logger) },
	}
}

// Create handles POST /api/session.
func (h *SessionHandler) Create(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			apierrors.ErrorWithMessage(c, apierrors.CodeValidationFailed, verrs.Error())
			return
		}
		apierrors.Error(c, apierrors.CodeInvalidRequest)
		return
	}

	err := h.session.Create(c.Request.Context(), h.newUser(req.User))
	switch {
	case err == nil:
	case errors.Is(err, context.DeadlineExceeded):
		h.logger.Printf("login for %q timed out: %v", req.User, err)
		apierrors.Error(c, CodeLoginTimeout)
		return
	case errors.Is(err, session.ErrLoginFailed):
		apierrors.ErrorWithMessage(c, CodeLoginFailed, err.Error())
		return
	default:
		h.logger.Printf("create session for %q: %v", req.User, err)
		apierrors.Error(c, apierrors.CodeInternalError)
		return
	}

	c.JSON(http.StatusCreated, NewSessionView(h.session.Snapshot()))
}

// Get handles GET /api/session.
func (h *SessionHandler) Get(c *gin.Context) {
	snap := h.session.Snapshot()
	if snap.User == nil {
		apierrors.Error(c, CodeNoUser)
		return
	}
	c.JSON(http.StatusOK, NewSessionView(snap))
}

// Delete handles DELETE /api/session.
func (h *SessionHandler) Delete(c *gin.Context) {
	h.session.Clear()
	c.JSON(http.StatusOK, gin.H{"success": true})
}
