package api

import (
	"net/http"

	"github.com/goatkit/goatsession/internal/apierrors"
)

// Session error codes, registered under the "session" namespace.
const (
	CodeNoUser       = "session:no_user"
	CodeLoginFailed  = "session:login_failed"
	CodeLoginTimeout = "session:login_timeout"
)

type sessionErrors struct{}

func (sessionErrors) EnumerateErrors() []apierrors.ErrorCode {
	return []apierrors.ErrorCode{
		{Code: "no_user", Message: "No user is logged in", HTTPStatus: http.StatusNotFound},
		{Code: "login_failed", Message: "Login failed", HTTPStatus: http.StatusUnprocessableEntity},
		{Code: "login_timeout", Message: "Login timed out", HTTPStatus: http.StatusGatewayTimeout},
	}
}

func init() {
	apierrors.Registry.RegisterNamespace("session", sessionErrors{})
}
