package session

import "errors"

var (
	// ErrNilUser is returned by Create when no user is supplied.
	ErrNilUser = errors.New("session: user is required")
	// ErrLoginFailed wraps the error returned by User.Login.
	ErrLoginFailed = errors.New("session: login failed")
)
