package wiki

import "errors"

var (
	// ErrLoginFailed is returned when the login action does not succeed.
	ErrLoginFailed = errors.New("wiki login failed")
	// ErrEditFailed is returned when an edit action does not succeed.
	ErrEditFailed = errors.New("wiki edit failed")
	// ErrMissingCredentials is returned when username or password is empty.
	ErrMissingCredentials = errors.New("missing wiki credentials")
)
