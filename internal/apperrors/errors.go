// Package apperrors declares the sentinel errors the handlers translate into
// HTTP responses. Repositories return them so callers can match with
// errors.Is regardless of the backing store.
package apperrors

import "errors"

var (
	ErrSelfFollow          = errors.New("cannot follow yourself")
	ErrAlreadyFollowing    = errors.New("already following this user")
	ErrFollowNotFound      = errors.New("follow relationship not found")
	ErrDuplicateUser       = errors.New("email or nick already in use")
	ErrUserNotFound        = errors.New("user not found")
	ErrPublicationNotFound = errors.New("publication not found")
	ErrInvalidID           = errors.New("invalid id")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrMissingToken        = errors.New("request has no authentication header")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrNotAnImage          = errors.New("file must be an image")
)
