package domain

import "errors"

// ErrSessionExpired is returned when an authenticated call receives 401.
var ErrSessionExpired = errors.New("session expired, please sign in again")

// ErrTransport marks DNS, connection and timeout failures.
var ErrTransport = errors.New("transport failure")

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenMissing       = errors.New("token not received")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidFilter      = errors.New("invalid proposal filter")
	ErrInvalidCursor      = errors.New("invalid cursor")
	ErrInvalidProfile     = errors.New("invalid profile")
	ErrInvalidProposal    = errors.New("invalid proposal")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
)

// Fallback messages used when the server gives no readable reason.
const (
	MsgLoginFailed    = "login failed"
	MsgRegisterFailed = "registration failed"
	MsgRequestFailed  = "request failed"
)
