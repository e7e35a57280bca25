package application

import "errors"

// Domain errors surfaced to the HTTP boundary. All of them describe bad
// client input or state conflicts; none are fatal to the process.
var (
	ErrLoginNotExist          = errors.New("login does not exist")
	ErrInvalidPassword        = errors.New("invalid password")
	ErrLoginAlreadyExist      = errors.New("login already exists")
	ErrUserNotExist           = errors.New("user does not exist")
	ErrUserAlreadyActivated   = errors.New("user has already been activated")
	ErrInvalidActivationToken = errors.New("invalid activation token")
)
