package user

import (
	"errors"
)

var (
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrUserDoesNotExist      = errors.New("user does not exist")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrUserNotConfirmed      = errors.New("account not activated")
	ErrResendCooldown        = errors.New("resend cooldown")
	ErrInvalidResetCode      = errors.New("code invalid")
	ErrInvalidActivationCode = errors.New("activation code invalid")
	ErrSessionDoesNotExist   = errors.New("session does not exist")
	ErrPermissionDenied      = errors.New("permission denied")
)
