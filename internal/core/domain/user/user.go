package user

import (
	"fmt"
	c "tasktracker/internal/core/domain/common"
	e "tasktracker/internal/core/domain/errors"
	"time"
)

type ID int64

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

// ActivationCode proves email ownership during account confirmation.
type ActivationCode string

// ResetCode is a short-lived single-use token for password recovery.
type ResetCode string

type SessionToken string

type User struct {
	ID             ID
	Name           string
	Email          c.Email
	PasswordHash   PasswordHash
	Role           Role
	Status         Status
	ActivationCode c.Optional[ActivationCode]
	ResetCode      c.Optional[ResetCode]
	ResetIssuedAt  c.Optional[time.Time]
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (u *User) Validate() error {
	if u.Email == "" {
		return e.NewInvalidStateError(fmt.Sprintf("email is not set for user %d", u.ID))
	}
	if u.PasswordHash == "" {
		return e.NewInvalidStateError(fmt.Sprintf("password hash is not set for user %d", u.ID))
	}
	// A pending reset is represented by the code and its issuance time together.
	if u.ResetCode.IsPresent != u.ResetIssuedAt.IsPresent {
		return e.NewInvalidStateError(fmt.Sprintf("inconsistent pending reset state for user %d", u.ID))
	}
	return nil
}

func (u *User) IsConfirmed() bool {
	return u.Status == StatusConfirmed
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasPendingReset reports whether a reset code has been issued and not yet
// consumed. It does not check expiry, that is the reset service's concern.
func (u *User) HasPendingReset() bool {
	return u.ResetCode.IsPresent && u.ResetIssuedAt.IsPresent
}
