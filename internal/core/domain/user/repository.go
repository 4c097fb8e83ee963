package user

import (
	"context"
	c "tasktracker/internal/core/domain/common"
	"time"
)

type CreateUserInput struct {
	Name           string
	Email          c.Email
	PasswordHash   PasswordHash
	Role           Role
	Status         Status
	ActivationCode c.Optional[ActivationCode]
	CreatedAt      time.Time
}

type ReadOptions struct {
	Limit  c.Optional[uint]
	Offset uint
}

type UpdateInput struct {
	ID                   ID
	DoNameUpdate         bool
	Name                 string
	DoEmailUpdate        bool
	Email                c.Email
	DoPasswordHashUpdate bool
	PasswordHash         PasswordHash
	DoRoleUpdate         bool
	Role                 Role
	DoStatusUpdate       bool
	Status               Status
	UpdatedAt            time.Time
}

// UserRepository is the credential store for the account aggregate. All
// mutations stamp UpdatedAt, the reset cooldown clock is derived from it.
type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput) (User, error)
	GetByID(ctx context.Context, id ID) (User, error)
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	// GetByResetCode does not filter by issuance time, the caller applies
	// the expiry check.
	GetByResetCode(ctx context.Context, code ResetCode) (User, error)
	Read(ctx context.Context, options ReadOptions) ([]User, error)
	Count(ctx context.Context) (uint, error)
	Activate(ctx context.Context, code ActivationCode, at time.Time) (User, error)
	// SetResetCode stores the pending reset code together with its issuance
	// time and stamps UpdatedAt, all in a single write.
	SetResetCode(ctx context.Context, id ID, code ResetCode, at time.Time) error
	// ConsumeResetCode replaces the password hash and clears the pending
	// reset code in the same write. It fails with ErrInvalidResetCode if no
	// account currently holds the code.
	ConsumeResetCode(ctx context.Context, code ResetCode, password PasswordHash, at time.Time) (User, error)
	SetPassword(ctx context.Context, id ID, password PasswordHash, at time.Time) error
	Update(ctx context.Context, input UpdateInput) (User, error)
	Delete(ctx context.Context, id ID) error
}

type CreateSessionInput struct {
	UserID    ID
	Token     SessionToken
	CreatedAt time.Time
}

type SessionRepository interface {
	Create(ctx context.Context, input CreateSessionInput) error
	GetUserByToken(ctx context.Context, token SessionToken) (User, error)
	Delete(ctx context.Context, token SessionToken) (userID ID, err error)
}
