package user

import "errors"

var ErrParseStatus = errors.New("invalid status")

type Status struct {
	v string
}

func (s Status) String() string {
	return s.v
}

var (
	StatusUnconfirmed = Status{v: "unconfirmed"}
	StatusConfirmed   = Status{v: "confirmed"}
)

func ParseStatus(value string) (Status, error) {
	switch value {
	case "unconfirmed":
		return StatusUnconfirmed, nil
	case "confirmed":
		return StatusConfirmed, nil
	default:
		return Status{}, ErrParseStatus
	}
}

var ErrParseRole = errors.New("invalid role")

type Role struct {
	v string
}

func (r Role) String() string {
	return r.v
}

var (
	RoleUser  = Role{v: "user"}
	RoleAdmin = Role{v: "admin"}
)

func ParseRole(value string) (Role, error) {
	switch value {
	case "user":
		return RoleUser, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return Role{}, ErrParseRole
	}
}
