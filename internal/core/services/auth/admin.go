package auth

import (
	"context"
	e "tasktracker/internal/core/domain/errors"
	"tasktracker/internal/core/domain/user"
	"tasktracker/internal/core/services"
)

type hasActor interface {
	Actor() user.User
}

type adminOnlyService[T hasActor, S any] struct {
	inner services.Service[T, S]
}

// WithAdminRole rejects any actor without the admin role. It must wrap a
// service that already received the authenticated user.
func WithAdminRole[T hasActor, S any](inner services.Service[T, S]) services.Service[T, S] {
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &adminOnlyService[T, S]{inner: inner}
}

func (s *adminOnlyService[T, S]) Run(ctx context.Context, input T) (result S, err error) {
	actor := input.Actor()
	if !actor.IsAdmin() {
		return result, user.ErrPermissionDenied
	}
	return s.inner.Run(ctx, input)
}
