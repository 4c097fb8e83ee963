package adminupdateuser

import (
	"context"
	"errors"
	c "tasktracker/internal/core/domain/common"
	e "tasktracker/internal/core/domain/errors"
	"tasktracker/internal/core/domain/logging"
	"tasktracker/internal/core/domain/user"
	"tasktracker/internal/core/services"
	"tasktracker/internal/core/services/auth"
	"time"
)

type Input struct {
	User           user.User
	UserID         user.ID
	DoNameUpdate   bool
	Name           string
	DoEmailUpdate  bool
	Email          c.Email
	DoRoleUpdate   bool
	Role           user.Role
	DoStatusUpdate bool
	Status         user.Status
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

func (i Input) Actor() user.User {
	return i.User
}

type Result struct {
	User user.User
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	now            func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	updatedUser, err := s.userRepository.Update(ctx, user.UpdateInput{
		ID:             input.UserID,
		DoNameUpdate:   input.DoNameUpdate,
		Name:           input.Name,
		DoEmailUpdate:  input.DoEmailUpdate,
		Email:          input.Email,
		DoRoleUpdate:   input.DoRoleUpdate,
		Role:           input.Role,
		DoStatusUpdate: input.DoStatusUpdate,
		Status:         input.Status,
		UpdatedAt:      s.now(),
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) || errors.Is(err, user.ErrEmailAlreadyExists) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not update user.",
			logging.Entry("userId", input.UserID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"User has been updated by administrator.",
		logging.Entry("userId", updatedUser.ID),
		logging.Entry("updatedBy", input.User.ID),
	)
	return Result{User: updatedUser}, nil
}
