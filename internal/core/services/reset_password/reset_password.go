package resetpassword

import (
	"context"
	"errors"
	e "tasktracker/internal/core/domain/errors"
	"tasktracker/internal/core/domain/logging"
	"tasktracker/internal/core/domain/user"
	"tasktracker/internal/core/services"
	"time"
)

// CodeTTL is how long an issued reset code stays valid.
const CodeTTL = time.Hour

type Input struct {
	Code        user.ResetCode
	NewPassword user.RawPassword
}

func (i Input) GetRateLimitKey() string {
	return "reset-password::" + string(i.Code)
}

type Result struct {
	User user.User
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	passwordHasher user.PasswordHasher
	now            func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	passwordHasher user.PasswordHasher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		passwordHasher: passwordHasher,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByResetCode(ctx, input.Code)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		// An unknown code and an expired one are indistinguishable to the
		// caller, nothing about account existence leaks through this path.
		return result, user.ErrInvalidResetCode
	}
	if err != nil {
		s.log.Error(ctx, "Could not get user by reset code.", logging.Entry("err", err))
		return result, err
	}

	if !u.ResetIssuedAt.IsPresent || s.now().Sub(u.ResetIssuedAt.Value) > CodeTTL {
		s.log.Info(
			ctx,
			"Expired reset code presented.",
			logging.Entry("userId", u.ID),
		)
		return result, user.ErrInvalidResetCode
	}

	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		s.log.Error(ctx, "Could not hash password.", logging.Entry("err", err))
		return result, err
	}

	updatedUser, err := s.userRepository.ConsumeResetCode(ctx, input.Code, newPasswordHash, s.now())
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrInvalidResetCode) {
		// The code was consumed or replaced since the lookup above.
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not consume reset code.",
			logging.Entry("userId", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"Password has been reset, code consumed.",
		logging.Entry("userId", updatedUser.ID),
	)
	return Result{User: updatedUser}, nil
}
