package sendresetcode

import (
	"context"
	"errors"
	c "tasktracker/internal/core/domain/common"
	e "tasktracker/internal/core/domain/errors"
	"tasktracker/internal/core/domain/logging"
	"tasktracker/internal/core/domain/user"
	"tasktracker/internal/core/services"
	"time"
)

// ResendCooldown is the minimum interval between consecutive reset code
// requests for the same account.
const ResendCooldown = time.Minute

type Input struct {
	Email c.Email
}

func (i Input) GetRateLimitKey() string {
	return "send-reset-code::" + string(i.Email)
}

type Result struct {
	User user.User
	Code user.ResetCode
}

type service struct {
	log                logging.Logger
	userRepository     user.UserRepository
	resetCodeGenerator user.ResetCodeGenerator
	now                func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	resetCodeGenerator user.ResetCodeGenerator,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if resetCodeGenerator == nil {
		panic(e.NewNilArgumentError("resetCodeGenerator"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                log,
		userRepository:     userRepository,
		resetCodeGenerator: resetCodeGenerator,
		now:                now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(
			ctx,
			"Reset code requested for unknown email.",
			logging.Entry("email", input.Email),
		)
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not get user by email.", logging.Entry("err", err))
		return result, err
	}

	if !u.IsConfirmed() {
		return result, user.ErrUserNotConfirmed
	}

	now := s.now()
	if u.UpdatedAt.After(now.Add(-ResendCooldown)) {
		s.log.Info(
			ctx,
			"Reset code requested during cooldown window.",
			logging.Entry("userId", u.ID),
			logging.Entry("updatedAt", u.UpdatedAt),
		)
		return result, user.ErrResendCooldown
	}

	code := s.resetCodeGenerator.GenerateResetCode()
	err = s.userRepository.SetResetCode(ctx, u.ID, code, now)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not store reset code.",
			logging.Entry("userId", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(ctx, "Reset code issued.", logging.Entry("userId", u.ID))
	return Result{User: u, Code: code}, nil
}
