package sendresetcode

import (
	"context"
	"errors"
	e "tasktracker/internal/core/domain/errors"
	"tasktracker/internal/core/domain/logging"
	"tasktracker/internal/core/domain/user"
	"tasktracker/internal/core/services"
)

type serviceWithResetCodeSending struct {
	log    logging.Logger
	sender user.ResetCodeSender
	inner  services.Service[Input, Result]
}

func NewWithResetCodeSending(
	log logging.Logger,
	sender user.ResetCodeSender,
	inner services.Service[Input, Result],
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &serviceWithResetCodeSending{
		log:    log,
		sender: sender,
		inner:  inner,
	}
}

func (s *serviceWithResetCodeSending) Run(ctx context.Context, input Input) (result Result, err error) {
	result, err = s.inner.Run(ctx, input)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Info(ctx, "Skip sending reset code.", logging.Entry("err", err))
		return result, err
	}

	// The stored code stays valid even if delivery fails, the user may
	// retry after the cooldown elapses.
	err = s.sender.SendResetCode(ctx, result.User, result.Code)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not send reset code.",
			logging.Entry("userId", result.User.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"Reset code has been sent to the user.",
		logging.Entry("userId", result.User.ID),
	)
	return result, err
}
