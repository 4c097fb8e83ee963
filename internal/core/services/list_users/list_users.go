package listusers

import (
	"context"
	c "tasktracker/internal/core/domain/common"
	e "tasktracker/internal/core/domain/errors"
	"tasktracker/internal/core/domain/logging"
	"tasktracker/internal/core/domain/user"
	"tasktracker/internal/core/services"
	"tasktracker/internal/core/services/auth"
)

const DEFAULT_LIMIT = 10

type Input struct {
	User   user.User
	Limit  c.Optional[uint]
	Offset uint
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

func (i Input) Actor() user.User {
	return i.User
}

type Result struct {
	Users      []user.User
	TotalCount uint
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	limit := c.NewOptional[uint](DEFAULT_LIMIT, true)
	if input.Limit.IsPresent {
		limit.Value = input.Limit.Value
	}

	readOptions := user.ReadOptions{Limit: limit, Offset: input.Offset}
	users, err := s.userRepository.Read(ctx, readOptions)
	if err != nil {
		s.log.Error(ctx, "Could not read users.", logging.Entry("err", err))
		return result, err
	}
	totalCount, err := s.userRepository.Count(ctx)
	if err != nil {
		s.log.Error(ctx, "Could not count users.", logging.Entry("err", err))
		return result, err
	}

	result.Users = users
	result.TotalCount = totalCount
	return result, nil
}
