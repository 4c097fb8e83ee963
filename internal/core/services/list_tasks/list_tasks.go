package listtasks

import (
	"context"
	c "tasktracker/internal/core/domain/common"
	e "tasktracker/internal/core/domain/errors"
	"tasktracker/internal/core/domain/logging"
	"tasktracker/internal/core/domain/task"
	"tasktracker/internal/core/domain/user"
	"tasktracker/internal/core/services"
	"tasktracker/internal/core/services/auth"
)

const DEFAULT_LIMIT = 10

type Input struct {
	User         user.User
	StatusEquals c.Optional[task.Status]
	OrderBy      task.OrderBy
	Limit        c.Optional[uint]
	Offset       uint
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

func (i Input) Actor() user.User {
	return i.User
}

type Result struct {
	Tasks      []task.Task
	TotalCount uint
}

type service struct {
	log            logging.Logger
	taskRepository task.TaskRepository
}

func New(
	log logging.Logger,
	taskRepository task.TaskRepository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if taskRepository == nil {
		panic(e.NewNilArgumentError("taskRepository"))
	}
	return &service{
		log:            log,
		taskRepository: taskRepository,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	limit := c.NewOptional[uint](DEFAULT_LIMIT, true)
	if input.Limit.IsPresent {
		limit.Value = input.Limit.Value
	}

	readOptions := task.ReadOptions{
		StatusEquals: input.StatusEquals,
		OrderBy:      input.OrderBy,
		Limit:        limit,
		Offset:       input.Offset,
	}
	tasks, err := s.taskRepository.Read(ctx, readOptions)
	if err != nil {
		s.log.Error(ctx, "Could not read tasks.", logging.Entry("err", err))
		return result, err
	}
	totalCount, err := s.taskRepository.Count(ctx, readOptions)
	if err != nil {
		s.log.Error(ctx, "Could not count tasks.", logging.Entry("err", err))
		return result, err
	}

	result.Tasks = tasks
	result.TotalCount = totalCount
	return result, nil
}
