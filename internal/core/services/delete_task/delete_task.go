package deletetask

import (
	"context"
	"errors"
	e "tasktracker/internal/core/domain/errors"
	"tasktracker/internal/core/domain/logging"
	"tasktracker/internal/core/domain/task"
	"tasktracker/internal/core/domain/user"
	"tasktracker/internal/core/services"
	"tasktracker/internal/core/services/auth"
)

type Input struct {
	User   user.User
	TaskID task.ID
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

func (i Input) Actor() user.User {
	return i.User
}

type Result struct{}

type service struct {
	log            logging.Logger
	taskRepository task.TaskRepository
	eventPublisher task.EventPublisher
}

func New(
	log logging.Logger,
	taskRepository task.TaskRepository,
	eventPublisher task.EventPublisher,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if taskRepository == nil {
		panic(e.NewNilArgumentError("taskRepository"))
	}
	if eventPublisher == nil {
		panic(e.NewNilArgumentError("eventPublisher"))
	}
	return &service{
		log:            log,
		taskRepository: taskRepository,
		eventPublisher: eventPublisher,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	err = s.taskRepository.Delete(ctx, input.TaskID)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, task.ErrTaskDoesNotExist) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not delete task.",
			logging.Entry("taskId", input.TaskID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.eventPublisher.Publish(ctx, task.Event{Type: task.EventTypeDeleted, TaskID: input.TaskID})
	s.log.Info(ctx, "Task has been deleted.", logging.Entry("taskId", input.TaskID))
	return Result{}, nil
}
