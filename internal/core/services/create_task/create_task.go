package createtask

import (
	"context"
	"errors"
	e "tasktracker/internal/core/domain/errors"
	"tasktracker/internal/core/domain/logging"
	"tasktracker/internal/core/domain/task"
	"tasktracker/internal/core/domain/user"
	"tasktracker/internal/core/services"
	"tasktracker/internal/core/services/auth"
	"time"
)

type Input struct {
	User        user.User
	Title       string
	Description string
	AssigneeID  user.ID
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

func (i Input) Actor() user.User {
	return i.User
}

type Result struct {
	Task task.Task
}

type service struct {
	log            logging.Logger
	taskRepository task.TaskRepository
	eventPublisher task.EventPublisher
	now            func() time.Time
}

func New(
	log logging.Logger,
	taskRepository task.TaskRepository,
	eventPublisher task.EventPublisher,
	now func() time.Time,
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
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		taskRepository: taskRepository,
		eventPublisher: eventPublisher,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	createdTask, err := s.taskRepository.Create(ctx, task.CreateInput{
		Title:       input.Title,
		Description: input.Description,
		Status:      task.StatusOpen,
		AssigneeID:  input.AssigneeID,
		CreatedBy:   input.User.ID,
		CreatedAt:   s.now(),
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not create task.",
			logging.Entry("input", input),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.eventPublisher.Publish(ctx, task.Event{Type: task.EventTypeCreated, TaskID: createdTask.ID})
	s.log.Info(ctx, "Task has been created.", logging.Entry("taskId", createdTask.ID))
	return Result{Task: createdTask}, nil
}
