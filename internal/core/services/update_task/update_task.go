package updatetask

import (
	"context"
	"errors"
	c "tasktracker/internal/core/domain/common"
	e "tasktracker/internal/core/domain/errors"
	"tasktracker/internal/core/domain/logging"
	"tasktracker/internal/core/domain/task"
	"tasktracker/internal/core/domain/user"
	"tasktracker/internal/core/services"
	"tasktracker/internal/core/services/auth"
	"time"
)

type Input struct {
	User                user.User
	TaskID              task.ID
	DoTitleUpdate       bool
	Title               string
	DoDescriptionUpdate bool
	Description         string
	DoStatusUpdate      bool
	Status              task.Status
	DoAssigneeIDUpdate  bool
	AssigneeID          c.Optional[user.ID]
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
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
	updateInput := task.UpdateInput{
		ID:                  input.TaskID,
		DoTitleUpdate:       input.DoTitleUpdate,
		Title:               input.Title,
		DoDescriptionUpdate: input.DoDescriptionUpdate,
		Description:         input.Description,
		DoStatusUpdate:      input.DoStatusUpdate,
		Status:              input.Status,
		UpdatedAt:           s.now(),
	}
	if input.DoAssigneeIDUpdate {
		updateInput.DoAssigneeIDUpdate = true
		updateInput.AssigneeID = input.AssigneeID.Value
	}

	updatedTask, err := s.taskRepository.Update(ctx, updateInput)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, task.ErrTaskDoesNotExist) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not update task.",
			logging.Entry("taskId", input.TaskID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.eventPublisher.Publish(ctx, task.Event{Type: task.EventTypeUpdated, TaskID: updatedTask.ID})
	s.log.Info(ctx, "Task has been updated.", logging.Entry("taskId", updatedTask.ID))
	return Result{Task: updatedTask}, nil
}
