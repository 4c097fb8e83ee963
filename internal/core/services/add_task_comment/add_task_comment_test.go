package addtaskcomment

import (
	"context"
	"errors"
	"tasktracker/internal/core/domain/logging"
	"tasktracker/internal/core/domain/task"
	"tasktracker/internal/core/domain/user"
	"tasktracker/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const COMMENT_BODY = "Looks like a flaky test."

var NOW time.Time = time.Date(2023, 2, 11, 15, 30, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	Logger         *logging.FakeLogger
	TaskRepository *task.FakeTaskRepository
	EventPublisher *task.FakeEventPublisher
	Service        services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.TaskRepository = task.NewFakeTaskRepository()
	suite.EventPublisher = task.NewFakeEventPublisher()
	suite.Service = New(
		suite.Logger,
		suite.TaskRepository,
		suite.EventPublisher,
		func() time.Time { return NOW },
	)
}

func TestAddTaskCommentService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestSuccess() {
	created := s.createTask()

	result, err := s.Service.Run(context.Background(), Input{
		User:   user.User{ID: 42, Role: user.RoleUser},
		TaskID: created.ID,
		Body:   COMMENT_BODY,
	})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(1, len(result.Task.Comments))
	assert.Equal(user.ID(42), result.Task.Comments[0].AuthorID)
	assert.Equal(COMMENT_BODY, result.Task.Comments[0].Body)
	assert.Equal(NOW, result.Task.Comments[0].CreatedAt)

	assert.Equal(1, s.EventPublisher.PublishedCount())
	assert.Equal(task.EventTypeUpdated, s.EventPublisher.Published[0].Type)
}

func (s *testSuite) TestTaskDoesNotExist() {
	_, err := s.Service.Run(context.Background(), Input{
		User:   user.User{ID: 42, Role: user.RoleUser},
		TaskID: task.ID(999),
		Body:   COMMENT_BODY,
	})

	assert := s.Require()
	assert.True(errors.Is(err, task.ErrTaskDoesNotExist))
	assert.Equal(0, s.EventPublisher.PublishedCount())
}

func (s *testSuite) createTask() task.Task {
	s.T().Helper()
	t, err := s.TaskRepository.Create(context.Background(), task.CreateInput{
		Title:      "Fix the build",
		Status:     task.StatusOpen,
		AssigneeID: user.ID(42),
		CreatedBy:  user.ID(1),
		CreatedAt:  NOW.Add(-time.Hour),
	})
	if err != nil {
		s.FailNow(err.Error())
	}
	return t
}
