package task

import (
	"context"
	c "tasktracker/internal/core/domain/common"
	"tasktracker/internal/core/domain/task"
	"tasktracker/internal/core/domain/user"
	"tasktracker/internal/db"
	dbuser "tasktracker/internal/db/user"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

var NOW time.Time = time.Date(2023, 2, 11, 15, 30, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	pool     *pgxpool.Pool
	repo     *PgxTaskRepository
	userRepo *dbuser.PgxUserRepository
	admin    user.User
	assignee user.User
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool()
	suite.repo = NewPgxRepository(suite.pool)
	suite.userRepo = dbuser.NewPgxRepository(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	suite.pool.Close()
}

func (suite *testSuite) SetupTest() {
	suite.admin = suite.createUser("admin@test.test", user.RoleAdmin)
	suite.assignee = suite.createUser("assignee@test.test", user.RoleUser)
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxTaskRepository(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestCreateAndGet() {
	created := s.createTask("Fix the build")

	got, err := s.repo.GetByID(context.Background(), created.ID)
	s.Require().Nil(err)
	s.Equal(created.ID, got.ID)
	s.Equal("Fix the build", got.Title)
	s.Equal(task.StatusOpen, got.Status)
	s.Equal(s.assignee.ID, got.AssigneeID)
	s.Equal(s.admin.ID, got.CreatedBy)
	s.Equal(0, len(got.Comments))
}

func (s *testSuite) TestGetDoesNotExist() {
	_, err := s.repo.GetByID(context.Background(), task.ID(999))
	s.Require().ErrorIs(err, task.ErrTaskDoesNotExist)
}

func (s *testSuite) TestReadWithFilters() {
	first := s.createTask("First")
	second := s.createTask("Second")
	_, err := s.repo.Update(context.Background(), task.UpdateInput{
		ID:             second.ID,
		DoStatusUpdate: true,
		Status:         task.StatusCompleted,
		UpdatedAt:      NOW.Add(time.Minute),
	})
	s.Require().Nil(err)

	tasks, err := s.repo.Read(context.Background(), task.ReadOptions{
		StatusEquals: c.NewOptional(task.StatusOpen, true),
	})
	s.Require().Nil(err)
	s.Require().Equal(1, len(tasks))
	s.Equal(first.ID, tasks[0].ID)

	count, err := s.repo.Count(context.Background(), task.ReadOptions{})
	s.Require().Nil(err)
	s.Equal(uint(2), count)
}

func (s *testSuite) TestReadWithLimitAndOffset() {
	s.createTask("First")
	second := s.createTask("Second")
	s.createTask("Third")

	tasks, err := s.repo.Read(context.Background(), task.ReadOptions{
		Limit:  c.NewOptional(uint(1), true),
		Offset: 1,
	})
	s.Require().Nil(err)
	s.Require().Equal(1, len(tasks))
	s.Equal(second.ID, tasks[0].ID)
}

func (s *testSuite) TestAddComment() {
	created := s.createTask("Fix the build")

	updated, err := s.repo.AddComment(context.Background(), task.AddCommentInput{
		TaskID: created.ID,
		Comment: task.Comment{
			AuthorID:  s.assignee.ID,
			Body:      "Looks like a flaky test.",
			CreatedAt: NOW.Add(time.Minute),
		},
	})
	s.Require().Nil(err)
	s.Require().Equal(1, len(updated.Comments))
	s.Equal(s.assignee.ID, updated.Comments[0].AuthorID)
	s.Equal("Looks like a flaky test.", updated.Comments[0].Body)

	// Comments are appended, not replaced.
	updated, err = s.repo.AddComment(context.Background(), task.AddCommentInput{
		TaskID: created.ID,
		Comment: task.Comment{
			AuthorID:  s.admin.ID,
			Body:      "Confirmed.",
			CreatedAt: NOW.Add(2 * time.Minute),
		},
	})
	s.Require().Nil(err)
	s.Require().Equal(2, len(updated.Comments))
}

func (s *testSuite) TestDelete() {
	created := s.createTask("Fix the build")

	err := s.repo.Delete(context.Background(), created.ID)
	s.Require().Nil(err)

	err = s.repo.Delete(context.Background(), created.ID)
	s.Require().ErrorIs(err, task.ErrTaskDoesNotExist)
}

func (s *testSuite) createUser(email string, role user.Role) user.User {
	s.T().Helper()
	u, err := s.userRepo.Create(context.Background(), user.CreateUserInput{
		Name:         "Test User",
		Email:        c.NewEmail(email),
		PasswordHash: user.PasswordHash("test-password-hash"),
		Role:         role,
		Status:       user.StatusConfirmed,
		CreatedAt:    NOW,
	})
	if err != nil {
		s.FailNow(err.Error())
	}
	return u
}

func (s *testSuite) createTask(title string) task.Task {
	s.T().Helper()
	t, err := s.repo.Create(context.Background(), task.CreateInput{
		Title:      title,
		Status:     task.StatusOpen,
		AssigneeID: s.assignee.ID,
		CreatedBy:  s.admin.ID,
		CreatedAt:  NOW,
	})
	if err != nil {
		s.FailNow(err.Error())
	}
	return t
}
