package login

import (
	"context"
	"errors"
	c "tasktracker/internal/core/domain/common"
	"tasktracker/internal/core/domain/logging"
	"tasktracker/internal/core/domain/user"
	"tasktracker/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	EMAIL         = "test@test.test"
	PASSWORD      = "test-password"
	SESSION_TOKEN = "test-session-token"
)

var NOW time.Time = time.Date(2023, 2, 11, 15, 30, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	Logger            *logging.FakeLogger
	UserRepository    *user.FakeUserRepository
	SessionRepository *user.FakeSessionRepository
	PasswordHasher    *user.FakePasswordHasher
	TokenGenerator    *user.FakeSessionTokenGenerator
	Service           services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UserRepository = user.NewFakeUserRepository()
	suite.SessionRepository = user.NewFakeSessionRepository(suite.UserRepository)
	suite.PasswordHasher = user.NewFakePasswordHasher()
	suite.TokenGenerator = user.NewFakeSessionTokenGenerator(SESSION_TOKEN)
	suite.Service = New(
		suite.Logger,
		suite.UserRepository,
		suite.SessionRepository,
		suite.PasswordHasher,
		suite.TokenGenerator,
		func() time.Time { return NOW },
	)
}

func TestLogInService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestSuccess() {
	u := s.createUser(user.StatusConfirmed)

	result, err := s.Service.Run(context.Background(), Input{
		Email:    c.NewEmail(EMAIL),
		Password: user.RawPassword(PASSWORD),
	})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(user.SessionToken(SESSION_TOKEN), result.Token)
	assert.Equal(u.ID, result.User.ID)

	sessionUser, err := s.SessionRepository.GetUserByToken(
		context.Background(),
		user.SessionToken(SESSION_TOKEN),
	)
	assert.Nil(err)
	assert.Equal(u.ID, sessionUser.ID)
}

func (s *testSuite) TestUnknownEmail() {
	s.createUser(user.StatusConfirmed)

	_, err := s.Service.Run(context.Background(), Input{
		Email:    c.NewEmail("unknown@test.test"),
		Password: user.RawPassword(PASSWORD),
	})

	s.Require().True(errors.Is(err, user.ErrInvalidCredentials))
}

func (s *testSuite) TestInvalidPassword() {
	s.createUser(user.StatusConfirmed)

	_, err := s.Service.Run(context.Background(), Input{
		Email:    c.NewEmail(EMAIL),
		Password: user.RawPassword("invalid-password"),
	})

	s.Require().True(errors.Is(err, user.ErrInvalidCredentials))
}

func (s *testSuite) TestUserNotConfirmed() {
	s.createUser(user.StatusUnconfirmed)

	_, err := s.Service.Run(context.Background(), Input{
		Email:    c.NewEmail(EMAIL),
		Password: user.RawPassword(PASSWORD),
	})

	s.Require().True(errors.Is(err, user.ErrUserNotConfirmed))
}

func (s *testSuite) createUser(status user.Status) user.User {
	s.T().Helper()
	passwordHash, err := s.PasswordHasher.HashPassword(user.RawPassword(PASSWORD))
	if err != nil {
		s.FailNow(err.Error())
	}
	u, err := s.UserRepository.Create(
		context.Background(),
		user.CreateUserInput{
			Email:        c.NewEmail(EMAIL),
			PasswordHash: passwordHash,
			Role:         user.RoleUser,
			Status:       status,
			CreatedAt:    NOW.Add(-time.Hour),
		},
	)
	if err != nil {
		s.FailNow(err.Error())
	}
	return u
}
