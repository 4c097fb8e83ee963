package activateuser

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
	EMAIL           = "test@test.test"
	PASSWORD_HASH   = "test-password-hash"
	ACTIVATION_CODE = "AB12CD"
)

var NOW time.Time = time.Date(2023, 2, 11, 15, 30, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	Logger         *logging.FakeLogger
	UserRepository *user.FakeUserRepository
	Service        services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UserRepository = user.NewFakeUserRepository()
	suite.Service = New(
		suite.Logger,
		suite.UserRepository,
		func() time.Time { return NOW },
	)
}

func TestActivateUserService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestSuccessUserActivated() {
	unconfirmedUser := s.createUnconfirmedUser()

	_, err := s.Service.Run(
		context.Background(),
		Input{ActivationCode: user.ActivationCode(ACTIVATION_CODE)},
	)
	s.Require().Nil(err)

	u, err := s.UserRepository.GetByID(context.Background(), unconfirmedUser.ID)
	s.Require().Nil(err)
	s.True(u.IsConfirmed())
	s.False(u.ActivationCode.IsPresent)
	s.Equal(NOW, u.UpdatedAt)
}

func (s *testSuite) TestActivationCodeInvalid() {
	unconfirmedUser := s.createUnconfirmedUser()

	_, err := s.Service.Run(
		context.Background(),
		Input{ActivationCode: user.ActivationCode("XX00XX")},
	)
	s.Require().True(errors.Is(err, user.ErrInvalidActivationCode))

	u, err := s.UserRepository.GetByID(context.Background(), unconfirmedUser.ID)
	s.Require().Nil(err)
	s.False(u.IsConfirmed())
}

func (s *testSuite) createUnconfirmedUser() user.User {
	s.T().Helper()
	u, err := s.UserRepository.Create(
		context.Background(),
		user.CreateUserInput{
			Email:          c.NewEmail(EMAIL),
			PasswordHash:   user.PasswordHash(PASSWORD_HASH),
			Role:           user.RoleUser,
			Status:         user.StatusUnconfirmed,
			ActivationCode: c.NewOptional(user.ActivationCode(ACTIVATION_CODE), true),
			CreatedAt:      NOW.Add(-time.Hour),
		},
	)
	if err != nil {
		s.FailNow(err.Error())
	}
	s.False(u.IsConfirmed())
	return u
}
