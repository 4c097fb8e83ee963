package signup

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
	NAME            = "Test User"
	EMAIL           = "test@test.test"
	PASSWORD        = "test-password"
	ACTIVATION_CODE = "AB12CD"
)

var NOW time.Time = time.Date(2023, 2, 11, 15, 30, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	Logger         *logging.FakeLogger
	UserRepository *user.FakeUserRepository
	PasswordHasher *user.FakePasswordHasher
	CodeGenerator  *user.FakeActivationCodeGenerator
	CodeSender     *user.FakeActivationCodeSender
	Service        services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UserRepository = user.NewFakeUserRepository()
	suite.PasswordHasher = user.NewFakePasswordHasher()
	suite.CodeGenerator = user.NewFakeActivationCodeGenerator(ACTIVATION_CODE)
	suite.CodeSender = user.NewFakeActivationCodeSender()
	suite.Service = NewWithActivationCodeSending(
		suite.Logger,
		suite.CodeSender,
		New(
			suite.Logger,
			suite.UserRepository,
			suite.PasswordHasher,
			suite.CodeGenerator,
			func() time.Time { return NOW },
		),
	)
}

func TestSignUpService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestSuccess() {
	result, err := s.Service.Run(context.Background(), Input{
		Name:     NAME,
		Email:    c.NewEmail(EMAIL),
		Password: user.RawPassword(PASSWORD),
	})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(NAME, result.User.Name)
	assert.Equal(c.Email(EMAIL), result.User.Email)
	assert.Equal(user.RoleUser, result.User.Role)
	assert.Equal(user.StatusUnconfirmed, result.User.Status)
	assert.Equal(
		c.NewOptional(user.ActivationCode(ACTIVATION_CODE), true),
		result.User.ActivationCode,
	)
	assert.Equal(NOW, result.User.CreatedAt)

	expectedHash, _ := s.PasswordHasher.HashPassword(user.RawPassword(PASSWORD))
	assert.Equal(expectedHash, result.User.PasswordHash)
}

func (s *testSuite) TestSuccessActivationCodeSent() {
	result, err := s.Service.Run(context.Background(), Input{
		Name:     NAME,
		Email:    c.NewEmail(EMAIL),
		Password: user.RawPassword(PASSWORD),
	})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(1, s.CodeSender.SentCount())
	assert.Equal(result.User.ID, s.CodeSender.Sent[0].ID)
}

func (s *testSuite) TestEmailAlreadyExists() {
	_, err := s.Service.Run(context.Background(), Input{
		Name:     NAME,
		Email:    c.NewEmail(EMAIL),
		Password: user.RawPassword(PASSWORD),
	})
	s.Require().Nil(err)

	_, err = s.Service.Run(context.Background(), Input{
		Name:     "Another Name",
		Email:    c.NewEmail(EMAIL),
		Password: user.RawPassword("another-password"),
	})

	assert := s.Require()
	assert.True(errors.Is(err, user.ErrEmailAlreadyExists))
	assert.Equal(1, s.CodeSender.SentCount())
}

func (s *testSuite) TestSendingFailed() {
	s.CodeSender.ReturnError = true

	_, err := s.Service.Run(context.Background(), Input{
		Name:     NAME,
		Email:    c.NewEmail(EMAIL),
		Password: user.RawPassword(PASSWORD),
	})

	s.Require().NotNil(err)
}
