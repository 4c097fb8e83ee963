package resetpassword

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
	EMAIL        = "test@test.test"
	OLD_PASSWORD = "old-password"
	NEW_PASSWORD = "new-password"
	RESET_CODE   = "AB12CD"
)

var NOW time.Time = time.Date(2023, 2, 11, 15, 30, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	Logger         *logging.FakeLogger
	UserRepository *user.FakeUserRepository
	PasswordHasher *user.FakePasswordHasher
	Service        services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UserRepository = user.NewFakeUserRepository()
	suite.PasswordHasher = user.NewFakePasswordHasher()
	suite.Service = New(
		suite.Logger,
		suite.UserRepository,
		suite.PasswordHasher,
		func() time.Time { return NOW },
	)
}

func TestResetPasswordService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestSuccess() {
	u := s.createUserWithResetCode(NOW.Add(-time.Minute))

	result, err := s.Service.Run(context.Background(), Input{
		Code:        user.ResetCode(RESET_CODE),
		NewPassword: user.RawPassword(NEW_PASSWORD),
	})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(u.ID, result.User.ID)

	stored, err := s.UserRepository.GetByID(context.Background(), u.ID)
	assert.Nil(err)
	assert.False(stored.HasPendingReset())
	assert.True(s.PasswordHasher.ValidatePassword(user.RawPassword(NEW_PASSWORD), stored.PasswordHash))
	assert.False(s.PasswordHasher.ValidatePassword(user.RawPassword(OLD_PASSWORD), stored.PasswordHash))
	assert.Equal(NOW, stored.UpdatedAt)
}

func (s *testSuite) TestUnknownCode() {
	u := s.createUserWithResetCode(NOW.Add(-time.Minute))

	_, err := s.Service.Run(context.Background(), Input{
		Code:        user.ResetCode("XX00XX"),
		NewPassword: user.RawPassword(NEW_PASSWORD),
	})

	assert := s.Require()
	assert.True(errors.Is(err, user.ErrInvalidResetCode))
	s.assertPasswordUnchanged(u)
}

func (s *testSuite) TestExpiredCode() {
	cases := []struct {
		id       string
		issuedAt time.Time
		wantErr  error
	}{
		{id: "issued just now", issuedAt: NOW, wantErr: nil},
		{id: "issued 59m ago", issuedAt: NOW.Add(-59 * time.Minute), wantErr: nil},
		{id: "issued exactly 1h ago", issuedAt: NOW.Add(-time.Hour), wantErr: nil},
		{id: "issued 61m ago", issuedAt: NOW.Add(-61 * time.Minute), wantErr: user.ErrInvalidResetCode},
		{id: "issued a day ago", issuedAt: NOW.Add(-24 * time.Hour), wantErr: user.ErrInvalidResetCode},
	}

	for _, testcase := range cases {
		s.Run(testcase.id, func() {
			s.SetupTest()
			u := s.createUserWithResetCode(testcase.issuedAt)

			_, err := s.Service.Run(context.Background(), Input{
				Code:        user.ResetCode(RESET_CODE),
				NewPassword: user.RawPassword(NEW_PASSWORD),
			})

			if testcase.wantErr == nil {
				s.Require().Nil(err)
			} else {
				s.Require().True(errors.Is(err, testcase.wantErr))
				s.assertPasswordUnchanged(u)
			}
		})
	}
}

func (s *testSuite) TestCodeIsSingleUse() {
	s.createUserWithResetCode(NOW.Add(-time.Minute))

	_, err := s.Service.Run(context.Background(), Input{
		Code:        user.ResetCode(RESET_CODE),
		NewPassword: user.RawPassword(NEW_PASSWORD),
	})
	s.Require().Nil(err)

	_, err = s.Service.Run(context.Background(), Input{
		Code:        user.ResetCode(RESET_CODE),
		NewPassword: user.RawPassword("yet-another-password"),
	})
	s.Require().True(errors.Is(err, user.ErrInvalidResetCode))
}

func (s *testSuite) TestExpiredCodeStaysStored() {
	u := s.createUserWithResetCode(NOW.Add(-2 * time.Hour))

	_, err := s.Service.Run(context.Background(), Input{
		Code:        user.ResetCode(RESET_CODE),
		NewPassword: user.RawPassword(NEW_PASSWORD),
	})
	s.Require().True(errors.Is(err, user.ErrInvalidResetCode))

	stored, err := s.UserRepository.GetByID(context.Background(), u.ID)
	s.Require().Nil(err)
	s.True(stored.HasPendingReset())
}

func (s *testSuite) createUserWithResetCode(issuedAt time.Time) user.User {
	s.T().Helper()
	passwordHash, err := s.PasswordHasher.HashPassword(user.RawPassword(OLD_PASSWORD))
	if err != nil {
		s.FailNow(err.Error())
	}
	u, err := s.UserRepository.Create(
		context.Background(),
		user.CreateUserInput{
			Email:        c.NewEmail(EMAIL),
			PasswordHash: passwordHash,
			Role:         user.RoleUser,
			Status:       user.StatusConfirmed,
			CreatedAt:    issuedAt.Add(-time.Hour),
		},
	)
	if err != nil {
		s.FailNow(err.Error())
	}
	err = s.UserRepository.SetResetCode(context.Background(), u.ID, user.ResetCode(RESET_CODE), issuedAt)
	if err != nil {
		s.FailNow(err.Error())
	}
	return u
}

func (s *testSuite) assertPasswordUnchanged(u user.User) {
	s.T().Helper()
	stored, err := s.UserRepository.GetByID(context.Background(), u.ID)
	s.Require().Nil(err)
	s.True(s.PasswordHasher.ValidatePassword(user.RawPassword(OLD_PASSWORD), stored.PasswordHash))
}
