package user

import (
	"context"
	c "tasktracker/internal/core/domain/common"
	"tasktracker/internal/core/domain/user"
	"tasktracker/internal/db"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const (
	EMAIL           = "test@test.test"
	PASSWORD_HASH   = "test-password-hash"
	ACTIVATION_CODE = "AB12CD"
	RESET_CODE      = "ZX98YW"
)

var NOW time.Time = time.Date(2023, 2, 11, 15, 30, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	repo *PgxUserRepository
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool()
	suite.repo = NewPgxRepository(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	suite.pool.Close()
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxUserRepository(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestCreateSuccess() {
	input := user.CreateUserInput{
		Name:           "Test User",
		Email:          c.NewEmail(EMAIL),
		PasswordHash:   user.PasswordHash(PASSWORD_HASH),
		Role:           user.RoleUser,
		Status:         user.StatusUnconfirmed,
		ActivationCode: c.NewOptional(user.ActivationCode(ACTIVATION_CODE), true),
		CreatedAt:      NOW,
	}
	u, err := suite.repo.Create(context.Background(), input)

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(input.Name, u.Name)
	assert.Equal(input.Email, u.Email)
	assert.Equal(input.PasswordHash, u.PasswordHash)
	assert.Equal(input.Role, u.Role)
	assert.Equal(input.Status, u.Status)
	assert.Equal(input.ActivationCode, u.ActivationCode)
	assert.False(u.HasPendingReset())
	assert.True(NOW.Equal(u.CreatedAt))
	assert.True(NOW.Equal(u.UpdatedAt))
}

func (suite *testSuite) TestEmailAlreadyExistsError() {
	_, err := suite.repo.Create(context.Background(), suite.createInput())
	suite.Require().Nil(err)

	_, err = suite.repo.Create(context.Background(), suite.createInput())
	suite.Require().ErrorIs(err, user.ErrEmailAlreadyExists)
}

func (s *testSuite) TestGetByEmail() {
	created := s.createUser()

	u, err := s.repo.GetByEmail(context.Background(), c.NewEmail(EMAIL))
	s.Require().Nil(err)
	s.Equal(created.ID, u.ID)

	_, err = s.repo.GetByEmail(context.Background(), c.NewEmail("unknown@test.test"))
	s.Require().ErrorIs(err, user.ErrUserDoesNotExist)
}

func (s *testSuite) TestActivateSuccess() {
	created := s.createUser()

	activated, err := s.repo.Activate(context.Background(), user.ActivationCode(ACTIVATION_CODE), NOW.Add(time.Minute))

	s.Require().Nil(err)
	s.Equal(created.ID, activated.ID)
	s.True(activated.IsConfirmed())
	s.False(activated.ActivationCode.IsPresent)
	s.True(NOW.Add(time.Minute).Equal(activated.UpdatedAt))
}

func (s *testSuite) TestActivationFailsIfCodeIsInvalid() {
	s.createUser()

	_, err := s.repo.Activate(context.Background(), user.ActivationCode("XX00XX"), NOW)
	s.Require().ErrorIs(err, user.ErrInvalidActivationCode)
}

func (s *testSuite) TestSetAndGetByResetCode() {
	created := s.createUser()

	err := s.repo.SetResetCode(context.Background(), created.ID, user.ResetCode(RESET_CODE), NOW.Add(time.Hour))
	s.Require().Nil(err)

	u, err := s.repo.GetByResetCode(context.Background(), user.ResetCode(RESET_CODE))
	s.Require().Nil(err)
	s.Equal(created.ID, u.ID)
	s.True(u.HasPendingReset())
	s.True(NOW.Add(time.Hour).Equal(u.ResetIssuedAt.Value))
	s.True(NOW.Add(time.Hour).Equal(u.UpdatedAt))
}

func (s *testSuite) TestSetResetCodeUserDoesNotExist() {
	err := s.repo.SetResetCode(context.Background(), user.ID(999), user.ResetCode(RESET_CODE), NOW)
	s.Require().ErrorIs(err, user.ErrUserDoesNotExist)
}

func (s *testSuite) TestConsumeResetCodeSuccess() {
	created := s.createUser()
	err := s.repo.SetResetCode(context.Background(), created.ID, user.ResetCode(RESET_CODE), NOW.Add(time.Hour))
	s.Require().Nil(err)

	consumedAt := NOW.Add(2 * time.Hour)
	u, err := s.repo.ConsumeResetCode(
		context.Background(),
		user.ResetCode(RESET_CODE),
		user.PasswordHash("new-password-hash"),
		consumedAt,
	)

	s.Require().Nil(err)
	s.Equal(created.ID, u.ID)
	s.False(u.HasPendingReset())
	s.Equal(user.PasswordHash("new-password-hash"), u.PasswordHash)
	s.True(consumedAt.Equal(u.UpdatedAt))

	// The code is gone, a second consume must fail.
	_, err = s.repo.ConsumeResetCode(
		context.Background(),
		user.ResetCode(RESET_CODE),
		user.PasswordHash("another-password-hash"),
		consumedAt,
	)
	s.Require().ErrorIs(err, user.ErrInvalidResetCode)
}

func (s *testSuite) TestConsumeResetCodeUnknownCode() {
	s.createUser()

	_, err := s.repo.ConsumeResetCode(
		context.Background(),
		user.ResetCode("XX00XX"),
		user.PasswordHash("new-password-hash"),
		NOW,
	)
	s.Require().ErrorIs(err, user.ErrInvalidResetCode)
}

func (s *testSuite) TestUpdate() {
	created := s.createUser()

	updated, err := s.repo.Update(context.Background(), user.UpdateInput{
		ID:             created.ID,
		DoNameUpdate:   true,
		Name:           "Updated Name",
		DoRoleUpdate:   true,
		Role:           user.RoleAdmin,
		DoStatusUpdate: true,
		Status:         user.StatusConfirmed,
		UpdatedAt:      NOW.Add(time.Minute),
	})

	s.Require().Nil(err)
	s.Equal("Updated Name", updated.Name)
	s.Equal(user.RoleAdmin, updated.Role)
	s.True(updated.IsConfirmed())
	s.Equal(created.Email, updated.Email)
}

func (s *testSuite) TestDelete() {
	created := s.createUser()

	err := s.repo.Delete(context.Background(), created.ID)
	s.Require().Nil(err)

	_, err = s.repo.GetByID(context.Background(), created.ID)
	s.Require().ErrorIs(err, user.ErrUserDoesNotExist)

	err = s.repo.Delete(context.Background(), created.ID)
	s.Require().ErrorIs(err, user.ErrUserDoesNotExist)
}

func (s *testSuite) TestReadAndCount() {
	for _, email := range []string{"a@test.test", "b@test.test", "c@test.test"} {
		input := s.createInput()
		input.Email = c.NewEmail(email)
		_, err := s.repo.Create(context.Background(), input)
		s.Require().Nil(err)
	}

	users, err := s.repo.Read(context.Background(), user.ReadOptions{
		Limit:  c.NewOptional(uint(2), true),
		Offset: 1,
	})
	s.Require().Nil(err)
	s.Len(users, 2)

	count, err := s.repo.Count(context.Background())
	s.Require().Nil(err)
	s.Equal(uint(3), count)
}

func (s *testSuite) createInput() user.CreateUserInput {
	return user.CreateUserInput{
		Name:           "Test User",
		Email:          c.NewEmail(EMAIL),
		PasswordHash:   user.PasswordHash(PASSWORD_HASH),
		Role:           user.RoleUser,
		Status:         user.StatusUnconfirmed,
		ActivationCode: c.NewOptional(user.ActivationCode(ACTIVATION_CODE), true),
		CreatedAt:      NOW,
	}
}

func (s *testSuite) createUser() user.User {
	s.T().Helper()
	u, err := s.repo.Create(context.Background(), s.createInput())
	if err != nil {
		s.FailNow(err.Error())
	}
	return u
}
