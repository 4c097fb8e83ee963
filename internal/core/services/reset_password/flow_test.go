package resetpassword

import (
	"context"
	"errors"
	"sync"
	c "tasktracker/internal/core/domain/common"
	"tasktracker/internal/core/domain/logging"
	"tasktracker/internal/core/domain/user"
	"tasktracker/internal/core/services"
	sendresetcode "tasktracker/internal/core/services/send_reset_code"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Covers the whole recovery flow, from requesting a code to logging in
// with the new password.
func TestPasswordRecoveryFlow(t *testing.T) {
	logger := logging.NewFakeLogger()
	userRepository := user.NewFakeUserRepository()
	passwordHasher := user.NewFakePasswordHasher()
	codeGenerator := user.NewFakeResetCodeGenerator(RESET_CODE)
	codeSender := user.NewFakeResetCodeSender()

	now := time.Date(2023, 2, 11, 15, 30, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	sendService := sendresetcode.NewWithResetCodeSending(
		logger,
		codeSender,
		sendresetcode.New(logger, userRepository, codeGenerator, clock),
	)
	resetService := New(logger, userRepository, passwordHasher, clock)

	oldHash, err := passwordHasher.HashPassword(user.RawPassword(OLD_PASSWORD))
	require.NoError(t, err)
	u, err := userRepository.Create(context.Background(), user.CreateUserInput{
		Email:        c.NewEmail(EMAIL),
		PasswordHash: oldHash,
		Role:         user.RoleUser,
		Status:       user.StatusConfirmed,
		CreatedAt:    now.Add(-time.Hour),
	})
	require.NoError(t, err)

	// Request a code.
	sendResult, err := sendService.Run(context.Background(), sendresetcode.Input{
		Email: c.NewEmail(EMAIL),
	})
	require.NoError(t, err)
	require.Equal(t, 1, codeSender.SentCount())

	// Consume it a few minutes later.
	now = now.Add(5 * time.Minute)
	_, err = resetService.Run(context.Background(), Input{
		Code:        sendResult.Code,
		NewPassword: user.RawPassword(NEW_PASSWORD),
	})
	require.NoError(t, err)

	stored, err := userRepository.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.False(t, stored.HasPendingReset())
	require.True(t, passwordHasher.ValidatePassword(user.RawPassword(NEW_PASSWORD), stored.PasswordHash))
	require.False(t, passwordHasher.ValidatePassword(user.RawPassword(OLD_PASSWORD), stored.PasswordHash))

	// Replaying the same code must fail.
	_, err = resetService.Run(context.Background(), Input{
		Code:        sendResult.Code,
		NewPassword: user.RawPassword("sneaky-password"),
	})
	require.True(t, errors.Is(err, user.ErrInvalidResetCode))

	// The failed replay must not touch the password.
	stored, err = userRepository.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.True(t, passwordHasher.ValidatePassword(user.RawPassword(NEW_PASSWORD), stored.PasswordHash))
}

// Two requests racing for the same account: the code written last is the
// one that completes the reset, the overwritten one is rejected.
func TestConcurrentCodeRequestsOnlyStoredCodeCompletesReset(t *testing.T) {
	logger := logging.NewFakeLogger()
	userRepository := user.NewFakeUserRepository()
	passwordHasher := user.NewFakePasswordHasher()

	now := time.Date(2023, 2, 11, 15, 30, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	codes := []user.ResetCode{"AAA111", "BBB222"}
	issuers := make([]services.Service[sendresetcode.Input, sendresetcode.Result], len(codes))
	for ix, code := range codes {
		issuers[ix] = sendresetcode.New(
			logger,
			userRepository,
			user.NewFakeResetCodeGenerator(string(code)),
			clock,
		)
	}
	resetService := New(logger, userRepository, passwordHasher, clock)

	oldHash, err := passwordHasher.HashPassword(user.RawPassword(OLD_PASSWORD))
	require.NoError(t, err)
	u, err := userRepository.Create(context.Background(), user.CreateUserInput{
		Email:        c.NewEmail(EMAIL),
		PasswordHash: oldHash,
		Role:         user.RoleUser,
		Status:       user.StatusConfirmed,
		CreatedAt:    now.Add(-time.Hour),
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for _, issuer := range issuers {
		wg.Add(1)
		go func(issuer services.Service[sendresetcode.Input, sendresetcode.Result]) {
			defer wg.Done()
			issuer.Run(context.Background(), sendresetcode.Input{Email: c.NewEmail(EMAIL)})
		}(issuer)
	}
	wg.Wait()

	stored, err := userRepository.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.True(t, stored.HasPendingReset())
	require.Contains(t, codes, stored.ResetCode.Value)
	winner := stored.ResetCode.Value

	// The overwritten code must not reset the password.
	for _, code := range codes {
		if code == winner {
			continue
		}
		_, err = resetService.Run(context.Background(), Input{
			Code:        code,
			NewPassword: user.RawPassword("sneaky-password"),
		})
		require.True(t, errors.Is(err, user.ErrInvalidResetCode))
	}

	_, err = resetService.Run(context.Background(), Input{
		Code:        winner,
		NewPassword: user.RawPassword(NEW_PASSWORD),
	})
	require.NoError(t, err)

	stored, err = userRepository.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.False(t, stored.HasPendingReset())
	require.True(t, passwordHasher.ValidatePassword(user.RawPassword(NEW_PASSWORD), stored.PasswordHash))
}
