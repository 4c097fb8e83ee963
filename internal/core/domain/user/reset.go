package user

import "context"

type ResetCodeGenerator interface {
	GenerateResetCode() ResetCode
}

type ResetCodeSender interface {
	SendResetCode(ctx context.Context, user User, code ResetCode) error
}
