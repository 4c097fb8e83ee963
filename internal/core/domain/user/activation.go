package user

import "context"

type ActivationCodeGenerator interface {
	GenerateActivationCode() ActivationCode
}

type ActivationCodeSender interface {
	SendActivationCode(ctx context.Context, user User) error
}

type SessionTokenGenerator interface {
	GenerateSessionToken() SessionToken
}
