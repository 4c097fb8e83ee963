package email

import (
	"context"
	"encoding/json"
	"errors"

	"tasktracker/internal/core/domain/user"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type EmailSender struct {
	ses *ses.Client
	// This address must be verified with Amazon SES.
	sender                    string
	accountActivationTemplate string
	passwordResetTemplate     string
}

func NewEmailSender(
	awsConfig aws.Config,
	sender string,
	accountActivationTemplate string,
	passwordResetTemplate string,
) *EmailSender {
	return &EmailSender{
		ses:                       ses.NewFromConfig(awsConfig),
		sender:                    sender,
		accountActivationTemplate: accountActivationTemplate,
		passwordResetTemplate:     passwordResetTemplate,
	}
}

func (s *EmailSender) SendActivationCode(ctx context.Context, u user.User) error {
	if !u.ActivationCode.IsPresent {
		return errors.New("user activation code is not defined")
	}
	if u.Email == "" {
		return errors.New("user email is not defined")
	}

	templateParamsBytes, err := json.Marshal(
		accountActivationTemplateParams{
			Name:           u.Name,
			ActivationCode: string(u.ActivationCode.Value),
		},
	)
	if err != nil {
		return err
	}
	templateParams := string(templateParamsBytes)

	email := string(u.Email)
	_, err = s.ses.SendTemplatedEmail(
		ctx,
		&ses.SendTemplatedEmailInput{
			Source: &s.sender,
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{email},
			},
			Template:     &s.accountActivationTemplate,
			TemplateData: &templateParams,
		},
	)
	return err
}

func (s *EmailSender) SendResetCode(ctx context.Context, u user.User, code user.ResetCode) error {
	if u.Email == "" {
		return errors.New("user email is not defined")
	}

	templateParamsBytes, err := json.Marshal(
		passwordResetTemplateParams{
			Name:      u.Name,
			ResetCode: string(code),
		},
	)
	if err != nil {
		return err
	}
	templateParams := string(templateParamsBytes)

	email := string(u.Email)
	_, err = s.ses.SendTemplatedEmail(
		ctx,
		&ses.SendTemplatedEmailInput{
			Source: &s.sender,
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{email},
			},
			Template:     &s.passwordResetTemplate,
			TemplateData: &templateParams,
		},
	)
	return err
}

type accountActivationTemplateParams struct {
	Name           string `json:"name"`
	ActivationCode string `json:"activationCode"`
}

type passwordResetTemplateParams struct {
	Name      string `json:"name"`
	ResetCode string `json:"resetCode"`
}
