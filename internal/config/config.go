package config

import (
	"github.com/caarlos0/env/v6"
)

type Config struct {
	IsTestMode bool   `env:"TEST_MODE" envDefault:"false"`
	Port       uint16 `env:"PORT" envDefault:"9090"`
	Secret     string `env:"SECRET,required"`

	PostgresqlURL string `env:"POSTGRESQL_URL,required"`
	RedisURL      string `env:"REDIS_URL,required"`
	RabbitmqURL   string `env:"RABBITMQ_URL,required"`

	RabbitmqEmailExchange string `env:"RABBITMQ_EMAIL_EXCHANGE" envDefault:"email-notifications"`
	RabbitmqEmailQueue    string `env:"RABBITMQ_EMAIL_QUEUE" envDefault:"email-notifications"`

	BcryptHasherCost int `env:"BCRYPT_HASHER_COST" envDefault:"10"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	AwsRegion                         string `env:"AWS_REGION" envDefault:"us-east-1"`
	AwsAccessKey                      string `env:"AWS_ACCESS_KEY"`
	AwsSecretKey                      string `env:"AWS_SECRET_KEY"`
	AwsEmailSender                    string `env:"AWS_EMAIL_SENDER"`
	AwsEmailAccountActivationTemplate string `env:"AWS_EMAIL_ACCOUNT_ACTIVATION_TEMPLATE" envDefault:"account-activation"`
	AwsEmailPasswordResetTemplate     string `env:"AWS_EMAIL_PASSWORD_RESET_TEMPLATE" envDefault:"password-reset"`
}

func Load() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, err
	}
	return config, nil
}
