package emailnotification

import (
	"context"
	"errors"
	e "tasktracker/internal/core/domain/errors"
	"tasktracker/internal/core/domain/logging"
	"tasktracker/internal/core/domain/user"
	"tasktracker/internal/rabbitmq"
	"tasktracker/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

// Publisher hands activation and reset codes off to the email queue, the
// mailer process delivers them.
type Publisher struct {
	log        logging.Logger
	channel    *rabbitmq.Channel
	exchange   string
	routingKey string
}

func NewPublisher(
	log logging.Logger,
	channel *rabbitmq.Channel,
	exchange string,
	routingKey string,
) *Publisher {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	return &Publisher{log: log, channel: channel, exchange: exchange, routingKey: routingKey}
}

func (p *Publisher) SendActivationCode(ctx context.Context, u user.User) error {
	if !u.ActivationCode.IsPresent {
		return errors.New("user activation code is not defined")
	}
	return p.publish(ctx, schema.EmailNotification{
		Kind:  schema.KindActivationCode,
		Name:  u.Name,
		Email: string(u.Email),
		Code:  string(u.ActivationCode.Value),
	})
}

func (p *Publisher) SendResetCode(ctx context.Context, u user.User, code user.ResetCode) error {
	return p.publish(ctx, schema.EmailNotification{
		Kind:  schema.KindResetCode,
		Name:  u.Name,
		Email: string(u.Email),
		Code:  string(code),
	})
}

func (p *Publisher) publish(ctx context.Context, notification schema.EmailNotification) error {
	body, err := notification.Marshal()
	if err != nil {
		return err
	}
	err = p.channel.PublishWithContext(ctx, p.exchange, p.routingKey, false, false, amqp091.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		p.log.Error(
			ctx,
			"Could not publish email notification.",
			logging.Entry("kind", notification.Kind),
			logging.Entry("err", err),
		)
		return err
	}
	p.log.Info(
		ctx,
		"Email notification has been published.",
		logging.Entry("exchange", p.exchange),
		logging.Entry("RK", p.routingKey),
		logging.Entry("kind", notification.Kind),
	)
	return nil
}
