package emailnotification

import (
	"context"
	"tasktracker/internal/core/domain/common"
	e "tasktracker/internal/core/domain/errors"
	"tasktracker/internal/core/domain/logging"
	"tasktracker/internal/core/domain/user"
	"tasktracker/internal/rabbitmq"
	"tasktracker/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

// Sender delivers a single queued notification.
type Sender interface {
	SendActivationCode(ctx context.Context, u user.User) error
	SendResetCode(ctx context.Context, u user.User, code user.ResetCode) error
}

type Consumer struct {
	log     logging.Logger
	channel *rabbitmq.Channel
	queue   string
	sender  Sender
}

func New(
	log logging.Logger,
	channel *rabbitmq.Channel,
	queue string,
	sender Sender,
) *Consumer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}

	return &Consumer{log: log, channel: channel, queue: queue, sender: sender}
}

func (c *Consumer) Consume() error {
	deliveries, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		c.log.Error(context.Background(), "Could not start consuming.", logging.Entry("err", err))
		return err
	}

	go func() {
		for delivery := range deliveries {
			notification := &schema.EmailNotification{}
			if err := notification.Unmarshal(delivery.Body); err != nil {
				c.log.Error(
					context.Background(),
					"Could not unmarshal email notification.",
					logging.Entry("err", err),
				)
				c.Ack(delivery)
				continue
			}

			if err := c.send(notification); err != nil {
				c.log.Error(
					context.Background(),
					"Could not send email notification.",
					logging.Entry("kind", notification.Kind),
					logging.Entry("err", err),
				)
			}
			c.Ack(delivery)
		}
	}()
	return nil
}

func (c *Consumer) send(notification *schema.EmailNotification) error {
	u := user.User{
		Name:  notification.Name,
		Email: common.NewEmail(notification.Email),
	}
	switch notification.Kind {
	case schema.KindActivationCode:
		u.ActivationCode = common.NewOptional(user.ActivationCode(notification.Code), true)
		return c.sender.SendActivationCode(context.Background(), u)
	case schema.KindResetCode:
		return c.sender.SendResetCode(context.Background(), u, user.ResetCode(notification.Code))
	default:
		c.log.Warning(
			context.Background(),
			"Unknown email notification kind.",
			logging.Entry("kind", notification.Kind),
		)
		return nil
	}
}

func (c *Consumer) Ack(delivery amqp091.Delivery) {
	if err := delivery.Ack(true); err != nil {
		c.log.Error(context.Background(), "Could not ACK AMQP message.", logging.Entry("err", err))
	}
}
