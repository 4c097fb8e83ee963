package consumers

import (
	"context"
	"tasktracker/internal/app/deps"
	dl "tasktracker/internal/core/domain/logging"
	emailnotification "tasktracker/internal/rabbitmq/consumers/email_notification"
)

func initEmailNotificationConsumer(deps *deps.Deps) func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	queue := deps.Config.RabbitmqEmailQueue
	emailNotificationConsumer := emailnotification.New(
		deps.Logger,
		rabbitmqChannel,
		queue,
		deps.EmailSender,
	)
	if err = emailNotificationConsumer.Consume(); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not start RabbitMQ consuming.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	deps.Logger.Info(context.Background(), "Consumer has started.", dl.Entry("queue", queue))
	return func() { rabbitmqChannel.Close() }
}

func InitConsumers(deps *deps.Deps) func() {
	shutdownEmailNotificationConsumer := initEmailNotificationConsumer(deps)

	return func() {
		shutdownEmailNotificationConsumer()
	}
}
