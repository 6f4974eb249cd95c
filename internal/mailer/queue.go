package mailer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dailyshift-dev/shift-notify/backend/internal/config"
	"github.com/dailyshift-dev/shift-notify/backend/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

type Queue struct {
	cfg     *config.Config
	channel *amqp.Channel
}

func NewQueue(cfg *config.Config, channel *amqp.Channel) *Queue {
	return &Queue{
		cfg:     cfg,
		channel: channel,
	}
}

func (q *Queue) Send(ctx context.Context, msg *domain.MailMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(q.cfg.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return q.channel.PublishWithContext(
		ctx,
		"",
		QueueName,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
