package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"

	"github.com/nandanksingh/secure-user-api/internal/models"
)

// PublishMessage публикует сообщение в RabbitMQ.
func PublishMessage(ch *amqp.Channel, exchange string, routingkey string, message any) error {
	const op = "rabbitmq.PublishMessage"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = ch.Publish(
		exchange,
		routingkey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Notifier публикует события о регистрации пользователей в exchange "users".
type Notifier struct {
	ch *amqp.Channel
}

// NewNotifier создает Notifier поверх открытого канала RabbitMQ.
func NewNotifier(ch *amqp.Channel) *Notifier {
	return &Notifier{ch: ch}
}

// NotifyUserRegistered публикует событие о регистрации пользователя.
func (n *Notifier) NotifyUserRegistered(_ context.Context, user models.UserView) error {
	return PublishMessage(n.ch, "users", "registered", user)
}
