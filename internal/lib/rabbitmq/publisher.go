// Package rabbitmq содержит вспомогательные функции для публикации
// доменных событий сервиса в RabbitMQ.
package rabbitmq

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
)

// UserRegisteredEvent событие регистрации нового пользователя.
// Потребляется внешним воркером рассылки приветственных писем.
type UserRegisteredEvent struct {
	UserUID  string `json:"user_uid"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// Publisher публикует события сервиса в выделенную очередь.
type Publisher struct {
	ch    *amqp.Channel
	queue string
}

// NewPublisher создает Publisher поверх открытого канала.
func NewPublisher(ch *amqp.Channel, queue string) *Publisher {
	return &Publisher{ch: ch, queue: queue}
}

// PublishUserRegistered публикует событие регистрации пользователя.
func (p *Publisher) PublishUserRegistered(event UserRegisteredEvent) error {
	return PublishMessage(p.ch, "", p.queue, event)
}

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
