package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

// DeclareEventQueue объявляет очередь доменных событий.
// Очередь durable: события регистрации не должны теряться при рестарте брокера.
func DeclareEventQueue(ch *amqp.Channel, name string) error {
	const op = "rabbitmq.DeclareEventQueue"
	_, err := ch.QueueDeclare(
		name,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
