package rabbitmq

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
)

// ChannelPublisher адаптирует *amqp.Channel под интерфейсы сервисов.
type ChannelPublisher struct {
	Ch *amqp.Channel
}

// PublishMessage публикует сообщение через обёрнутый канал.
func (p *ChannelPublisher) PublishMessage(exchange, routingKey string, message any) error {
	return PublishMessage(p.Ch, exchange, routingKey, message)
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
