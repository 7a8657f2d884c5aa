package rabbitmq

import (
	"context"
	"fmt"
	"log"

	"github.com/streadway/amqp"
)

// maxInFlight ограничивает число одновременно обрабатываемых сообщений,
// согласовано с prefetch-значением канала.
const maxInFlight = 10

// ConsumerMessage подписывается на очередь и обрабатывает каждое сообщение
// переданным обработчиком. Успешно обработанные сообщения подтверждаются,
// при ошибке обработчика сообщение возвращается в очередь. Подписка живёт
// до отмены контекста.
func ConsumerMessage(ctx context.Context, ch *amqp.Channel, queueName string, handler func([]byte) error) error {
	const op = "rabbitmq.ConsumerMessage"

	delivery, err := ch.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("%s: consume %s: %w", op, queueName, err)
	}

	sem := make(chan struct{}, maxInFlight)
	go func() {
		for {
			select {
			case msg, ok := <-delivery:
				if !ok {
					return
				}
				sem <- struct{}{}
				go func(msg amqp.Delivery) {
					defer func() { <-sem }()
					if err := handler(msg.Body); err != nil {
						if nackErr := msg.Nack(false, true); nackErr != nil {
							log.Printf("failed to nack message: %v", nackErr)
						}
						return
					}
					if ackErr := msg.Ack(false); ackErr != nil {
						log.Printf("failed to ack message: %v", ackErr)
					}
				}(msg)
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}
