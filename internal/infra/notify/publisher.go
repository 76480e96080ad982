package notify

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher публикует события планировщика в RabbitMQ (topic exchange)
// Уведомления не критичны для основного потока - ошибки публикации
// логируются вызывающим кодом, но не прерывают операцию
type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

// NewPublisher подключается к RabbitMQ и объявляет durable topic exchange
func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("NewPublisher - dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("NewPublisher - open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("NewPublisher - declare exchange %q: %w", exchange, err)
	}

	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

// PublishSlotFreed публикует событие освобождения слота
func (p *Publisher) PublishSlotFreed(ctx context.Context, event SlotFreedEvent) error {
	return p.publishJSON(ctx, RoutingKeySlotFreed, event)
}

// PublishWaitlistMatched публикует событие подбора кандидатов
func (p *Publisher) PublishWaitlistMatched(ctx context.Context, event WaitlistMatchedEvent) error {
	return p.publishJSON(ctx, RoutingKeyWaitlistMatched, event)
}

func (p *Publisher) publishJSON(ctx context.Context, key string, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("publishJSON - marshal event: %w", err)
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publishJSON - publish %q: %w", key, err)
	}

	return nil
}

// Close закрывает канал и соединение с RabbitMQ
func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
