package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher публикует доменные события в topic-exchange RabbitMQ
// Nil-safe: методы на nil-получателе молча ничего не делают,
// что позволяет отключать события конфигурацией
type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	log      Logger
}

// NewPublisher подключается к RabbitMQ и объявляет exchange
func NewPublisher(url, exchange string, log Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &Publisher{conn: conn, ch: ch, exchange: exchange, log: log}, nil
}

// Publish публикует событие с данным routing key
// Ошибки публикации логируются и не прерывают бизнес-операцию
func (p *Publisher) Publish(ctx context.Context, key string, payload interface{}) {
	if p == nil {
		return
	}

	envelope := Envelope{
		EventID:    uuid.NewString(),
		Type:       key,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		p.log.Error("Publish: failed to marshal event %s: %v", key, err)
		return
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType: "application/json",
		MessageId:   envelope.EventID,
		Timestamp:   envelope.OccurredAt,
		Body:        body,
	})
	if err != nil {
		p.log.Error("Publish: failed to publish event %s: %v", key, err)
		return
	}

	p.log.Info("Publish: event=%s, id=%s", key, envelope.EventID)
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
