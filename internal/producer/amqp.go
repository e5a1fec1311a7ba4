// Package producer publishes ledger events for downstream consumers.
package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"gastobot/internal/model"
)

const (
	routingKeyEntryRecorded = "entry.recorded"
	publishTimeout          = 5 * time.Second
)

// AMQP publishes an entryRecordedMessage for every persisted entry on a
// durable topic exchange.
type AMQP struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
}

// entryRecordedMessage carries the full persisted entry so consumers don't
// need a ledger connection to use it.
type entryRecordedMessage struct {
	ID          int64     `json:"id"`
	GroupID     int64     `json:"group_id"`
	Actor       string    `json:"actor"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	RecordedAt  time.Time `json:"recorded_at"`
}

func NewAMQP(url, exchange string) (*AMQP, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &AMQP{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
	}, nil
}

func (a *AMQP) PublishEntryRecorded(ctx context.Context, entry *model.Entry) error {
	body, err := json.Marshal(entryRecordedMessage{
		ID:          entry.ID,
		GroupID:     entry.GroupID,
		Actor:       entry.Actor,
		Category:    entry.Category,
		Amount:      entry.Amount,
		Description: entry.Description,
		RecordedAt:  entry.RecordedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal entry message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = a.channel.PublishWithContext(
		ctx,
		a.exchange,
		routingKeyEntryRecorded,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish entry message: %w", err)
	}
	return nil
}

func (a *AMQP) Close() error {
	if err := a.channel.Close(); err != nil {
		return fmt.Errorf("close channel: %w", err)
	}
	return a.conn.Close()
}
