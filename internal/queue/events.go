// qrpay-gateway/internal/queue/events.go
package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// OutcomeEvent is published after every reserve decision so downstream
// consumers (settlement, analytics) see approvals and declines alike.
type OutcomeEvent struct {
	OrderID   string `json:"order_id,omitempty"`
	Outcome   string `json:"outcome"` // APPROVED / DECLINED
	ErrorType string `json:"error_type,omitempty"`
	Amount    int64  `json:"amount"`
	Mode      string `json:"mode,omitempty"`
	Authentic bool   `json:"authentic"`
	TS        string `json:"ts"`
}

// Publisher writes outcome events to a single Kafka topic.
type Publisher struct {
	w *kafka.Writer
}

func New(brokers []string, topic string) *Publisher {
	return &Publisher{
		w: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// Publish keys the event by order id for approvals and by error type for
// declines, so per-order consumers keep ordering.
func (p *Publisher) Publish(ctx context.Context, ev OutcomeEvent) error {
	key := ev.OrderID
	if key == "" {
		key = ev.ErrorType
	}
	if ev.TS == "" {
		ev.TS = time.Now().UTC().Format(time.RFC3339Nano)
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.w.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: payload})
}

func (p *Publisher) Close() error {
	return p.w.Close()
}
