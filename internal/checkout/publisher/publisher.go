package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/segmentio/kafka-go"
)

const Topic = "storefront.checkout.completed"

// CheckoutCompletedEvent is the payload written to the checkout topic.
type CheckoutCompletedEvent struct {
	ReceiptID     string            `json:"receipt_id"`
	OwnerID       string            `json:"owner_id"`
	Items         []domain.CartItem `json:"items"`
	Total         float64           `json:"total"`
	CustomerEmail string            `json:"customer_email"`
	Timestamp     string            `json:"timestamp"`
}

// messageWriter is the slice of kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(brokers ...string) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    Topic,
		Balancer: &kafka.LeastBytes{},
	}
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) PublishCheckoutCompleted(ctx context.Context, receipt *domain.Receipt) error {
	event := CheckoutCompletedEvent{
		ReceiptID:     receipt.ID,
		OwnerID:       receipt.OwnerID,
		Items:         receipt.Items,
		Total:         receipt.Total,
		CustomerEmail: receipt.CustomerEmail,
		Timestamp:     receipt.Timestamp.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal checkout event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(receipt.OwnerID),
		Value: value,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write checkout event: %w", err)
	}

	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
