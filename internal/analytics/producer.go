// internal/analytics/producer.go
package analytics

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"ms-showtimes/internal/models"
)

// Producer publishes query analytics events to Kafka. Publishing is
// fire-and-forget from the caller's point of view; a failed write only
// loses the analytics event, never the spoken answer.
type Producer struct {
	Writer *kafka.Writer
}

// NewProducer creates a Kafka producer for the query events topic.
func NewProducer(kafkaURL, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(kafkaURL),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	return &Producer{Writer: writer}
}

// PublishQueryEvent writes one query event, keyed by query ID.
func (p *Producer) PublishQueryEvent(event models.QueryEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.QueryID),
		Value: value,
	})
	if err != nil {
		return err
	}

	log.Printf("Published query event %s to topic %s", event.QueryID, p.Writer.Topic)
	return nil
}

func (p *Producer) Close() error {
	return p.Writer.Close()
}
