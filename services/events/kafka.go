package events

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/segmentio/kafka-go"
)

// KafkaPublisher writes every event to one topic, keyed by aggregate.
type KafkaPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{Writer: writer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	msgBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.Writer.WriteMessages(ctx,
		kafka.Message{
			Key:   []byte(event.Key),
			Value: msgBytes,
			Headers: []kafka.Header{
				{Key: "type", Value: []byte(event.Type)},
			},
		},
	)
}

func (p *KafkaPublisher) Close() error {
	return p.Writer.Close()
}
