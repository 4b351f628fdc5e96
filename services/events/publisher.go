package events

import (
	"context"
	"errors"
	"strings"
)

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }

// MultiPublisher fans an event out to several brokers and joins their errors.
type MultiPublisher struct {
	publishers []Publisher
}

func NewMultiPublisher(publishers ...Publisher) *MultiPublisher {
	return &MultiPublisher{publishers: publishers}
}

func (m *MultiPublisher) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, p := range m.publishers {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiPublisher) Close() error {
	var errs []error
	for _, p := range m.publishers {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type Options struct {
	Broker       string
	KafkaBrokers []string
	KafkaTopic   string
	RabbitURL    string
}

// NewPublisher builds the publisher for broker: none, kafka, rabbitmq or both.
func NewPublisher(opts Options) (Publisher, error) {
	switch strings.ToLower(opts.Broker) {
	case "", "none":
		return NopPublisher{}, nil
	case "kafka":
		return NewKafkaPublisher(opts.KafkaBrokers, opts.KafkaTopic), nil
	case "rabbitmq":
		return NewRabbitPublisher(opts.RabbitURL)
	case "both":
		rp, err := NewRabbitPublisher(opts.RabbitURL)
		if err != nil {
			return nil, err
		}
		return NewMultiPublisher(NewKafkaPublisher(opts.KafkaBrokers, opts.KafkaTopic), rp), nil
	default:
		return nil, errors.New("unknown event broker: " + opts.Broker)
	}
}
