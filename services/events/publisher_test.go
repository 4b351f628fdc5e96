package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *mockPublisher) Close() error {
	return m.Called().Error(0)
}

func TestMultiPublisher_FansOutAndJoinsErrors(t *testing.T) {
	ok := new(mockPublisher)
	failing := new(mockPublisher)
	ev := New(BookingCreated, "booking:1", BookingPayload{BookingID: 1})

	ok.On("Publish", mock.Anything, ev).Return(nil).Once()
	failing.On("Publish", mock.Anything, ev).Return(errors.New("broker down")).Once()

	err := NewMultiPublisher(ok, failing).Publish(context.Background(), ev)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
	ok.AssertExpectations(t)
	failing.AssertExpectations(t)
}

func TestNewPublisher_NoneIsNop(t *testing.T) {
	p, err := NewPublisher(Options{Broker: "none"})
	require.NoError(t, err)
	assert.IsType(t, NopPublisher{}, p)
	assert.NoError(t, p.Publish(context.Background(), New(DiscountDrawn, "user:1", nil)))

	_, err = NewPublisher(Options{Broker: "carrier-pigeon"})
	assert.Error(t, err)
}

func TestNewPublisher_KafkaWriterConfig(t *testing.T) {
	p, err := NewPublisher(Options{Broker: "kafka", KafkaBrokers: []string{"localhost:9092"}, KafkaTopic: "hotel-events"})
	require.NoError(t, err)
	kp, ok := p.(*KafkaPublisher)
	require.True(t, ok)
	assert.Equal(t, "hotel-events", kp.Writer.Topic)
}
