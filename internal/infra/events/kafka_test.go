//go:build unit

package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"slotbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *captureWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func (w *captureWriter) Close() error { return nil }

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &captureWriter{}
	p := &KafkaPublisher{writer: w}

	ev := shared.BookingEvent{
		ID:         uuid.New(),
		Type:       shared.EventBookingCreated,
		BookingID:  uuid.New(),
		HostID:     uuid.New(),
		Status:     "scheduled",
		StartTime:  time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC),
		OccurredAt: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
	}
	require.NoError(t, p.Publish(context.Background(), ev))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, ev.BookingID.String(), string(msg.Key))
	assert.Equal(t, ev.ID.String(), headerValue(msg.Headers, "event_id"))
	assert.Equal(t, "booking.created", headerValue(msg.Headers, "event_type"))

	var decoded shared.BookingEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, ev.BookingID, decoded.BookingID)
	assert.True(t, ev.StartTime.Equal(decoded.StartTime))
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	p := &KafkaPublisher{writer: &captureWriter{err: assert.AnError}}
	err := p.Publish(context.Background(), shared.BookingEvent{ID: uuid.New(), BookingID: uuid.New()})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestSplitBrokers(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, SplitBrokers(" a:9092, ,b:9092 "))
	assert.Empty(t, SplitBrokers(""))
}

func headerValue(headers []kafka.Header, key string) string {
	for _, h := range headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
