package outbox_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appoutbox "luxestay/internal/app/outbox"
	infraoutbox "luxestay/internal/infra/outbox"
	"luxestay/internal/infra/storage/memory"
)

type published struct {
	topic   string
	key     string
	payload []byte
	headers map[string]string
}

type fakeProducer struct {
	mu       sync.Mutex
	messages []published
	fail     bool
}

func (p *fakeProducer) Publish(_ context.Context, topic, key string, payload []byte, headers map[string]string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.messages = append(p.messages, published{topic: topic, key: key, payload: payload, headers: headers})
	return nil
}

func (p *fakeProducer) sent() []published {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]published(nil), p.messages...)
}

func runWorker(t *testing.T, w *infraoutbox.Worker, until func() bool) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()
	deadline := time.After(2 * time.Second)
	for !until() {
		select {
		case <-deadline:
			cancel()
			<-done
			t.Fatal("worker did not reach expected state in time")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	<-done
}

func TestWorkerPublishesCloudEvent(t *testing.T) {
	store := memory.NewOutbox()
	producer := &fakeProducer{}
	occurred := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.Add(context.Background(), appoutbox.EventRecord{
		ID:         "evt-1",
		Name:       "booking.created",
		Payload:    []byte(`{"BookingID":"b1","UserID":"u1"}`),
		OccurredAt: occurred,
		Aggregate:  "b1",
	}))

	w := &infraoutbox.Worker{
		Store:    store,
		Producer: producer,
		Interval: time.Millisecond,
		ID:       "test-worker",
	}
	runWorker(t, w, func() bool { return len(producer.sent()) > 0 })

	msgs := producer.sent()
	require.Len(t, msgs, 1)
	assert.Equal(t, "booking.events.v1", msgs[0].topic)
	assert.Equal(t, "b1", msgs[0].key)
	assert.Equal(t, "application/cloudevents+json", msgs[0].headers["content-type"])

	var evt map[string]any
	require.NoError(t, json.Unmarshal(msgs[0].payload, &evt))
	assert.Equal(t, "1.0", evt["specversion"])
	assert.Equal(t, "booking.created.v1", evt["type"])
	assert.Equal(t, "app://luxestay", evt["source"])
	data, ok := evt["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "b1", data["BookingID"])
	assert.Equal(t, "u1", data["UserID"])

	assert.Equal(t, 0, store.Unsent())
}

func TestWorkerAppliesTopicPrefix(t *testing.T) {
	store := memory.NewOutbox()
	producer := &fakeProducer{}
	require.NoError(t, store.Add(context.Background(), appoutbox.EventRecord{
		ID:      "evt-1",
		Name:    "property.updated",
		Payload: []byte(`{"PropertyID":"p1"}`),
	}))

	w := &infraoutbox.Worker{
		Store:       store,
		Producer:    producer,
		Interval:    time.Millisecond,
		TopicPrefix: "staging.",
		ID:          "test-worker",
	}
	runWorker(t, w, func() bool { return len(producer.sent()) > 0 })

	assert.Equal(t, "staging.property.events.v1", producer.sent()[0].topic)
}

func TestWorkerRetriesFailedPublishes(t *testing.T) {
	store := memory.NewOutbox()
	producer := &fakeProducer{fail: true}
	require.NoError(t, store.Add(context.Background(), appoutbox.EventRecord{
		ID:      "evt-1",
		Name:    "booking.created",
		Payload: []byte(`{"BookingID":"b1"}`),
	}))

	w := &infraoutbox.Worker{
		Store:    store,
		Producer: producer,
		Interval: time.Millisecond,
		Backoff:  []time.Duration{time.Millisecond},
		ID:       "test-worker",
	}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_ = w.Run(ctx)
	assert.Equal(t, 1, store.Unsent(), "record must stay unsent while the broker is down")

	producer.mu.Lock()
	producer.fail = false
	producer.mu.Unlock()
	runWorker(t, w, func() bool { return store.Unsent() == 0 })
	require.Len(t, producer.sent(), 1)
}

type flakyStore struct {
	infraoutbox.Store
	mu       sync.Mutex
	failures int
}

func (s *flakyStore) Claim(ctx context.Context, workerID string) (*infraoutbox.Envelope, error) {
	s.mu.Lock()
	if s.failures > 0 {
		s.failures--
		s.mu.Unlock()
		return nil, errors.New("store unavailable")
	}
	s.mu.Unlock()
	return s.Store.Claim(ctx, workerID)
}

func TestWorkerSurvivesClaimErrors(t *testing.T) {
	store := memory.NewOutbox()
	producer := &fakeProducer{}
	require.NoError(t, store.Add(context.Background(), appoutbox.EventRecord{
		ID:      "evt-1",
		Name:    "booking.created",
		Payload: []byte(`{"BookingID":"b1"}`),
	}))

	w := &infraoutbox.Worker{
		Store:    &flakyStore{Store: store, failures: 3},
		Producer: producer,
		Interval: time.Millisecond,
		ID:       "test-worker",
	}
	runWorker(t, w, func() bool { return store.Unsent() == 0 })
	require.Len(t, producer.sent(), 1)
}

func TestWorkerRequiresDependencies(t *testing.T) {
	w := &infraoutbox.Worker{}
	err := w.Run(context.Background())
	assert.ErrorIs(t, err, infraoutbox.ErrWorkerNotConfigured)
}
