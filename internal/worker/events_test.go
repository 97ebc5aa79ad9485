package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/kafka"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	ch chan kafka.Message

	mu        sync.Mutex
	committed []int64
	log       *[]string
}

func newFakeSource(log *[]string) *fakeSource {
	return &fakeSource{ch: make(chan kafka.Message, 64), log: log}
}

func (s *fakeSource) Fetch(ctx context.Context) (kafka.Message, error) {
	select {
	case m := <-s.ch:
		return m, nil
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	}
}

func (s *fakeSource) Commit(_ context.Context, msgs ...kafka.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range msgs {
		s.committed = append(s.committed, m.Offset)
	}
	*s.log = append(*s.log, "commit")
	return nil
}

func (s *fakeSource) Committed() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.committed...)
}

type fakeSink struct {
	failures int
	stored   []model.CustomerEvent
	batches  int
	log      *[]string
	src      *fakeSource // shares its mutex for log ordering
}

func (s *fakeSink) InsertBatch(_ context.Context, events []model.CustomerEvent) error {
	s.src.mu.Lock()
	defer s.src.mu.Unlock()
	if s.failures > 0 {
		s.failures--
		*s.log = append(*s.log, "insert-failed")
		return errors.New("clickhouse unavailable")
	}
	s.stored = append(s.stored, events...)
	s.batches++
	*s.log = append(*s.log, "insert")
	return nil
}

func (s *fakeSink) Stored() []model.CustomerEvent {
	s.src.mu.Lock()
	defer s.src.mu.Unlock()
	return append([]model.CustomerEvent(nil), s.stored...)
}

func eventMsg(t *testing.T, offset int64, id string) kafka.Message {
	t.Helper()
	raw, err := json.Marshal(model.CustomerEvent{
		ID: id, CustomerID: "01C1", BrokerID: "01B", ActorID: "01B",
		Type: model.EventCustomerCreated, ToStatus: model.StatusPending, OccurredAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	return kafka.Message{Offset: offset, Value: raw}
}

type harness struct {
	src  *fakeSource
	sink *fakeSink
	log  *[]string
	w    *EventIngest
}

func newHarness(batchSize int, wait time.Duration) *harness {
	log := &[]string{}
	src := newFakeSource(log)
	sink := &fakeSink{log: log, src: src}
	w := NewEventIngest(src, sink, nil)
	w.BatchSize = batchSize
	w.BatchWait = wait
	w.RetryWait = 5 * time.Millisecond
	return &harness{src: src, sink: sink, log: log, w: w}
}

func (h *harness) start(t *testing.T) (cancel func()) {
	ctx, cancelCtx := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.w.Run(ctx) }()
	return func() {
		cancelCtx()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("worker did not stop")
		}
	}
}

func TestEventIngest_FlushOnSize(t *testing.T) {
	h := newHarness(2, time.Hour)
	stop := h.start(t)
	defer stop()

	h.src.ch <- eventMsg(t, 1, "01E1")
	h.src.ch <- eventMsg(t, 2, "01E2")

	require.Eventually(t, func() bool { return len(h.src.Committed()) == 2 }, time.Second, 5*time.Millisecond)
	assert.Len(t, h.sink.Stored(), 2)
	assert.Equal(t, []int64{1, 2}, h.src.Committed())
}

func TestEventIngest_FlushOnTimer(t *testing.T) {
	h := newHarness(100, 20*time.Millisecond)
	stop := h.start(t)
	defer stop()

	h.src.ch <- eventMsg(t, 7, "01E7")

	require.Eventually(t, func() bool { return len(h.sink.Stored()) == 1 }, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return len(h.src.Committed()) == 1 }, time.Second, 5*time.Millisecond)
}

func TestEventIngest_SkipsPoisonButCommitsIt(t *testing.T) {
	h := newHarness(3, time.Hour)
	stop := h.start(t)
	defer stop()

	h.src.ch <- kafka.Message{Offset: 1, Value: []byte("{not json")}
	h.src.ch <- kafka.Message{Offset: 2, Value: []byte(`{"id":"x","type":"deleted"}`)}
	h.src.ch <- eventMsg(t, 3, "01E3")

	require.Eventually(t, func() bool { return len(h.src.Committed()) == 3 }, time.Second, 5*time.Millisecond)
	stored := h.sink.Stored()
	require.Len(t, stored, 1)
	assert.Equal(t, "01E3", stored[0].ID)
}

func TestEventIngest_CommitsOnlyAfterInsert(t *testing.T) {
	h := newHarness(1, time.Hour)
	h.sink.failures = 2
	stop := h.start(t)
	defer stop()

	h.src.ch <- eventMsg(t, 1, "01E1")

	require.Eventually(t, func() bool { return len(h.src.Committed()) == 1 }, time.Second, 5*time.Millisecond)

	h.src.mu.Lock()
	defer h.src.mu.Unlock()
	assert.Equal(t, []string{"insert-failed", "insert-failed", "insert", "commit"}, *h.log)
}

func TestEventIngest_FlushesOnShutdown(t *testing.T) {
	h := newHarness(100, time.Hour)
	stop := h.start(t)

	h.src.ch <- eventMsg(t, 1, "01E1")
	require.Eventually(t, func() bool { return len(h.src.ch) == 0 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond) // let Run pick it off the channel

	stop()
	assert.Len(t, h.sink.Stored(), 1)
	assert.Equal(t, []int64{1}, h.src.Committed())
}

func TestEventIngest_RequiresDeps(t *testing.T) {
	err := (&EventIngest{}).Run(context.Background())
	assert.Error(t, err)
}

func TestDecodeEvent_StringWrapped(t *testing.T) {
	inner := `{"id":"01E1","customerId":"01C1","brokerId":"01B","actorId":"01B","type":"status_changed","fromStatus":"pending","toStatus":"active","occurredAt":"2024-05-01T10:00:00Z"}`
	wrapped, err := json.Marshal(inner)
	require.NoError(t, err)

	for _, raw := range [][]byte{[]byte(inner), wrapped} {
		ev, err := decodeEvent(raw)
		require.NoError(t, err)
		assert.Equal(t, model.EventCustomerStatusChanged, ev.Type)
		assert.Equal(t, model.StatusPending, ev.FromStatus)
		assert.Equal(t, model.StatusActive, ev.ToStatus)
	}
}
