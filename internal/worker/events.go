package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/kafka"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/metrics"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/model"
	"go.uber.org/zap"
)

const shutdownGrace = 5 * time.Second

// MessageSource is the part of kafka.Consumer the worker needs.
type MessageSource interface {
	Fetch(ctx context.Context) (kafka.Message, error)
	Commit(ctx context.Context, msgs ...kafka.Message) error
}

// EventSink stores decoded customer events (ClickHouse in production).
type EventSink interface {
	InsertBatch(ctx context.Context, events []model.CustomerEvent) error
}

// EventIngest:
// - fetches customer events from Kafka,
// - batches them by size/time,
// - writes each batch to the sink and commits offsets only after it is stored.
//
// Delivery is at-least-once; the sink must tolerate replays.
type EventIngest struct {
	Source MessageSource
	Sink   EventSink
	Log    *zap.Logger

	BatchSize int           // max messages per flush
	BatchWait time.Duration // max time a message waits before flush
	RetryWait time.Duration // pause between failed inserts
}

func NewEventIngest(src MessageSource, sink EventSink, lg *zap.Logger) *EventIngest {
	return &EventIngest{
		Source:    src,
		Sink:      sink,
		Log:       lg,
		BatchSize: 500,
		BatchWait: time.Second,
		RetryWait: time.Second,
	}
}

// Run blocks until ctx is cancelled. Pending messages are flushed on the way out.
func (w *EventIngest) Run(ctx context.Context) error {
	if w.Source == nil || w.Sink == nil {
		return errors.New("event-ingest: source and sink are required")
	}
	if w.Log == nil {
		w.Log = zap.NewNop()
	}
	if w.BatchSize <= 0 {
		w.BatchSize = 500
	}
	if w.BatchWait <= 0 {
		w.BatchWait = time.Second
	}
	if w.RetryWait <= 0 {
		w.RetryWait = time.Second
	}

	in := make(chan kafka.Message, w.BatchSize)
	go w.fetch(ctx, in)

	tick := time.NewTicker(w.BatchWait)
	defer tick.Stop()

	batch := make([]kafka.Message, 0, w.BatchSize)
	flush := func(ctx context.Context) {
		if len(batch) == 0 {
			return
		}
		if err := w.flush(ctx, batch); err != nil {
			// not committed: redelivered after restart/rebalance
			w.Log.Warn("event-ingest: batch left uncommitted", zap.Int("size", len(batch)), zap.Error(err))
		}
		batch = batch[:0]
	}

	for {
		select {
		case <-ctx.Done():
			graceCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownGrace)
			flush(graceCtx)
			cancel()
			return nil

		case m := <-in:
			batch = append(batch, m)
			if len(batch) >= w.BatchSize {
				flush(ctx)
			}

		case <-tick.C:
			flush(ctx)
		}
	}
}

func (w *EventIngest) fetch(ctx context.Context, out chan<- kafka.Message) {
	for {
		m, err := w.Source.Fetch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.Log.Warn("event-ingest: kafka fetch", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(200 * time.Millisecond):
			}
			continue
		}
		select {
		case out <- m:
		case <-ctx.Done():
			return
		}
	}
}

// flush decodes the batch, stores the valid events (retrying until success or
// ctx ends) and then commits every offset, poison messages included.
func (w *EventIngest) flush(ctx context.Context, batch []kafka.Message) error {
	events := make([]model.CustomerEvent, 0, len(batch))
	for _, m := range batch {
		ev, err := decodeEvent(m.Value)
		if err != nil {
			metrics.WorkerEventsIngested.WithLabelValues("skipped").Inc()
			w.Log.Warn("event-ingest: skipping bad message",
				zap.Int("partition", m.Partition), zap.Int64("offset", m.Offset), zap.Error(err))
			continue
		}
		events = append(events, ev)
	}

	for len(events) > 0 {
		start := time.Now()
		err := w.Sink.InsertBatch(ctx, events)
		metrics.WorkerFlushDuration.Observe(time.Since(start).Seconds())
		if err == nil {
			metrics.WorkerEventsIngested.WithLabelValues("stored").Add(float64(len(events)))
			break
		}

		metrics.WorkerEventsIngested.WithLabelValues("failed").Add(float64(len(events)))
		w.Log.Error("event-ingest: insert batch", zap.Int("size", len(events)), zap.Error(err))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.RetryWait):
		}
	}

	if err := w.Source.Commit(ctx, batch...); err != nil {
		return err
	}
	w.Log.Debug("event-ingest: flushed", zap.Int("messages", len(batch)), zap.Int("events", len(events)))
	return nil
}

var errIncompleteEvent = errors.New("incomplete customer event")

// decodeEvent accepts the outbox payload either as a JSON object or, as some
// Debezium converter setups emit it, as a JSON string holding that object.
func decodeEvent(raw []byte) (model.CustomerEvent, error) {
	var ev model.CustomerEvent
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ev, err
		}
		raw = []byte(s)
	}
	if err := json.Unmarshal(raw, &ev); err != nil {
		return ev, err
	}
	if ev.ID == "" || ev.CustomerID == "" || !ev.Type.Valid() || !ev.ToStatus.Valid() {
		return ev, errIncompleteEvent
	}
	return ev, nil
}
