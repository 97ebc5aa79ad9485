package repository

import (
	"context"
	"fmt"

	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/model"
	"github.com/jmoiron/sqlx"
)

const (
	DefaultEventsLimit = 50
	MaxEventsLimit     = 500
)

// CHEventsRepository reads and writes the customer event history in ClickHouse.
type CHEventsRepository interface {
	ListByCustomer(ctx context.Context, customerID string, limit int) ([]model.CustomerEvent, error)
	InsertBatch(ctx context.Context, events []model.CustomerEvent) error
}

type chEventsRepository struct {
	ch *sqlx.DB // ClickHouse connection
}

func NewCHEventsRepository(ch *sqlx.DB) CHEventsRepository {
	return &chEventsRepository{ch: ch}
}

// ListByCustomer returns events newest first. FINAL collapses duplicates
// left behind by at-least-once ingestion.
func (r *chEventsRepository) ListByCustomer(ctx context.Context, customerID string, limit int) ([]model.CustomerEvent, error) {
	if limit <= 0 {
		limit = DefaultEventsLimit
	}
	if limit > MaxEventsLimit {
		limit = MaxEventsLimit
	}

	const q = `
		SELECT id, customer_id, broker_id, actor_id, type, from_status, to_status, occurred_at
		FROM customer_events FINAL
		WHERE customer_id = ?
		ORDER BY occurred_at DESC, id DESC
		LIMIT ?
	`
	rows := make([]model.CustomerEvent, 0)
	if err := r.ch.SelectContext(ctx, &rows, q, customerID, limit); err != nil {
		return nil, err
	}
	return rows, nil
}

// InsertBatch sends all events as one ClickHouse block: the driver buffers
// the prepared statement's rows and flushes them on Commit.
func (r *chEventsRepository) InsertBatch(ctx context.Context, events []model.CustomerEvent) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := r.ch.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO customer_events
		    (id, customer_id, broker_id, actor_id, type, from_status, to_status, occurred_at)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}
	defer stmt.Close()

	for _, ev := range events {
		if _, err := stmt.ExecContext(ctx,
			ev.ID, ev.CustomerID, ev.BrokerID, ev.ActorID,
			string(ev.Type), string(ev.FromStatus), string(ev.ToStatus), ev.OccurredAt.UTC(),
		); err != nil {
			return fmt.Errorf("append event %s: %w", ev.ID, err)
		}
	}

	return tx.Commit()
}
