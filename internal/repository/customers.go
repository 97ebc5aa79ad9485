package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/model"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/util"
	"github.com/jmoiron/sqlx"
)

// CustomersRepository is the access layer for customers. Mutations write a
// customer event to the outbox in the same transaction.
type CustomersRepository interface {
	GetByID(ctx context.Context, id string) (*model.Customer, error)
	ListByBroker(ctx context.Context, brokerID string) ([]model.Customer, error)
	ListAll(ctx context.Context) ([]model.Customer, error)
	// Create stores c with status pending, ignoring c.Status.
	Create(ctx context.Context, c *model.Customer, actorID string) (*model.Customer, error)
	// UpdateStatus returns (nil, nil) if the customer does not exist.
	UpdateStatus(ctx context.Context, id string, status model.CustomerStatus, actorID string) (*model.Customer, error)
}

type CustomersRepositoryImpl struct {
	db     *sqlx.DB
	outbox OutboxRepository
}

func NewCustomersRepository(db *sqlx.DB, outbox OutboxRepository) *CustomersRepositoryImpl {
	return &CustomersRepositoryImpl{db: db, outbox: outbox}
}

var _ CustomersRepository = (*CustomersRepositoryImpl)(nil)

const customerColumns = `id, name, email, gstin, type, status, broker_id, created_at`

func (r *CustomersRepositoryImpl) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	var c model.Customer
	err := r.db.GetContext(ctx, &c, `SELECT `+customerColumns+` FROM customers WHERE id = ? LIMIT 1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select customer: %w", err)
	}
	return &c, nil
}

func (r *CustomersRepositoryImpl) ListByBroker(ctx context.Context, brokerID string) ([]model.Customer, error) {
	out := make([]model.Customer, 0)
	err := r.db.SelectContext(ctx, &out, `
		SELECT `+customerColumns+`
		  FROM customers
		 WHERE broker_id = ?
		 ORDER BY id
	`, brokerID)
	if err != nil {
		return nil, fmt.Errorf("select customers by broker: %w", err)
	}
	return out, nil
}

func (r *CustomersRepositoryImpl) ListAll(ctx context.Context) ([]model.Customer, error) {
	out := make([]model.Customer, 0)
	if err := r.db.SelectContext(ctx, &out, `SELECT `+customerColumns+` FROM customers ORDER BY id`); err != nil {
		return nil, fmt.Errorf("select customers: %w", err)
	}
	return out, nil
}

func (r *CustomersRepositoryImpl) Create(ctx context.Context, c *model.Customer, actorID string) (*model.Customer, error) {
	out := *c
	if out.ID == "" {
		out.ID = util.NewID()
	}
	out.Status = model.StatusPending
	out.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	err := withTx(ctx, r.db, nil, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO customers
			    (id, name, email, gstin, type, status, broker_id, created_at)
			VALUES
			    (?, ?, ?, ?, ?, ?, ?, ?)
		`, out.ID, out.Name, out.Email, out.GSTIN, out.Type, out.Status, out.BrokerID, out.CreatedAt); err != nil {
			return fmt.Errorf("insert customer: %w", err)
		}

		return r.emit(ctx, tx, model.CustomerEvent{
			CustomerID: out.ID,
			BrokerID:   out.BrokerID,
			ActorID:    actorID,
			Type:       model.EventCustomerCreated,
			ToStatus:   out.Status,
			OccurredAt: out.CreatedAt,
		})
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *CustomersRepositoryImpl) UpdateStatus(ctx context.Context, id string, status model.CustomerStatus, actorID string) (*model.Customer, error) {
	var updated *model.Customer

	err := withTx(ctx, r.db, nil, func(tx *sqlx.Tx) error {
		var cur model.Customer
		err := tx.GetContext(ctx, &cur, `SELECT `+customerColumns+` FROM customers WHERE id = ? FOR UPDATE`, id)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("lock customer: %w", err)
		}

		updated = &cur
		if cur.Status == status {
			return nil
		}

		if _, err := tx.ExecContext(ctx, `UPDATE customers SET status = ? WHERE id = ?`, status, id); err != nil {
			return fmt.Errorf("update customer status: %w", err)
		}

		from := cur.Status
		updated.Status = status
		return r.emit(ctx, tx, model.CustomerEvent{
			CustomerID: cur.ID,
			BrokerID:   cur.BrokerID,
			ActorID:    actorID,
			Type:       model.EventCustomerStatusChanged,
			FromStatus: from,
			ToStatus:   status,
			OccurredAt: time.Now().UTC().Truncate(time.Millisecond),
		})
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *CustomersRepositoryImpl) emit(ctx context.Context, tx *sqlx.Tx, ev model.CustomerEvent) error {
	ev.ID = util.NewID()
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal customer event: %w", err)
	}

	if err := r.outbox.Insert(ctx, tx, model.OutboxEvent{
		Aggregate:   model.AggregateCustomer,
		AggregateID: ev.CustomerID,
		Topic:       model.CustomerEventsTopic,
		Payload:     payload,
	}); err != nil {
		return fmt.Errorf("insert outbox: %w", err)
	}
	return nil
}
