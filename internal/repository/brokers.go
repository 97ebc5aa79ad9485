package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/model"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/util"
	"github.com/jmoiron/sqlx"
)

// BrokersRepository is the access layer for broker accounts.
// Lookups return (nil, nil) when the broker does not exist.
type BrokersRepository interface {
	GetByID(ctx context.Context, id string) (*model.Broker, error)
	GetByEmail(ctx context.Context, email string) (*model.Broker, error)
	Create(ctx context.Context, b *model.Broker) (*model.Broker, error)
	ListWithCustomerCount(ctx context.Context) ([]model.BrokerWithCount, error)
}

type BrokersRepositoryImpl struct {
	db *sqlx.DB
}

func NewBrokersRepository(db *sqlx.DB) *BrokersRepositoryImpl {
	return &BrokersRepositoryImpl{db: db}
}

var _ BrokersRepository = (*BrokersRepositoryImpl)(nil)

const brokerColumns = `id, name, email, password, company_name, is_admin, created_at`

func (r *BrokersRepositoryImpl) GetByID(ctx context.Context, id string) (*model.Broker, error) {
	return r.getOne(ctx, `SELECT `+brokerColumns+` FROM brokers WHERE id = ? LIMIT 1`, id)
}

func (r *BrokersRepositoryImpl) GetByEmail(ctx context.Context, email string) (*model.Broker, error) {
	return r.getOne(ctx, `SELECT `+brokerColumns+` FROM brokers WHERE email = ? LIMIT 1`, email)
}

func (r *BrokersRepositoryImpl) getOne(ctx context.Context, q string, arg any) (*model.Broker, error) {
	var b model.Broker
	err := r.db.GetContext(ctx, &b, q, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select broker: %w", err)
	}
	return &b, nil
}

// Create inserts b (PasswordHash must already be hashed). ID and CreatedAt
// are assigned here. A concurrent registration that wins the unique index
// race surfaces as ErrDuplicateEmail.
func (r *BrokersRepositoryImpl) Create(ctx context.Context, b *model.Broker) (*model.Broker, error) {
	out := *b
	if out.ID == "" {
		out.ID = util.NewID()
	}
	out.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO brokers
		    (id, name, email, password, company_name, is_admin, created_at)
		VALUES
		    (?, ?, ?, ?, ?, ?, ?)
	`, out.ID, out.Name, out.Email, out.PasswordHash, out.CompanyName, out.IsAdmin, out.CreatedAt)
	if isDuplicateKey(err) {
		return nil, ErrDuplicateEmail
	}
	if err != nil {
		return nil, fmt.Errorf("insert broker: %w", err)
	}
	return &out, nil
}

// ListWithCustomerCount returns every non-admin broker with its customer
// count in one aggregation query. Password hashes are not selected.
func (r *BrokersRepositoryImpl) ListWithCustomerCount(ctx context.Context) ([]model.BrokerWithCount, error) {
	const q = `
		SELECT b.id, b.name, b.email, b.company_name, b.is_admin, b.created_at,
		       COUNT(c.id) AS customer_count
		  FROM brokers b
		  LEFT JOIN customers c ON c.broker_id = b.id
		 WHERE b.is_admin = 0
		 GROUP BY b.id, b.name, b.email, b.company_name, b.is_admin, b.created_at
		 ORDER BY b.id
	`
	rows := make([]model.BrokerWithCount, 0)
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fmt.Errorf("select brokers with count: %w", err)
	}
	return rows, nil
}
