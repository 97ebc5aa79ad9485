package repository

import (
	"context"
	"fmt"

	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/model"
	"github.com/jmoiron/sqlx"
)

type StatsRepository interface {
	Stats(ctx context.Context) (model.Stats, error)
}

type StatsRepositoryImpl struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) *StatsRepositoryImpl {
	return &StatsRepositoryImpl{db: db}
}

var _ StatsRepository = (*StatsRepositoryImpl)(nil)

// Stats computes all four dashboard counters in a single round trip.
// Admin brokers are excluded from total_brokers.
func (r *StatsRepositoryImpl) Stats(ctx context.Context) (model.Stats, error) {
	const q = `
		SELECT
		    (SELECT COUNT(*) FROM brokers WHERE is_admin = 0) AS total_brokers,
		    COUNT(*)                                          AS total_customers,
		    COALESCE(SUM(status = 'active'), 0)               AS active_customers,
		    COALESCE(SUM(status = 'pending'), 0)              AS pending_customers
		  FROM customers
	`
	var s model.Stats
	if err := r.db.GetContext(ctx, &s, q); err != nil {
		return model.Stats{}, fmt.Errorf("select stats: %w", err)
	}
	return s, nil
}
