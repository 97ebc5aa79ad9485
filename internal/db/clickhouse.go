package db

import (
	"fmt"
	"time"

	_ "github.com/ClickHouse/clickhouse-go/v2"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/config"
	"github.com/jmoiron/sqlx"
)

// NewClickHouseConnection opens the event-history store,
// e.g. clickhouse://default:@localhost:9000/clearbroker?dial_timeout=5s
func NewClickHouseConnection(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("empty ClickHouse DSN")
	}
	return open("clickhouse", cfg, 3*time.Second)
}
