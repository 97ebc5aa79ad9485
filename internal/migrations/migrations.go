// Package migrations embeds the schema for the primary store (MySQL) and the
// event history store (ClickHouse) and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed mysql/*.sql clickhouse/*.sql
var files embed.FS

// Target selects one of the embedded migration sets.
type Target string

const (
	MySQL      Target = "mysql"
	ClickHouse Target = "clickhouse"
)

func (t Target) dialect() (goose.Dialect, error) {
	switch t {
	case MySQL:
		return goose.DialectMySQL, nil
	case ClickHouse:
		return goose.DialectClickHouse, nil
	default:
		return "", fmt.Errorf("unknown migration target %q", t)
	}
}

// NewProvider returns a goose provider bound to db for the given target.
func NewProvider(db *sql.DB, t Target) (*goose.Provider, error) {
	dialect, err := t.dialect()
	if err != nil {
		return nil, err
	}
	sub, err := fs.Sub(files, string(t))
	if err != nil {
		return nil, err
	}
	return goose.NewProvider(dialect, db, sub)
}

// Up applies all pending migrations and returns how many ran.
func Up(ctx context.Context, db *sql.DB, t Target) (int, error) {
	p, err := NewProvider(db, t)
	if err != nil {
		return 0, fmt.Errorf("goose provider: %w", err)
	}
	results, err := p.Up(ctx)
	if err != nil {
		return len(results), fmt.Errorf("goose up (%s): %w", t, err)
	}
	return len(results), nil
}
