package migrations

import (
	"io/fs"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedFiles(t *testing.T) {
	for _, dir := range []string{"mysql", "clickhouse"} {
		matches, err := fs.Glob(files, dir+"/*.sql")
		require.NoError(t, err)
		assert.NotEmpty(t, matches, "no migrations embedded for %s", dir)
	}
}

func TestNewProvider_CollectsSources(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	for _, target := range []Target{MySQL, ClickHouse} {
		p, err := NewProvider(db, target)
		require.NoError(t, err, target)
		assert.Len(t, p.ListSources(), 1, target)
	}
}

func TestNewProvider_UnknownTarget(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, err = NewProvider(db, Target("postgres"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown migration target")
}
