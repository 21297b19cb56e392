package postgres

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigurePool(t *testing.T) {
	// sql.Open validates the DSN lazily, so no database is needed here.
	db, err := sql.Open("postgres", "host=localhost dbname=goalcompass sslmode=disable")
	require.NoError(t, err)
	defer db.Close()

	configurePool(db)
	assert.Equal(t, maxOpenConns, db.Stats().MaxOpenConnections)
}
