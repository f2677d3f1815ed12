package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_CreatesSchemaIdempotently(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	// running the schema again must not fail
	_, err = db.Exec(schema)
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM trades`).Scan(&count))
	assert.Equal(t, 0, count)
}

func TestOpen_UniqueHashPerUser(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	insert := `INSERT INTO trades (id, user_id, instrument, side, quantity, entry_date, close_date, source, hash_id) VALUES (?, ?, 'EURUSD', 'BUY', 1, 'a', 'b', 'matchtrader', ?)`
	_, err = db.Exec(insert, "t1", "u1", "h1")
	require.NoError(t, err)
	_, err = db.Exec(insert, "t2", "u2", "h1")
	require.NoError(t, err, "same hash for another user is allowed")

	_, err = db.Exec(insert, "t3", "u1", "h1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNIQUE constraint failed")
}
