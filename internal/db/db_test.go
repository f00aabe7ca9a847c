package db_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobmate/recruitment-service/internal/db"
)

func TestOpenSQLite_AppliesSchema(t *testing.T) {
	conn, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	defer conn.Close()

	for _, table := range []string{"candidate", "JobOffer", "CandidateJobOffers"} {
		var n int
		err := conn.Get(&n, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = $1`, table)
		require.NoError(t, err)
		assert.Equal(t, 1, n, "table %s missing", table)
	}
}

func TestOpenSQLite_SchemaIsIdempotent(t *testing.T) {
	conn, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Exec(db.SQLiteSchema)
	assert.NoError(t, err)
}

func TestOpenSQLite_SingleConnectionWithBusyTimeout(t *testing.T) {
	conn, err := db.OpenSQLite("file:" + filepath.Join(t.TempDir(), "recruitment.db"))
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, 1, conn.Stats().MaxOpenConnections)

	var timeout int
	require.NoError(t, conn.Get(&timeout, `PRAGMA busy_timeout`))
	assert.Equal(t, int(db.SQLiteBusyTimeout.Milliseconds()), timeout)
}

func TestOpenSQLite_WriterWaitsForOpenTransaction(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "recruitment.db")
	holder, err := db.OpenSQLite(dsn)
	require.NoError(t, err)
	defer holder.Close()
	other, err := db.OpenSQLite(dsn)
	require.NoError(t, err)
	defer other.Close()

	insert := `INSERT INTO JobOffer (title, description, salary_range, location) VALUES ($1, $2, $3, $4)`

	tx, err := holder.Beginx()
	require.NoError(t, err)
	_, err = tx.Exec(insert, "Held", "", "", "")
	require.NoError(t, err)

	done := make(chan error, 2)
	go func() {
		_, err := holder.Exec(insert, "Same process", "", "", "")
		done <- err
	}()
	go func() {
		_, err := other.Exec(insert, "Other handle", "", "", "")
		done <- err
	}()

	time.Sleep(200 * time.Millisecond)
	require.NoError(t, tx.Commit())

	for i := 0; i < 2; i++ {
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(10 * time.Second):
			t.Fatal("writer still blocked after commit")
		}
	}

	var n int
	require.NoError(t, holder.Get(&n, `SELECT COUNT(*) FROM JobOffer`))
	assert.Equal(t, 3, n)
}

func TestIsUniqueViolation_SQLite(t *testing.T) {
	conn, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	defer conn.Close()

	insert := `INSERT INTO candidate (first_name, last_name, email) VALUES ($1, $2, $3)`
	_, err = conn.Exec(insert, "John", "Doe", "john@example.com")
	require.NoError(t, err)

	_, err = conn.Exec(insert, "Jane", "Doe", "john@example.com")
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err))
	assert.True(t, db.IsUniqueViolation(fmt.Errorf("insert candidate: %w", err)))
}

func TestIsUniqueViolation_Postgres(t *testing.T) {
	assert.True(t, db.IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, db.IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
}

func TestIsUniqueViolation_Other(t *testing.T) {
	assert.False(t, db.IsUniqueViolation(nil))
	assert.False(t, db.IsUniqueViolation(fmt.Errorf("boom")))
}

func TestNewRedisClient_EmptyURLDisables(t *testing.T) {
	rdb, err := db.NewRedisClient(context.Background(), "")
	assert.NoError(t, err)
	assert.Nil(t, rdb)
}

func TestNewRedisClient_BadURL(t *testing.T) {
	_, err := db.NewRedisClient(context.Background(), "not-a-redis-url")
	assert.Error(t, err)
}
