//go:build unit || e2e

package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// InsertReservation writes one record directly, bypassing the ledger.
func InsertReservation(t *testing.T, db DBLike, ownerID, slotID string, durationHours int) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO reservations (id, owner_id, slot, duration_hours, created_at) VALUES ($1, $2, $3, $4, $5)",
		id, ownerID, slotID, durationHours, time.Now().UTC())
	require.NoError(t, err)
	return id
}

func CountReservations(t *testing.T, db DBLike) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM reservations").Scan(&n)
	require.NoError(t, err)
	return n
}

func OwnersOfSlot(t *testing.T, pool *pgxpool.Pool, slotID string) []string {
	t.Helper()

	rows, err := pool.Query(context.Background(), "SELECT owner_id FROM reservations WHERE slot = $1", slotID)
	require.NoError(t, err)
	defer rows.Close()

	var owners []string
	for rows.Next() {
		var o string
		require.NoError(t, rows.Scan(&o))
		owners = append(owners, o)
	}
	require.NoError(t, rows.Err())
	return owners
}

// ResetDB empties every table the service owns.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx, "TRUNCATE reservations, accounts")
	return err
}
