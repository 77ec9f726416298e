//go:build e2e

package mongostore_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"slot-booking/internal/domain/slot"
	"slot-booking/internal/infra/mongostore"
	"slot-booking/internal/infra/retry"
	"slot-booking/internal/pkg/clock"
	"slot-booking/internal/pkg/config"
	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/usecase/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Needs a replica set, e.g. MONGO_TEST_URI=mongodb://localhost:27017/?replicaSet=rs0
func TestMongoStoreNoDoubleBooking(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx := context.Background()

	client, err := mongostore.Connect(ctx, config.MongoConfig{URI: uri, ConnTimeout: 10 * time.Second})
	require.NoError(t, err)
	dbName := fmt.Sprintf("slot_booking_test_%d", time.Now().UnixNano())
	t.Cleanup(func() {
		_ = client.Database(dbName).Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	store := mongostore.NewStore(client, dbName, retry.Policy{MaxRetries: 8, Base: 20 * time.Millisecond})
	require.NoError(t, store.EnsureIndexes(ctx))
	l := ledger.New(store, store, clock.NewRealClock(), ledger.Options{})

	const n = 10
	var wg sync.WaitGroup
	results := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = l.Reserve(ctx, fmt.Sprintf("owner-%d", i), []slot.ID{"2025-08-04-09", "2025-08-04-10"}, 2)
		}()
	}
	wg.Wait()

	success := 0
	for _, err := range results {
		if err == nil {
			success++
			continue
		}
		assert.Equal(t, errs.KindConflict, errs.KindOf(err), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, success)

	got, err := store.FindBySlotRange(ctx, "2025-08-04-00", "2025-08-04-23")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, got[0].OwnerID(), got[1].OwnerID())
}
