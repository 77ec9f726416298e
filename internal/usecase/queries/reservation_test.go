//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"slot-booking/internal/domain/reservation"
	"slot-booking/internal/domain/slot"
	"slot-booking/internal/infra/memstore"
	"slot-booking/internal/pkg/clock"
	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/usecase/ledger"
	"slot-booking/internal/usecase/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListBySlotRange(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewReservationStore()
	l := ledger.New(store, store, clock.NewMockClock(time.Now()), ledger.Options{})
	q := queries.NewReservationQueries(l)

	require.NoError(t, l.Reserve(ctx, "o1", []slot.ID{"2025-08-04-09", "2025-08-04-10"}, 2))
	require.NoError(t, l.Reserve(ctx, "o2", []slot.ID{"2025-08-06-15"}, 1))

	t.Run("returns records in the inclusive range ordered by slot", func(t *testing.T) {
		got, err := q.ListBySlotRange(ctx, "2025-08-04-10", "2025-08-06-15")
		require.NoError(t, err)

		want := []slot.ID{"2025-08-04-10", "2025-08-06-15"}
		if diff := cmp.Diff(want, slotIDs(got)); diff != "" {
			t.Errorf("ListBySlotRange mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("rejects malformed bounds", func(t *testing.T) {
		for _, bounds := range [][2]string{{"", "2025-08-04-10"}, {"2025-08-04-10", ""}, {"2025-08-04", "2025-08-05-10"}} {
			_, err := q.ListBySlotRange(ctx, bounds[0], bounds[1])
			assert.Equal(t, errs.KindFormat, errs.KindOf(err), bounds)
		}
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		_, err := q.ListBySlotRange(ctx, "2025-08-05-10", "2025-08-04-10")
		assert.Equal(t, errs.KindFormat, errs.KindOf(err))
	})
}

func slotIDs(records []*reservation.Record) []slot.ID {
	out := make([]slot.ID, 0, len(records))
	for _, r := range records {
		out = append(out, r.Slot())
	}
	return out
}
