//go:build unit

package mongostore

import (
	"context"
	"errors"
	"testing"
	"time"

	"slot-booking/internal/domain/reservation"
	"slot-booking/internal/domain/slot"
	"slot-booking/internal/infra/retry"
	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/usecase/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestIsTransient(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "write conflict", err: mongo.CommandError{Code: 112, Labels: []string{labelTransientTransaction}}, want: true},
		{name: "unknown commit result is not rerun", err: mongo.CommandError{Labels: []string{"UnknownTransactionCommitResult"}}, want: false},
		{name: "wrapped transient", err: errs.Wrap(mongo.CommandError{Labels: []string{labelTransientTransaction}}, "insert"), want: true},
		{name: "unlabeled command error", err: mongo.CommandError{Code: 2}, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isTransient(tc.err))
		})
	}
}

func TestDocConversion(t *testing.T) {
	createdAt := time.Date(2025, 8, 1, 9, 30, 0, 123456789, time.UTC)
	rec := reservation.NewRecords("owner", []slot.ID{"2025-08-04-09"}, 1, createdAt)[0]

	doc := toDoc(rec)
	assert.Equal(t, "2025-08-04-09", doc.Slot)
	assert.Equal(t, createdAt.Truncate(time.Millisecond), doc.CreatedAt)

	back, err := doc.toRecord()
	require.NoError(t, err)
	assert.Equal(t, rec.ID(), back.ID())
	assert.Equal(t, rec.Slot(), back.Slot())

	_, err = reservationDoc{ID: "not-a-uuid"}.toRecord()
	assert.Error(t, err)
}

var (
	transientErr     = mongo.CommandError{Code: 112, Name: "WriteConflict", Labels: []string{labelTransientTransaction}}
	unknownCommitErr = mongo.CommandError{Code: 91, Name: "ShutdownInProgress", Labels: []string{"UnknownTransactionCommitResult"}}
)

// fakeSession runs the callback the way the driver does: again while it
// returns a transient error or commitHook reports a transient commit failure,
// then reports commitErr. Commit retries on an unknown result happen inside
// the driver and never reach the callback.
type fakeSession struct {
	commitErr  error
	commitHook func() error
	returned   []error
	ended      bool
}

func (f *fakeSession) WithTransaction(ctx context.Context, fn func(mongo.SessionContext) (interface{}, error), _ ...*options.TransactionOptions) (interface{}, error) {
	sc := mongo.NewSessionContext(ctx, nil)
	for {
		res, err := fn(sc)
		f.returned = append(f.returned, err)
		if err != nil {
			if le, ok := err.(mongo.LabeledError); ok && le.HasErrorLabel(labelTransientTransaction) {
				continue
			}
			return res, err
		}
		if f.commitHook != nil {
			if cerr := f.commitHook(); cerr != nil {
				continue
			}
		}
		return res, f.commitErr
	}
}

func (f *fakeSession) EndSession(context.Context) {
	f.ended = true
}

func newFakeStore(sess *fakeSession, maxRetries int) *Store {
	return &Store{
		policy:       retry.Policy{MaxRetries: maxRetries},
		startSession: func() (txSession, error) { return sess, nil },
	}
}

func TestWithinTransactionRetries(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown commit result never re-runs the body", func(t *testing.T) {
		sess := &fakeSession{commitErr: unknownCommitErr}
		store := newFakeStore(sess, 3)

		calls := 0
		err := store.Within(ctx, func(context.Context, shared.Tx) error {
			calls++
			return nil
		})

		assert.Equal(t, 1, calls)
		require.Error(t, err)
		_, isConflict := reservation.AsConflict(err)
		assert.False(t, isConflict)
		assert.True(t, errs.Is(err, errs.ErrStoreFailure))
		assert.True(t, sess.ended)
	})

	t.Run("commit that lands after an unknown result succeeds once", func(t *testing.T) {
		sess := &fakeSession{}
		store := newFakeStore(sess, 3)

		calls := 0
		err := store.Within(ctx, func(context.Context, shared.Tx) error {
			calls++
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("transient error re-runs the body", func(t *testing.T) {
		sess := &fakeSession{}
		store := newFakeStore(sess, 3)

		calls := 0
		err := store.Within(ctx, func(context.Context, shared.Tx) error {
			calls++
			if calls == 1 {
				return errs.Wrap(transientErr, "check slot")
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 2, calls)
		// The wrapped error reaches the driver as the labeled error itself.
		assert.Equal(t, error(transientErr), sess.returned[0])
	})

	t.Run("transient retries are bounded by the policy", func(t *testing.T) {
		sess := &fakeSession{}
		store := newFakeStore(sess, 2)

		calls := 0
		err := store.Within(ctx, func(context.Context, shared.Tx) error {
			calls++
			return transientErr
		})

		assert.Equal(t, 3, calls)
		assert.Len(t, sess.returned, 4)
		require.Error(t, err)
		assert.True(t, errs.Is(err, retry.ErrMaxRetriesExceeded))
		assert.Equal(t, errs.KindStore, errs.KindOf(err))
	})

	t.Run("transient commit failure re-runs the body within the bound", func(t *testing.T) {
		sess := &fakeSession{}
		store := newFakeStore(sess, 0)
		sess.commitHook = func() error { return transientErr }

		calls := 0
		err := store.Within(ctx, func(context.Context, shared.Tx) error {
			calls++
			return nil
		})

		assert.Equal(t, 1, calls)
		require.Error(t, err)
		assert.True(t, errs.Is(err, retry.ErrMaxRetriesExceeded))
	})

	t.Run("conflict from the body passes through", func(t *testing.T) {
		sess := &fakeSession{}
		store := newFakeStore(sess, 3)

		calls := 0
		err := store.Within(ctx, func(context.Context, shared.Tx) error {
			calls++
			return reservation.NewConflictError("2025-08-04-09")
		})

		assert.Equal(t, 1, calls)
		conflict, ok := reservation.AsConflict(err)
		require.True(t, ok)
		assert.Equal(t, slot.ID("2025-08-04-09"), conflict.Slot)
	})

	t.Run("session start failure is a store failure", func(t *testing.T) {
		store := &Store{startSession: func() (txSession, error) { return nil, errors.New("no servers") }}

		err := store.Within(ctx, func(context.Context, shared.Tx) error {
			t.Fatal("body must not run")
			return nil
		})

		assert.Equal(t, errs.KindStore, errs.KindOf(err))
	})
}
