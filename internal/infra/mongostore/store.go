package mongostore

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"slot-booking/internal/domain/reservation"
	"slot-booking/internal/domain/slot"
	"slot-booking/internal/infra"
	"slot-booking/internal/infra/retry"
	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

const (
	CollectionName = "reservations"

	labelTransientTransaction = "TransientTransactionError"
)

type reservationDoc struct {
	ID            string    `bson:"_id"`
	OwnerID       string    `bson:"owner_id"`
	Slot          string    `bson:"slot"`
	DurationHours int       `bson:"duration_hours"`
	CreatedAt     time.Time `bson:"created_at"`
}

func toDoc(rec *reservation.Record) reservationDoc {
	return reservationDoc{
		ID:            rec.ID().String(),
		OwnerID:       rec.OwnerID(),
		Slot:          string(rec.Slot()),
		DurationHours: rec.DurationHours(),
		CreatedAt:     rec.CreatedAt().UTC().Truncate(time.Millisecond),
	}
}

func (d reservationDoc) toRecord() (*reservation.Record, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, errs.Wrap(err, "invalid reservation id")
	}
	return reservation.ReconstructRecord(id, d.OwnerID, slot.ID(d.Slot), d.DurationHours, d.CreatedAt), nil
}

// txSession is the part of mongo.Session used to run a transaction.
type txSession interface {
	WithTransaction(ctx context.Context, fn func(mongo.SessionContext) (interface{}, error), opts ...*options.TransactionOptions) (interface{}, error)
	EndSession(ctx context.Context)
}

// Store keeps one document per reserved slot. A unique index on slot backs
// the in-transaction existence check.
type Store struct {
	coll         *mongo.Collection
	policy       retry.Policy
	startSession func() (txSession, error)
}

func NewStore(client *mongo.Client, database string, policy retry.Policy) *Store {
	return &Store{
		coll:   client.Database(database).Collection(CollectionName),
		policy: policy,
		startSession: func() (txSession, error) {
			sess, err := client.StartSession()
			if err != nil {
				return nil, err
			}
			return sess, nil
		},
	}
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slot", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("slot_unique"),
	})
	if err != nil {
		return errs.Wrap(err, "failed to ensure reservation indexes")
	}
	return nil
}

// Within runs fn in one snapshot transaction. The driver re-runs fn only on
// TransientTransactionError and retries just the commit on
// UnknownTransactionCommitResult, so a commit that already landed is never
// re-checked against its own documents. fn runs at most policy.MaxRetries+1
// times; ctx bounds the driver's own retry window.
func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	session, err := s.startSession()
	if err != nil {
		return infra.WrapRepoErr(slog.Default(), infra.BackendMongo, infra.KindDBFailure, "failed to start session", err)
	}
	defer session.EndSession(ctx)

	txOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	attempts := 0
	var lastErr error
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if attempts > 0 && lastErr == nil {
			// The body succeeded; the commit failed with a transient error.
			lastErr = errs.New("transient commit failure")
		}
		if attempts > s.policy.MaxRetries {
			// Unlabeled, so the driver stops and aborts.
			return nil, errs.Mark(errs.Newf("mongo transaction gave up after %d attempts: %s", attempts, lastErr.Error()), retry.ErrMaxRetriesExceeded)
		}
		attempts++
		if attempts > 1 {
			slog.Warn("retrying mongo transaction", "attempt", attempts, "error", lastErr.Error())
		}

		lastErr = fn(sc, &mongoTx{coll: s.coll})
		// Hand the driver the labeled error itself so it sees the transient label.
		if labeled, ok := transientLabeled(lastErr); ok {
			return nil, labeled
		}
		return nil, lastErr
	}, txOpts)
	if err == nil {
		return nil
	}

	switch {
	case errs.Is(err, retry.ErrMaxRetriesExceeded):
		slog.Error("mongo transaction failed after max retries", "attempts", attempts, "error", err.Error())
		return errs.Mark(err, errs.ErrStoreFailure)
	case errs.KindOf(err) != errs.KindUnknown:
		return err
	default:
		return infra.WrapRepoErr(slog.Default(), infra.BackendMongo, infra.KindDBFailure, "transaction failed", err)
	}
}

func (s *Store) FindBySlotRange(ctx context.Context, start, end slot.ID) ([]*reservation.Record, error) {
	filter := bson.M{"slot": bson.M{"$gte": string(start), "$lte": string(end)}}
	opts := options.Find().SetSort(bson.D{{Key: "slot", Value: 1}})

	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.BackendMongo, infra.KindDBFailure, "failed to query reservations", err)
	}
	defer cursor.Close(ctx)

	var docs []reservationDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.BackendMongo, infra.KindDBFailure, "failed to decode reservations", err)
	}

	result := make([]*reservation.Record, 0, len(docs))
	for _, d := range docs {
		rec, err := d.toRecord()
		if err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, nil
}

type mongoTx struct {
	coll *mongo.Collection
}

func (t *mongoTx) Reservations() shared.ReservationRepository {
	return t
}

func (t *mongoTx) ExistsBySlot(ctx context.Context, s slot.ID) (bool, error) {
	n, err := t.coll.CountDocuments(ctx, bson.M{"slot": string(s)}, options.Count().SetLimit(1))
	if err != nil {
		if isTransient(err) {
			return false, err
		}
		return false, infra.WrapRepoErr(slog.Default(), infra.BackendMongo, infra.KindDBFailure, "failed to check slot", err)
	}
	return n > 0, nil
}

func (t *mongoTx) Create(ctx context.Context, rec *reservation.Record) error {
	if _, err := t.coll.InsertOne(ctx, toDoc(rec)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return reservation.NewConflictError(rec.Slot())
		}
		if isTransient(err) {
			return err
		}
		return infra.WrapRepoErr(slog.Default(), infra.BackendMongo, infra.KindDBFailure, "failed to insert reservation", err)
	}
	return nil
}

func isTransient(err error) bool {
	_, ok := transientLabeled(err)
	return ok
}

func transientLabeled(err error) (mongo.LabeledError, bool) {
	var labeled mongo.LabeledError
	if !errors.As(err, &labeled) || !labeled.HasErrorLabel(labelTransientTransaction) {
		return nil, false
	}
	return labeled, true
}
