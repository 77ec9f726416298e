package infra

import (
	"errors"
	"log/slog"

	"slot-booking/internal/pkg/errs"
)

type RepositoryErrorKind string

// RepositoryError carries the backend that failed so logs and callers can
// tell a Postgres outage from a Redis one.
type RepositoryError struct {
	Kind    RepositoryErrorKind
	Backend string
	msg     string
	err     error
}

func (e RepositoryError) Error() string {
	prefix := string(e.Kind)
	if e.Backend != "" {
		prefix = e.Backend + " " + prefix
	}
	if e.err != nil {
		return prefix + ": " + e.msg + ": " + e.err.Error()
	}
	return prefix + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

// WrapRepoErr logs and wraps a backend error. Every kind except NOT_FOUND is
// also marked as a store failure.
func WrapRepoErr(slogger *slog.Logger, backend string, kind RepositoryErrorKind, msg string, err error) error {
	slogger.Error("Repository error: "+msg,
		slog.String("backend", backend),
		slog.String("kind", string(kind)),
		slog.Any("error", err),
	)

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	repoErr := RepositoryError{Kind: kind, Backend: backend, msg: msg, err: err}
	if kind == KindNotFound {
		return repoErr
	}
	return errs.Mark(repoErr, errs.ErrStoreFailure)
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

const (
	KindNotFound     RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure    RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey RepositoryErrorKind = "DUPLICATE_KEY"
	KindTimeout      RepositoryErrorKind = "TIMEOUT"
)

const (
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)
