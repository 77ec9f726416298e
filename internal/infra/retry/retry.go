package retry

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"log/slog"
	"time"

	"slot-booking/internal/pkg/errs"
)

var ErrMaxRetriesExceeded = errs.New("operation failed after max retries")

type Policy struct {
	// MaxRetries is the number of re-runs after the first attempt.
	MaxRetries int
	Base       time.Duration
}

var DefaultPolicy = Policy{MaxRetries: 3, Base: 100 * time.Millisecond}

// Do runs fn until it succeeds, fails with a non-retryable error, or the
// policy is exhausted. The last error is returned marked with
// ErrMaxRetriesExceeded when retries run out.
func Do(ctx context.Context, p Policy, retryable func(error) bool, fn func(attempt int) error) error {
	var err error
	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		err = fn(attempt)
		if err == nil {
			return nil
		}
		if !retryable(err) {
			return err
		}
		if attempt == p.MaxRetries {
			break
		}

		wait := Backoff(attempt, p.Base)
		slog.Warn("retrying after retryable error",
			"attempt", attempt+1,
			"wait_ms", wait.Milliseconds(),
			"error", err.Error())

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return errs.Wrap(ctx.Err(), err.Error())
		case <-timer.C:
		}
	}

	slog.Error("operation failed after max retries",
		"attempts", p.MaxRetries+1,
		"error", err.Error())
	return errs.Mark(err, ErrMaxRetriesExceeded)
}

// Backoff doubles base per attempt and adds up to 20% jitter.
func Backoff(attempt int, base time.Duration) time.Duration {
	wait := time.Duration(1<<attempt) * base
	return wait + time.Duration(cryptoRandInt63n(int64(wait/5)))
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- high bit masked above
	return int64(uval) % n
}
