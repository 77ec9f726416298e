package errs

import "errors"

// Domain-specific sentinel errors shared by the usecase layers
var (
	// Slot errors
	ErrSlotFormat           = errors.New("malformed slot request")
	ErrOutsideBusinessHours = errors.New("outside business hours")

	// Reservation errors
	ErrSlotConflict = errors.New("slot already reserved")

	// Store errors
	ErrStoreFailure = errors.New("store operation failed")
	ErrStoreTimeout = errors.New("store operation timed out")

	// Notification errors
	ErrNotifyFailed = errors.New("notification delivery failed")

	// Identity errors
	ErrAccountNotFound = errors.New("account not found")
	ErrTokenIssue      = errors.New("token issue failed")
)

// Kind classifies an error so callers can branch without parsing messages.
type Kind string

const (
	KindFormat     Kind = "FORMAT"
	KindOutOfHours Kind = "OUT_OF_HOURS"
	KindConflict   Kind = "CONFLICT"
	KindStore      Kind = "STORE"
	KindNotify     Kind = "NOTIFY"
	KindUnknown    Kind = "UNKNOWN"
)

func (k Kind) String() string {
	return string(k)
}

// Conflict is checked before store errors: a conflict detected inside a
// transaction is an expected outcome even if the transaction also failed.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case Is(err, ErrSlotFormat):
		return KindFormat
	case Is(err, ErrOutsideBusinessHours):
		return KindOutOfHours
	case Is(err, ErrSlotConflict):
		return KindConflict
	case Is(err, ErrStoreFailure), Is(err, ErrStoreTimeout):
		return KindStore
	case Is(err, ErrNotifyFailed):
		return KindNotify
	default:
		return KindUnknown
	}
}
