package reservation

import (
	"fmt"

	"slot-booking/internal/domain/slot"
	"slot-booking/internal/pkg/errs"
)

// ConflictError reports the first slot found already reserved.
type ConflictError struct {
	Slot slot.ID
}

func NewConflictError(s slot.ID) *ConflictError {
	return &ConflictError{Slot: s}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("Time slot %s is already booked", e.Slot)
}

func (e *ConflictError) Unwrap() error {
	return errs.ErrSlotConflict
}

// AsConflict extracts the ConflictError from a wrapped chain.
func AsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errs.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
