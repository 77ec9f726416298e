package response

import (
	"time"

	"slot-booking/internal/domain/reservation"
	"slot-booking/internal/domain/slot"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReservationResponse struct {
	ID            uuid.UUID `json:"id"`
	OwnerID       string    `json:"ownerId"`
	Slot          slot.ID   `json:"slot"`
	DurationHours int       `json:"durationHours"`
	CreatedAt     time.Time `json:"createdAt"`
}

type BookResponse struct {
	Success bool `json:"success"`
}

func FromRecord(rec *reservation.Record) (*ReservationResponse, error) {
	var out ReservationResponse
	if err := copier.Copy(&out, rec); err != nil {
		return nil, err
	}
	return &out, nil
}

// FromRecords keeps the input order and never returns nil for an empty list.
func FromRecords(recs []*reservation.Record) ([]*ReservationResponse, error) {
	out := make([]*ReservationResponse, 0, len(recs))
	for _, rec := range recs {
		r, err := FromRecord(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
