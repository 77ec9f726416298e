package reservation

import (
	"time"

	"slot-booking/internal/domain/slot"

	"github.com/google/uuid"
)

// Record is one reserved hour. A multi-hour booking is stored as one Record
// per slot, all sharing owner, duration and createdAt.
type Record struct {
	id            uuid.UUID
	ownerID       string
	slot          slot.ID
	durationHours int
	createdAt     time.Time
}

// NewRecords builds the Records of one booking in slot order.
func NewRecords(ownerID string, slots []slot.ID, durationHours int, createdAt time.Time) []*Record {
	out := make([]*Record, 0, len(slots))
	for _, s := range slots {
		out = append(out, &Record{
			id:            uuid.New(),
			ownerID:       ownerID,
			slot:          s,
			durationHours: durationHours,
			createdAt:     createdAt,
		})
	}
	return out
}

func ReconstructRecord(id uuid.UUID, ownerID string, s slot.ID, durationHours int, createdAt time.Time) *Record {
	return &Record{
		id:            id,
		ownerID:       ownerID,
		slot:          s,
		durationHours: durationHours,
		createdAt:     createdAt,
	}
}

func (r *Record) ID() uuid.UUID        { return r.id }
func (r *Record) OwnerID() string      { return r.ownerID }
func (r *Record) Slot() slot.ID        { return r.slot }
func (r *Record) DurationHours() int   { return r.durationHours }
func (r *Record) CreatedAt() time.Time { return r.createdAt }
