package slot

import (
	"slot-booking/internal/pkg/errs"
)

// BusinessHours bounds bookable hours: a booking must start at or after Open
// and end at or before Close.
type BusinessHours struct {
	Open  int
	Close int
}

var DefaultBusinessHours = BusinessHours{Open: 8, Close: 22}

type Schedule struct {
	hours BusinessHours
}

func NewSchedule(hours BusinessHours) Schedule {
	return Schedule{hours: hours}
}

func (s Schedule) Hours() BusinessHours {
	return s.hours
}

// Derive maps a request to the ordered slot IDs it occupies. startDateTime
// must already be a canonical slot ID. It has no side effects; equal inputs
// always yield equal sequences.
func (s Schedule) Derive(startDateTime string, durationHours int) ([]ID, error) {
	p, err := parseCanonical(startDateTime)
	if err != nil {
		return nil, err
	}
	if durationHours < 1 {
		return nil, errs.Mark(errs.Newf("durationHours must be at least 1, got %d", durationHours), errs.ErrSlotFormat)
	}

	if p.hour < s.hours.Open {
		return nil, errs.Mark(
			errs.Newf("start hour %d is before opening hour %d", p.hour, s.hours.Open),
			errs.ErrOutsideBusinessHours,
		)
	}
	if durationHours > s.hours.Close-p.hour {
		return nil, errs.Mark(
			errs.Newf("booking %d+%dh ends after closing hour %d", p.hour, durationHours, s.hours.Close),
			errs.ErrOutsideBusinessHours,
		)
	}

	ids := make([]ID, 0, durationHours)
	for h := p.hour; h < p.hour+durationHours; h++ {
		ids = append(ids, p.at(h))
	}
	return ids, nil
}
