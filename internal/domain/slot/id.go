package slot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"slot-booking/internal/pkg/errs"
)

// ID is the canonical YYYY-MM-DD-HH key of one bookable hour.
// Lexicographic order of IDs equals chronological order.
type ID string

const idParts = 4

func (id ID) String() string {
	return string(id)
}

// Start is the wall-clock start of the hour in loc.
func (id ID) Start(loc *time.Location) (time.Time, error) {
	p, err := parse(string(id))
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(p.year, time.Month(p.month), p.day, p.hour, 0, 0, 0, loc), nil
}

// ParseID accepts only the canonical zero-padded form.
func ParseID(s string) (ID, error) {
	p, err := parseCanonical(s)
	if err != nil {
		return "", err
	}
	return p.at(p.hour), nil
}

func IsValidID(s string) bool {
	_, err := ParseID(s)
	return err == nil
}

type parts struct {
	year, month, day, hour int
}

func (p parts) at(hour int) ID {
	return ID(fmt.Sprintf("%04d-%02d-%02d-%02d", p.year, p.month, p.day, hour))
}

// parseCanonical rejects anything that does not round-trip through at, such
// as missing zero padding, signs or surrounding whitespace.
func parseCanonical(s string) (parts, error) {
	p, err := parse(s)
	if err != nil {
		return parts{}, err
	}
	if string(p.at(p.hour)) != s {
		return parts{}, errs.Mark(errs.Newf("slot %q is not zero-padded YYYY-MM-DD-HH", s), errs.ErrSlotFormat)
	}
	return p, nil
}

func parse(s string) (parts, error) {
	fields := strings.Split(s, "-")
	if len(fields) != idParts {
		return parts{}, errs.Mark(
			errs.Newf("startDateTime %q must have %d dash-separated components, got %d", s, idParts, len(fields)),
			errs.ErrSlotFormat,
		)
	}

	nums := make([]int, idParts)
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return parts{}, errs.Mark(errs.Newf("startDateTime %q has non-numeric component %q", s, f), errs.ErrSlotFormat)
		}
		nums[i] = n
	}

	p := parts{year: nums[0], month: nums[1], day: nums[2], hour: nums[3]}
	if p.year > 9999 || p.hour > 23 {
		return parts{}, errs.Mark(errs.Newf("startDateTime %q is out of range", s), errs.ErrSlotFormat)
	}
	d := time.Date(p.year, time.Month(p.month), p.day, 0, 0, 0, 0, time.UTC)
	if d.Year() != p.year || int(d.Month()) != p.month || d.Day() != p.day {
		return parts{}, errs.Mark(errs.Newf("startDateTime %q is not a calendar date", s), errs.ErrSlotFormat)
	}
	return p, nil
}
