//go:build unit

package slot_test

import (
	"fmt"
	"math"
	"sort"
	"testing"
	"time"

	"slot-booking/internal/domain/slot"
	"slot-booking/internal/pkg/errs"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerive(t *testing.T) {
	schedule := slot.NewSchedule(slot.DefaultBusinessHours)

	t.Run("example: two hours from 09", func(t *testing.T) {
		got, err := schedule.Derive("2025-08-04-09", 2)
		require.NoError(t, err)

		want := []slot.ID{"2025-08-04-09", "2025-08-04-10"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Derive mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("every in-hours request yields duration contiguous ascending slots", func(t *testing.T) {
		hours := slot.DefaultBusinessHours
		for duration := 1; duration <= hours.Close-hours.Open; duration++ {
			for start := hours.Open; start <= hours.Close-duration; start++ {
				got, err := schedule.Derive(fmt.Sprintf("2025-01-31-%02d", start), duration)
				require.NoError(t, err, "start=%d duration=%d", start, duration)
				require.Len(t, got, duration)
				assert.True(t, sort.SliceIsSorted(got, func(i, j int) bool { return got[i] < got[j] }))
				for i, id := range got {
					assert.Equal(t, slot.ID(fmt.Sprintf("2025-01-31-%02d", start+i)), id)
				}
			}
		}
	})

	t.Run("every out-of-hours request fails", func(t *testing.T) {
		for duration := 1; duration <= 4; duration++ {
			for start := 0; start < 24; start++ {
				if start >= 8 && start+duration <= 22 {
					continue
				}
				_, err := schedule.Derive(fmt.Sprintf("2025-08-04-%02d", start), duration)
				require.Error(t, err, "start=%d duration=%d", start, duration)
				assert.Equal(t, errs.KindOutOfHours, errs.KindOf(err))
			}
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		a, errA := schedule.Derive("2025-08-04-13", 3)
		b, errB := schedule.Derive("2025-08-04-13", 3)
		require.NoError(t, errA)
		require.NoError(t, errB)
		assert.Equal(t, a, b)
	})

	t.Run("closing bound is inclusive", func(t *testing.T) {
		got, err := schedule.Derive("2025-08-04-21", 1)
		require.NoError(t, err)
		assert.Equal(t, []slot.ID{"2025-08-04-21"}, got)
	})

	t.Run("huge duration is out of hours", func(t *testing.T) {
		for _, duration := range []int{25, math.MaxInt32, math.MaxInt - 8, math.MaxInt} {
			var got []slot.ID
			var err error
			require.NotPanics(t, func() {
				got, err = schedule.Derive("2025-08-04-09", duration)
			}, "duration=%d", duration)
			require.Error(t, err, "duration=%d", duration)
			assert.Nil(t, got)
			assert.Equal(t, errs.KindOutOfHours, errs.KindOf(err), "duration=%d", duration)
		}
	})

	t.Run("custom business hours", func(t *testing.T) {
		night := slot.NewSchedule(slot.BusinessHours{Open: 18, Close: 24})
		got, err := night.Derive("2025-08-04-22", 2)
		require.NoError(t, err)
		assert.Equal(t, []slot.ID{"2025-08-04-22", "2025-08-04-23"}, got)

		_, err = night.Derive("2025-08-04-09", 1)
		assert.Equal(t, errs.KindOutOfHours, errs.KindOf(err))
	})
}

func TestDeriveFormatErrors(t *testing.T) {
	schedule := slot.NewSchedule(slot.DefaultBusinessHours)

	cases := []struct {
		name     string
		start    string
		duration int
	}{
		{name: "three components", start: "2025-08-04", duration: 1},
		{name: "five components", start: "2025-08-04-09-30", duration: 1},
		{name: "empty", start: "", duration: 1},
		{name: "non numeric hour", start: "2025-08-04-xx", duration: 1},
		{name: "iso timestamp", start: "2025-08-04T09:00", duration: 1},
		{name: "hour past 23", start: "2025-08-04-24", duration: 1},
		{name: "impossible date", start: "2025-02-30-09", duration: 1},
		{name: "month zero", start: "2025-00-10-09", duration: 1},
		{name: "zero duration", start: "2025-08-04-09", duration: 0},
		{name: "negative duration", start: "2025-08-04-09", duration: -2},
		{name: "non-padded components", start: "2025-8-4-9", duration: 1},
		{name: "leading whitespace", start: " 2025-08-04-09", duration: 1},
		{name: "trailing whitespace", start: "2025-08-04-09 ", duration: 1},
		{name: "signed hour", start: "2025-08-04-+9", duration: 1},
		{name: "signed padded hour", start: "2025-08-04-+09", duration: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := schedule.Derive(tc.start, tc.duration)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.Equal(t, errs.KindFormat, errs.KindOf(err))
		})
	}
}

func TestParseID(t *testing.T) {
	id, err := slot.ParseID("2025-08-04-09")
	require.NoError(t, err)
	assert.Equal(t, slot.ID("2025-08-04-09"), id)

	for _, bad := range []string{"2025-8-4-9", "2025-08-04", "20250804-09-00-00", "abcd-ef-gh-ij", " 2025-08-04-09", "2025-08-04-+9"} {
		_, err := slot.ParseID(bad)
		assert.Equal(t, errs.KindFormat, errs.KindOf(err), bad)
		assert.False(t, slot.IsValidID(bad), bad)
	}
}

func TestIDOrderingIsChronological(t *testing.T) {
	ids := []slot.ID{"2025-12-31-21", "2025-01-01-08", "2026-01-01-08", "2025-01-01-10", "2025-01-02-08"}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var prev int64
	for _, id := range ids {
		start, err := id.Start(time.UTC)
		if err != nil {
			t.Fatal(err)
		}
		assert.Greater(t, start.Unix(), prev)
		prev = start.Unix()
	}
}
