//go:build e2e

package e2e

import "slot-booking/internal/pkg/clock"

func clockProvider() clock.Clock {
	return clock.NewRealClock()
}
