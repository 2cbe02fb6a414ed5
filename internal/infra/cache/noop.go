package cache

import (
	"context"
	"time"

	"fitclub-core/internal/domain/reservation"
)

// Noop always misses. Used when no Redis address is configured.
type Noop struct{}

func (Noop) Get(context.Context, time.Time) ([]reservation.SlotAvailability, bool, error) {
	return nil, false, nil
}

func (Noop) Set(context.Context, time.Time, []reservation.SlotAvailability) error { return nil }
func (Noop) Invalidate(context.Context, time.Time) error                          { return nil }
