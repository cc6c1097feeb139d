// Package latency pads in-memory store operations with artificial delays so clients can exercise
// their loading states against a realistic-feeling backend.
package latency

import (
	"context"
	"time"
)

// Op names a class of store operation.
type Op string

const (
	OpList   Op = "list"
	OpGet    Op = "get"
	OpQuery  Op = "query"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// DefaultProfile holds the baseline delay per operation.
var DefaultProfile = map[Op]time.Duration{
	OpList:   300 * time.Millisecond,
	OpGet:    250 * time.Millisecond,
	OpQuery:  200 * time.Millisecond,
	OpCreate: 400 * time.Millisecond,
	OpUpdate: 350 * time.Millisecond,
	OpDelete: 300 * time.Millisecond,
}

// Simulator sleeps for a per-operation duration. A nil Simulator never waits.
type Simulator struct {
	profile map[Op]time.Duration
}

// New builds a simulator scaling DefaultProfile by multiplier. Multipliers <= 0 disable delays.
func New(multiplier float64) *Simulator {
	profile := make(map[Op]time.Duration, len(DefaultProfile))
	if multiplier > 0 {
		for op, d := range DefaultProfile {
			profile[op] = time.Duration(float64(d) * multiplier)
		}
	}
	return &Simulator{profile: profile}
}

// Fixed builds a simulator that waits d for every operation.
func Fixed(d time.Duration) *Simulator {
	profile := make(map[Op]time.Duration, len(DefaultProfile))
	for op := range DefaultProfile {
		profile[op] = d
	}
	return &Simulator{profile: profile}
}

// None returns a simulator without delays.
func None() *Simulator {
	return New(0)
}

// Delay reports the configured delay for op.
func (s *Simulator) Delay(op Op) time.Duration {
	if s == nil {
		return 0
	}
	return s.profile[op]
}

// Wait blocks for the delay of op, returning early with the context error when ctx ends first.
func (s *Simulator) Wait(ctx context.Context, op Op) error {
	d := s.Delay(op)
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
