package pacing

import (
	"context"
	"math/rand/v2"
	"time"
)

// Profile defines a named delay configuration.
type Profile string

const (
	ProfileCautious   Profile = "cautious"
	ProfileNormal     Profile = "normal"
	ProfileAggressive Profile = "aggressive"
)

// HumanDelay adds randomized jitter to mimic human interaction patterns.
// It paces both API requests and the waits between form interactions.
type HumanDelay struct {
	MinDelay time.Duration
	MaxDelay time.Duration
}

// NewHumanDelay creates a delay generator for the given profile.
func NewHumanDelay(profile Profile) *HumanDelay {
	switch profile {
	case ProfileCautious:
		return &HumanDelay{MinDelay: 2 * time.Second, MaxDelay: 5 * time.Second}
	case ProfileAggressive:
		return &HumanDelay{MinDelay: 200 * time.Millisecond, MaxDelay: 800 * time.Millisecond}
	default: // normal
		return &HumanDelay{MinDelay: 500 * time.Millisecond, MaxDelay: 2 * time.Second}
	}
}

// Wait sleeps for a random duration within the configured range.
func (h *HumanDelay) Wait(ctx context.Context) error {
	d := h.RequestDelay()
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RequestDelay returns a random delay for API/page requests.
func (h *HumanDelay) RequestDelay() time.Duration {
	return h.randomBetween(h.MinDelay, h.MaxDelay)
}

// InteractionDelay returns a short randomized pause between UI interactions
// (clicks, keystrokes) so a form fill does not look machine-timed.
func (h *HumanDelay) InteractionDelay() time.Duration {
	return h.randomBetween(h.MinDelay/4, h.MaxDelay/4)
}

func (h *HumanDelay) randomBetween(min, max time.Duration) time.Duration {
	if min >= max {
		return min
	}
	return min + time.Duration(rand.Int64N(int64(max-min)))
}
