package formfill

import (
	"context"
	"time"

	"github.com/lukman83/vinted-relist/internal/pacing"
)

// WaitStrategy decides how long to pause for the foreign page's own
// asynchronous rendering. Kept behind an interface so the fill state machine
// can be tested with an instant strategy.
type WaitStrategy interface {
	Settle(ctx context.Context, d time.Duration) error
}

// FixedWait sleeps for the requested duration, plus a little human jitter
// when a delay generator is attached.
type FixedWait struct {
	Jitter *pacing.HumanDelay
}

func (w FixedWait) Settle(ctx context.Context, d time.Duration) error {
	if w.Jitter != nil {
		d += w.Jitter.InteractionDelay()
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// InstantWait never sleeps. Test use only.
type InstantWait struct{}

func (InstantWait) Settle(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

// Delays are the empirically tuned settle times for the create form's
// asynchronous widgets.
type Delays struct {
	Open           time.Duration // after clicking a dropdown trigger
	Search         time.Duration // after typing into an autocomplete search
	Dropdown       time.Duration // after opening a static dropdown
	CategorySettle time.Duration // after category selection reshapes the form
	ColorClick     time.Duration // between multi-select clicks
}

// DefaultDelays returns the settle times the live form needs.
func DefaultDelays() Delays {
	return Delays{
		Open:           300 * time.Millisecond,
		Search:         1500 * time.Millisecond,
		Dropdown:       500 * time.Millisecond,
		CategorySettle: 3 * time.Second,
		ColorClick:     100 * time.Millisecond,
	}
}
