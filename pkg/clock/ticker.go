// Package clock publishes the wall-clock time on a cron schedule so views
// with countdowns can re-derive on every tick.
package clock

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dwikikusuma/storefront/pkg/observable"
)

type Ticker struct {
	now  func() time.Time
	cron *cron.Cron
	tick *observable.Subject[time.Time]
}

// NewTicker schedules spec (e.g. "@every 1s"). The first value is taken
// immediately so subscribers never see a zero time.
func NewTicker(spec string, now func() time.Time) (*Ticker, error) {
	if now == nil {
		now = time.Now
	}
	t := &Ticker{
		now:  now,
		cron: cron.New(),
		tick: observable.NewSubject(now()),
	}
	if _, err := t.cron.AddFunc(spec, t.Tick); err != nil {
		return nil, fmt.Errorf("schedule ticker %q: %w", spec, err)
	}
	return t, nil
}

func (t *Ticker) Tick() { t.tick.Set(t.now()) }

func (t *Ticker) Now() time.Time { return t.tick.Value() }

func (t *Ticker) Subscribe(fn func(time.Time)) func() { return t.tick.Subscribe(fn) }

func (t *Ticker) Start() { t.cron.Start() }

// Stop halts the schedule and waits for an in-flight tick or ctx expiry.
func (t *Ticker) Stop(ctx context.Context) error {
	done := t.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
