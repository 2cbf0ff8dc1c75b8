package watcher

import (
	"context"
	"time"

	"github.com/trafficlab/route-planner/pkg/logging"
)

// Debouncer collapses bursts of file events into one, so an editor that
// writes the network file several times in quick succession triggers a
// single reload. A flush happens after quietPeriod of silence, or after
// maxWait even if events keep arriving.
type Debouncer struct {
	input       <-chan ChangeEvent
	output      chan ChangeEvent
	quietPeriod time.Duration
	maxWait     time.Duration
}

// NewDebouncer creates a debouncer over the given event stream.
func NewDebouncer(input <-chan ChangeEvent, quietPeriod, maxWait time.Duration) *Debouncer {
	return &Debouncer{
		input:       input,
		output:      make(chan ChangeEvent, 4),
		quietPeriod: quietPeriod,
		maxWait:     maxWait,
	}
}

// Start begins processing events.
func (d *Debouncer) Start(ctx context.Context) {
	go d.run(ctx)
}

func (d *Debouncer) run(ctx context.Context) {
	var (
		pending    *ChangeEvent
		quietTimer *time.Timer
		maxTimer   *time.Timer
	)

	timerC := func(t *time.Timer) <-chan time.Time {
		if t == nil {
			return nil
		}
		return t.C
	}

	flush := func() {
		if pending == nil {
			return
		}
		logging.Debug("flushing debounced change", "path", pending.Path)
		d.output <- *pending
		pending = nil
		if quietTimer != nil {
			quietTimer.Stop()
			quietTimer = nil
		}
		if maxTimer != nil {
			maxTimer.Stop()
			maxTimer = nil
		}
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			close(d.output)
			return

		case event, ok := <-d.input:
			if !ok {
				flush()
				close(d.output)
				return
			}
			pending = &event
			if quietTimer == nil {
				quietTimer = time.NewTimer(d.quietPeriod)
			} else {
				quietTimer.Reset(d.quietPeriod)
			}
			if maxTimer == nil {
				maxTimer = time.NewTimer(d.maxWait)
			}

		case <-timerC(quietTimer):
			flush()

		case <-timerC(maxTimer):
			flush()
		}
	}
}

// Output returns the channel of debounced events.
func (d *Debouncer) Output() <-chan ChangeEvent {
	return d.output
}
