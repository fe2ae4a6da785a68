package animation

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
)

// Ticker is a recurring timer. Start replaces any previously armed period;
// Stop is a no-op when nothing is armed.
type Ticker interface {
	Start(period time.Duration, fn func())
	Stop()
}

// FyneTicker runs a time.Ticker in a goroutine and delivers every tick on
// the Fyne main goroutine. Ticks that were already queued when the ticker is
// stopped or re-armed are dropped.
type FyneTicker struct {
	mu         sync.Mutex
	stop       chan struct{}
	generation uint64
	dispatch   func(func())
}

func NewFyneTicker() *FyneTicker {
	return &FyneTicker{dispatch: fyne.Do}
}

// newTickerWithDispatch lets tests run ticks without a Fyne driver.
func newTickerWithDispatch(dispatch func(func())) *FyneTicker {
	return &FyneTicker{dispatch: dispatch}
}

func (t *FyneTicker) Start(period time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	t.generation++
	gen := t.generation
	stop := make(chan struct{})
	t.stop = stop

	go func() {
		ticker := time.NewTicker(period)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				t.dispatch(func() {
					if t.current(gen) {
						fn()
					}
				})
			case <-stop:
				return
			}
		}
	}()
}

func (t *FyneTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

// Armed reports whether a period is currently running.
func (t *FyneTicker) Armed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stop != nil
}

func (t *FyneTicker) stopLocked() {
	if t.stop == nil {
		return
	}
	close(t.stop)
	t.stop = nil
	t.generation++
}

func (t *FyneTicker) current(gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stop != nil && t.generation == gen
}
