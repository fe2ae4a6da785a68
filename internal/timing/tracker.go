package timing

import (
	"sync"
	"time"

	"timing-grid/internal/logger"
)

// Tracker records how long named operations take.
type Tracker struct {
	timings map[string][]time.Duration
	mu      sync.RWMutex
	log     logger.Logger
	now     func() time.Time
}

// Span is an operation in progress.
type Span struct {
	tracker   *Tracker
	operation string
	start     time.Time
}

func NewTracker(log logger.Logger) *Tracker {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	return &Tracker{
		timings: make(map[string][]time.Duration),
		log:     log,
		now:     time.Now,
	}
}

func (tt *Tracker) Start(operation string) *Span {
	return &Span{tracker: tt, operation: operation, start: tt.now()}
}

// End records the span and returns its duration.
func (s *Span) End() time.Duration {
	duration := s.tracker.now().Sub(s.start)
	s.tracker.record(s.operation, duration)
	return duration
}

// Measure runs fn and records how long it took.
func (tt *Tracker) Measure(operation string, fn func()) time.Duration {
	span := tt.Start(operation)
	fn()
	return span.End()
}

func (tt *Tracker) record(operation string, duration time.Duration) {
	tt.mu.Lock()
	tt.timings[operation] = append(tt.timings[operation], duration)
	tt.mu.Unlock()

	tt.log.Debug("Timing", "operation timed", map[string]interface{}{
		"operation":   operation,
		"duration_us": duration.Microseconds(),
	})
}

func (tt *Tracker) Timings(operation string) []time.Duration {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	timings := tt.timings[operation]
	if timings == nil {
		return nil
	}
	result := make([]time.Duration, len(timings))
	copy(result, timings)
	return result
}

func (tt *Tracker) AverageTime(operation string) time.Duration {
	timings := tt.Timings(operation)
	if len(timings) == 0 {
		return 0
	}

	var total time.Duration
	for _, duration := range timings {
		total += duration
	}
	return total / time.Duration(len(timings))
}
