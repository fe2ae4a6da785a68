package shutdown

import (
	"os"
	"syscall"
	"testing"
	"time"

	"timing-grid/internal/logger"

	"github.com/stretchr/testify/assert"
)

func TestShutdownRunsInReverseOrderOnce(t *testing.T) {
	m := NewManager(logger.NoOpLogger{}, time.Second)

	var order []string
	m.Register("first", Func(func() { order = append(order, "first") }))
	m.Register("second", Func(func() { order = append(order, "second") }))

	m.Shutdown()
	m.Shutdown()

	assert.Equal(t, []string{"second", "first"}, order)
}

func TestSignalHandsOffWithoutShuttingDown(t *testing.T) {
	m := NewManager(logger.NoOpLogger{}, time.Second)

	stopped := false
	m.Register("ticker", Func(func() { stopped = true }))

	sigChan := make(chan os.Signal, 1)
	sigChan <- syscall.SIGTERM

	called := false
	m.watch(sigChan, func() { called = true })

	assert.True(t, called)
	assert.False(t, stopped)

	m.Shutdown()
	assert.True(t, stopped)
}

func TestWatchReturnsAfterShutdown(t *testing.T) {
	m := NewManager(logger.NoOpLogger{}, time.Second)
	m.Shutdown()

	called := false
	m.watch(make(chan os.Signal), func() { called = true })
	assert.False(t, called)
}

func TestShutdownTimesOutSlowComponent(t *testing.T) {
	m := NewManager(logger.NoOpLogger{}, 10*time.Millisecond)

	release := make(chan struct{})
	defer close(release)
	m.Register("stuck", Func(func() { <-release }))

	start := time.Now()
	m.Shutdown()
	assert.Less(t, time.Since(start), time.Second)
}
