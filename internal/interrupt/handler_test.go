package interrupt_test

// Notes:
// - Tests use black-box approach via interrupt_test package
// - All tests inject dependencies via NewHandlerWithOptions for deterministic behavior
// - Time manipulation: nowFunc is injected to control interruptWindow calculation
// - Signal synchronization: polling with a deadline, since the listener runs
//   in its own goroutine
//
// Thread-safety note:
// - Production code writes to stderr from the listen goroutine
// - bytes.Buffer is NOT thread-safe, so we use syncBuffer in tests

import (
	"bytes"
	"context"
	"os"
	"sync"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alnah/coinpaprika-cli/internal/interrupt"
)

// syncBuffer is a thread-safe bytes.Buffer for testing.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// steppingClock returns base, then base+step, base+2*step, ...
func steppingClock(step time.Duration) func() time.Time {
	var mu sync.Mutex
	n := 0
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := base.Add(time.Duration(n) * step)
		n++
		return t
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, time.Second, 5*time.Millisecond)
}

// ---------------------------------------------------------------------------
// TestNewHandler - Default constructor
// ---------------------------------------------------------------------------

func TestNewHandler(t *testing.T) {
	t.Parallel()

	// NewHandler creates a real signal listener, so we just verify it returns
	// valid objects and can be stopped without panic.
	h, ctx := interrupt.NewHandler(context.Background(), interrupt.Options{})
	require.NotNil(t, h)
	require.NotNil(t, ctx)
	assert.NoError(t, ctx.Err())
	assert.Equal(t, 0, h.Interrupts())

	h.Stop()
	h.Stop() // idempotent
}

// ---------------------------------------------------------------------------
// TestHandler_IdleInterrupt - Ctrl+C with no command runs OnIdle
// ---------------------------------------------------------------------------

func TestHandler_IdleInterrupt(t *testing.T) {
	t.Parallel()

	sigCh := make(chan os.Signal, 2)
	var idle atomic.Int32

	h, ctx := interrupt.NewHandlerWithOptions(context.Background(), interrupt.Options{
		SigCh:   sigCh,
		NowFunc: steppingClock(time.Minute),
		OnIdle:  func() { idle.Add(1) },
		Stderr:  &syncBuffer{},
	})
	defer h.Stop()

	sigCh <- os.Interrupt
	waitFor(t, func() bool { return idle.Load() == 1 })

	assert.NoError(t, ctx.Err(), "session survives Ctrl+C")
	assert.Equal(t, 1, h.Interrupts())
}

// ---------------------------------------------------------------------------
// TestHandler_CommandInterrupt - Ctrl+C cancels only the running command
// ---------------------------------------------------------------------------

func TestHandler_CommandInterrupt(t *testing.T) {
	t.Parallel()

	sigCh := make(chan os.Signal, 2)
	var idle atomic.Int32

	h, sessionCtx := interrupt.NewHandlerWithOptions(context.Background(), interrupt.Options{
		SigCh:   sigCh,
		NowFunc: steppingClock(time.Minute),
		OnIdle:  func() { idle.Add(1) },
		Stderr:  &syncBuffer{},
	})
	defer h.Stop()

	cmdCtx, done := h.Begin(sessionCtx)
	sigCh <- os.Interrupt
	waitFor(t, func() bool { return cmdCtx.Err() != nil })
	done()

	assert.NoError(t, sessionCtx.Err())
	assert.Equal(t, int32(0), idle.Load())

	// After the command ends, Ctrl+C is idle again.
	sigCh <- os.Interrupt
	waitFor(t, func() bool { return idle.Load() == 1 })
}

// ---------------------------------------------------------------------------
// TestHandler_DoubleInterruptWithinWindow - Stuck command triggers exit 130
// ---------------------------------------------------------------------------

func TestHandler_DoubleInterruptWithinWindow(t *testing.T) {
	t.Parallel()

	sigCh := make(chan os.Signal, 2)
	var stderr syncBuffer
	var exitCode atomic.Int32
	exitCode.Store(-1) // Sentinel: not called

	h, sessionCtx := interrupt.NewHandlerWithOptions(context.Background(), interrupt.Options{
		SigCh:    sigCh,
		ExitFunc: func(code int) { exitCode.Store(int32(code)) },
		NowFunc:  steppingClock(time.Second), // second signal 1s later
		Stderr:   &stderr,
	})
	defer h.Stop()

	// The command never returns, so done is only called at cleanup.
	_, done := h.Begin(sessionCtx)
	defer done()

	sigCh <- os.Interrupt
	sigCh <- os.Interrupt

	waitFor(t, func() bool { return exitCode.Load() != -1 })
	assert.Equal(t, int32(interrupt.ExitInterrupt), exitCode.Load())
	assert.Contains(t, stderr.String(), "Aborted.")
}

// ---------------------------------------------------------------------------
// TestHandler_IdleDoubleInterrupt - Reading never exits, whatever the pace
// ---------------------------------------------------------------------------

func TestHandler_IdleDoubleInterrupt(t *testing.T) {
	t.Parallel()

	sigCh := make(chan os.Signal, 3)
	var exitCalled atomic.Bool
	var idle atomic.Int32

	h, ctx := interrupt.NewHandlerWithOptions(context.Background(), interrupt.Options{
		SigCh:    sigCh,
		ExitFunc: func(int) { exitCalled.Store(true) },
		NowFunc:  steppingClock(100 * time.Millisecond),
		OnIdle:   func() { idle.Add(1) },
		Stderr:   &syncBuffer{},
	})
	defer h.Stop()

	sigCh <- os.Interrupt
	sigCh <- os.Interrupt
	sigCh <- os.Interrupt

	waitFor(t, func() bool { return idle.Load() == 3 })
	assert.False(t, exitCalled.Load())
	assert.NoError(t, ctx.Err())
	assert.Equal(t, 3, h.Interrupts())
}

// ---------------------------------------------------------------------------
// TestHandler_IdleThenCommandInterrupt - An idle press does not arm the abort
// ---------------------------------------------------------------------------

func TestHandler_IdleThenCommandInterrupt(t *testing.T) {
	t.Parallel()

	sigCh := make(chan os.Signal, 2)
	var exitCalled atomic.Bool
	var idle atomic.Int32

	h, sessionCtx := interrupt.NewHandlerWithOptions(context.Background(), interrupt.Options{
		SigCh:    sigCh,
		ExitFunc: func(int) { exitCalled.Store(true) },
		NowFunc:  steppingClock(100 * time.Millisecond),
		OnIdle:   func() { idle.Add(1) },
		Stderr:   &syncBuffer{},
	})
	defer h.Stop()

	sigCh <- os.Interrupt
	waitFor(t, func() bool { return idle.Load() == 1 })

	cmdCtx, done := h.Begin(sessionCtx)
	defer done()
	sigCh <- os.Interrupt
	waitFor(t, func() bool { return cmdCtx.Err() != nil })

	assert.False(t, exitCalled.Load())
}

// ---------------------------------------------------------------------------
// TestHandler_DoubleInterruptOutsideWindow - Does NOT exit
// ---------------------------------------------------------------------------

func TestHandler_DoubleInterruptOutsideWindow(t *testing.T) {
	t.Parallel()

	sigCh := make(chan os.Signal, 2)
	var exitCalled atomic.Bool
	var idle atomic.Int32

	h, _ := interrupt.NewHandlerWithOptions(context.Background(), interrupt.Options{
		SigCh:    sigCh,
		ExitFunc: func(int) { exitCalled.Store(true) },
		NowFunc:  steppingClock(3 * time.Second), // outside the 2s window
		OnIdle:   func() { idle.Add(1) },
		Stderr:   &syncBuffer{},
	})
	defer h.Stop()

	sigCh <- os.Interrupt
	sigCh <- os.Interrupt

	waitFor(t, func() bool { return idle.Load() == 2 })
	assert.False(t, exitCalled.Load())
	assert.Equal(t, 2, h.Interrupts())
}

// ---------------------------------------------------------------------------
// TestHandler_Terminate - SIGTERM cancels the session
// ---------------------------------------------------------------------------

func TestHandler_Terminate(t *testing.T) {
	t.Parallel()

	sigCh := make(chan os.Signal, 1)
	h, ctx := interrupt.NewHandlerWithOptions(context.Background(), interrupt.Options{
		SigCh:  sigCh,
		Stderr: &syncBuffer{},
	})
	defer h.Stop()

	sigCh <- syscall.SIGTERM
	waitFor(t, func() bool { return ctx.Err() != nil })
	assert.Equal(t, 0, h.Interrupts())
}

// ---------------------------------------------------------------------------
// TestHandler_StoppedIgnoresSignals - Stop ends the listener
// ---------------------------------------------------------------------------

func TestHandler_StoppedIgnoresSignals(t *testing.T) {
	t.Parallel()

	sigCh := make(chan os.Signal, 1)
	var idle atomic.Int32
	h, _ := interrupt.NewHandlerWithOptions(context.Background(), interrupt.Options{
		SigCh:  sigCh,
		OnIdle: func() { idle.Add(1) },
		Stderr: &syncBuffer{},
	})
	h.Stop()

	sigCh <- os.Interrupt
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), idle.Load())
}
