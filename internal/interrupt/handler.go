// Package interrupt routes SIGINT and SIGTERM while an interactive session is
// open, so that Ctrl+C aborts the running command instead of the process.
package interrupt

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// ExitInterrupt is the exit code for interrupt (130 = 128 + SIGINT).
const ExitInterrupt = 130

// interruptWindow is the time window for a second Ctrl+C to trigger abort.
const interruptWindow = 2 * time.Second

// abortMessage is the message displayed when the user aborts via double Ctrl+C.
const abortMessage = "\nAborted."

// Handler manages interrupts for one session:
//   - Ctrl+C while a command runs cancels that command's context.
//   - Ctrl+C while idle calls OnIdle (typically prints a hint).
//   - A second Ctrl+C within the window, while that command has not yet
//     returned, exits the process with 130.
//   - SIGTERM cancels the session context.
type Handler struct {
	mu            sync.Mutex
	lastInterrupt time.Time // last Ctrl+C aimed at the current command
	interrupts    int
	cancelCommand context.CancelFunc // non-nil while a command runs
	cancelSession context.CancelFunc
	stopped       bool
	done          chan struct{} // Signals listen goroutine to exit
	unsubscribe   func()

	// Injected dependencies (for testing)
	exitFunc func(int)
	nowFunc  func() time.Time
	stderr   io.Writer
	onIdle   func()
}

// Options holds injectable dependencies for testing.
type Options struct {
	SigCh    <-chan os.Signal
	ExitFunc func(int)
	NowFunc  func() time.Time
	// Stderr is the writer for user-facing messages.
	// Must be safe for concurrent writes from multiple goroutines.
	// Defaults to os.Stderr which is safe at the OS level.
	Stderr io.Writer
	// OnIdle runs on Ctrl+C when no command is running.
	OnIdle func()
}

// NewHandler creates a handler that listens for SIGINT/SIGTERM.
// opts.SigCh is ignored. Returns the handler and a session context that is
// canceled on SIGTERM.
func NewHandler(parent context.Context, opts Options) (*Handler, context.Context) {
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	opts.SigCh = sigCh
	h, ctx := newHandler(parent, opts)
	h.unsubscribe = func() { signal.Stop(sigCh) }
	return h, ctx
}

// NewHandlerWithOptions creates a handler with injectable dependencies.
// Used by tests to inject mock signal channels, exit functions, and clocks.
func NewHandlerWithOptions(parent context.Context, opts Options) (*Handler, context.Context) {
	return newHandler(parent, opts)
}

// newHandler creates a handler with injectable dependencies.
func newHandler(parent context.Context, opts Options) (*Handler, context.Context) {
	ctx, cancel := context.WithCancel(parent)

	// Apply defaults for nil options
	exitFunc := opts.ExitFunc
	if exitFunc == nil {
		exitFunc = os.Exit
	}
	nowFunc := opts.NowFunc
	if nowFunc == nil {
		nowFunc = time.Now
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	onIdle := opts.OnIdle
	if onIdle == nil {
		onIdle = func() {}
	}

	h := &Handler{
		cancelSession: cancel,
		done:          make(chan struct{}),
		unsubscribe:   func() {},
		exitFunc:      exitFunc,
		nowFunc:       nowFunc,
		stderr:        stderr,
		onIdle:        onIdle,
	}

	// Only start listener if sigCh is provided (nil check for safety)
	if opts.SigCh != nil {
		go h.listen(opts.SigCh)
	}

	return h, ctx
}

// Begin returns a context for one command. Ctrl+C cancels it while it is
// current; the returned function ends the command and must be called.
func (h *Handler) Begin(ctx context.Context) (context.Context, context.CancelFunc) {
	cmdCtx, cancel := context.WithCancel(ctx)

	h.mu.Lock()
	h.cancelCommand = cancel
	h.lastInterrupt = time.Time{}
	h.mu.Unlock()

	return cmdCtx, func() {
		h.mu.Lock()
		h.cancelCommand = nil
		h.mu.Unlock()
		cancel()
	}
}

// listen handles incoming signals.
func (h *Handler) listen(sigCh <-chan os.Signal) {
	for {
		select {
		case <-h.done:
			return
		case sig, ok := <-sigCh:
			if !ok {
				return // Channel closed
			}
			if sig == syscall.SIGTERM {
				h.cancelSession()
				continue
			}
			if h.interrupt() {
				// Exit immediately on double Ctrl+C
				_, _ = fmt.Fprintln(h.stderr, abortMessage)
				h.exitFunc(ExitInterrupt)
				return // In case exitFunc doesn't actually exit (tests)
			}
		}
	}
}

// interrupt applies one Ctrl+C and reports whether the process should exit.
func (h *Handler) interrupt() bool {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return false
	}

	now := h.nowFunc()
	cancel := h.cancelCommand
	h.interrupts++
	double := false
	if cancel != nil {
		double = !h.lastInterrupt.IsZero() && now.Sub(h.lastInterrupt) <= interruptWindow
		h.lastInterrupt = now
	}
	h.mu.Unlock()

	// Idle presses never exit; only a command that ignores cancellation does.
	if double {
		return true
	}

	if cancel != nil {
		cancel()
	} else {
		h.onIdle()
	}
	return false
}

// Interrupts returns how many Ctrl+C signals were received.
func (h *Handler) Interrupts() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.interrupts
}

// Stop cleans up the handler. Should be called when done.
func (h *Handler) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.stopped = true
	h.mu.Unlock()

	h.unsubscribe()
	close(h.done) // Signals listen goroutine to exit
}
