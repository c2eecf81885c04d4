// Package shell runs the interactive read-dispatch loop.
//
// The loop has three states: reading, dispatching, exiting. Dispatch errors
// are reported and the loop goes back to reading; only end of input, an exit
// word, or cancellation of the session context end it.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// Dispatcher runs one tokenized command line.
type Dispatcher func(ctx context.Context, args []string) error

// Guard scopes a context to a single dispatched command, so that an
// interrupt can cancel the command without ending the session.
type Guard interface {
	Begin(ctx context.Context) (context.Context, context.CancelFunc)
}

// Session messages.
const (
	Banner = "coinpaprika-cli interactive shell - type commands without the 'coinpaprika-cli' prefix\n" +
		"Type 'exit' or 'quit' to leave. Ctrl+D also exits.\n"
	InterruptHint = "(Ctrl+C - type 'exit' to quit)"
)

// exitWords end the session. Matching is exact and case-sensitive.
var exitWords = map[string]bool{
	"exit": true,
	"quit": true,
}

// IsExitWord reports whether line ends the session.
func IsExitWord(line string) bool {
	return exitWords[line]
}

// Shell is one interactive session.
type Shell struct {
	reader   LineReader
	dispatch Dispatcher
	out      io.Writer
	errOut   io.Writer
	history  *History
	guard    Guard
	logger   zerolog.Logger
}

// Option configures a Shell.
type Option func(*Shell)

// WithOutput sets the writers for the banner and hints (out) and for
// dispatch errors (errOut).
func WithOutput(out, errOut io.Writer) Option {
	return func(s *Shell) {
		if out != nil {
			s.out = out
		}
		if errOut != nil {
			s.errOut = errOut
		}
	}
}

// WithHistory shares a history with the line reader.
func WithHistory(h *History) Option {
	return func(s *Shell) {
		if h != nil {
			s.history = h
		}
	}
}

// WithGuard sets the per-command context scope.
func WithGuard(g Guard) Option {
	return func(s *Shell) {
		if g != nil {
			s.guard = g
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Shell) {
		s.logger = l
	}
}

// New returns a session reading from r and running lines through d.
func New(r LineReader, d Dispatcher, opts ...Option) *Shell {
	s := &Shell{
		reader:   r,
		dispatch: d,
		out:      io.Discard,
		errOut:   io.Discard,
		history:  NewHistory(0),
		guard:    cancelGuard{},
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// History returns the session history.
func (s *Shell) History() *History {
	return s.history
}

// Run prints the banner and loops until end of input, an exit word, or ctx
// is canceled. Dispatch errors never end the loop. A read error other than
// io.EOF or ErrInterrupted is returned.
func (s *Shell) Run(ctx context.Context) error {
	_, _ = fmt.Fprint(s.out, Banner)
	s.logger.Debug().Msg("shell started")

	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := s.reader.ReadLine()
		switch {
		case errors.Is(err, ErrInterrupted):
			_, _ = fmt.Fprintln(s.out, InterruptHint)
			continue
		case errors.Is(err, io.EOF):
			s.logger.Debug().Int("history", s.history.Len()).Msg("shell ended: end of input")
			return nil
		case err != nil:
			return fmt.Errorf("shell: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if IsExitWord(line) {
			s.logger.Debug().Int("history", s.history.Len()).Msg("shell ended: exit word")
			return nil
		}

		s.history.Add(line)
		s.run(ctx, Tokenize(line))
	}
}

// run dispatches one command under its own context and reports failures.
func (s *Shell) run(ctx context.Context, args []string) {
	cmdCtx, done := s.guard.Begin(ctx)
	defer done()

	if err := s.dispatch(cmdCtx, args); err != nil {
		s.logger.Warn().Err(err).Strs("args", redact(args)).Msg("command failed")
		_, _ = fmt.Fprintf(s.errOut, "Error: %s\n", err)
	}
}

// redact hides the value following --api-key so keys never reach the log.
func redact(args []string) []string {
	out := make([]string, len(args))
	copy(out, args)
	for i, a := range out {
		switch {
		case a == "--api-key" && i+1 < len(out):
			out[i+1] = "****"
		case strings.HasPrefix(a, "--api-key="):
			out[i] = "--api-key=****"
		}
	}
	return out
}

// cancelGuard is the default Guard: a plain cancelable child context.
type cancelGuard struct{}

func (cancelGuard) Begin(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithCancel(ctx)
}
