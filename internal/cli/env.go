package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/alnah/coinpaprika-cli/internal/config"
	"github.com/alnah/coinpaprika-cli/internal/interrupt"
	"github.com/alnah/coinpaprika-cli/internal/paprika"
	"github.com/alnah/coinpaprika-cli/internal/shell"
)

// Env holds injectable dependencies for CLI commands.
// This is the central injection point for testing CLI commands in isolation.
//
// All fields have sensible defaults via DefaultEnv(). Tests can override
// specific fields using the With* options or by creating a custom Env.
//
// Env must not be nil when passed to Execute or Run. Use DefaultEnv()
// or NewEnv() to create a valid instance.
type Env struct {
	// I/O and environment
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string
	Now    func() time.Time

	// LogFile receives JSON log records. Nil means the rotating file under
	// the config directory.
	LogFile io.Writer

	// Factories for domain objects
	ConfigStore      ConfigStore
	ClientFactory    ClientFactory
	ReaderFactory    ReaderFactory
	InterruptFactory InterruptFactory

	// InShell is set for commands dispatched by the interactive shell.
	InShell bool
}

// ConfigStore reads and writes the persisted config file.
type ConfigStore interface {
	APIKey() (string, error)
	SaveAPIKey(key string) error
	Reset() (bool, error)
	Path() (string, error)
	Dir() (string, error)
}

// ClientFactory creates API clients bound to one key.
type ClientFactory interface {
	NewClient(apiKey string, logger zerolog.Logger) *paprika.Client
}

// ReaderFactory picks the line reader for an interactive session.
type ReaderFactory interface {
	NewLineReader(in io.Reader, out io.Writer, history *shell.History) shell.LineReader
}

// InterruptFactory installs the signal handling for an interactive session.
// It returns the handler and a session context canceled on SIGTERM.
type InterruptFactory interface {
	NewHandler(parent context.Context, stderr io.Writer, onIdle func()) (*interrupt.Handler, context.Context)
}

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithStdin sets the stdin reader.
func WithStdin(r io.Reader) EnvOption {
	return func(e *Env) {
		e.Stdin = r
	}
}

// WithStdout sets the stdout writer.
func WithStdout(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stdout = w
	}
}

// WithStderr sets the stderr writer.
func WithStderr(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stderr = w
	}
}

// WithGetenv sets the environment variable getter.
func WithGetenv(fn func(string) string) EnvOption {
	return func(e *Env) {
		e.Getenv = fn
	}
}

// WithNow sets the time provider.
func WithNow(fn func() time.Time) EnvOption {
	return func(e *Env) {
		e.Now = fn
	}
}

// WithLogFile sets the log sink.
func WithLogFile(w io.Writer) EnvOption {
	return func(e *Env) {
		e.LogFile = w
	}
}

// WithConfigStore sets the config store.
func WithConfigStore(s ConfigStore) EnvOption {
	return func(e *Env) {
		e.ConfigStore = s
	}
}

// WithClientFactory sets the client factory.
func WithClientFactory(f ClientFactory) EnvOption {
	return func(e *Env) {
		e.ClientFactory = f
	}
}

// WithReaderFactory sets the line reader factory.
func WithReaderFactory(f ReaderFactory) EnvOption {
	return func(e *Env) {
		e.ReaderFactory = f
	}
}

// WithInterruptFactory sets the interrupt handler factory.
func WithInterruptFactory(f InterruptFactory) EnvOption {
	return func(e *Env) {
		e.InterruptFactory = f
	}
}

// DefaultEnv returns an Env with production defaults.
func DefaultEnv() *Env {
	return &Env{
		Stdin:            os.Stdin,
		Stdout:           os.Stdout,
		Stderr:           os.Stderr,
		Getenv:           os.Getenv,
		Now:              time.Now,
		ConfigStore:      config.NewFileStore(""),
		ClientFactory:    defaultClientFactory{},
		ReaderFactory:    defaultReaderFactory{},
		InterruptFactory: defaultInterruptFactory{},
	}
}

// NewEnv creates an Env with the given options applied to defaults.
func NewEnv(opts ...EnvOption) *Env {
	env := DefaultEnv()
	for _, opt := range opts {
		opt(env)
	}
	return env
}

// nested returns a copy of e for commands dispatched from the shell.
func (e *Env) nested() *Env {
	c := *e
	c.InShell = true
	return &c
}

// ---------------------------------------------------------------------------
// Default implementations - delegate to real packages
// ---------------------------------------------------------------------------

// defaultClientFactory implements ClientFactory with the production hosts.
type defaultClientFactory struct{}

func (defaultClientFactory) NewClient(apiKey string, logger zerolog.Logger) *paprika.Client {
	return paprika.NewClient(apiKey, paprika.WithLogger(logger))
}

// defaultReaderFactory edits lines on a terminal and reads plain lines otherwise.
type defaultReaderFactory struct{}

func (defaultReaderFactory) NewLineReader(in io.Reader, out io.Writer, history *shell.History) shell.LineReader {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return shell.NewTerminalReader(int(f.Fd()), f, out, history)
	}
	return shell.NewPlainReader(in)
}

// defaultInterruptFactory listens for SIGINT and SIGTERM.
type defaultInterruptFactory struct{}

func (defaultInterruptFactory) NewHandler(parent context.Context, stderr io.Writer, onIdle func()) (*interrupt.Handler, context.Context) {
	return interrupt.NewHandler(parent, interrupt.Options{Stderr: stderr, OnIdle: onIdle})
}

// Compile-time interface verification.
var (
	_ ConfigStore      = (*config.FileStore)(nil)
	_ ClientFactory    = (*defaultClientFactory)(nil)
	_ ReaderFactory    = (*defaultReaderFactory)(nil)
	_ InterruptFactory = (*defaultInterruptFactory)(nil)
)
