package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/alnah/coinpaprika-cli/internal/apierr"
	"github.com/alnah/coinpaprika-cli/internal/credential"
	"github.com/alnah/coinpaprika-cli/internal/logging"
	"github.com/alnah/coinpaprika-cli/internal/paprika"
	"github.com/alnah/coinpaprika-cli/internal/render"
)

// Version is injected at build time via ldflags.
var Version = "0.1.0"

// Exit codes.
const (
	ExitOK         = 0
	ExitGeneral    = 1
	ExitUsage      = 2
	ExitCredential = 3
	ExitAPI        = 4
	ExitTransport  = 5
	ExitInterrupt  = 130
)

const rootLong = `coinpaprika-cli - Crypto market data for developers and AI agents

8,000+ coins · Real-time prices · OHLCV · Exchanges · Market data

Free tier: 20,000 calls/mo, no API key needed
Paid plans: full history, 5-min intervals, higher limits

Quick start:  coinpaprika-cli onboard
Free vs paid: coinpaprika-cli plans
API docs:     https://api.coinpaprika.com
Pricing:      https://coinpaprika.com/api/pricing`

// app is the state of one invocation: parsed global flags plus what
// PersistentPreRunE derives from them. A new app is built for every
// invocation, so nothing survives from one command to the next.
type app struct {
	env *Env

	// Global flags
	output  render.Format
	apiKey  string
	raw     bool
	verbose bool

	// Derived in setup
	cred      credential.Credential
	client    *paprika.Client
	renderer  *render.Renderer
	logger    zerolog.Logger
	logCloser io.Closer
}

// NewRootCmd creates the command tree bound to env.
func NewRootCmd(env *Env) *cobra.Command {
	root, _ := newRoot(env)
	return root
}

func newRoot(env *Env) (*cobra.Command, *app) {
	a := &app{env: env, logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:     "coinpaprika-cli",
		Short:   "Crypto market data for developers and AI agents",
		Long:    rootLong,
		Version: Version,
		// Silence Cobra's default error/usage printing; Run handles it.
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SetIn(env.Stdin)
	root.SetOut(env.Stdout)
	root.SetErr(env.Stderr)
	root.CompletionOptions.DisableDefaultCmd = true

	pf := root.PersistentFlags()
	pf.VarP(&a.output, "output", "o", "Output format: table or json")
	pf.StringVar(&a.apiKey, "api-key", "", "CoinPaprika API key (overrides env var and config file)")
	pf.BoolVar(&a.raw, "raw", false, "JSON output without _meta wrapper (for scripts/piping)")
	pf.BoolVar(&a.verbose, "verbose", false, "Log API requests to stderr")

	root.AddCommand(
		globalCmd(a),
		coinsCmd(a),
		coinCmd(a),
		coinEventsCmd(a),
		coinExchangesCmd(a),
		coinMarketsCmd(a),
		tickersCmd(a),
		tickerCmd(a),
		tickerHistoryCmd(a),
		ohlcvCmd(a),
		ohlcvLatestCmd(a),
		ohlcvTodayCmd(a),
		exchangesCmd(a),
		exchangeCmd(a),
		exchangeMarketsCmd(a),
		tagsCmd(a),
		tagCmd(a),
		personCmd(a),
		searchCmd(a),
		convertCmd(a),
		platformsCmd(a),
		contractsCmd(a),
		contractTickerCmd(a),
		contractHistoryCmd(a),
		keyInfoCmd(a),
		mappingsCmd(a),
		changelogCmd(a),
		configCmd(a),
		statusCmd(a),
		attributionCmd(a),
		plansCmd(a),
		onboardCmd(a),
		shellCmd(a),
	)

	return root, a
}

// setup resolves the credential and binds a fresh client and logger.
func (a *app) setup(cmd *cobra.Command) error {
	logger, closer := a.newLogger()
	a.logCloser = closer
	a.logger = logger.With().
		Str("invocation", uuid.NewString()).
		Str("command", cmd.CommandPath()).
		Logger()

	a.cred = credential.Resolve(a.apiKey, a.env.Getenv, a.env.ConfigStore)
	a.client = a.env.ClientFactory.NewClient(a.cred.Key, a.logger)
	a.renderer = &render.Renderer{
		Out:    a.env.Stdout,
		Format: a.output,
		Raw:    a.raw,
		Now:    a.env.Now,
	}

	a.logger.Debug().
		Stringer("credential", a.cred.Source).
		Str("base_url", a.client.BaseURL()).
		Bool("shell", a.env.InShell).
		Msg("invocation started")
	return nil
}

func (a *app) newLogger() (zerolog.Logger, io.Closer) {
	opts := logging.Options{
		File:    a.env.LogFile,
		Level:   a.env.Getenv(logging.EnvLevel),
		Verbose: a.verbose,
		Console: a.env.Stderr,
	}
	if opts.File == nil {
		dir, err := a.env.ConfigStore.Dir()
		if err != nil {
			opts.File = io.Discard
		} else {
			opts.Dir = dir
		}
	}
	return logging.New(opts)
}

func (a *app) close() {
	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
}

// Execute runs one command line. Batch mode and the interactive shell both
// go through it.
func Execute(ctx context.Context, env *Env, args []string) error {
	_, err := execute(ctx, env, args)
	return err
}

// Run executes args, reports any error in the selected output format and
// returns the process exit code.
func Run(ctx context.Context, env *Env, args []string) int {
	format, err := execute(ctx, env, args)
	if err != nil {
		render.ReportError(env.Stdout, env.Stderr, format, err)
		return ExitCode(err)
	}
	return ExitOK
}

func execute(ctx context.Context, env *Env, args []string) (render.Format, error) {
	root, a := newRoot(env)
	defer a.close()

	// Cobra falls back to os.Args when args is nil.
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	return a.output, err
}

// ---------------------------------------------------------------------------
// Exit codes
// ---------------------------------------------------------------------------

// ExitCode maps an error returned by Execute to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	// Check for context cancellation (interrupt).
	if errors.Is(err, context.Canceled) {
		return ExitInterrupt
	}

	if isCobraUsageError(err) || errors.Is(err, render.ErrInvalidFormat) ||
		errors.Is(err, ErrInvalidAmount) || errors.Is(err, ErrInvalidLimit) ||
		errors.Is(err, ErrEmptyAPIKey) {
		return ExitUsage
	}

	if errors.Is(err, ErrNoAPIKey) {
		return ExitCredential
	}

	if kind, ok := apierr.KindOf(err); ok {
		switch kind {
		case apierr.KindPaymentRequired, apierr.KindForbidden:
			return ExitCredential
		case apierr.KindDecode, apierr.KindIO:
			return ExitTransport
		default:
			return ExitAPI
		}
	}

	return ExitGeneral
}

// cobraUsageErrorPatterns contains error message substrings that indicate Cobra usage errors.
// Cobra doesn't expose typed errors, so string matching is the only reliable approach.
var cobraUsageErrorPatterns = []string{
	"required flag",          // Missing required flag
	"unknown flag",           // Flag doesn't exist
	"unknown shorthand",      // Short flag doesn't exist
	"unknown command",        // Subcommand doesn't exist
	"flag needs an argument", // Flag provided without value
	"invalid argument",       // Invalid flag value type
	"accepts ",               // Wrong number of arguments (e.g., "accepts 1 arg(s)")
	"requires at least",      // Too few arguments
	"requires at most",       // Too many arguments
}

// isCobraUsageError checks if an error is a Cobra usage/parsing error.
func isCobraUsageError(err error) bool {
	if err == nil {
		return false
	}
	errMsg := err.Error()
	for _, pattern := range cobraUsageErrorPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Fetch and render
// ---------------------------------------------------------------------------

// show fetches ep and renders the result under entity.
func show[T any](cmd *cobra.Command, a *app, ep paprika.Endpoint, entity string, table func(T) string) error {
	v, err := paprika.Fetch[T](cmd.Context(), a.client, ep)
	if err != nil {
		return err
	}
	return a.renderer.Render(v, entity, func() string { return table(v) })
}

// showList is show for list endpoints the API does not paginate: the result
// is cut to the first limit entries.
func showList[T any](cmd *cobra.Command, a *app, ep paprika.Endpoint, entity string, limit int, table func([]T) string) error {
	v, err := paprika.Fetch[[]T](cmd.Context(), a.client, ep)
	if err != nil {
		return err
	}
	v = take(v, limit)
	return a.renderer.Render(v, entity, func() string { return table(v) })
}

// renderLocal renders data produced without an upstream call. JSON output
// keeps the envelope; tables get no data footer.
func (a *app) renderLocal(v any, entity string, table func() string) error {
	if a.renderer.Format == render.FormatJSON {
		return a.renderer.Render(v, entity, table)
	}
	return a.renderer.RenderBare(v, table)
}

// entityPath joins escaped segments under root for the _meta url, the same
// way the request path is built.
func entityPath(root string, segments ...string) string {
	var b strings.Builder
	b.WriteString(root)
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

func take[T any](s []T, n int) []T {
	if n < len(s) {
		return s[:n]
	}
	return s
}

func checkLimit(limit int) error {
	if limit < 0 {
		return fmt.Errorf("%w: --limit must not be negative, got %d", ErrInvalidLimit, limit)
	}
	return nil
}

// primaryQuote is the first currency of a comma-separated quotes list, as
// used for the table columns.
func primaryQuote(quotes string) string {
	first, _, _ := strings.Cut(quotes, ",")
	first = strings.ToUpper(strings.TrimSpace(first))
	if first == "" {
		return "USD"
	}
	return first
}
