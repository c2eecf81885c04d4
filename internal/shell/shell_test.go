package shell_test

// Coverage Notes:
// - The loop is driven by a scripted LineReader; no terminal is involved.
// - TerminalReader itself needs a TTY and is not exercised here; its Ctrl+C
//   detection is tested through the exported tap.

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alnah/coinpaprika-cli/internal/shell"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// step is one scripted ReadLine result.
type step struct {
	line string
	err  error
}

type scriptReader struct {
	steps []step
	reads int
}

func (r *scriptReader) ReadLine() (string, error) {
	r.reads++
	if r.reads > len(r.steps) {
		return "", io.EOF
	}
	s := r.steps[r.reads-1]
	return s.line, s.err
}

func lines(ls ...string) *scriptReader {
	r := &scriptReader{}
	for _, l := range ls {
		r.steps = append(r.steps, step{line: l})
	}
	return r
}

type recorder struct {
	calls [][]string
	fail  map[string]error
}

func (rec *recorder) dispatch(_ context.Context, args []string) error {
	rec.calls = append(rec.calls, args)
	if len(args) > 0 {
		if err := rec.fail[args[0]]; err != nil {
			return err
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// TestTokenize - quote-aware splitting
// ---------------------------------------------------------------------------

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"whitespace only", "  \t ", nil},
		{"single word", "global", []string{"global"}},
		{"collapses spaces", "  coins   --limit  5 ", []string{"coins", "--limit", "5"}},
		{"double quotes", `ticker btc-bitcoin --quotes "USD,BTC"`, []string{"ticker", "btc-bitcoin", "--quotes", "USD,BTC"}},
		{"quoted whitespace kept", `search "bitcoin cash"`, []string{"search", "bitcoin cash"}},
		{"single quotes", `search 'wrapped eth'`, []string{"search", "wrapped eth"}},
		{"other quote inside", `search "it's"`, []string{"search", "it's"}},
		{"adjacent quoted text joins", `a"b c"d`, []string{"ab cd"}},
		{"unterminated quote runs to end", `search "bitcoin cash --limit 5`, []string{"search", "bitcoin cash --limit 5"}},
		{"empty quoted token", `search ""`, []string{"search", ""}},
		{"tabs separate", "coin\tbtc-bitcoin", []string{"coin", "btc-bitcoin"}},
		{"multi-byte", `search "日本 円"`, []string{"search", "日本 円"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, shell.Tokenize(tt.input))
		})
	}
}

// ---------------------------------------------------------------------------
// TestHistory - bounded, oldest dropped first
// ---------------------------------------------------------------------------

func TestHistory(t *testing.T) {
	t.Parallel()

	h := shell.NewHistory(3)
	for _, l := range []string{"a", "b", "c", "d"} {
		h.Add(l)
	}
	assert.Equal(t, []string{"b", "c", "d"}, h.Entries())
	assert.Equal(t, 3, h.Len())

	r := shell.Recall(h)
	assert.Equal(t, "d", r.At(0), "index 0 is most recent")
	assert.Equal(t, "b", r.At(2))
	r.Add("ignored")
	assert.Equal(t, 3, r.Len(), "terminal adds are ignored")

	assert.Equal(t, 0, shell.NewHistory(-1).Len())
}

// ---------------------------------------------------------------------------
// TestRunDispatchesLines - tokenized lines reach the dispatcher in order
// ---------------------------------------------------------------------------

func TestRunDispatchesLines(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	var out bytes.Buffer
	s := shell.New(lines("global", "", "   ", `search "bitcoin cash"`), rec.dispatch, shell.WithOutput(&out, nil))

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, [][]string{{"global"}, {"search", "bitcoin cash"}}, rec.calls)
	assert.Equal(t, []string{"global", `search "bitcoin cash"`}, s.History().Entries())
	assert.True(t, strings.HasPrefix(out.String(), "coinpaprika-cli interactive shell"))
}

// ---------------------------------------------------------------------------
// TestRunBanner - printed once, ending in a single newline
// ---------------------------------------------------------------------------

func TestRunBanner(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	s := shell.New(lines(), (&recorder{}).dispatch, shell.WithOutput(&out, nil))

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, shell.Banner, out.String())
	assert.False(t, strings.HasSuffix(out.String(), "\n\n"))
}

// ---------------------------------------------------------------------------
// TestRunExitWords - exact, case-sensitive
// ---------------------------------------------------------------------------

func TestRunExitWords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     []string
		wantCalls int
	}{
		{"exit stops", []string{"global", "exit", "coins"}, 1},
		{"quit stops", []string{"quit", "coins"}, 0},
		{"padded exit stops", []string{"  exit  "}, 0},
		{"uppercase is a command", []string{"EXIT", "Quit"}, 2},
		{"exit with args is a command", []string{"exit now"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := &recorder{}
			s := shell.New(lines(tt.input...), rec.dispatch)
			require.NoError(t, s.Run(context.Background()))
			assert.Len(t, rec.calls, tt.wantCalls)
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunDispatchErrorContinues - failures are reported, loop keeps reading
// ---------------------------------------------------------------------------

func TestRunDispatchErrorContinues(t *testing.T) {
	t.Parallel()

	rec := &recorder{fail: map[string]error{"ticker": errors.New("Rate limit exceeded.")}}
	var out, errOut bytes.Buffer
	s := shell.New(lines("ticker btc-bitcoin", "global"), rec.dispatch, shell.WithOutput(&out, &errOut))

	require.NoError(t, s.Run(context.Background()))
	assert.Len(t, rec.calls, 2)
	assert.Equal(t, "Error: Rate limit exceeded.\n", errOut.String())
	assert.Equal(t, []string{"ticker btc-bitcoin", "global"}, s.History().Entries(),
		"failed line stays in history")
}

// ---------------------------------------------------------------------------
// TestRunHistoryBeforeDispatch - line is recorded before the command runs
// ---------------------------------------------------------------------------

func TestRunHistoryBeforeDispatch(t *testing.T) {
	t.Parallel()

	var s *shell.Shell
	var seen []string
	s = shell.New(lines("coins --limit 3"), func(context.Context, []string) error {
		seen = s.History().Entries()
		return errors.New("boom")
	})

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, []string{"coins --limit 3"}, seen)
}

// ---------------------------------------------------------------------------
// TestRunInterrupt - Ctrl+C while reading prints a hint and keeps reading
// ---------------------------------------------------------------------------

func TestRunInterrupt(t *testing.T) {
	t.Parallel()

	r := &scriptReader{steps: []step{
		{err: shell.ErrInterrupted},
		{line: "global"},
		{err: shell.ErrInterrupted},
	}}
	rec := &recorder{}
	var out bytes.Buffer
	s := shell.New(r, rec.dispatch, shell.WithOutput(&out, nil))

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, 2, strings.Count(out.String(), shell.InterruptHint))
	assert.Len(t, rec.calls, 1)
	assert.Equal(t, 4, r.reads, "read until EOF")
}

// ---------------------------------------------------------------------------
// TestRunReadError - unexpected read errors end the session with an error
// ---------------------------------------------------------------------------

func TestRunReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("tty gone")
	s := shell.New(&scriptReader{steps: []step{{err: boom}}}, (&recorder{}).dispatch)

	err := s.Run(context.Background())
	assert.ErrorIs(t, err, boom)
}

// ---------------------------------------------------------------------------
// TestRunCanceled - canceled session context stops before reading
// ---------------------------------------------------------------------------

func TestRunCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := lines("global")
	require.NoError(t, shell.New(r, (&recorder{}).dispatch).Run(ctx))
	assert.Equal(t, 0, r.reads)
}

// ---------------------------------------------------------------------------
// TestRunGuardScopesCommands - each command gets its own context
// ---------------------------------------------------------------------------

type countingGuard struct{ begun, ended int }

func (g *countingGuard) Begin(ctx context.Context) (context.Context, context.CancelFunc) {
	g.begun++
	c, cancel := context.WithCancel(ctx)
	return c, func() { g.ended++; cancel() }
}

func TestRunGuardScopesCommands(t *testing.T) {
	t.Parallel()

	g := &countingGuard{}
	var ctxs []context.Context
	s := shell.New(lines("a", "b"), func(ctx context.Context, _ []string) error {
		ctxs = append(ctxs, ctx)
		return nil
	}, shell.WithGuard(g))

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, 2, g.begun)
	assert.Equal(t, 2, g.ended)
	for _, c := range ctxs {
		assert.Error(t, c.Err(), "command context released after dispatch")
	}
}

// ---------------------------------------------------------------------------
// TestRedact - API keys never reach the log
// ---------------------------------------------------------------------------

func TestRedact(t *testing.T) {
	t.Parallel()

	in := []string{"key-info", "--api-key", "secret", "--api-key=other"}
	got := shell.Redact(in)
	assert.Equal(t, []string{"key-info", "--api-key", "****", "--api-key=****"}, got)
	assert.Equal(t, "secret", in[2], "input not modified")
}

// ---------------------------------------------------------------------------
// TestPlainReader - lines from a pipe
// ---------------------------------------------------------------------------

func TestPlainReader(t *testing.T) {
	t.Parallel()

	r := shell.NewPlainReader(strings.NewReader("global\r\ncoins --limit 2\nlast"))

	var got []string
	for {
		l, err := r.ReadLine()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		got = append(got, l)
	}
	assert.Equal(t, []string{"global", "coins --limit 2", "last"}, got)
}

// ---------------------------------------------------------------------------
// TestCtrlCTap - distinguishes Ctrl+C from Ctrl+D
// ---------------------------------------------------------------------------

func TestCtrlCTap(t *testing.T) {
	t.Parallel()

	tap := shell.NewCtrlCTap(strings.NewReader("ab\x03"))
	buf := make([]byte, 8)
	_, _ = tap.Read(buf)
	assert.True(t, tap.SawCtrlC())
	tap.Reset()
	assert.False(t, tap.SawCtrlC())

	eot := shell.NewCtrlCTap(strings.NewReader("\x04"))
	_, _ = eot.Read(buf)
	assert.False(t, eot.SawCtrlC())
}
