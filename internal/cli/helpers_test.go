package cli_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/alnah/coinpaprika-cli/internal/cli"
	"github.com/alnah/coinpaprika-cli/internal/config"
	"github.com/alnah/coinpaprika-cli/internal/interrupt"
	"github.com/alnah/coinpaprika-cli/internal/paprika"
	"github.com/alnah/coinpaprika-cli/internal/shell"
)

var fixedNow = time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC)

// ---------------------------------------------------------------------------
// fakeAPI - httptest server recording every request
// ---------------------------------------------------------------------------

type recordedRequest struct {
	Path          string
	RawQuery      string
	Authorization string
	HasAuth       bool
}

type fakeAPI struct {
	*httptest.Server

	mu       sync.Mutex
	requests []recordedRequest
	status   int
	body     string
}

// newFakeAPI answers every request with status and body.
func newFakeAPI(t *testing.T, status int, body string) *fakeAPI {
	t.Helper()

	api := &fakeAPI{status: status, body: body}
	api.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.mu.Lock()
		_, hasAuth := r.Header["Authorization"]
		api.requests = append(api.requests, recordedRequest{
			Path:          r.URL.EscapedPath(),
			RawQuery:      r.URL.RawQuery,
			Authorization: r.Header.Get("Authorization"),
			HasAuth:       hasAuth,
		})
		status, body := api.status, api.body
		api.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(api.Close)
	return api
}

func (a *fakeAPI) Requests() []recordedRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]recordedRequest(nil), a.requests...)
}

func (a *fakeAPI) last(t *testing.T) recordedRequest {
	t.Helper()
	reqs := a.Requests()
	if len(reqs) == 0 {
		t.Fatal("no request reached the API")
	}
	return reqs[len(reqs)-1]
}

// ---------------------------------------------------------------------------
// Factories
// ---------------------------------------------------------------------------

// clientFactory points every client at the fake API and records the keys
// clients were bound to.
type clientFactory struct {
	baseURL string

	mu   sync.Mutex
	keys []string
}

func (f *clientFactory) NewClient(apiKey string, logger zerolog.Logger) *paprika.Client {
	f.mu.Lock()
	f.keys = append(f.keys, apiKey)
	f.mu.Unlock()
	return paprika.NewClient(apiKey, paprika.WithBaseURL(f.baseURL), paprika.WithLogger(logger))
}

// scriptedReaders feeds the shell from a fixed script.
type scriptedReaders struct {
	script string
}

func (s scriptedReaders) NewLineReader(_ io.Reader, _ io.Writer, _ *shell.History) shell.LineReader {
	return shell.NewPlainReader(strings.NewReader(s.script))
}

// pipedReaders reads shell lines from the stdin handed to the session, the
// way a non-terminal stdin is read in production.
type pipedReaders struct{}

func (pipedReaders) NewLineReader(in io.Reader, _ io.Writer, _ *shell.History) shell.LineReader {
	return shell.NewPlainReader(in)
}

// quietInterrupts installs a handler without a signal listener.
type quietInterrupts struct{}

func (quietInterrupts) NewHandler(parent context.Context, stderr io.Writer, onIdle func()) (*interrupt.Handler, context.Context) {
	return interrupt.NewHandlerWithOptions(parent, interrupt.Options{
		Stderr:   stderr,
		OnIdle:   onIdle,
		ExitFunc: func(int) {},
	})
}

// ---------------------------------------------------------------------------
// testEnv - a fully wired Env over temp config and the fake API
// ---------------------------------------------------------------------------

type testEnv struct {
	env     *cli.Env
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	logs    *bytes.Buffer
	store   *config.FileStore
	factory *clientFactory
	vars    map[string]string
}

type testEnvOption func(*testEnv)

func withVar(name, value string) testEnvOption {
	return func(te *testEnv) { te.vars[name] = value }
}

func withStdin(s string) testEnvOption {
	return func(te *testEnv) { te.env.Stdin = strings.NewReader(s) }
}

func withShellScript(script string) testEnvOption {
	return func(te *testEnv) { te.env.ReaderFactory = scriptedReaders{script: script} }
}

// withPipedShell feeds the whole session, prompts included, through stdin.
func withPipedShell(input string) testEnvOption {
	return func(te *testEnv) {
		te.env.Stdin = strings.NewReader(input)
		te.env.ReaderFactory = pipedReaders{}
	}
}

func withClock(now func() time.Time) testEnvOption {
	return func(te *testEnv) { te.env.Now = now }
}

func newTestEnv(t *testing.T, api *fakeAPI, opts ...testEnvOption) *testEnv {
	t.Helper()

	te := &testEnv{
		stdout:  &bytes.Buffer{},
		stderr:  &bytes.Buffer{},
		logs:    &bytes.Buffer{},
		store:   config.NewFileStore(t.TempDir()),
		factory: &clientFactory{baseURL: api.URL},
		vars:    map[string]string{},
	}
	te.env = cli.NewEnv(
		cli.WithStdin(strings.NewReader("")),
		cli.WithStdout(te.stdout),
		cli.WithStderr(te.stderr),
		cli.WithGetenv(func(k string) string { return te.vars[k] }),
		cli.WithNow(func() time.Time { return fixedNow }),
		cli.WithLogFile(te.logs),
		cli.WithConfigStore(te.store),
		cli.WithClientFactory(te.factory),
		cli.WithReaderFactory(scriptedReaders{}),
		cli.WithInterruptFactory(quietInterrupts{}),
	)
	for _, opt := range opts {
		opt(te)
	}
	return te
}

func (te *testEnv) run(args ...string) int {
	return cli.Run(context.Background(), te.env, args)
}

// steppingClock advances by step on every call.
func steppingClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	now := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := now
		now = now.Add(step)
		return t
	}
}
