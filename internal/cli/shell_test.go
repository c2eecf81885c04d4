package cli_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alnah/coinpaprika-cli/internal/cli"
	"github.com/alnah/coinpaprika-cli/internal/render"
	"github.com/alnah/coinpaprika-cli/internal/shell"
)

func TestShell_Session(t *testing.T) {
	t.Parallel()

	script := strings.Join([]string{
		"global",
		"",
		"bogus-command",
		"shell",
		"config set-key shell-key-7777",
		"global --output json",
		"exit",
		"global",
	}, "\n") + "\n"

	api := newFakeAPI(t, http.StatusOK, globalBody)
	te := newTestEnv(t, api, withShellScript(script))

	require.Equal(t, cli.ExitOK, te.run("shell"))

	out := te.stdout.String()
	assert.True(t, strings.HasPrefix(out, shell.Banner))
	assert.Contains(t, out, render.Footer)
	assert.Contains(t, out, `"_meta"`)

	errOut := te.stderr.String()
	assert.Contains(t, errOut, `Error: unknown command "bogus-command"`)
	assert.Contains(t, errOut, "Error: "+cli.ErrNestedShell.Error())

	reqs := api.Requests()
	require.Len(t, reqs, 2, "nothing runs after exit")
	assert.False(t, reqs[0].HasAuth)
	assert.Equal(t, "shell-key-7777", reqs[1].Authorization)
}

func TestShell_ErrorsDoNotEndSession(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t, http.StatusTooManyRequests, ``)
	te := newTestEnv(t, api, withShellScript("global\nglobal -o json\nquit\n"))

	require.Equal(t, cli.ExitOK, te.run("shell"))

	assert.Len(t, api.Requests(), 2)
	assert.Equal(t, 2, strings.Count(te.stderr.String(), "Rate limit exceeded"))
}

func TestShell_EndOfInput(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t, http.StatusOK, globalBody)
	te := newTestEnv(t, api, withShellScript("global"))

	require.Equal(t, cli.ExitOK, te.run("shell"))
	assert.Len(t, api.Requests(), 1)
}

func TestShell_IgnoresParentCancellation(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t, http.StatusOK, globalBody)
	te := newTestEnv(t, api, withShellScript("global\n"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, cli.Execute(ctx, te.env, []string{"shell"}))
	assert.Len(t, api.Requests(), 1)
}

func TestShell_PromptingCommandReadsSessionInput(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"onboard",
		"y",
		"piped-onboard-key-55",
		"global",
		"exit",
	}, "\n") + "\n"

	api := newFakeAPI(t, http.StatusOK, `{"plan":"Starter"}`)
	te := newTestEnv(t, api, withPipedShell(input))

	require.Equal(t, cli.ExitOK, te.run("shell"))

	assert.NotContains(t, te.stderr.String(), `unknown command "y"`)
	assert.Contains(t, te.stdout.String(), "Key validated! Plan: Starter")

	key, err := te.store.APIKey()
	require.NoError(t, err)
	assert.Equal(t, "piped-onboard-key-55", key)

	reqs := api.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "/key/info", reqs[0].Path)
	assert.Equal(t, "/global", reqs[1].Path)
	assert.Equal(t, "piped-onboard-key-55", reqs[1].Authorization)
}
