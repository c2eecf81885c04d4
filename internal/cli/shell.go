package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alnah/coinpaprika-cli/internal/shell"
)

func shellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive shell mode (REPL)",
		Long: `Start an interactive session. Type commands without the
'coinpaprika-cli' prefix; each line runs exactly like a one-shot command,
with its own credential resolution and output flags.

Ctrl+C cancels the running command, or prints a hint when idle.
Type 'exit' or 'quit', or press Ctrl+D, to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd.Context(), a)
		},
	}
}

func runShell(ctx context.Context, a *app) error {
	if a.env.InShell {
		return ErrNestedShell
	}

	env := a.env
	in := sharedInput(env.Stdin)
	history := shell.NewHistory(shell.DefaultHistorySize)
	reader := env.ReaderFactory.NewLineReader(in, env.Stdout, history)

	// The session outlives signals aimed at a single command; the handler
	// decides what an interrupt ends.
	handler, sessionCtx := env.InterruptFactory.NewHandler(context.WithoutCancel(ctx), env.Stderr, func() {
		fmt.Fprintln(env.Stdout, shell.InterruptHint)
	})
	defer handler.Stop()

	// Commands that prompt (onboard) read the next lines of the same stream.
	nested := env.nested()
	nested.Stdin = in
	sh := shell.New(reader,
		func(ctx context.Context, args []string) error {
			return Execute(ctx, nested, args)
		},
		shell.WithOutput(env.Stdout, env.Stderr),
		shell.WithHistory(history),
		shell.WithGuard(handler),
		shell.WithLogger(a.logger),
	)
	return sh.Run(sessionCtx)
}

// sharedInput returns the stream the shell and the commands it dispatches
// both read from. A piped stream is buffered once; bufio.NewReader hands back
// that same buffer to later readers instead of wrapping it again. A terminal
// is returned as is.
func sharedInput(r io.Reader) io.Reader {
	if f, ok := r.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return r
	}
	return bufio.NewReader(r)
}
