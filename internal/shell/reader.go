package shell

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"golang.org/x/term"
)

// ErrInterrupted is returned by ReadLine when the user pressed Ctrl+C.
var ErrInterrupted = errors.New("interrupted")

// Prompt is shown before each line on a terminal.
const Prompt = "coinpaprika> "

// LineReader yields one line of input per call.
// It returns io.EOF when input is exhausted and ErrInterrupted on Ctrl+C.
type LineReader interface {
	ReadLine() (string, error)
}

// ---------------------------------------------------------------------------
// Terminal reader
// ---------------------------------------------------------------------------

// TerminalReader edits lines on an interactive terminal with arrow-key
// history recall. The terminal is in raw mode only while a line is read, so
// dispatched commands see a normal terminal and Ctrl+C during a command
// still raises SIGINT.
type TerminalReader struct {
	fd      int
	in      *ctrlCTap
	out     io.Writer
	prompt  string
	history *History
}

// NewTerminalReader reads from in, which must be the terminal behind fd.
func NewTerminalReader(fd int, in io.Reader, out io.Writer, history *History) *TerminalReader {
	if history == nil {
		history = NewHistory(0)
	}
	return &TerminalReader{
		fd:      fd,
		in:      &ctrlCTap{r: in},
		out:     out,
		prompt:  Prompt,
		history: history,
	}
}

// ReadLine implements LineReader.
func (r *TerminalReader) ReadLine() (_ string, err error) {
	state, err := term.MakeRaw(r.fd)
	if err != nil {
		return "", fmt.Errorf("cannot enter raw mode: %w", err)
	}
	defer func() {
		if restoreErr := term.Restore(r.fd, state); restoreErr != nil && err == nil {
			err = fmt.Errorf("cannot restore terminal: %w", restoreErr)
		}
	}()

	// A fresh Terminal per line drops any partial input left by Ctrl+C.
	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{r.in, r.out}, r.prompt)
	t.History = recall{h: r.history}

	r.in.reset()
	line, err := t.ReadLine()
	if errors.Is(err, io.EOF) && r.in.sawCtrlC() {
		_, _ = io.WriteString(r.out, "^C\r\n")
		return "", ErrInterrupted
	}
	if errors.Is(err, term.ErrPasteIndicator) {
		err = nil
	}
	return line, err
}

// ctrlCTap records whether the bytes read so far contain Ctrl+C. The
// terminal reports both Ctrl+C and Ctrl+D as io.EOF; the tap tells them apart.
type ctrlCTap struct {
	r   io.Reader
	hit atomic.Bool
}

func (t *ctrlCTap) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if n > 0 && bytes.IndexByte(p[:n], 0x03) >= 0 {
		t.hit.Store(true)
	}
	return n, err
}

func (t *ctrlCTap) reset() { t.hit.Store(false) }

func (t *ctrlCTap) sawCtrlC() bool { return t.hit.Load() }

// ---------------------------------------------------------------------------
// Plain reader
// ---------------------------------------------------------------------------

// PlainReader reads newline-terminated lines from a non-terminal input such
// as a pipe. It prints no prompt.
type PlainReader struct {
	br *bufio.Reader
}

// NewPlainReader reads from in.
func NewPlainReader(in io.Reader) *PlainReader {
	return &PlainReader{br: bufio.NewReader(in)}
}

// ReadLine implements LineReader. A final line without a newline is
// returned before io.EOF.
func (r *PlainReader) ReadLine() (string, error) {
	line, err := r.br.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
