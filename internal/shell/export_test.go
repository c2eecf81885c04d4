package shell

import "io"

// Exported for testing.
var Redact = redact

// NewCtrlCTap exposes the Ctrl+C detector.
func NewCtrlCTap(r io.Reader) interface {
	io.Reader
	Reset()
	SawCtrlC() bool
} {
	return &tapExport{&ctrlCTap{r: r}}
}

type tapExport struct{ *ctrlCTap }

func (t *tapExport) Reset()         { t.reset() }
func (t *tapExport) SawCtrlC() bool { return t.sawCtrlC() }

// Recall exposes the term.History adapter.
func Recall(h *History) interface {
	Add(string)
	Len() int
	At(int) string
} {
	return recall{h: h}
}
