// Package render writes command results as bordered tables or JSON.
//
// JSON output is either the bare payload (--raw) or the payload wrapped in a
// stable envelope: {"data": ..., "_meta": {...}}. The _meta field names are
// the same for every command.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// ErrInvalidFormat indicates an unknown --output value.
var ErrInvalidFormat = errors.New("invalid output format")

// Format selects the output encoding.
type Format int

const (
	FormatTable Format = iota
	FormatJSON
)

// Compile-time interface compliance check.
var _ pflag.Value = (*Format)(nil)

// ParseFormat parses "table" or "json" (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	}
	return FormatTable, fmt.Errorf("%q (expected table or json): %w", s, ErrInvalidFormat)
}

func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "table"
}

// Set implements pflag.Value.
func (f *Format) Set(s string) error {
	v, err := ParseFormat(s)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Type implements pflag.Value.
func (f *Format) Type() string {
	return "format"
}

// Attribution constants.
const (
	SourceName  = "CoinPaprika"
	SiteURL     = "https://coinpaprika.com"
	APIDocsURL  = "https://api.coinpaprika.com"
	Attribution = "Powered by CoinPaprika · Free crypto market data"

	// Footer follows every table.
	Footer = "\n Data: CoinPaprika (coinpaprika.com) · Free API: api.coinpaprika.com"
)

// Meta is the provenance block attached to wrapped JSON output.
type Meta struct {
	Source      string `json:"source"`
	URL         string `json:"url"`
	APIDocs     string `json:"api_docs"`
	Attribution string `json:"attribution"`
	Timestamp   string `json:"timestamp"`
}

// NewMeta builds the block for an entity path such as "/coin/btc-bitcoin".
// An empty path points at the site root.
func NewMeta(entityPath string, now time.Time) Meta {
	return Meta{
		Source:      SourceName,
		URL:         SiteURL + entityPath,
		APIDocs:     APIDocsURL,
		Attribution: Attribution,
		Timestamp:   now.UTC().Format(time.RFC3339),
	}
}

// Envelope wraps a payload with its Meta.
type Envelope struct {
	Data any  `json:"data"`
	Meta Meta `json:"_meta"`
}

// Renderer writes one result per call to Out.
type Renderer struct {
	Out    io.Writer
	Format Format
	Raw    bool // JSON only: skip the envelope
	Now    func() time.Time
}

// Render writes v. In table mode table is called to produce the body and the
// attribution footer is appended; in JSON mode v is wrapped in an Envelope for
// entityPath unless Raw is set.
func (r *Renderer) Render(v any, entityPath string, table func() string) error {
	if r.Format == FormatJSON {
		if r.Raw {
			return JSON(r.Out, v)
		}
		return JSON(r.Out, Envelope{Data: v, Meta: NewMeta(entityPath, r.now())})
	}

	if _, err := fmt.Fprintln(r.Out, table()); err != nil {
		return err
	}
	_, err := fmt.Fprintln(r.Out, Footer)
	return err
}

// RenderBare writes v without envelope or footer. Used by commands whose
// output is local (config, status, plans).
func (r *Renderer) RenderBare(v any, table func() string) error {
	if r.Format == FormatJSON {
		return JSON(r.Out, v)
	}
	_, err := fmt.Fprintln(r.Out, table())
	return err
}

func (r *Renderer) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

// JSON writes v indented by two spaces, without HTML escaping.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// ReportError writes err in the selected format: {"error": "..."} on stdout
// for JSON, "Error: ..." on stderr for tables.
func ReportError(stdout, stderr io.Writer, f Format, err error) {
	if err == nil {
		return
	}
	if f == FormatJSON {
		_ = JSON(stdout, map[string]string{"error": err.Error()})
		return
	}
	_, _ = fmt.Fprintf(stderr, "Error: %s\n", err)
}
