package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"
)

// Column budgets for detail tables.
const (
	labelWidth = 20
	valueWidth = 80
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// List renders records as a multi-row table with a header.
// Callers truncate long fields before passing them in.
func List(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}

// Detail accumulates label/value pairs for a single record.
type Detail struct {
	rows [][]string
}

// NewDetail returns an empty detail table.
func NewDetail() *Detail {
	return &Detail{}
}

// Add appends a row.
func (d *Detail) Add(label, value string) *Detail {
	d.rows = append(d.rows, []string{label, value})
	return d
}

// Len returns the number of rows.
func (d *Detail) Len() int {
	return len(d.rows)
}

// String renders the table. Labels wrap at 20 columns, values at 80.
func (d *Detail) String() string {
	lw, vw := 0, 0
	for _, r := range d.rows {
		lw = max(lw, lipgloss.Width(r[0]))
		vw = max(vw, lipgloss.Width(r[1]))
	}
	lw = min(lw, labelWidth)
	vw = min(vw, valueWidth)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		Rows(d.rows...).
		StyleFunc(func(_, col int) lipgloss.Style {
			// Width includes the horizontal padding.
			if col == 0 {
				return cellStyle.Width(lw + 2)
			}
			return cellStyle.Width(vw + 2)
		}).
		String()
}

// YAML renders a free-form payload (mappings, changelog, key usage) for
// table mode, where no fixed columns apply.
func YAML(v any) (string, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// YAMLFromJSON renders a JSON document as block-style YAML. Key order and
// number literals are kept as received.
func YAMLFromJSON(doc []byte) (string, error) {
	var n yaml.Node
	if err := yaml.Unmarshal(doc, &n); err != nil {
		return "", err
	}
	blockStyle(&n)
	out, err := yaml.Marshal(&n)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// blockStyle clears the flow and quoting styles a JSON source implies.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
