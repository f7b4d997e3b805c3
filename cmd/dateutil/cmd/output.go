package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorSuccess = lipgloss.Color("#10B981")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
)

// styles renders CLI text output
type styles struct {
	value  lipgloss.Style
	label  lipgloss.Style
	header lipgloss.Style
	muted  lipgloss.Style
	err    lipgloss.Style
}

func newStyles(w io.Writer, color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{value: plain, label: plain, header: plain, muted: plain, err: plain}
	}

	r := lipgloss.NewRenderer(w)
	return styles{
		value:  r.NewStyle().Foreground(colorSuccess).Bold(true),
		label:  r.NewStyle().Foreground(colorPrimary),
		header: r.NewStyle().Foreground(colorPrimary).Bold(true).Underline(true),
		muted:  r.NewStyle().Foreground(colorMuted),
		err:    r.NewStyle().Foreground(colorError).Bold(true),
	}
}

// printer writes results as text or JSON
type printer struct {
	out, errOut io.Writer
	json        bool
	styles      styles
	errStyles   styles
}

func newPrinter(out, errOut io.Writer, asJSON, color bool) *printer {
	return &printer{
		out:       out,
		errOut:    errOut,
		json:      asJSON,
		styles:    newStyles(out, color),
		errStyles: newStyles(errOut, color),
	}
}

// JSON writes v as indented JSON
func (p *printer) JSON(v interface{}) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// Value prints a single result value
func (p *printer) Value(v interface{}) {
	fmt.Fprintln(p.out, p.styles.value.Render(fmt.Sprint(v)))
}

// Error prints an error line to stderr
func (p *printer) Error(msg string) {
	fmt.Fprintln(p.errOut, p.errStyles.err.Render("error:")+" "+msg)
}

// Table prints rows as aligned columns with a header row
func (p *printer) Table(header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if l := lipgloss.Width(cell); l > widths[i] {
				widths[i] = l
			}
		}
	}

	cells := func(row []string, style func(int) lipgloss.Style) string {
		parts := make([]string, len(row))
		for i, cell := range row {
			padded := cell
			if i < len(row)-1 {
				padded += strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
			}
			parts[i] = style(i).Render(padded)
		}
		return strings.Join(parts, "  ")
	}

	fmt.Fprintln(p.out, cells(header, func(int) lipgloss.Style { return p.styles.header }))
	for _, row := range rows {
		fmt.Fprintln(p.out, cells(row, func(i int) lipgloss.Style {
			switch i {
			case 0:
				return p.styles.label
			case len(row) - 1:
				return p.styles.muted
			default:
				return lipgloss.NewStyle()
			}
		}))
	}
}
