package bdd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Trace colors.
var (
	colorGiven   = lipgloss.AdaptiveColor{Light: "#1e66f5", Dark: "#89b4fa"}
	colorKeyword = lipgloss.AdaptiveColor{Light: "#7c3aed", Dark: "#cba6f7"}
)

// tracer writes the human-readable scenario trace:
//
//	Given a: <scenario>
//	    <Label>: <step>
//
// followed by a blank line.
type tracer struct {
	out     io.Writer
	given   lipgloss.Style
	keyword lipgloss.Style
	color   bool
}

func newTracer(out io.Writer, color bool) *tracer {
	return &tracer{
		out:     out,
		given:   lipgloss.NewStyle().Bold(true).Foreground(colorGiven),
		keyword: lipgloss.NewStyle().Foreground(colorKeyword),
		color:   color,
	}
}

func (t *tracer) scenario(name string) {
	_, _ = fmt.Fprintf(t.out, "%s %s\n", t.paint(t.given, "Given a:"), name)
}

func (t *tracer) step(kind Kind, name string) {
	_, _ = fmt.Fprintf(t.out, "    %s %s\n", t.paint(t.keyword, kind.Label()+":"), name)
}

func (t *tracer) end() {
	_, _ = fmt.Fprintln(t.out)
}

func (t *tracer) paint(style lipgloss.Style, s string) string {
	if !t.color {
		return s
	}
	return style.Render(s)
}
