package suite

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/babybehave/bdd"
)

// Format selects how a Report is rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a report format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("invalid report format: %q (valid: text, json, yaml)", s)
	}
}

// FailureReport describes one failed step.
type FailureReport struct {
	Kind    string `json:"kind" yaml:"kind"`
	Label   string `json:"label" yaml:"label"`
	Step    string `json:"step,omitempty" yaml:"step,omitempty"`
	Message string `json:"message" yaml:"message"`
}

// ScenarioReport summarizes one scenario run.
type ScenarioReport struct {
	ID         string          `json:"id" yaml:"id"`
	Name       string          `json:"name" yaml:"name"`
	RunID      string          `json:"run_id" yaml:"run_id"`
	Passed     bool            `json:"passed" yaml:"passed"`
	Steps      int             `json:"steps" yaml:"steps"`
	Skipped    int             `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	DurationMS int64           `json:"duration_ms" yaml:"duration_ms"`
	Failures   []FailureReport `json:"failures,omitempty" yaml:"failures,omitempty"`
}

func newScenarioReport(id string, result bdd.Result) ScenarioReport {
	sr := ScenarioReport{
		ID:         id,
		Name:       result.Scenario,
		RunID:      result.RunID,
		Passed:     result.Passed(),
		Steps:      len(result.Steps),
		Skipped:    result.Count(bdd.OutcomeSkipped),
		DurationMS: result.Duration.Milliseconds(),
	}

	if result.SetupErr != nil {
		sr.Failures = append(sr.Failures, FailureReport{
			Kind:    bdd.ConditionFailure.String(),
			Label:   "Given",
			Message: bdd.ExceptionMessage("Context Setup", result.SetupErr),
		})
	}

	for _, step := range result.Steps {
		switch step.Outcome() {
		case bdd.OutcomeNotVerified:
			sr.Failures = append(sr.Failures, FailureReport{
				Kind:    bdd.ConditionFailure.String(),
				Label:   step.Kind().Label(),
				Step:    step.Name(),
				Message: step.Kind().FailureMessage(),
			})
		case bdd.OutcomeException:
			sr.Failures = append(sr.Failures, FailureReport{
				Kind:    bdd.ExceptionFailure.String(),
				Label:   step.Kind().Label(),
				Step:    step.Name(),
				Message: bdd.ExceptionMessage(step.Kind().Label(), step.Error()),
			})
		}
	}

	return sr
}

// Report summarizes a suite run.
type Report struct {
	RunID     string           `json:"run_id" yaml:"run_id"`
	Suite     string           `json:"suite" yaml:"suite"`
	Scenarios []ScenarioReport `json:"scenarios" yaml:"scenarios"`
	Passed    int              `json:"passed" yaml:"passed"`
	Failed    int              `json:"failed" yaml:"failed"`
	Duration  time.Duration    `json:"-" yaml:"-"`
}

func (r *Report) add(sr ScenarioReport) {
	r.Scenarios = append(r.Scenarios, sr)
	if sr.Passed {
		r.Passed++
	} else {
		r.Failed++
	}
}

// OK reports whether every scenario passed.
func (r *Report) OK() bool {
	return r.Failed == 0
}

// RenderOptions controls Report.Render.
type RenderOptions struct {
	Format   Format
	Color    bool
	Humanize bool
}

// Render writes the report to w.
func (r *Report) Render(w io.Writer, opts RenderOptions) error {
	switch opts.Format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		return enc.Close()
	case FormatText, "":
		return r.renderText(w, opts)
	default:
		return fmt.Errorf("invalid report format: %q", opts.Format)
	}
}

var (
	passStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#40a02b", Dark: "#a6e3a1"})
	failStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#d20f39", Dark: "#f38ba8"})
)

func (r *Report) renderText(w io.Writer, opts RenderOptions) error {
	paint := func(style lipgloss.Style, s string) string {
		if opts.Color {
			return style.Render(s)
		}
		return s
	}

	var b strings.Builder
	for _, sc := range r.Scenarios {
		name := sc.Name
		if opts.Humanize {
			name = bdd.Humanize(name)
		}
		status := paint(passStyle, "PASS")
		if !sc.Passed {
			status = paint(failStyle, "FAIL")
		}
		fmt.Fprintf(&b, "%s %s (%s)\n", status, sc.ID, name)
		for _, f := range sc.Failures {
			fmt.Fprintf(&b, "    %s\n", f.Message)
		}
	}
	fmt.Fprintf(&b, "\n%d passed, %d failed\n", r.Passed, r.Failed)

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
