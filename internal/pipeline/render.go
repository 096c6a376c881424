package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/deorlovnis/popping-lab/internal/model"
	"github.com/deorlovnis/popping-lab/veritas"
)

// Renderer produces the report output formats
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderMarkdown writes a human-readable report
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Falsification Report: %s\n\n", report.Subject)
	fmt.Fprintf(&b, "Checked: %s\n\n", report.CheckedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "**Survival index: %d/100** (confidence: %s)\n\n", report.Summary.Index, report.Summary.Confidence)

	fmt.Fprintf(&b, "| | Count |\n|---|---|\n")
	fmt.Fprintf(&b, "| Survived | %d |\n", report.Summary.Survived)
	fmt.Fprintf(&b, "| Killed | %d |\n", report.Summary.Killed)
	fmt.Fprintf(&b, "| Uncertain | %d |\n\n", report.Summary.Uncertain)

	if len(report.Claims) > 0 {
		b.WriteString("## Claims\n\n")
		for _, c := range report.Claims {
			fmt.Fprintf(&b, "### %s %s\n\n", verdictGlyph(c.Verdict), c.ID)
			fmt.Fprintf(&b, "> %s\n\n", c.Statement)
			fmt.Fprintf(&b, "- Kind: %s\n", c.Kind)
			fmt.Fprintf(&b, "- Verdict: %s\n", c.Verdict)
			fmt.Fprintf(&b, "- Reasoning: %s\n", c.Reasoning)
			if c.Cached {
				b.WriteString("- Served from cache\n")
			}
			b.WriteString("\n")
		}
	}

	if len(report.Summary.Signals) > 0 {
		b.WriteString("## Signals\n\n")
		for _, sig := range report.Summary.Signals {
			fmt.Fprintf(&b, "- **%s** [%s]: %s\n", sig.Type, sig.Severity, sig.Description)
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\n")
		b.WriteString("Verdicts report falsification outcomes, not truth. ")
		b.WriteString("A surviving claim has withstood this evidence; it has not been proven.\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderSummary prints a compact summary to stdout
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Printf("\n%s\n", report.Subject)
	fmt.Printf("Survival index: %d/100 (confidence: %s)\n", report.Summary.Index, report.Summary.Confidence)
	fmt.Printf("Claims: %d survived, %d killed, %d uncertain\n\n",
		report.Summary.Survived, report.Summary.Killed, report.Summary.Uncertain)

	for _, c := range report.Claims {
		fmt.Printf("  %s %s: %s\n", verdictGlyph(c.Verdict), c.ID, c.Reasoning)
	}

	for _, sig := range report.Summary.Signals {
		if sig.Severity == model.SeverityInfo {
			continue
		}
		fmt.Printf("\n  [%s] %s\n", sig.Severity, sig.Description)
	}
	fmt.Println()
}

func verdictGlyph(verdict string) string {
	switch veritas.Verdict(verdict) {
	case veritas.Survived:
		return "✓"
	case veritas.Killed:
		return "✗"
	default:
		return "?"
	}
}
