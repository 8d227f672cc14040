package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/sentinel-india/sentinel/internal/model"
)

// Renderer writes outcomes as JSON and Markdown reports
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the outcome to path as indented JSON
func (r *Renderer) RenderJSON(outcome *model.Outcome, path string) error {
	data, err := json.MarshalIndent(outcome, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal outcome: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// RenderMarkdown writes a human-readable governance report to path
func (r *Renderer) RenderMarkdown(outcome *model.Outcome, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Forensic Governance Report\n\n")
	fmt.Fprintf(&b, "- **Filing**: %s\n", outcome.Filing)
	fmt.Fprintf(&b, "- **Audited**: %s\n", outcome.AuditedAt.Format("2006-01-02 15:04 UTC"))
	fmt.Fprintf(&b, "- **State**: %s\n", outcome.State)
	if outcome.Provider != "" {
		fmt.Fprintf(&b, "- **Reasoning service**: %s/%s\n", outcome.Provider, outcome.Model)
	}
	if outcome.CacheHit {
		fmt.Fprintf(&b, "- **Cache**: hit\n")
	}
	b.WriteString("\n")

	if a := outcome.Assessment; a != nil {
		fmt.Fprintf(&b, "## Assessment\n\n")
		fmt.Fprintf(&b, "| Field | Value |\n|---|---|\n")
		fmt.Fprintf(&b, "| Party | %s |\n", a.PartyName)
		fmt.Fprintf(&b, "| Nature | %s |\n", a.TransactionNature)
		if a.Amount != nil {
			fmt.Fprintf(&b, "| Amount | ₹%.2f |\n", *a.Amount)
		}
		if a.Material != nil {
			fmt.Fprintf(&b, "| Material | %t |\n", *a.Material)
		}
		fmt.Fprintf(&b, "| Citation | %s |\n", a.Citation)
		if a.ComplianceScore != nil {
			fmt.Fprintf(&b, "| Compliance score | %d/100 |\n", *a.ComplianceScore)
		}
		fmt.Fprintf(&b, "| Risk level | %s |\n", a.RiskLevel)
		fmt.Fprintf(&b, "\n%s\n\n", a.Narrative)

		fmt.Fprintf(&b, "## Red Flags\n\n")
		if len(a.RedFlags) == 0 {
			b.WriteString("No material red flags detected during this audit cycle.\n\n")
		}
		for _, f := range a.RedFlags {
			fmt.Fprintf(&b, "- **%s** [%s]", f.Issue, f.Severity)
			if f.Regulation != "" {
				fmt.Fprintf(&b, " (%s)", f.Regulation)
			}
			b.WriteString("\n")
			if f.Evidence != "" {
				fmt.Fprintf(&b, "  > %s\n", f.Evidence)
			}
		}
		b.WriteString("\n")
	} else if outcome.Detail != "" {
		fmt.Fprintf(&b, "> %s\n\n", outcome.Detail)
	}

	if len(outcome.Figures) > 0 {
		fmt.Fprintf(&b, "## Recognized Figures\n\n")
		fmt.Fprintf(&b, "| Page | Original | Rupees |\n|---|---|---|\n")
		for _, f := range outcome.Figures {
			fmt.Fprintf(&b, "| %d | %s | %.2f |\n", f.Page, f.Raw, f.Value)
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n")
		b.WriteString("Generated by Sentinel. PAN and Aadhaar identifiers are masked in all output.\n")
	}

	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// RenderSummary prints a one-screen summary to stdout
func (r *Renderer) RenderSummary(outcome *model.Outcome) {
	fmt.Printf("\nFiling:  %s\n", outcome.Filing)
	fmt.Printf("State:   %s\n", outcome.State)
	switch outcome.State {
	case model.StateRedacted:
		a := outcome.Assessment
		fmt.Printf("Party:   %s\n", a.PartyName)
		if a.Amount != nil {
			fmt.Printf("Amount:  ₹%.2f", *a.Amount)
			if a.Material != nil && *a.Material {
				fmt.Printf("  (MATERIAL)")
			}
			fmt.Println()
		}
		if a.ComplianceScore != nil {
			fmt.Printf("Score:   %d/100  Risk: %s\n", *a.ComplianceScore, a.RiskLevel)
		}
		fmt.Printf("Flags:   %d\n", len(a.RedFlags))
	default:
		if outcome.Detail != "" {
			fmt.Printf("Detail:  %s\n", outcome.Detail)
		}
	}
}
