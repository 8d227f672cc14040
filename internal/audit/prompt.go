package audit

import (
	"fmt"
	"strings"

	"github.com/sentinel-india/sentinel/internal/model"
)

// systemPrompt is the fixed instruction context for every audit call
const systemPrompt = `ROLE: Senior Forensic Auditor reviewing Indian corporate filings.
TASK: Audit the supplied related-party-transaction disclosures for SEBI LODR and Companies Act compliance risks.
OUTPUT: A single JSON object, no markdown, no commentary, with exactly these fields:
  party_name (string): the counterparty of the most significant transaction
  transaction_nature (string): what the transaction is
  amount (number): transaction amount in rupees
  material (boolean): whether the amount crosses the materiality threshold
  citation (string): exactly one of the allowed regulation tokens
  narrative (string): 2-4 sentence risk narrative grounded in the excerpt
  compliance_score (number): 0-100, where 100 is fully compliant
  risk_level (string): one of LOW, MEDIUM, HIGH, CRITICAL
  red_flags (array): objects with issue, evidence, severity (LOW/MEDIUM/HIGH/CRITICAL), regulation
Do not invent transactions that are not in the excerpt. If the excerpt shows no issues, return an empty red_flags array and say so in the narrative.`

// correctionPrompt is appended verbatim on the single retry after a
// schema violation
const correctionPrompt = `Your previous response did not conform to the required JSON schema (%s).
Respond again with ONLY the JSON object described in the instructions: all fields present, amount numeric, material boolean, citation from the allowed list. No markdown fences, no surrounding text.`

// BuildPrompt assembles the user-turn content: the excerpt, the extracted
// figures, the materiality rule, and the allowed citations.
func BuildPrompt(excerpt *model.Excerpt, figures []model.Figure, rule MaterialityRule) string {
	var b strings.Builder

	b.WriteString("Allowed citation tokens:\n")
	for _, c := range model.AllCitations {
		fmt.Fprintf(&b, "  %s\n", c)
	}

	fmt.Fprintf(&b, "\nMateriality threshold: a transaction is material above ₹%.0f", rule.Threshold())
	b.WriteString(" (lower of the absolute cap and the turnover percentage, per SEBI LODR Reg. 23).\n")

	if len(figures) > 0 {
		b.WriteString("\nAmounts recognized in the excerpt (normalized to rupees):\n")
		for i, f := range figures {
			if i >= 30 {
				fmt.Fprintf(&b, "  ... and %d more\n", len(figures)-30)
				break
			}
			fmt.Fprintf(&b, "  page %d: %q = %.2f\n", f.Page, f.Raw, f.Value)
		}
	}

	b.WriteString("\nExcerpt from the filing:\n\n")
	b.WriteString(excerpt.Text())

	return b.String()
}

// stripFences removes markdown code fences the model may wrap JSON in
func stripFences(content string) string {
	content = strings.TrimSpace(content)
	if idx := strings.Index(content, "```json"); idx >= 0 {
		content = content[idx+len("```json"):]
	} else if idx := strings.Index(content, "```"); idx >= 0 {
		content = content[idx+len("```"):]
	}
	if idx := strings.LastIndex(content, "```"); idx >= 0 {
		content = content[:idx]
	}
	return strings.TrimSpace(content)
}
