package model

import (
	"fmt"
	"strings"
)

// Citation identifies the regulation a finding is reported under.
// The auditor may only choose from this enumerated set.
type Citation string

const (
	CitationLODR23    Citation = "SEBI_LODR_REG_23"   // Material related party transactions
	CitationLODR34    Citation = "SEBI_LODR_REG_34"   // Annual report disclosures
	CitationSection188 Citation = "COMPANIES_ACT_S188" // Related party contracts and arrangements
	CitationIndAS24   Citation = "IND_AS_24"          // Related party disclosures (accounting standard)
	CitationNone      Citation = "NONE"
)

// AllCitations lists every citation the auditor may return, in prompt order
var AllCitations = []Citation{
	CitationLODR23,
	CitationLODR34,
	CitationSection188,
	CitationIndAS24,
	CitationNone,
}

// Valid reports whether the citation is one of the enumerated set
func (c Citation) Valid() bool {
	for _, known := range AllCitations {
		if c == known {
			return true
		}
	}
	return false
}

// NormalizeCitation maps loosely formatted citations ("SEBI LODR Reg. 23")
// onto the enumerated tokens. The result still has to pass Valid.
func NormalizeCitation(raw string) Citation {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.NewReplacer(" ", "_", ".", "", "-", "_", "REGULATION", "REG").Replace(s)
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return Citation(s)
}

// RiskLevel is the auditor's overall classification of the filing
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// Valid reports whether the risk level is a known value
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
		return true
	}
	return false
}

// Severity grades an individual red flag
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// RedFlag is a single governance issue the auditor found in the excerpt
type RedFlag struct {
	Issue      string   `json:"issue"`
	Evidence   string   `json:"evidence,omitempty"`   // Quoted source text
	Severity   Severity `json:"severity"`
	Regulation Citation `json:"regulation,omitempty"`
}

// RiskAssessment is the auditor's structured output. Every instance must
// pass Validate before it leaves the auditor stage; instances that cannot
// be coerced are discarded, never forwarded.
//
// Required scalar fields use pointers so that "absent" and "zero" stay
// distinguishable during validation.
type RiskAssessment struct {
	PartyName         string    `json:"party_name"`
	TransactionNature string    `json:"transaction_nature"`
	Amount            *float64  `json:"amount"`   // Rupees, normalized
	Material          *bool     `json:"material"` // Derived from the materiality threshold
	Citation          Citation  `json:"citation"`
	Narrative         string    `json:"narrative"`

	ComplianceScore *int      `json:"compliance_score"` // 0-100
	RiskLevel       RiskLevel `json:"risk_level"`
	RedFlags        []RedFlag `json:"red_flags,omitempty"`
}

// Validate checks the assessment against the fixed schema: required fields
// present, amount numeric, materiality boolean, citation in the enumerated
// set, score in range. It returns the first violation found.
func (a *RiskAssessment) Validate() error {
	if a == nil {
		return fmt.Errorf("assessment is nil")
	}
	if strings.TrimSpace(a.PartyName) == "" {
		return fmt.Errorf("missing required field: party_name")
	}
	if strings.TrimSpace(a.TransactionNature) == "" {
		return fmt.Errorf("missing required field: transaction_nature")
	}
	if a.Amount == nil {
		return fmt.Errorf("missing required field: amount")
	}
	if *a.Amount < 0 {
		return fmt.Errorf("amount must be non-negative, got %f", *a.Amount)
	}
	if a.Material == nil {
		return fmt.Errorf("missing required field: material")
	}
	if a.Citation == "" {
		return fmt.Errorf("missing required field: citation")
	}
	if normalized := NormalizeCitation(string(a.Citation)); normalized.Valid() {
		a.Citation = normalized
	} else {
		return fmt.Errorf("citation %q is not in the allowed set", a.Citation)
	}
	if strings.TrimSpace(a.Narrative) == "" {
		return fmt.Errorf("missing required field: narrative")
	}
	if a.ComplianceScore == nil {
		return fmt.Errorf("missing required field: compliance_score")
	}
	if *a.ComplianceScore < 0 || *a.ComplianceScore > 100 {
		return fmt.Errorf("compliance_score must be 0-100, got %d", *a.ComplianceScore)
	}
	if !a.RiskLevel.Valid() {
		return fmt.Errorf("risk_level %q is not one of LOW, MEDIUM, HIGH, CRITICAL", a.RiskLevel)
	}
	for i := range a.RedFlags {
		f := &a.RedFlags[i]
		if strings.TrimSpace(f.Issue) == "" {
			return fmt.Errorf("red_flags[%d]: missing issue", i)
		}
		if f.Regulation != "" {
			if normalized := NormalizeCitation(string(f.Regulation)); normalized.Valid() {
				f.Regulation = normalized
			} else {
				return fmt.Errorf("red_flags[%d]: regulation %q is not in the allowed set", i, f.Regulation)
			}
		}
	}
	return nil
}
