package model

import (
	"fmt"
	"strings"
)

// Segment is a run of text selected from one page of the filing
type Segment struct {
	Page  int    `json:"page"`            // Source page number (1-based)
	Label string `json:"label"`           // Matched section label (e.g., "Related Party Transactions")
	Score int    `json:"score"`           // Heading-match score the page received
	Text  string `json:"text"`
}

// Excerpt is the bounded slice of a filing handed to the auditor.
// Segments are ordered by page number regardless of selection order.
type Excerpt struct {
	Segments []Segment `json:"segments"`
	Length   int       `json:"length"` // Total characters across all segments
}

// IsEmpty reports whether the excerpt carries any text
func (e *Excerpt) IsEmpty() bool {
	return e == nil || e.Length == 0
}

// Text joins all segments into a single prompt-ready string with page markers
func (e *Excerpt) Text() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	for _, s := range e.Segments {
		fmt.Fprintf(&b, "--- PAGE %d (%s) ---\n%s\n", s.Page, s.Label, s.Text)
	}
	return b.String()
}

// FigureUnit is the magnitude suffix a figure was written with
type FigureUnit string

const (
	UnitNone  FigureUnit = ""      // Plain rupee amount
	UnitLakh  FigureUnit = "lakh"  // 1 Lakh = 10^5
	UnitCrore FigureUnit = "crore" // 1 Crore = 10^7
)

// Multiplier returns the factor that converts the written amount to rupees
func (u FigureUnit) Multiplier() float64 {
	switch u {
	case UnitLakh:
		return 1e5
	case UnitCrore:
		return 1e7
	default:
		return 1
	}
}

// Figure is a monetary amount recognized in the excerpt, normalized to
// base currency units (rupees). Raw keeps the original string for audit trails.
type Figure struct {
	Raw   string     `json:"raw"`
	Value float64    `json:"value"` // Normalized rupee value
	Unit  FigureUnit `json:"unit,omitempty"`
	Page  int        `json:"page"`
}
