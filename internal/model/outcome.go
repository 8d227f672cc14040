package model

import "time"

// State is the terminal state of one pipeline invocation.
// The chain is Loaded -> Extracted -> (NoRelevantSection | Audited) ->
// (MalformedAuditorOutput | AuditorTimeout | Redacted); no state is re-entered.
type State string

const (
	StateRedacted          State = "redacted"                 // Success: assessment produced and masked
	StateNoRelevantSection State = "no_relevant_section"      // Extractor found nothing to analyze
	StateMalformedOutput   State = "malformed_auditor_output" // Response never validated, even after retry
	StateAuditorTimeout    State = "auditor_timeout"          // Reasoning service did not answer in time
)

// Terminal reports whether s is a valid terminal state
func (s State) Terminal() bool {
	switch s {
	case StateRedacted, StateNoRelevantSection, StateMalformedOutput, StateAuditorTimeout:
		return true
	}
	return false
}

// Outcome is the complete result of one pipeline invocation. The assessment
// and excerpt it carries have already been through the redaction stage.
type Outcome struct {
	Filing    string    `json:"filing"`     // Source name of the audited filing
	AuditedAt time.Time `json:"audited_at"`
	State     State     `json:"state"`

	Excerpt *Excerpt `json:"excerpt,omitempty"`
	Figures []Figure `json:"figures,omitempty"`

	Assessment *RiskAssessment `json:"assessment,omitempty"` // Only set in the redacted state

	Provider string `json:"provider,omitempty"` // Reasoning service that produced the assessment
	Model    string `json:"model,omitempty"`
	CacheHit bool   `json:"cache_hit,omitempty"`
	Detail   string `json:"detail,omitempty"` // Human-readable note for failure states
}

// OK reports whether the invocation produced a redacted assessment
func (o *Outcome) OK() bool {
	return o.State == StateRedacted
}
