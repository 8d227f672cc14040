package audit

import "github.com/sentinel-india/sentinel/internal/model"

// MaterialityRule implements SEBI LODR Reg. 23(1): a related party
// transaction is material when it exceeds the lower of an absolute cap
// (₹1,000 crore by default) and a percentage of annual consolidated
// turnover. When turnover is unknown only the absolute cap applies.
type MaterialityRule struct {
	AbsoluteCap float64 // Rupees
	TurnoverPct float64 // Fraction, e.g. 0.10
	Turnover    float64 // Rupees; 0 when unknown
}

// RuleFromConfig builds the rule from configuration
func RuleFromConfig(cfg model.MaterialityConfig) MaterialityRule {
	return MaterialityRule{
		AbsoluteCap: cfg.AbsoluteCapINR,
		TurnoverPct: cfg.TurnoverPct,
		Turnover:    cfg.TurnoverINR,
	}
}

// Threshold returns the rupee amount above which a transaction is material
func (r MaterialityRule) Threshold() float64 {
	abs := r.AbsoluteCap
	if abs <= 0 {
		abs = 1e10
	}
	if r.Turnover <= 0 || r.TurnoverPct <= 0 {
		return abs
	}
	pct := r.TurnoverPct * r.Turnover
	if pct < abs {
		return pct
	}
	return abs
}

// IsMaterial reports whether amount crosses the threshold
func (r MaterialityRule) IsMaterial(amount float64) bool {
	return amount > r.Threshold()
}
