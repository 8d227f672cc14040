package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"

	"github.com/sentinel-india/sentinel/internal/model"
)

var (
	// ErrMalformedOutput means the response never validated against the
	// schema, even after the single corrective retry
	ErrMalformedOutput = errors.New("auditor output failed schema validation after retry")

	// ErrTimeout means the reasoning service did not answer within the
	// configured deadline. Distinguishable from malformed output so the
	// caller can decide whether a retry later is worthwhile.
	ErrTimeout = errors.New("reasoning service timed out")
)

// Auditor drives the reasoning-service call and enforces the schema
// contract: every assessment it returns has passed Validate, and malformed
// responses are retried exactly once with a correction instruction.
type Auditor struct {
	provider Provider
	config   Config
	rule     MaterialityRule
}

// NewAuditor creates an auditor with the configured provider
func NewAuditor(config Config, rule MaterialityRule) (*Auditor, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return &Auditor{provider: provider, config: config, rule: rule}, nil
}

// NewAuditorWithProvider injects a provider directly, bypassing the
// factory. Used by tests and callers with custom backends.
func NewAuditorWithProvider(provider Provider, config Config, rule MaterialityRule) *Auditor {
	return &Auditor{provider: provider, config: config, rule: rule}
}

// ProviderName returns the name of the configured provider
func (a *Auditor) ProviderName() string {
	return a.provider.Name()
}

// Audit sends the excerpt to the reasoning service and returns a validated
// RiskAssessment. The materiality flag is derived locally by comparing the
// reported amount against the threshold rule, so it stays deterministic
// regardless of what the model answered.
func (a *Auditor) Audit(ctx context.Context, excerpt *model.Excerpt, figures []model.Figure) (*model.RiskAssessment, error) {
	if excerpt.IsEmpty() {
		return nil, fmt.Errorf("auditor invoked with empty excerpt")
	}

	prompt := BuildPrompt(excerpt, figures, a.rule)

	assessment, verr, err := a.attempt(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if verr != nil {
		// One corrective retry, carrying the validation error so the
		// model knows what to fix.
		retryPrompt := prompt + "\n\n" + fmt.Sprintf(correctionPrompt, verr)
		assessment, verr, err = a.attempt(ctx, retryPrompt)
		if err != nil {
			return nil, err
		}
		if verr != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, verr)
		}
	}

	material := a.rule.IsMaterial(*assessment.Amount)
	assessment.Material = &material

	return assessment, nil
}

// attempt performs one call. It separates transport failures (err) from
// schema violations (verr): only the latter trigger the corrective retry.
func (a *Auditor) attempt(ctx context.Context, prompt string) (*model.RiskAssessment, error, error) {
	resp, err := a.provider.Complete(ctx, Request{
		System:    systemPrompt,
		Prompt:    prompt,
		MaxTokens: a.config.MaxTokens,
	})
	if err != nil {
		if ctx.Err() != nil {
			// Caller cancelled or the overall deadline passed; surface
			// the context error, not a provider-specific one.
			return nil, nil, ctx.Err()
		}
		if isTimeout(err) {
			return nil, nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, nil, fmt.Errorf("reasoning service call: %w", err)
	}

	var assessment model.RiskAssessment
	if err := json.Unmarshal([]byte(stripFences(resp.Content)), &assessment); err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %v", err), nil
	}
	if err := assessment.Validate(); err != nil {
		return nil, err, nil
	}

	return &assessment, nil, nil
}

// isTimeout reports whether err is a deadline or network timeout
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
