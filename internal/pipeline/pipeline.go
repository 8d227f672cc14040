// Package pipeline wires the three stages together: Extractor -> Auditor ->
// Redactor, one sequential pass per filing with a terminal-state outcome.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sentinel-india/sentinel/internal/audit"
	"github.com/sentinel-india/sentinel/internal/cache"
	"github.com/sentinel-india/sentinel/internal/extract"
	"github.com/sentinel-india/sentinel/internal/model"
	"github.com/sentinel-india/sentinel/internal/redact"
)

// Pipeline runs one filing through extraction, audit, and redaction.
// It holds no mutable per-invocation state; concurrent Run calls are safe.
type Pipeline struct {
	extractor *extract.SectionExtractor
	auditor   *audit.Auditor
	cache     cache.Cache
	config    *model.Config
}

// New creates a pipeline from configuration
func New(cfg *model.Config) (*Pipeline, error) {
	auditor, err := audit.NewAuditor(
		audit.ConfigFromModel(cfg.Audit, cfg.HTTP),
		audit.RuleFromConfig(cfg.Materiality),
	)
	if err != nil {
		return nil, fmt.Errorf("configure auditor: %w", err)
	}

	var outcomeCache cache.Cache
	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			home, err := os.UserHomeDir()
			if err == nil {
				dir = home + "/.sentinel/cache"
			} else {
				dir = ".sentinel-cache"
			}
		}
		outcomeCache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, dir, cfg.Cache.DiskTTL)
	}

	return &Pipeline{
		extractor: extract.NewSectionExtractor(cfg.Extract.MaxExcerptChars, cfg.Extract.MinPageScore),
		auditor:   auditor,
		cache:     outcomeCache,
		config:    cfg,
	}, nil
}

// Run executes one pipeline invocation. Terminal failure kinds are encoded
// in the outcome's State; a non-nil error means the invocation was aborted
// (cancellation, redaction post-check failure) and no outcome may be used.
func (p *Pipeline) Run(ctx context.Context, filing *model.Filing) (*model.Outcome, error) {
	outcome := &model.Outcome{
		Filing:    filing.Source,
		AuditedAt: time.Now().UTC(),
	}

	// 1. Extract the governance-relevant excerpt
	excerpt, figures, err := p.extractor.Extract(filing)
	if err != nil {
		if errors.Is(err, extract.ErrNoRelevantSection) {
			outcome.State = model.StateNoRelevantSection
			outcome.Detail = "no related-party disclosures detected"
			return seal(outcome)
		}
		return nil, fmt.Errorf("extract: %w", err)
	}

	// 2. Reuse a cached assessment for an identical excerpt
	key := cache.Key(excerpt.Text())
	if p.cache != nil {
		if data, found := p.cache.Get(key); found {
			var cached model.Outcome
			if json.Unmarshal(data, &cached) == nil && cached.OK() {
				cached.CacheHit = true
				cached.Filing = filing.Source
				return &cached, nil
			}
		}
	}

	// 3. Audit via the reasoning service
	assessment, err := p.auditor.Audit(ctx, excerpt, figures)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			// Caller aborted: discard partial state, surface no outcome
			return nil, err
		case errors.Is(err, audit.ErrTimeout):
			outcome.State = model.StateAuditorTimeout
			outcome.Detail = err.Error()
			return seal(outcome)
		case errors.Is(err, audit.ErrMalformedOutput):
			// Validation errors can quote model-supplied text, so even
			// failure details go through redaction.
			outcome.State = model.StateMalformedOutput
			outcome.Detail = err.Error()
			return seal(outcome)
		}
		return nil, fmt.Errorf("audit: %w", err)
	}

	outcome.Excerpt = excerpt
	outcome.Figures = figures
	outcome.Assessment = assessment
	outcome.Provider = p.auditor.ProviderName()
	outcome.Model = p.config.Audit.Model

	// 4. Redact the complete outcome, then verify nothing leaked
	if _, err := seal(outcome); err != nil {
		return nil, err
	}
	outcome.State = model.StateRedacted

	// 5. Cache the redacted outcome for identical future excerpts
	if p.cache != nil {
		if data, err := json.Marshal(outcome); err == nil {
			_ = p.cache.Set(key, data, 0)
		}
	}

	return outcome, nil
}

// seal masks every string field of the outcome and verifies nothing
// leaked. A failed post-check is fatal: partially-redacted data must
// never be emitted, whatever state the outcome ends in.
func seal(outcome *model.Outcome) (*model.Outcome, error) {
	if err := redact.Struct(outcome); err != nil {
		return nil, fmt.Errorf("redact: %w", err)
	}
	if err := redact.Verify(outcome); err != nil {
		return nil, err
	}
	return outcome, nil
}
