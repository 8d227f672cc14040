package extract

import (
	"errors"
	"regexp"
	"sort"

	"github.com/sentinel-india/sentinel/internal/model"
)

// ErrNoRelevantSection is returned when no page of the filing matches any
// governance pattern. The auditor must never be invoked in that case.
var ErrNoRelevantSection = errors.New("no related-party disclosures detected")

// sectionPattern is one heading/keyword heuristic with its label and weight.
// Patterns tolerate the whitespace noise typical of PDF text extraction, so
// word gaps match any run of whitespace, including line breaks.
type sectionPattern struct {
	label  string
	re     *regexp.Regexp
	weight int
}

// SectionExtractor locates governance-relevant pages in a filing and emits
// a bounded excerpt plus the monetary figures found in it. Stateless across
// calls.
type SectionExtractor struct {
	patterns []sectionPattern
	maxChars int
	minScore int
}

// NewSectionExtractor creates an extractor with the default pattern set.
// maxChars bounds the total excerpt size; minScore is the page threshold.
func NewSectionExtractor(maxChars, minScore int) *SectionExtractor {
	if maxChars <= 0 {
		maxChars = 30000
	}
	if minScore <= 0 {
		minScore = 3
	}
	return &SectionExtractor{
		maxChars: maxChars,
		minScore: minScore,
		patterns: []sectionPattern{
			// Primary headings: a match alone crosses the default threshold
			{"Related Party Transactions", regexp.MustCompile(`(?i)related\s+part(?:y|ies)\s+(?:transactions?|disclosures?)`), 3},
			{"Section 188", regexp.MustCompile(`(?i)section\s*188\s+of\s+the\s+companies\s+act|contracts?\s+with\s+related\s+part(?:y|ies)`), 3},
			{"Regulation 23", regexp.MustCompile(`(?i)regulation\s*23\s+of\s+(?:the\s+)?sebi|sebi\s*\(\s*lodr\s*\)`), 3},
			// Supporting sections: contribute context but need company
			{"Notes to Accounts", regexp.MustCompile(`(?i)notes?\s+(?:to|forming\s+part\s+of)\s+(?:the\s+)?(?:accounts|financial\s+statements)`), 2},
			{"Auditor's Remarks", regexp.MustCompile(`(?i)auditor['\x60]?s?\s+(?:remarks|report|qualifications?|observations?)`), 2},
			{"Related Party", regexp.MustCompile(`(?i)related\s+part(?:y|ies)`), 1},
			{"Key Management Personnel", regexp.MustCompile(`(?i)key\s+management\s+personnel|\bKMP\b`), 1},
			{"Group Entities", regexp.MustCompile(`(?i)\bsubsidiar(?:y|ies)\b|\bassociates?\b|joint\s+ventures?`), 1},
			{"Arm's Length", regexp.MustCompile(`(?i)arm['\x60]?s\s+length`), 1},
		},
	}
}

// pageMatch is an internal scoring record for one page
type pageMatch struct {
	page  model.Page
	score int
	label string // Label of the strongest matched pattern
}

// Extract scans the filing and returns the excerpt and recognized figures.
// Selection is deterministic: pages rank by score (descending) then page
// number (ascending), are taken until the budget is exhausted, and are
// re-emitted in page order.
func (e *SectionExtractor) Extract(f *model.Filing) (*model.Excerpt, []model.Figure, error) {
	var matches []pageMatch
	for _, page := range f.Pages {
		score, label := e.scorePage(page.Text)
		if score >= e.minScore {
			matches = append(matches, pageMatch{page: page, score: score, label: label})
		}
	}
	if len(matches) == 0 {
		return nil, nil, ErrNoRelevantSection
	}

	// Rank strongest first; ties go to the earlier page
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].page.Number < matches[j].page.Number
	})

	// Fill the budget, dropping the weakest matches first by never reaching
	// them. A page that would overflow is truncated only if it is the first
	// selection, so the excerpt is never empty.
	var selected []pageMatch
	remaining := e.maxChars
	for _, m := range matches {
		text := m.page.Text
		if len(text) > remaining {
			if len(selected) > 0 {
				continue
			}
			text = text[:remaining]
			m.page.Text = text
		}
		remaining -= len(text)
		selected = append(selected, m)
		if remaining <= 0 {
			break
		}
	}

	// Restore page order for the final excerpt
	sort.Slice(selected, func(i, j int) bool {
		return selected[i].page.Number < selected[j].page.Number
	})

	excerpt := &model.Excerpt{}
	var figures []model.Figure
	for _, m := range selected {
		excerpt.Segments = append(excerpt.Segments, model.Segment{
			Page:  m.page.Number,
			Label: m.label,
			Score: m.score,
			Text:  m.page.Text,
		})
		excerpt.Length += len(m.page.Text)
		figures = append(figures, ParseFigures(m.page.Text, m.page.Number)...)
	}

	return excerpt, figures, nil
}

// scorePage sums the weights of all distinct patterns matching the page and
// returns the label of the strongest one.
func (e *SectionExtractor) scorePage(text string) (int, string) {
	score := 0
	best := ""
	bestWeight := 0
	for _, p := range e.patterns {
		if p.re.MatchString(text) {
			score += p.weight
			if p.weight > bestWeight {
				bestWeight = p.weight
				best = p.label
			}
		}
	}
	return score, best
}
