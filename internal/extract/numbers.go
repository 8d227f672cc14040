package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sentinel-india/sentinel/internal/model"
)

// figureRe recognizes amounts in Indian convention: an optional currency
// marker, digits grouped in twos after the first three (12,34,567) or a
// plain digit run, and an optional Lakh/Crore magnitude suffix. A bare
// number with neither marker nor suffix is not a figure (it is usually a
// page number or a year). The grouped alternative requires at least one
// comma group; matching is leftmost-first, so an optional group there
// would cut ungrouped numbers short after three digits.
var figureRe = regexp.MustCompile(
	`(?i)(₹|Rs\.?|INR)?\s*(\d{1,3}(?:,\d{2,3})+(?:\.\d+)?|\d+(?:\.\d+)?)\s*(Lakhs?|Crores?)?`)

// ParseFigures extracts every monetary figure from text, normalizing each
// to rupees (1 Lakh = 1e5, 1 Crore = 1e7). The original substring is kept
// for traceability, tagged with the source page.
func ParseFigures(text string, page int) []model.Figure {
	var figures []model.Figure
	for _, m := range figureRe.FindAllStringSubmatch(text, -1) {
		currency, number, suffix := m[1], m[2], m[3]
		if currency == "" && suffix == "" {
			continue
		}

		plain := strings.ReplaceAll(number, ",", "")
		value, err := strconv.ParseFloat(plain, 64)
		if err != nil {
			continue
		}

		unit := model.UnitNone
		switch strings.TrimSuffix(strings.ToLower(suffix), "s") {
		case "lakh":
			unit = model.UnitLakh
		case "crore":
			unit = model.UnitCrore
		}

		figures = append(figures, model.Figure{
			Raw:   strings.TrimSpace(m[0]),
			Value: value * unit.Multiplier(),
			Unit:  unit,
			Page:  page,
		})
	}
	return figures
}
