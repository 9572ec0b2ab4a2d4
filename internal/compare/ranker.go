package compare

import (
	"regexp"
	"strconv"

	"github.com/offerstack/compare-cli/internal/model"
)

var nonNumeric = regexp.MustCompile(`[^0-9.]`)

// parsePrice strips all non-numeric characters from a price string and
// parses the remainder. Malformed prices report ok=false and are treated
// as absent, never as zero.
func parsePrice(s string) (float64, bool) {
	cleaned := nonNumeric.ReplaceAllString(s, "")
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// Summarize derives the summary picks for a selection. BestValue is nil
// when no product has a parseable literal price. Ties resolve to the
// first occurrence in input order.
func Summarize(records []model.ProductRecord) (*model.Summary, error) {
	if err := validateSelection(records); err != nil {
		return nil, err
	}

	s := &model.Summary{}

	best := 0
	for i, r := range records {
		if r.Rating > records[best].Rating {
			best = i
		}
	}
	s.BestOverall = model.Pick{ID: records[best].ID, Name: records[best].Name}

	valueIdx := -1
	valueRatio := 0.0
	for i, r := range records {
		raw, ok := r.LiteralPrice()
		if !ok {
			continue
		}
		price, ok := parsePrice(raw)
		if !ok {
			continue
		}
		ratio := r.Rating / price
		if valueIdx < 0 || ratio > valueRatio {
			valueIdx = i
			valueRatio = ratio
		}
	}
	if valueIdx >= 0 {
		s.BestValue = &model.Pick{ID: records[valueIdx].ID, Name: records[valueIdx].Name}
	}

	most := 0
	mostCount := -1
	for i, r := range records {
		count := len(r.Features) + len(r.Perks)
		if count > mostCount {
			most = i
			mostCount = count
		}
	}
	s.MostFeatures = model.Pick{ID: records[most].ID, Name: records[most].Name}

	return s, nil
}
