package compare

import (
	"fmt"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/offerstack/compare-cli/internal/match"
	"github.com/offerstack/compare-cli/internal/model"
)

// Selection size bounds. Calls outside these are contract violations,
// rejected rather than truncated.
const (
	MinSelection = 2
	MaxSelection = 3
)

// Engine builds comparison matrices for 2-3 product selections.
type Engine struct {
	matcher *match.Matcher
}

// NewEngine creates an Engine with the given matcher thresholds.
func NewEngine(cfg match.Config) *Engine {
	return &Engine{matcher: match.NewMatcher(cfg)}
}

func validateSelection(records []model.ProductRecord) error {
	if len(records) < MinSelection || len(records) > MaxSelection {
		return eris.Errorf("compare: selection must contain %d-%d distinct products, got %d",
			MinSelection, MaxSelection, len(records))
	}
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if _, dup := seen[r.ID]; dup {
			return eris.Errorf("compare: duplicate product %s in selection", r.ID)
		}
		seen[r.ID] = struct{}{}
	}
	return nil
}

// BuildMatrix builds the full comparison matrix: a Basic Information
// block, one boolean row per perk group and per feature group, and one
// value row per distinct specification name.
func (e *Engine) BuildMatrix(records []model.ProductRecord) (*model.ComparisonMatrix, error) {
	if err := validateSelection(records); err != nil {
		return nil, err
	}

	m := &model.ComparisonMatrix{
		Columns:   make([]model.Column, len(records)),
		BasicInfo: e.basicInfo(records),
	}
	for i, r := range records {
		m.Columns[i] = model.Column{ID: r.ID, Name: r.Name}
	}

	m.Perks = e.groupedRows(records, func(r model.ProductRecord) []model.FeatureItem { return r.Perks })
	m.Features = e.groupedRows(records, func(r model.ProductRecord) []model.FeatureItem { return r.Features })
	m.Specs = e.specRows(records)

	return m, nil
}

// basicInfo always carries rating and review count; a literal price row
// is included only when every selected product's category uses literal
// pricing, mirroring the canonicalizer's Price-spec rule.
func (e *Engine) basicInfo(records []model.ProductRecord) []model.ValueRow {
	ratings := make([]string, len(records))
	reviews := make([]string, len(records))
	prices := make([]string, len(records))
	literal := true

	for i, r := range records {
		ratings[i] = fmt.Sprintf("%.1f/5", r.Rating)
		if r.ReviewCount != nil {
			reviews[i] = strconv.Itoa(*r.ReviewCount)
		} else {
			reviews[i] = model.MissingValue
		}
		if !r.Category.UsesLiteralPrice() {
			literal = false
			continue
		}
		if p, ok := r.LiteralPrice(); ok {
			prices[i] = p
		} else {
			prices[i] = model.MissingValue
		}
	}

	rows := []model.ValueRow{
		{Label: model.BasicRating, Values: ratings},
		{Label: model.BasicReviews, Values: reviews},
	}
	if literal {
		rows = append(rows, model.ValueRow{Label: model.BasicPrice, Values: prices})
	}
	return rows
}

// groupedRows clusters the union of item texts across the selection, then
// fills one presence cell per product via the looser membership test.
func (e *Engine) groupedRows(records []model.ProductRecord, items func(model.ProductRecord) []model.FeatureItem) []model.BoolRow {
	var union []string
	for _, r := range records {
		union = append(union, itemLabels(items(r))...)
	}

	groups := e.matcher.Group(union)
	rows := make([]model.BoolRow, 0, len(groups))
	for _, g := range groups {
		row := model.BoolRow{
			Label:   g.Label,
			Cells:   make([]bool, len(records)),
			Members: g.Members,
		}
		for i, r := range records {
			row.Cells[i] = e.matcher.Compatible(itemLabels(items(r)), g.Label)
		}
		rows = append(rows, row)
	}
	return rows
}

// itemLabels coerces structured items to their matchable text. Items with
// no text contribute nothing.
func itemLabels(items []model.FeatureItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if text := match.ItemText(it); text != "" {
			out = append(out, text)
		}
	}
	return out
}

// specRows takes the union of spec names verbatim, in encounter order.
// Spec names are authoritative identifiers; no fuzzy grouping. Price,
// Rating, and Reviews are excluded since they live in the basic block.
func (e *Engine) specRows(records []model.ProductRecord) []model.ValueRow {
	var names []string
	seen := make(map[string]struct{})
	for _, r := range records {
		for _, s := range r.Specifications {
			switch s.Name {
			case model.BasicPrice, model.BasicRating, model.BasicReviews:
				continue
			}
			if _, dup := seen[s.Name]; dup {
				continue
			}
			seen[s.Name] = struct{}{}
			names = append(names, s.Name)
		}
	}

	rows := make([]model.ValueRow, 0, len(names))
	for _, name := range names {
		row := model.ValueRow{Label: name, Values: make([]string, len(records))}
		for i, r := range records {
			if v, ok := r.SpecValue(name); ok {
				row.Values[i] = v
			} else {
				row.Values[i] = model.MissingValue
			}
		}
		rows = append(rows, row)
	}
	return rows
}
