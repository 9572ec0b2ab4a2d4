package compare

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/offerstack/compare-cli/internal/catalog"
	"github.com/offerstack/compare-cli/internal/match"
	"github.com/offerstack/compare-cli/internal/model"
)

// DefaultCardLimit is the per-card item count when none is configured.
const DefaultCardLimit = 3

// Options configures a comparison Service.
type Options struct {
	// Section selects which list summary cards show. The full matrix
	// always shows all three.
	Section model.DisplaySection
	// CardLimit caps items per summary card.
	CardLimit int
	// Matcher carries the clustering and membership thresholds.
	Matcher match.Config
}

// DefaultOptions returns the standard service configuration.
func DefaultOptions() Options {
	return Options{
		Section:   model.SectionFeatures,
		CardLimit: DefaultCardLimit,
		Matcher:   match.DefaultConfig(),
	}
}

// Service is the stateless comparison facade: a record pool injected at
// construction plus pure operations over explicit arguments. A new
// Service is built whenever the pool is rebuilt; in-flight comparisons
// keep the pool snapshot they started with.
type Service struct {
	pool   *catalog.Pool
	engine *Engine
	opts   Options
}

// NewService creates a Service over an immutable record pool.
func NewService(pool *catalog.Pool, opts Options) *Service {
	if !opts.Section.Valid() {
		opts.Section = model.SectionFeatures
	}
	if opts.CardLimit <= 0 {
		opts.CardLimit = DefaultCardLimit
	}
	return &Service{
		pool:   pool,
		engine: NewEngine(opts.Matcher),
		opts:   opts,
	}
}

// Pool returns the pool snapshot this service operates on.
func (s *Service) Pool() *catalog.Pool { return s.pool }

// Compare validates the selection, builds the comparison matrix, summary
// cards, and ranker picks, and returns them as one pure-data result.
// Duplicate ids collapse via set semantics before validation; fewer than
// 2 or more than 3 distinct ids is a contract violation.
func (s *Service) Compare(ctx context.Context, ids []string) (*model.ComparisonResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "compare: request canceled")
	}

	distinct := dedupe(ids)
	if len(distinct) < MinSelection || len(distinct) > MaxSelection {
		return nil, eris.Errorf("compare: selection must contain %d-%d distinct products, got %d",
			MinSelection, MaxSelection, len(distinct))
	}

	records, missing := s.pool.Resolve(distinct)
	if len(missing) > 0 {
		return nil, eris.Errorf("compare: unknown product ids %v", missing)
	}

	matrix, err := s.engine.BuildMatrix(records)
	if err != nil {
		return nil, err
	}
	summary, err := Summarize(records)
	if err != nil {
		return nil, err
	}

	result := &model.ComparisonResult{
		Matrix:  matrix,
		Cards:   s.cards(records),
		Summary: summary,
	}

	zap.L().Debug("compare: built result",
		zap.Strings("selection", distinct),
		zap.Int("feature_rows", len(matrix.Features)),
		zap.Int("perk_rows", len(matrix.Perks)),
		zap.Int("spec_rows", len(matrix.Specs)),
	)
	return result, nil
}

// cards builds the per-product summary cards: the top-N items of the
// configured display section.
func (s *Service) cards(records []model.ProductRecord) []model.SummaryCard {
	cards := make([]model.SummaryCard, 0, len(records))
	for _, r := range records {
		card := model.SummaryCard{
			ID:            r.ID,
			Name:          r.Name,
			Rating:        r.Rating,
			Rank:          r.Rank,
			AffiliateLink: r.AffiliateLink,
		}

		var items []model.FeatureItem
		switch s.opts.Section {
		case model.SectionPerks:
			items = r.Perks
		case model.SectionSpecs:
			for _, sp := range r.Specifications {
				items = append(items, model.FeatureItem{
					Text: sp.Name + ": " + sp.Value,
					Icon: sp.Icon,
				})
			}
		default:
			items = r.Features
		}
		if len(items) > s.opts.CardLimit {
			items = items[:s.opts.CardLimit]
		}
		card.Items = append(card.Items, items...)
		cards = append(cards, card)
	}
	return cards
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
