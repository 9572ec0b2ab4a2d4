package catalog

import (
	"fmt"
	"strconv"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/offerstack/compare-cli/internal/model"
)

// Canonicalizer maps raw, category-dependent entries into the canonical
// ProductRecord shape. It is the single adapter boundary: nothing past it
// sees per-category payloads.
type Canonicalizer struct{}

// NewCanonicalizer creates a Canonicalizer.
func NewCanonicalizer() *Canonicalizer {
	return &Canonicalizer{}
}

// Canonicalize projects one raw entry. Fields not applicable to the
// entry's category are omitted from the offer bag, never defaulted;
// malformed feature and spec items are skipped item-wise.
func (c *Canonicalizer) Canonicalize(entry model.RawEntry) (model.ProductRecord, error) {
	if entry.ID == "" {
		return model.ProductRecord{}, eris.New("catalog: entry missing id")
	}
	if entry.Name == "" {
		return model.ProductRecord{}, eris.Errorf("catalog: entry %s missing name", entry.ID)
	}

	rec := model.ProductRecord{
		ID:            entry.ID,
		Name:          entry.Name,
		Category:      entry.Category,
		Rating:        entry.Rating,
		ReviewCount:   entry.ReviewCount,
		Offer:         c.offerFields(entry),
		Features:      cleanItems(entry.ID, "feature", entry.Features),
		Perks:         cleanItems(entry.ID, "perk", entry.Perks),
		AffiliateLink: entry.AffiliateLink,
		Rank:          model.Rank{Position: entry.Rank},
	}
	rec.Specifications = c.specifications(entry, rec)

	return rec, nil
}

// offerFields populates only the offer keys meaningful for the entry's
// category. An unknown category yields no offer fields but does not fail
// canonicalization.
func (c *Canonicalizer) offerFields(entry model.RawEntry) map[string]string {
	offer := make(map[string]string)
	put := func(key, value string) {
		if value != "" {
			offer[key] = value
		}
	}

	switch entry.Category {
	case model.CategoryPhysical:
		if o := entry.Physical; o != nil {
			put(model.OfferPrice, o.Price)
			put(model.OfferDiscountPrice, o.DiscountPrice)
			put(model.OfferDiscountText, o.DiscountText)
		}
	case model.CategoryCasino:
		if o := entry.Casino; o != nil {
			put(model.OfferWelcomeBonus, o.WelcomeBonus)
			put(model.OfferFreeSpins, o.FreeSpins)
			put(model.OfferWagering, o.Wagering)
		}
	case model.CategorySportsbook:
		if o := entry.Sportsbook; o != nil {
			put(model.OfferSignupBonus, o.SignupBonus)
			put(model.OfferOddsBoost, o.OddsBoost)
			put(model.OfferMinDeposit, o.MinDeposit)
		}
	case model.CategorySaaS:
		if o := entry.SaaS; o != nil {
			put(model.OfferMonthlyPrice, o.MonthlyPrice)
			put(model.OfferAnnualPrice, o.AnnualPrice)
			put(model.OfferFreeTrial, o.FreeTrial)
		}
	case model.CategoryStreaming:
		if o := entry.Streaming; o != nil {
			put(model.OfferMonthlyPrice, o.MonthlyPrice)
			put(model.OfferFreeTrial, o.FreeTrial)
		}
	default:
		zap.L().Warn("catalog: unknown category, omitting offer fields",
			zap.String("id", entry.ID),
			zap.String("category", string(entry.Category)),
		)
	}

	if len(offer) == 0 {
		return nil
	}
	return offer
}

// specifications merges the explicit spec list with the synthesized
// Rating, Reviews, and (for literal-price categories only) Price entries.
func (c *Canonicalizer) specifications(entry model.RawEntry, rec model.ProductRecord) []model.SpecItem {
	specs := make([]model.SpecItem, 0, len(entry.Specifications)+3)
	for _, s := range entry.Specifications {
		if s.Name == "" || s.Value == "" {
			zap.L().Warn("catalog: skipping malformed spec item",
				zap.String("id", entry.ID),
				zap.String("name", s.Name),
			)
			continue
		}
		specs = append(specs, s)
	}

	specs = append(specs, model.SpecItem{
		Name:  model.BasicRating,
		Value: fmt.Sprintf("%.1f/5", entry.Rating),
	})
	if entry.ReviewCount != nil {
		specs = append(specs, model.SpecItem{
			Name:  model.BasicReviews,
			Value: strconv.Itoa(*entry.ReviewCount),
		})
	}
	if price, ok := rec.LiteralPrice(); ok {
		specs = append(specs, model.SpecItem{
			Name:  model.BasicPrice,
			Value: price,
		})
	}

	return specs
}

func cleanItems(id, kind string, items []model.FeatureItem) []model.FeatureItem {
	out := make([]model.FeatureItem, 0, len(items))
	for _, it := range items {
		if it.Text == "" {
			zap.L().Warn("catalog: skipping empty item",
				zap.String("id", id),
				zap.String("kind", kind),
			)
			continue
		}
		out = append(out, it)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
