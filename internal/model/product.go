package model

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Category identifies which configuration schema a raw entry uses and
// which primary-offer fields are meaningful for it.
type Category string

const (
	CategoryPhysical   Category = "physical"
	CategoryCasino     Category = "casino"
	CategorySportsbook Category = "sportsbook"
	CategorySaaS       Category = "saas"
	CategoryStreaming  Category = "streaming"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryPhysical, CategoryCasino, CategorySportsbook, CategorySaaS, CategoryStreaming:
		return true
	}
	return false
}

// UsesLiteralPrice reports whether products in this category carry a
// literal monetary price. Casino and sportsbook offers advertise bonuses
// and odds instead, so they never emit a Price spec or price row.
func (c Category) UsesLiteralPrice() bool {
	switch c {
	case CategoryPhysical, CategorySaaS, CategoryStreaming:
		return true
	}
	return false
}

// Primary-offer keys. Only the keys applicable to a product's category
// are populated; absence means "not applicable", never zero.
const (
	OfferPrice         = "price"
	OfferDiscountPrice = "discount_price"
	OfferDiscountText  = "discount_text"
	OfferWelcomeBonus  = "welcome_bonus"
	OfferFreeSpins     = "free_spins"
	OfferWagering      = "wagering"
	OfferSignupBonus   = "signup_bonus"
	OfferOddsBoost     = "odds_boost"
	OfferMinDeposit    = "min_deposit"
	OfferMonthlyPrice  = "monthly_price"
	OfferAnnualPrice   = "annual_price"
	OfferFreeTrial     = "free_trial"
)

// EditorsChoiceID is the reserved pool id for the editor's-choice entry.
const EditorsChoiceID = "editors-choice"

// EditorsChoiceLabel is the rank sentinel for the editor's-choice entry.
const EditorsChoiceLabel = "Editor's Choice"

// FeatureItem is a single free-text feature or perk. Catalog files may
// write it as a bare string or as a mapping with text and icon.
type FeatureItem struct {
	Text string `json:"text"`
	Icon string `json:"icon,omitempty"`
}

// UnmarshalYAML accepts either a scalar ("Fast Processor") or a mapping
// ({text: ..., icon: ...}).
func (f *FeatureItem) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		f.Text = value.Value
		f.Icon = ""
		return nil
	}
	type plain FeatureItem
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*f = FeatureItem(p)
	return nil
}

// UnmarshalJSON accepts either a JSON string or an object.
func (f *FeatureItem) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f.Text = s
		f.Icon = ""
		return nil
	}
	type plain FeatureItem
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*f = FeatureItem(p)
	return nil
}

// SpecItem is a named specification with a literal value.
type SpecItem struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
	Icon  string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// Rank is a catalog position or the editor's-choice sentinel.
type Rank struct {
	Position      int
	EditorsChoice bool
}

func (r Rank) String() string {
	if r.EditorsChoice {
		return EditorsChoiceLabel
	}
	return strconv.Itoa(r.Position)
}

// MarshalJSON emits a number for ranked products and the sentinel string
// for the editor's choice.
func (r Rank) MarshalJSON() ([]byte, error) {
	if r.EditorsChoice {
		return json.Marshal(EditorsChoiceLabel)
	}
	return json.Marshal(r.Position)
}

// UnmarshalJSON accepts either form.
func (r *Rank) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		r.Position = n
		r.EditorsChoice = false
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s != EditorsChoiceLabel {
		return fmt.Errorf("model: unknown rank sentinel %q", s)
	}
	r.Position = 0
	r.EditorsChoice = true
	return nil
}

// ProductRecord is the canonical, category-agnostic product
// representation all core logic operates on.
type ProductRecord struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Category       Category          `json:"category"`
	Rating         float64           `json:"rating"`
	ReviewCount    *int              `json:"review_count,omitempty"`
	Offer          map[string]string `json:"offer,omitempty"`
	Features       []FeatureItem     `json:"features,omitempty"`
	Perks          []FeatureItem     `json:"perks,omitempty"`
	Specifications []SpecItem        `json:"specifications,omitempty"`
	AffiliateLink  string            `json:"affiliate_link,omitempty"`
	Rank           Rank              `json:"rank"`
}

// SpecValue looks up a specification value by name.
func (p ProductRecord) SpecValue(name string) (string, bool) {
	for _, s := range p.Specifications {
		if s.Name == name {
			return s.Value, true
		}
	}
	return "", false
}

// LiteralPrice returns the product's displayable monetary price, if the
// category carries one. Discounted price wins over list price.
func (p ProductRecord) LiteralPrice() (string, bool) {
	if !p.Category.UsesLiteralPrice() {
		return "", false
	}
	for _, key := range []string{OfferDiscountPrice, OfferPrice, OfferMonthlyPrice} {
		if v := p.Offer[key]; v != "" {
			return v, true
		}
	}
	return "", false
}
