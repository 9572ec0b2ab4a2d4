package model

// PhysicalOffer holds the monetary attributes of a physical product
// (laptops and similar hardware).
type PhysicalOffer struct {
	Price         string `json:"price,omitempty" yaml:"price,omitempty"`
	DiscountPrice string `json:"discount_price,omitempty" yaml:"discount_price,omitempty"`
	DiscountText  string `json:"discount_text,omitempty" yaml:"discount_text,omitempty"`
}

// CasinoOffer holds the promotional attributes of a casino offer.
type CasinoOffer struct {
	WelcomeBonus string `json:"welcome_bonus,omitempty" yaml:"welcome_bonus,omitempty"`
	FreeSpins    string `json:"free_spins,omitempty" yaml:"free_spins,omitempty"`
	Wagering     string `json:"wagering,omitempty" yaml:"wagering,omitempty"`
}

// SportsbookOffer holds the promotional attributes of a sportsbook offer.
type SportsbookOffer struct {
	SignupBonus string `json:"signup_bonus,omitempty" yaml:"signup_bonus,omitempty"`
	OddsBoost   string `json:"odds_boost,omitempty" yaml:"odds_boost,omitempty"`
	MinDeposit  string `json:"min_deposit,omitempty" yaml:"min_deposit,omitempty"`
}

// SaaSOffer holds SaaS subscription pricing.
type SaaSOffer struct {
	MonthlyPrice string `json:"monthly_price,omitempty" yaml:"monthly_price,omitempty"`
	AnnualPrice  string `json:"annual_price,omitempty" yaml:"annual_price,omitempty"`
	FreeTrial    string `json:"free_trial,omitempty" yaml:"free_trial,omitempty"`
}

// StreamingOffer holds streaming subscription pricing.
type StreamingOffer struct {
	MonthlyPrice string `json:"monthly_price,omitempty" yaml:"monthly_price,omitempty"`
	FreeTrial    string `json:"free_trial,omitempty" yaml:"free_trial,omitempty"`
}

// RawEntry is a category-tagged product configuration as it appears in a
// catalog file. Exactly one offer payload should match the category; the
// canonicalizer is the single boundary that projects it into the
// category-agnostic ProductRecord shape.
type RawEntry struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Category    Category `json:"category,omitempty" yaml:"category,omitempty"`
	Rating      float64  `json:"rating" yaml:"rating"`
	ReviewCount *int     `json:"review_count,omitempty" yaml:"review_count,omitempty"`

	Physical   *PhysicalOffer   `json:"physical,omitempty" yaml:"physical,omitempty"`
	Casino     *CasinoOffer     `json:"casino,omitempty" yaml:"casino,omitempty"`
	Sportsbook *SportsbookOffer `json:"sportsbook,omitempty" yaml:"sportsbook,omitempty"`
	SaaS       *SaaSOffer       `json:"saas,omitempty" yaml:"saas,omitempty"`
	Streaming  *StreamingOffer  `json:"streaming,omitempty" yaml:"streaming,omitempty"`

	Features       []FeatureItem `json:"features,omitempty" yaml:"features,omitempty"`
	Perks          []FeatureItem `json:"perks,omitempty" yaml:"perks,omitempty"`
	Specifications []SpecItem    `json:"specifications,omitempty" yaml:"specifications,omitempty"`

	AffiliateLink string `json:"affiliate_link,omitempty" yaml:"affiliate_link,omitempty"`
	Rank          int    `json:"rank,omitempty" yaml:"rank,omitempty"`

	// Selected marks the catalog product promoted to editor's choice when
	// no manual override is active.
	Selected bool `json:"selected,omitempty" yaml:"selected,omitempty"`
}
