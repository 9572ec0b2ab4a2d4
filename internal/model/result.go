package model

import "time"

// DisplaySection selects which list is shown on summary cards.
type DisplaySection string

const (
	SectionPerks    DisplaySection = "perks"
	SectionSpecs    DisplaySection = "specs"
	SectionFeatures DisplaySection = "features"
)

// Valid reports whether s is a known display section.
func (s DisplaySection) Valid() bool {
	switch s {
	case SectionPerks, SectionSpecs, SectionFeatures:
		return true
	}
	return false
}

// Basic Information row labels. These are always rendered in the basic
// block and therefore never appear as standalone spec rows.
const (
	BasicRating  = "Rating"
	BasicReviews = "Reviews"
	BasicPrice   = "Price"
)

// MissingValue is the cell literal for a spec a product does not carry.
const MissingValue = "N/A"

// Column identifies one selected product in the matrix.
type Column struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ValueRow is a matrix row with one literal value per selected product.
type ValueRow struct {
	Label  string   `json:"label"`
	Values []string `json:"values"`
}

// BoolRow is a matrix row with one presence flag per selected product.
// Members lists the distinct source texts merged into the row's group.
type BoolRow struct {
	Label   string   `json:"label"`
	Cells   []bool   `json:"cells"`
	Members []string `json:"members,omitempty"`
}

// ComparisonMatrix is the full comparison table for a 2-3 product
// selection: a basic-information block, one row per perk group, one row
// per feature group, and one row per distinct specification name.
type ComparisonMatrix struct {
	Columns   []Column   `json:"columns"`
	BasicInfo []ValueRow `json:"basic_info"`
	Perks     []BoolRow  `json:"perks"`
	Features  []BoolRow  `json:"features"`
	Specs     []ValueRow `json:"specs"`
}

// Pick names one product chosen by the summary ranker.
type Pick struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BestValueUnknown is rendered when no selected product has a parseable
// literal price.
const BestValueUnknown = "Unable to determine"

// Summary holds the ranker's picks. BestValue is nil when no product in
// the selection has a parseable price.
type Summary struct {
	BestOverall  Pick  `json:"best_overall"`
	BestValue    *Pick `json:"best_value,omitempty"`
	MostFeatures Pick  `json:"most_features"`
}

// SummaryCard is the per-product card data shown next to the matrix: the
// top-N items of the configured display section.
type SummaryCard struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Rating        float64       `json:"rating"`
	Rank          Rank          `json:"rank"`
	Items         []FeatureItem `json:"items,omitempty"`
	AffiliateLink string        `json:"affiliate_link,omitempty"`
}

// ComparisonResult is the complete output for one comparison request.
// Pure data; it carries no markup and no references into the catalog
// pool.
type ComparisonResult struct {
	Matrix  *ComparisonMatrix `json:"matrix"`
	Cards   []SummaryCard     `json:"cards"`
	Summary *Summary          `json:"summary"`
}

// CompareRun is a persisted comparison request and its result.
type CompareRun struct {
	ID        string            `json:"id"`
	Category  Category          `json:"category"`
	Selection []string          `json:"selection"`
	Result    *ComparisonResult `json:"result,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// CatalogLoad records one catalog (re)load for observability.
type CatalogLoad struct {
	ID            string    `json:"id"`
	Category      Category  `json:"category"`
	ProductCount  int       `json:"product_count"`
	EditorsChoice bool      `json:"editors_choice"`
	LoadedAt      time.Time `json:"loaded_at"`
}
