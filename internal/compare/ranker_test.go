package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offerstack/compare-cli/internal/model"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"$999", 999, true},
		{"$1,299.99", 1299.99, true},
		{"$9.99/mo", 9.99, true},
		{"Free", 0, false},
		{"", 0, false},
		{"$0", 0, false},
		{"..", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parsePrice(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestSummarizeRejectsBadSelections(t *testing.T) {
	_, err := Summarize(nil)
	assert.Error(t, err)

	_, err = Summarize([]model.ProductRecord{laptop("p1", "Alpha", 4, "$1")})
	assert.Error(t, err)
}

func TestSummarizeBestOverall(t *testing.T) {
	s, err := Summarize([]model.ProductRecord{
		laptop("p1", "Alpha", 4.2, "$100"),
		laptop("p2", "Beta", 4.7, "$200"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.Pick{ID: "p2", Name: "Beta"}, s.BestOverall)
}

func TestSummarizeBestOverallTieFirstWins(t *testing.T) {
	s, err := Summarize([]model.ProductRecord{
		laptop("p1", "Alpha", 4.5, "$100"),
		laptop("p2", "Beta", 4.5, "$50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "p1", s.BestOverall.ID)
}

func TestSummarizeBestValuePrefersRatio(t *testing.T) {
	// 4.5/100 = 0.045 loses to 4.0/50 = 0.08 despite the lower rating.
	s, err := Summarize([]model.ProductRecord{
		laptop("p1", "Alpha", 4.5, "$100"),
		laptop("p2", "Beta", 4.0, "$50"),
	})
	require.NoError(t, err)
	require.NotNil(t, s.BestValue)
	assert.Equal(t, "p2", s.BestValue.ID)
}

func TestSummarizeBestValueSkipsUnparseable(t *testing.T) {
	s, err := Summarize([]model.ProductRecord{
		laptop("p1", "Alpha", 4.5, "Call for pricing"),
		laptop("p2", "Beta", 3.0, "$80"),
	})
	require.NoError(t, err)
	require.NotNil(t, s.BestValue)
	assert.Equal(t, "p2", s.BestValue.ID)
}

func TestSummarizeBestValueNilWithoutPrices(t *testing.T) {
	s, err := Summarize([]model.ProductRecord{
		casino("c1", "Lucky", 4.2),
		casino("c2", "Royal", 4.0),
	})
	require.NoError(t, err)
	assert.Nil(t, s.BestValue)
	// The other picks still resolve.
	assert.Equal(t, "c1", s.BestOverall.ID)
	assert.Equal(t, "c1", s.MostFeatures.ID)
}

func TestSummarizeMostFeaturesCountsFeaturesAndPerks(t *testing.T) {
	a := laptop("p1", "Alpha", 4.5, "$100", "Fast Processor")
	b := laptop("p2", "Beta", 4.0, "$50", "OLED Display")
	b.Perks = []model.FeatureItem{{Text: "Free Shipping"}}

	s, err := Summarize([]model.ProductRecord{a, b})
	require.NoError(t, err)
	assert.Equal(t, "p2", s.MostFeatures.ID)
}
