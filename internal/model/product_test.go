package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCategoryValid(t *testing.T) {
	for _, c := range []Category{CategoryPhysical, CategoryCasino, CategorySportsbook, CategorySaaS, CategoryStreaming} {
		assert.True(t, c.Valid(), "category %q", c)
	}
	assert.False(t, Category("gadgets").Valid())
	assert.False(t, Category("").Valid())
}

func TestCategoryUsesLiteralPrice(t *testing.T) {
	assert.True(t, CategoryPhysical.UsesLiteralPrice())
	assert.True(t, CategorySaaS.UsesLiteralPrice())
	assert.True(t, CategoryStreaming.UsesLiteralPrice())
	assert.False(t, CategoryCasino.UsesLiteralPrice())
	assert.False(t, CategorySportsbook.UsesLiteralPrice())
}

func TestFeatureItemUnmarshalYAML(t *testing.T) {
	var items []FeatureItem
	src := "- Fast Processor\n- text: OLED Display\n  icon: screen\n"
	require.NoError(t, yaml.Unmarshal([]byte(src), &items))

	require.Len(t, items, 2)
	assert.Equal(t, FeatureItem{Text: "Fast Processor"}, items[0])
	assert.Equal(t, FeatureItem{Text: "OLED Display", Icon: "screen"}, items[1])
}

func TestFeatureItemUnmarshalJSON(t *testing.T) {
	var items []FeatureItem
	src := `["Fast Processor", {"text": "OLED Display", "icon": "screen"}]`
	require.NoError(t, json.Unmarshal([]byte(src), &items))

	require.Len(t, items, 2)
	assert.Equal(t, FeatureItem{Text: "Fast Processor"}, items[0])
	assert.Equal(t, FeatureItem{Text: "OLED Display", Icon: "screen"}, items[1])
}

func TestRankJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		rank Rank
		json string
	}{
		{"position", Rank{Position: 3}, "3"},
		{"editors choice", Rank{EditorsChoice: true}, `"Editor's Choice"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.rank)
			require.NoError(t, err)
			assert.Equal(t, tt.json, string(data))

			var back Rank
			require.NoError(t, json.Unmarshal(data, &back))
			assert.Equal(t, tt.rank, back)
		})
	}
}

func TestRankUnmarshalRejectsUnknownSentinel(t *testing.T) {
	var r Rank
	assert.Error(t, json.Unmarshal([]byte(`"Runner Up"`), &r))
}

func TestRankString(t *testing.T) {
	assert.Equal(t, "2", Rank{Position: 2}.String())
	assert.Equal(t, EditorsChoiceLabel, Rank{EditorsChoice: true}.String())
}

func TestLiteralPrice(t *testing.T) {
	tests := []struct {
		name   string
		rec    ProductRecord
		want   string
		wantOK bool
	}{
		{
			name: "discount wins over list price",
			rec: ProductRecord{
				Category: CategoryPhysical,
				Offer:    map[string]string{OfferPrice: "$999", OfferDiscountPrice: "$899"},
			},
			want: "$899", wantOK: true,
		},
		{
			name: "list price fallback",
			rec: ProductRecord{
				Category: CategoryPhysical,
				Offer:    map[string]string{OfferPrice: "$999"},
			},
			want: "$999", wantOK: true,
		},
		{
			name: "monthly price for subscriptions",
			rec: ProductRecord{
				Category: CategorySaaS,
				Offer:    map[string]string{OfferMonthlyPrice: "$12/mo"},
			},
			want: "$12/mo", wantOK: true,
		},
		{
			name: "bonus category never has one",
			rec: ProductRecord{
				Category: CategoryCasino,
				Offer:    map[string]string{OfferPrice: "$999"},
			},
			wantOK: false,
		},
		{
			name:   "no offer fields",
			rec:    ProductRecord{Category: CategoryPhysical},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.rec.LiteralPrice()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSpecValue(t *testing.T) {
	rec := ProductRecord{
		Specifications: []SpecItem{{Name: "RAM", Value: "16GB"}},
	}

	v, ok := rec.SpecValue("RAM")
	assert.True(t, ok)
	assert.Equal(t, "16GB", v)

	_, ok = rec.SpecValue("Storage")
	assert.False(t, ok)
}
