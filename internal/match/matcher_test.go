package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    []string
		b    []string
		want float64
	}{
		{"identical", []string{"speed", "processor"}, []string{"speed", "processor"}, 1.0},
		{"disjoint", []string{"speed"}, []string{"battery"}, 0.0},
		{"partial against larger set", []string{"speed", "processor"}, []string{"speed", "processor", "memory", "storage"}, 0.5},
		{"empty left", nil, []string{"speed"}, 0.0},
		{"empty right", []string{"speed"}, nil, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Similarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	a := []string{"speed", "processor", "memory"}
	b := []string{"processor", "storage"}
	assert.InDelta(t, Similarity(a, b), Similarity(b, a), 1e-9)
}

func TestGroupMergesSynonyms(t *testing.T) {
	m := NewMatcher(DefaultConfig())

	groups := m.Group([]string{"Fast Processor", "Quick CPU", "Long Battery Life"})
	require.Len(t, groups, 2)

	// Synonym resolution makes the first two identical keyword sets; the
	// shorter member becomes the label.
	assert.Equal(t, "Quick CPU", groups[0].Label)
	assert.Equal(t, []string{"Fast Processor", "Quick CPU"}, groups[0].Members)

	assert.Equal(t, "Long Battery Life", groups[1].Label)
	assert.Equal(t, []string{"Long Battery Life"}, groups[1].Members)
}

func TestGroupSingletonKeepsOwnLabel(t *testing.T) {
	m := NewMatcher(DefaultConfig())

	groups := m.Group([]string{"Backlit Keyboard"})
	require.Len(t, groups, 1)
	assert.Equal(t, "Backlit Keyboard", groups[0].Label)
	assert.Equal(t, []string{"Backlit Keyboard"}, groups[0].Members)
}

func TestGroupDeduplicatesMembers(t *testing.T) {
	m := NewMatcher(DefaultConfig())

	groups := m.Group([]string{"Free Shipping", "Free Shipping", "free shipping"})
	require.Len(t, groups, 1)
	// Identical text appears once; a case variant is a distinct member.
	assert.Equal(t, []string{"Free Shipping", "free shipping"}, groups[0].Members)
}

func TestGroupSkipsBlankItems(t *testing.T) {
	m := NewMatcher(DefaultConfig())

	groups := m.Group([]string{"", "   ", "Live Betting"})
	require.Len(t, groups, 1)
	assert.Equal(t, "Live Betting", groups[0].Label)
}

func TestGroupIdempotentOnLabels(t *testing.T) {
	m := NewMatcher(DefaultConfig())

	first := m.Group([]string{"Fast Processor", "Quick CPU", "HD Streaming", "Stream in HD"})
	labels := make([]string, 0, len(first))
	for _, g := range first {
		labels = append(labels, g.Label)
	}

	second := m.Group(labels)
	assert.Len(t, second, len(first))
}

func TestGroupThresholdKeepsDistinct(t *testing.T) {
	m := NewMatcher(Config{ClusterThreshold: 0.9, MembershipCap: 2})

	// At a high threshold the partial overlap is not enough to merge.
	groups := m.Group([]string{"Fast Processor with Large Display", "Quick CPU"})
	assert.Len(t, groups, 2)
}

func TestCompatible(t *testing.T) {
	m := NewMatcher(DefaultConfig())

	tests := []struct {
		name   string
		items  []string
		target string
		want   bool
	}{
		{
			name:   "exact match case folded",
			items:  []string{"free shipping"},
			target: "Free Shipping",
			want:   true,
		},
		{
			name:   "synonym keyword overlap",
			items:  []string{"Fast Processor"},
			target: "Quick CPU",
			want:   true,
		},
		{
			name:   "substring containment",
			items:  []string{"Waterproofing included"},
			target: "Waterproof",
			want:   true,
		},
		{
			name:   "unrelated",
			items:  []string{"Long Battery Life"},
			target: "Free Spins",
			want:   false,
		},
		{
			name:   "no items",
			items:  nil,
			target: "Fast Processor",
			want:   false,
		},
		{
			name:   "blank target",
			items:  []string{"Anything"},
			target: "   ",
			want:   false,
		},
		{
			name:   "long target capped at two hits",
			items:  []string{"Premium OLED Display", "Thunderbolt Ports"},
			target: "Premium OLED Display with Thunderbolt Ports and Webcam",
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Compatible(tt.items, tt.target))
		})
	}
}

func TestNewMatcherDefaultsInvalidConfig(t *testing.T) {
	m := NewMatcher(Config{})
	assert.InDelta(t, 0.3, m.cfg.ClusterThreshold, 1e-9)
	assert.Equal(t, 2, m.cfg.MembershipCap)
}
