package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildConceptMapDisjoint(t *testing.T) {
	concepts := BuildConceptMap()

	owner := make(map[string]string)
	for concept, members := range concepts {
		for _, m := range members {
			prev, dup := owner[m]
			assert.False(t, dup, "token %q belongs to both %q and %q", m, prev, concept)
			owner[m] = concept
		}
	}
}

func TestBuildConceptMapSelfContained(t *testing.T) {
	// Each concept key is itself a member of its own family, so resolving
	// a canonical key is stable.
	concepts := BuildConceptMap()
	r := NewResolver()
	for concept := range concepts {
		assert.Equal(t, concept, r.Concept(concept))
	}
}

func TestResolverConcept(t *testing.T) {
	r := NewResolver()

	tests := []struct {
		token string
		want  string
	}{
		{"cpu", "processor"},
		{"quick", "speed"},
		{"fast", "speed"},
		{"ssd", "storage"},
		{"spins", "freespins"},
		{"payout", "withdrawal"},
		{"parlay", "betting"},
		{"dashboards", "analytics"},
		{"unmapped", "unmapped"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.Concept(tt.token), "token %q", tt.token)
	}
}

func TestResolverNormalize(t *testing.T) {
	r := NewResolver()

	// "fast" and "quick" collapse to one concept; duplicates drop.
	got := r.Normalize([]string{"fast", "quick", "processor", "cpu", "warranty"})
	assert.Equal(t, []string{"speed", "processor", "warranty"}, got)

	assert.Empty(t, r.Normalize(nil))
}
