package match

import "strings"

// Config holds the matcher's two thresholds. Both are preserved from the
// original heuristics as named, overridable values; they are intentionally
// different because under-merging rows is worse than under-marking a cell.
type Config struct {
	// ClusterThreshold is the minimum similarity for an item to join an
	// existing group during clustering.
	ClusterThreshold float64
	// MembershipCap bounds how many target keywords the looser membership
	// test may require.
	MembershipCap int
}

// DefaultConfig returns the historical thresholds.
func DefaultConfig() Config {
	return Config{
		ClusterThreshold: 0.3,
		MembershipCap:    2,
	}
}

// FeatureGroup is a cluster of free-text labels judged equivalent,
// represented by one chosen label.
type FeatureGroup struct {
	Label   string
	Members []string
}

// Matcher clusters free-text feature labels and tests per-product
// membership against fixed group labels. Stateless and safe for
// concurrent use.
type Matcher struct {
	resolver *Resolver
	cfg      Config
}

// NewMatcher creates a Matcher with the given thresholds.
func NewMatcher(cfg Config) *Matcher {
	if cfg.ClusterThreshold <= 0 {
		cfg.ClusterThreshold = DefaultConfig().ClusterThreshold
	}
	if cfg.MembershipCap <= 0 {
		cfg.MembershipCap = DefaultConfig().MembershipCap
	}
	return &Matcher{resolver: NewResolver(), cfg: cfg}
}

// Similarity is the overlap between two keyword sets measured against the
// larger set's size: |A ∩ B| / max(|A|, |B|). Symmetric by construction.
func Similarity(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(a))
	for _, k := range a {
		set[k] = struct{}{}
	}
	inter := 0
	for _, k := range b {
		if _, ok := set[k]; ok {
			inter++
		}
	}
	denom := len(a)
	if len(b) > denom {
		denom = len(b)
	}
	return float64(inter) / float64(denom)
}

func (m *Matcher) normalized(text string) []string {
	return m.resolver.Normalize(Keywords(text))
}

type cluster struct {
	rep     string
	repKeys []string
	members []string
	seen    map[string]struct{}
}

// Group clusters labels into equivalence groups with a greedy single pass.
// The result is input-order dependent: each item is compared against every
// existing group's representative label, joins the best-scoring group at
// or above the threshold (first group at the best score wins), or starts
// its own. Groups with two or more distinct members are labeled by their
// shortest member; singletons keep their sole member.
func (m *Matcher) Group(items []string) []FeatureGroup {
	var clusters []*cluster

	for _, item := range items {
		text := strings.TrimSpace(item)
		if text == "" {
			continue
		}
		keys := m.normalized(text)

		best := -1
		bestScore := 0.0
		for i, c := range clusters {
			score := Similarity(keys, c.repKeys)
			if score >= m.cfg.ClusterThreshold && score > bestScore {
				best = i
				bestScore = score
			}
		}

		if best >= 0 {
			c := clusters[best]
			if _, dup := c.seen[text]; !dup {
				c.seen[text] = struct{}{}
				c.members = append(c.members, text)
			}
			continue
		}

		clusters = append(clusters, &cluster{
			rep:     text,
			repKeys: keys,
			members: []string{text},
			seen:    map[string]struct{}{text: {}},
		})
	}

	groups := make([]FeatureGroup, 0, len(clusters))
	for _, c := range clusters {
		label := c.members[0]
		if len(c.members) >= 2 {
			for _, member := range c.members[1:] {
				if len(member) < len(label) {
					label = member
				}
			}
		}
		groups = append(groups, FeatureGroup{Label: label, Members: c.members})
	}
	return groups
}

// Compatible reports whether a product whose items are given should be
// marked as having the feature named by target. This is the looser of the
// two tests: an exact (case-folded) text match short-circuits; otherwise
// target keywords are counted against the product's combined keyword set
// by substring containment in either direction, and the product passes at
// min(MembershipCap, ceil(len(targetKeywords)/2)) hits. A product can be
// compatible with a group it never contributed a member to.
func (m *Matcher) Compatible(items []string, target string) bool {
	targetFold := strings.ToLower(strings.TrimSpace(target))
	if targetFold == "" {
		return false
	}
	for _, it := range items {
		if strings.ToLower(strings.TrimSpace(it)) == targetFold {
			return true
		}
	}

	targetKeys := m.normalized(target)
	if len(targetKeys) == 0 {
		return false
	}

	candidate := make(map[string]struct{})
	for _, it := range items {
		for _, k := range m.normalized(it) {
			candidate[k] = struct{}{}
		}
	}

	hits := 0
	for _, tk := range targetKeys {
		for ck := range candidate {
			if strings.Contains(ck, tk) || strings.Contains(tk, ck) {
				hits++
				break
			}
		}
	}

	required := (len(targetKeys) + 1) / 2
	if required > m.cfg.MembershipCap {
		required = m.cfg.MembershipCap
	}
	return hits >= required
}
