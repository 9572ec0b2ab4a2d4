package match

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/offerstack/compare-cli/internal/model"
)

var (
	// Everything except word characters and hyphens becomes a separator.
	sanitizer    = regexp.MustCompile(`[^\w-]+`)
	numericToken = regexp.MustCompile(`^[0-9]+$`)
)

// stopWords are function words and filler that never discriminate between
// feature labels.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "from": {}, "this": {},
	"that": {}, "you": {}, "your": {}, "our": {}, "are": {}, "has": {},
	"have": {}, "was": {}, "will": {}, "can": {}, "get": {}, "all": {},
	"any": {}, "per": {}, "via": {}, "into": {}, "onto": {}, "over": {},
	"more": {}, "most": {}, "very": {}, "its": {}, "their": {},
	"plus": {}, "extra": {}, "super": {}, "mega": {}, "ultra": {},
	"new": {}, "now": {}, "also": {}, "including": {}, "included": {},
}

// Keywords tokenizes free text into a deduplicated, order-preserving set
// of lowercase keywords. Tokens of length <= 2, stop words, and purely
// numeric tokens are dropped.
func Keywords(text string) []string {
	cleaned := sanitizer.ReplaceAllString(strings.ToLower(text), " ")

	var out []string
	seen := make(map[string]struct{})
	for _, tok := range strings.Fields(cleaned) {
		tok = strings.Trim(tok, "-")
		if len(tok) <= 2 {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		if numericToken.MatchString(tok) {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}

// ItemText coerces a catalog item into the string the extractor should
// tokenize. Structured items contribute their text (or name and value for
// spec-shaped items); anything else is stringified.
func ItemText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case model.FeatureItem:
		return t.Text
	case *model.FeatureItem:
		if t == nil {
			return ""
		}
		return t.Text
	case model.SpecItem:
		return strings.TrimSpace(t.Name + " " + t.Value)
	case *model.SpecItem:
		if t == nil {
			return ""
		}
		return strings.TrimSpace(t.Name + " " + t.Value)
	default:
		return fmt.Sprintf("%v", v)
	}
}
