package analyze

import (
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// DefaultCharFilter folds full-width/half-width CJK forms to their
// canonical form, applies NFKC normalization, and lowercases the
// result. Doing this once over the whole field is cheaper than
// per-token case folding and keeps width-variant terms (e.g. "ＡＢＣ"
// vs "ABC") mapping to the same dictionary entry.
type DefaultCharFilter struct{}

// NewDefaultCharFilter returns the default char filter.
func NewDefaultCharFilter() DefaultCharFilter { return DefaultCharFilter{} }

func (DefaultCharFilter) Filter(text string) string {
	folded := width.Fold.String(text)
	normalized := norm.NFKC.String(folded)
	return strings.ToLower(normalized)
}
