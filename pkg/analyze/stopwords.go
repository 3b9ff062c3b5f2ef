package analyze

// StopWordFilter drops tokens present in a fixed set. Tokens are
// expected to already be lowercased by an earlier CharFilter stage.
type StopWordFilter struct {
	words map[string]struct{}
}

// NewStopWordFilter builds a filter from an explicit word list.
func NewStopWordFilter(words []string) *StopWordFilter {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return &StopWordFilter{words: set}
}

// NewDefaultStopWordFilter returns a filter over a short list of
// common English function words. Real deployments indexing other
// languages should supply their own list.
func NewDefaultStopWordFilter() *StopWordFilter {
	return NewStopWordFilter(defaultStopWords)
}

func (f *StopWordFilter) Filter(token string) (string, bool) {
	if token == "" {
		return "", false
	}
	if _, stop := f.words[token]; stop {
		return "", false
	}
	return token, true
}

var defaultStopWords = []string{
	"a", "an", "and", "are", "as", "at", "be", "but", "by",
	"for", "if", "in", "into", "is", "it", "no", "not", "of",
	"on", "or", "such", "that", "the", "their", "then", "there",
	"these", "they", "this", "to", "was", "will", "with",
}
