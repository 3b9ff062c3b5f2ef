// Package analyze defines the text-analysis contract the engine
// consumes and provides a small default pipeline: a character filter,
// a tokenizer, and a token filter, composed the way the reference
// analyzer pipeline does it. The engine core only ever depends on the
// Analyzer interface below; callers needing a real CJK word segmenter
// (the spec assumes a jieba-style tokenizer) supply their own
// Tokenizer and keep the rest of the pipeline.
package analyze

// Analyzer turns a string into an ordered sequence of term strings,
// possibly with duplicates. Implementations may borrow slices of the
// input or allocate new strings; the builder always copies what it
// retains, so an Analyzer is free to reuse buffers across calls.
type Analyzer interface {
	Analyze(text string) ([]string, error)
}

// CharFilter normalizes raw text before tokenization (case folding,
// full-width/half-width folding, Unicode normalization, and similar
// whole-text rewrites).
type CharFilter interface {
	Filter(text string) string
}

// Tokenizer splits normalized text into a sequence of raw tokens. It
// makes no assumption about what happens to a token afterward.
type Tokenizer interface {
	Tokenize(text string) []string
}

// TokenFilter inspects a single token and either passes it through
// (possibly rewritten, e.g. stemmed) or drops it (e.g. stop words).
type TokenFilter interface {
	Filter(token string) (string, bool)
}

// Pipeline composes a CharFilter, Tokenizer, and TokenFilter into an
// Analyzer. The design notes call this the interface-boundary choice
// over a monomorphized generic pipeline: the char filter and the
// tokenizer are called once per document field, the token filter once
// per token.
type Pipeline struct {
	Char  CharFilter
	Token Tokenizer
	Term  TokenFilter
}

// NewPipeline builds a Pipeline from its three stages. A nil stage is
// treated as a no-op (char filter returns input unchanged, tokenizer
// yields no tokens only if nil, term filter passes everything
// through).
func NewPipeline(c CharFilter, tok Tokenizer, f TokenFilter) *Pipeline {
	return &Pipeline{Char: c, Token: tok, Term: f}
}

// Analyze runs the three stages in order. It never returns an error
// itself; the interface returns one so that custom tokenizers (e.g. a
// jieba binding that can fail to load its dictionary) have somewhere
// to put it.
func (p *Pipeline) Analyze(text string) ([]string, error) {
	if p.Char != nil {
		text = p.Char.Filter(text)
	}
	if p.Token == nil {
		return nil, nil
	}
	raw := p.Token.Tokenize(text)
	if len(raw) == 0 {
		return nil, nil
	}

	out := make([]string, 0, len(raw))
	for _, tok := range raw {
		if p.Term == nil {
			out = append(out, tok)
			continue
		}
		if kept, ok := p.Term.Filter(tok); ok {
			out = append(out, kept)
		}
	}
	return out, nil
}
