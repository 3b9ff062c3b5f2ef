package analyze

// New returns the engine's default analysis pipeline: fold/normalize,
// split letters-and-digits runs with per-character CJK tokens, then
// drop English stop words. It is a reasonable default for tests and
// small deployments; anything indexing real CJK corpora at scale
// should plug in a dedicated Tokenizer (see the package doc).
func New() Analyzer {
	return NewPipeline(NewDefaultCharFilter(), NewDefaultTokenizer(), NewDefaultStopWordFilter())
}
