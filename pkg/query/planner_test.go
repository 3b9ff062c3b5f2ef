package query

import (
	"os"
	"testing"

	"github.com/mnohosten/yomu/pkg/analyze"
	"github.com/mnohosten/yomu/pkg/build"
	"github.com/mnohosten/yomu/pkg/dict"
	"github.com/mnohosten/yomu/pkg/engine"
	"github.com/mnohosten/yomu/pkg/ftserr"
)

func indexPathFor(t *testing.T, cfg Config) string {
	t.Helper()
	return dict.IndexPath(cfg.StoreDir, cfg.Identifier)
}

func corruptFirstByte(t *testing.T, path string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		t.Fatalf("open for corruption: %v", err)
	}
	defer f.Close()
	if _, err := f.WriteAt([]byte{0x00}, 0); err != nil {
		t.Fatalf("write corruption byte: %v", err)
	}
}

func buildScenarioA(t *testing.T) Config {
	t.Helper()
	cfg := Config{StoreDir: t.TempDir(), Identifier: "scenario", BoostTitle: 3, BoostContent: 1}
	b := build.New(build.Config{StoreDir: cfg.StoreDir, Identifier: cfg.Identifier})
	a := analyze.New()

	docs := []engine.Document{
		{ID: 1, Title: "cat", Content: "a cat sat"},
		{ID: 2, Title: "dog", Content: "a dog ran"},
		{ID: 3, Title: "cat and dog", Content: "cats chase dogs"},
	}
	for _, d := range docs {
		if err := b.AddDocument(d, a, a); err != nil {
			t.Fatalf("AddDocument(%d): %v", d.ID, err)
		}
	}
	if err := b.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	return cfg
}

func openScenarioA(t *testing.T) *Query {
	t.Helper()
	cfg := buildScenarioA(t)
	q, err := Open(cfg, analyze.New())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { q.Close() })
	return q
}

func TestSearchExactMatch(t *testing.T) {
	q := openScenarioA(t)

	ids, err := q.Search("cat", ExactAutomatonFactory, ModeUnion, engine.Range{Start: 0, End: 10})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("ids = %v, want 2 results", ids)
	}
	if ids[0] != 1 {
		t.Fatalf("top result = %d, want doc 1 (single-term cosine ties at 1.0; stable sort keeps doc-id order)", ids[0])
	}
	if ids[1] != 3 {
		t.Fatalf("second result = %d, want doc 3", ids[1])
	}
}

func TestSearchNoMatches(t *testing.T) {
	q := openScenarioA(t)

	ids, err := q.Search("zzz", ExactAutomatonFactory, ModeUnion, engine.Range{Start: 0, End: 10})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("ids = %v, want empty", ids)
	}
}

func TestSearchUnionOfTwoTerms(t *testing.T) {
	q := openScenarioA(t)

	ids, err := q.Search("cat dog", ExactAutomatonFactory, ModeUnion, engine.Range{Start: 0, End: 10})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("ids = %v, want all 3 docs", ids)
	}
	if ids[0] != 3 {
		t.Fatalf("top result = %d, want doc 3 (matches both terms)", ids[0])
	}
}

func TestSearchPagination(t *testing.T) {
	q := openScenarioA(t)

	full, err := q.Search("cat dog", ExactAutomatonFactory, ModeUnion, engine.Range{Start: 0, End: 10})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	page, err := q.Search("cat dog", ExactAutomatonFactory, ModeUnion, engine.Range{Start: 1, End: 3})
	if err != nil {
		t.Fatalf("Search (paged): %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("page = %v, want 2 results", page)
	}
	if page[0] != full[1] || page[1] != full[2] {
		t.Fatalf("page = %v, want %v", page, full[1:3])
	}
}

// TestSearchFuzzyMatch is the literal build-(1,"神里")/query-"神理"
// scenario. Because the default tokenizer treats every CJK ideograph
// as its own one-rune term (DefaultTokenizer, pkg/analyze/tokenizer.go),
// "神理" resolves to two one-rune query terms, each short enough that
// DefaultAutomatonFactory builds a distance-0 (exact) automaton for it
// (fuzzyShortLen=4): "神" exact-matches the dictionary and "理" simply
// doesn't match anything. The result comes entirely from that exact
// hit under ModeUnion, never from the distance-1 code path.
// TestSearchFuzzyMatchGenuineSubstitution below exercises an actual
// Levenshtein distance-1 substitution match.
func TestSearchFuzzyMatch(t *testing.T) {
	cfg := Config{StoreDir: t.TempDir(), Identifier: "fuzzy", BoostTitle: 1, BoostContent: 1}
	b := build.New(build.Config{StoreDir: cfg.StoreDir, Identifier: cfg.Identifier})
	a := analyze.New()

	if err := b.AddDocument(engine.Document{ID: 1, Title: "神里", Content: "character"}, a, a); err != nil {
		t.Fatalf("AddDocument: %v", err)
	}
	if err := b.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	q, err := Open(cfg, a)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer q.Close()

	ids, err := q.Search("神理", DefaultAutomatonFactory, ModeUnion, engine.Range{Start: 0, End: 10})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("ids = %v, want [1]", ids)
	}
}

// TestSearchFuzzyMatchGenuineSubstitution exercises the distance-1
// Levenshtein path for real: "algorithm" is a single >4-rune token (the
// DefaultTokenizer keeps runs of letters together, unlike CJK
// ideographs), so DefaultAutomatonFactory builds a true d=1 automaton
// for the misspelled query term, and the only way "algorithn" can
// resolve to the document is via a genuine one-substitution edit
// ("m" -> "n"), not an exact hit or an accidental deletion/insertion.
func TestSearchFuzzyMatchGenuineSubstitution(t *testing.T) {
	cfg := Config{StoreDir: t.TempDir(), Identifier: "fuzzy-substitution", BoostTitle: 1, BoostContent: 1}
	b := build.New(build.Config{StoreDir: cfg.StoreDir, Identifier: cfg.Identifier})
	a := analyze.New()

	if err := b.AddDocument(engine.Document{ID: 1, Title: "algorithm design", Content: "sorting and searching"}, a, a); err != nil {
		t.Fatalf("AddDocument: %v", err)
	}
	if err := b.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	q, err := Open(cfg, a)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer q.Close()

	const misspelled = "algorithn"

	exact, err := q.Search(misspelled, ExactAutomatonFactory, ModeUnion, engine.Range{Start: 0, End: 10})
	if err != nil {
		t.Fatalf("Search (exact): %v", err)
	}
	if len(exact) != 0 {
		t.Fatalf("exact search for misspelled term = %v, want no match (sanity check)", exact)
	}

	fuzzy, err := q.Search(misspelled, DefaultAutomatonFactory, ModeUnion, engine.Range{Start: 0, End: 10})
	if err != nil {
		t.Fatalf("Search (fuzzy): %v", err)
	}
	if len(fuzzy) != 1 || fuzzy[0] != 1 {
		t.Fatalf("ids = %v, want [1] via distance-1 substitution match on %q", fuzzy, misspelled)
	}
}

func TestOpenRejectsIncompatibleFile(t *testing.T) {
	cfg := buildScenarioA(t)

	path := indexPathFor(t, cfg)
	corruptFirstByte(t, path)

	_, err := Open(cfg, analyze.New())
	if err == nil {
		t.Fatal("Open on corrupted index: want error, got nil")
	}
	if !ftserr.Is(err, ftserr.Incompatible) {
		t.Fatalf("Open on corrupted index: err = %v, want Kind=Incompatible", err)
	}
}
