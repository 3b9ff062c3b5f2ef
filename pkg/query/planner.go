// Package query implements the online lookup path: resolving a
// tokenized sentence against the term index, merging the matched
// posting lists into a scored working set, and returning a paginated,
// ranked slice of document identifiers.
package query

import (
	"math"
	"os"
	"sort"
	"unicode/utf8"

	"github.com/mnohosten/yomu/pkg/analyze"
	"github.com/mnohosten/yomu/pkg/dict"
	"github.com/mnohosten/yomu/pkg/engine"
	"github.com/mnohosten/yomu/pkg/ftserr"
	"github.com/mnohosten/yomu/pkg/posting"
	"github.com/mnohosten/yomu/pkg/score"
)

// Mode picks how multiple query terms combine in the working set.
// Union keeps partial matches so recall stays high; Intersect is
// stricter and only keeps documents matching every resolved term.
type Mode int

const (
	ModeUnion Mode = iota
	ModeIntersect
)

// Query owns one open term index and one open dictionary file for the
// lifetime of however many Search calls the caller makes. It is not
// safe for concurrent use; open one Query per goroutine against the
// same files for parallel serving.
type Query struct {
	cfg       Config
	analyzer  analyze.Analyzer
	idx       *dict.Reader
	dictFile  *os.File
	totalDocs uint32
}

// Open validates and memory-maps the term index, opens the
// dictionary file, and reads its header. Both files are held open
// until Close.
func Open(cfg Config, a analyze.Analyzer) (*Query, error) {
	idx, err := dict.Open(dict.IndexPath(cfg.StoreDir, cfg.Identifier))
	if err != nil {
		return nil, err
	}

	dictFile, err := os.Open(dict.DictPath(cfg.StoreDir, cfg.Identifier))
	if err != nil {
		idx.Close()
		return nil, ftserr.Wrap(ftserr.Io, "query.Open", err)
	}

	totalDocs, err := dict.CheckDictHeader(dictFile)
	if err != nil {
		idx.Close()
		dictFile.Close()
		return nil, err
	}

	return &Query{cfg: cfg, analyzer: a, idx: idx, dictFile: dictFile, totalDocs: totalDocs}, nil
}

// Close releases the term-index mapping and the dictionary file
// handle.
func (q *Query) Close() error {
	idxErr := q.idx.Close()
	fileErr := q.dictFile.Close()
	if idxErr != nil {
		return idxErr
	}
	if fileErr != nil {
		return ftserr.Wrap(ftserr.Io, "query.Query.Close", fileErr)
	}
	return nil
}

// termMatch is one resolved query term: its posting list plus the
// state needed to compute its slot in the query and document score
// vectors.
type termMatch struct {
	term string
	occ  uint16
	list *posting.Reader
}

// Search analyzes sentence, resolves each unique term through
// factory, merges the matches with mode, ranks the result by cosine
// similarity against the query vector, and returns the document
// identifiers in r.
func (q *Query) Search(sentence string, factory AutomatonFactory, mode Mode, r engine.Range) ([]uint32, error) {
	terms, err := q.analyzer.Analyze(sentence)
	if err != nil {
		return nil, err
	}
	if len(terms) == 0 {
		return nil, nil
	}

	order, counts := countOccurrences(terms)

	matches := make([]termMatch, 0, len(order))
	defer func() {
		for _, m := range matches {
			m.list.Close()
		}
	}()

	for _, term := range order {
		offset, found, err := q.resolveTerm(term, factory)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}
		list, err := posting.Open(q.dictFile, int64(offset))
		if err != nil {
			return nil, err
		}
		matches = append(matches, termMatch{term: term, occ: counts[term], list: list})
	}
	if len(matches) == 0 {
		return nil, nil
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].list.Len() < matches[j].list.Len()
	})

	var sentenceNorm uint8
	if n := utf8.RuneCountInString(sentence); n > 0 {
		sentenceNorm = score.Norm(n)
	}

	idfs := make([]float64, len(matches))
	qVec := make([]float64, len(matches))
	var working posting.WorkingSet
	for i, m := range matches {
		idf := score.IDF(m.list.Len(), q.totalDocs)
		idfs[i] = idf

		tf := score.TF(m.occ)
		qVec[i] = score.TermPriority(idf, tf, tf, sentenceNorm, sentenceNorm, q.cfg.BoostTitle, q.cfg.BoostContent)

		var mergeErr error
		if mode == ModeIntersect && i > 0 {
			working, mergeErr = posting.Intersect(working, m.list)
		} else {
			working, mergeErr = posting.Union(working, m.list)
		}
		if mergeErr != nil {
			return nil, mergeErr
		}
	}

	ranked := rankWorkingSet(working, idfs, qVec, q.cfg.BoostTitle, q.cfg.BoostContent)

	return paginate(ranked, r), nil
}

func countOccurrences(terms []string) (order []string, counts map[string]uint16) {
	order = make([]string, 0, len(terms))
	counts = make(map[string]uint16, len(terms))
	for _, t := range terms {
		if _, seen := counts[t]; !seen {
			order = append(order, t)
		}
		counts[t] = saturatingIncr16(counts[t])
	}
	return order, counts
}

func saturatingIncr16(v uint16) uint16 {
	if v == math.MaxUint16 {
		return v
	}
	return v + 1
}

// resolveTerm asks factory for an automaton. A nil automaton means an
// exact lookup. Otherwise every dictionary term the automaton accepts
// is collected; the exact term wins if present, else the last match
// returned is kept (an arbitrary but documented tie-break — see
// DESIGN.md).
func (q *Query) resolveTerm(term string, factory AutomatonFactory) (offset uint64, found bool, err error) {
	aut, err := factory(term)
	if err != nil {
		return 0, false, err
	}
	if aut == nil {
		return q.idx.Get(term)
	}

	candidates, err := q.idx.Search(aut)
	if err != nil {
		return 0, false, err
	}
	if len(candidates) == 0 {
		return 0, false, nil
	}

	for _, c := range candidates {
		if c.Term == term {
			return c.Offset, true, nil
		}
	}
	last := candidates[len(candidates)-1]
	return last.Offset, true, nil
}

type rankedDoc struct {
	docID uint32
	score float64
}

func rankWorkingSet(w posting.WorkingSet, idfs, qVec []float64, boostTitle, boostContent uint8) []rankedDoc {
	ranked := make([]rankedDoc, len(w))
	d := make([]float64, len(idfs))
	for i, p := range w {
		for j, pt := range p.Priorities {
			d[j] = score.TermPriority(idfs[j], pt.TFTitle, pt.TFContent, pt.NormTitle, pt.NormContent, boostTitle, boostContent)
		}
		ranked[i] = rankedDoc{docID: p.DocID, score: score.Cosine(qVec, d)}
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	return ranked
}

func paginate(ranked []rankedDoc, r engine.Range) []uint32 {
	start := r.Start
	if start < 0 {
		start = 0
	}
	if start > len(ranked) {
		start = len(ranked)
	}
	end := r.End
	if end > len(ranked) {
		end = len(ranked)
	}
	if end < start {
		end = start
	}

	ids := make([]uint32, 0, end-start)
	for _, rd := range ranked[start:end] {
		ids = append(ids, rd.docID)
	}
	return ids
}
