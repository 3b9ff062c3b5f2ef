// Package build implements the offline ingestion path: accumulating an
// in-memory dictionary of term to per-document posting data across a
// stream of documents, then flushing it to the on-disk term index and
// term dictionary.
package build

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

// Config names where a build's two output files land.
type Config struct {
	StoreDir   string
	Identifier string
}

// entryData is one document's contribution to one term, accumulated
// across however many times that term appears in the document's title
// and content.
type entryData struct {
	freqTitle   uint16
	freqContent uint16
	normTitle   uint8
	normContent uint8
}

// Builder accumulates postings across a stream of documents. It holds
// all state in memory and is not safe for concurrent use; one
// ingestion loop owns it for the duration of a build.
type Builder struct {
	cfg    Config
	docNum uint32
	dict   map[string]map[uint32]*entryData
}

// New creates a Builder that will write its output under cfg once
// Finish is called.
func New(cfg Config) *Builder {
	return &Builder{
		cfg:  cfg,
		dict: make(map[string]map[uint32]*entryData),
	}
}

// AddDocument runs titleAnalyzer over doc.Title and contentAnalyzer
// over doc.Content, upserting every emitted term into the building
// dictionary. A document whose analyzers both yield no terms still
// counts toward the total document count but contributes no postings.
func (b *Builder) AddDocument(doc engine.Document, titleAnalyzer, contentAnalyzer analyze.Analyzer) error {
	b.docNum++

	titleTerms, err := titleAnalyzer.Analyze(doc.Title)
	if err != nil {
		return ftserr.Wrap(ftserr.Io, "build.Builder.AddDocument", err)
	}
	contentTerms, err := contentAnalyzer.Analyze(doc.Content)
	if err != nil {
		return ftserr.Wrap(ftserr.Io, "build.Builder.AddDocument", err)
	}

	var normTitle, normContent uint8
	if n := utf8.RuneCountInString(doc.Title); n > 0 {
		normTitle = score.Norm(n)
	}
	if n := utf8.RuneCountInString(doc.Content); n > 0 {
		normContent = score.Norm(n)
	}

	for _, term := range titleTerms {
		e := b.entryFor(term, doc.ID, normTitle, normContent)
		e.freqTitle = saturatingIncr(e.freqTitle)
	}
	for _, term := range contentTerms {
		e := b.entryFor(term, doc.ID, normTitle, normContent)
		e.freqContent = saturatingIncr(e.freqContent)
	}

	return nil
}

func (b *Builder) entryFor(term string, docID uint32, normTitle, normContent uint8) *entryData {
	docs, ok := b.dict[term]
	if !ok {
		docs = make(map[uint32]*entryData)
		b.dict[term] = docs
	}
	e, ok := docs[docID]
	if !ok {
		e = &entryData{normTitle: normTitle, normContent: normContent}
		docs[docID] = e
	}
	return e
}

func saturatingIncr(v uint16) uint16 {
	if v == math.MaxUint16 {
		return v
	}
	return v + 1
}

// dictHeaderSize is the fixed width of the dictionary file header:
// magic(8) + version(1) + doc_count(4).
const dictHeaderSize = 13

// Finish writes the term index and term dictionary files and discards
// the builder's in-memory state. It fails fast on the first write
// error; callers should delete any partial output before retrying.
func (b *Builder) Finish() error {
	terms := make([]string, 0, len(b.dict))
	for t := range b.dict {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	indexFile, err := os.Create(dict.IndexPath(b.cfg.StoreDir, b.cfg.Identifier))
	if err != nil {
		return ftserr.Wrap(ftserr.Io, "build.Builder.Finish", err)
	}
	defer indexFile.Close()

	dictFile, err := os.Create(dict.DictPath(b.cfg.StoreDir, b.cfg.Identifier))
	if err != nil {
		return ftserr.Wrap(ftserr.Io, "build.Builder.Finish", err)
	}
	defer dictFile.Close()

	if err := dict.WriteIndexHeader(indexFile); err != nil {
		return err
	}
	fstWriter, err := dict.NewWriter(indexFile)
	if err != nil {
		return err
	}

	if err := dict.WriteDictHeader(dictFile, b.docNum); err != nil {
		return err
	}

	offset := uint64(dictHeaderSize)
	for _, term := range terms {
		if err := fstWriter.Insert(term, offset); err != nil {
			return err
		}

		entries := sortedEntries(b.dict[term])
		written, err := posting.WriteList(dictFile, entries)
		if err != nil {
			return err
		}
		offset += uint64(written)
	}

	if err := fstWriter.Close(); err != nil {
		return err
	}

	b.dict = nil
	return nil
}

func sortedEntries(docs map[uint32]*entryData) []posting.Entry {
	docIDs := make([]uint32, 0, len(docs))
	for id := range docs {
		docIDs = append(docIDs, id)
	}
	sort.Slice(docIDs, func(i, j int) bool { return docIDs[i] < docIDs[j] })

	entries := make([]posting.Entry, len(docIDs))
	for i, id := range docIDs {
		e := docs[id]
		entries[i] = posting.Entry{
			DocID:       id,
			FreqTitle:   e.freqTitle,
			FreqContent: e.freqContent,
			NormTitle:   e.normTitle,
			NormContent: e.normContent,
		}
	}
	return entries
}
