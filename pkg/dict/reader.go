package dict

import (
	"os"

	"github.com/blevesearch/vellum"
	mmap "github.com/edsrzf/mmap-go"

	"github.com/mnohosten/yomu/pkg/ftserr"
)

// TermOffset is one (term, dictionary-offset) pair returned by an
// automaton search.
type TermOffset struct {
	Term   string
	Offset uint64
}

// Reader wraps a memory-mapped term-index file. It owns both the
// open file handle and the mapping; Close releases both.
type Reader struct {
	file *os.File
	mm   mmap.MMap
	fst  *vellum.FST
}

// Open validates the index header, memory-maps the file from offset 0
// (mmap offsets must be page-aligned), and loads the FST from the
// bytes that follow the header.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ftserr.Wrap(ftserr.Io, "dict.Open", err)
	}

	if err := CheckIndexHeader(f); err != nil {
		f.Close()
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, ftserr.Wrap(ftserr.Io, "dict.Open", err)
	}
	if info.Size() <= indexHeaderSize {
		f.Close()
		return nil, ftserr.New(ftserr.Fst, "dict.Open")
	}

	region, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, ftserr.Wrap(ftserr.Io, "dict.Open", err)
	}

	fst, err := vellum.Load([]byte(region[indexHeaderSize:]))
	if err != nil {
		region.Unmap()
		f.Close()
		return nil, ftserr.Wrap(ftserr.Fst, "dict.Open", err)
	}

	return &Reader{file: f, mm: region, fst: fst}, nil
}

// Get performs an exact lookup. ok is false when the term is absent.
func (r *Reader) Get(term string) (offset uint64, ok bool, err error) {
	v, exists, err := r.fst.Get([]byte(term))
	if err != nil {
		return 0, false, ftserr.Wrap(ftserr.Fst, "dict.Reader.Get", err)
	}
	return v, exists, nil
}

// Search streams every (term, offset) pair whose key is accepted by
// aut, in FST key order.
func (r *Reader) Search(aut vellum.Automaton) ([]TermOffset, error) {
	itr, err := r.fst.Search(aut, nil, nil)
	if err != nil && err != vellum.ErrIteratorDone {
		return nil, ftserr.Wrap(ftserr.Fst, "dict.Reader.Search", err)
	}

	var out []TermOffset
	for err == nil {
		key, val := itr.Current()
		out = append(out, TermOffset{Term: string(key), Offset: val})
		err = itr.Next()
	}
	if err != nil && err != vellum.ErrIteratorDone {
		return nil, ftserr.Wrap(ftserr.Fst, "dict.Reader.Search", err)
	}
	return out, nil
}

// Close releases the mapping and the underlying file handle.
func (r *Reader) Close() error {
	if err := r.fst.Close(); err != nil {
		return ftserr.Wrap(ftserr.Fst, "dict.Reader.Close", err)
	}
	if err := r.mm.Unmap(); err != nil {
		r.file.Close()
		return ftserr.Wrap(ftserr.Io, "dict.Reader.Close", err)
	}
	return ftserr.Wrap(ftserr.Io, "dict.Reader.Close", r.file.Close())
}
