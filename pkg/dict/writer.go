package dict

import (
	"io"

	"github.com/blevesearch/vellum"

	"github.com/mnohosten/yomu/pkg/ftserr"
)

// Writer accumulates a term -> offset FST onto an underlying writer.
// Terms must be inserted in ascending lexicographic order, which is
// exactly the order the builder already walks its building
// dictionary in.
type Writer struct {
	b *vellum.Builder
}

// NewWriter wraps w (positioned right after the index header) with an
// FST builder.
func NewWriter(w io.Writer) (*Writer, error) {
	b, err := vellum.New(w, nil)
	if err != nil {
		return nil, ftserr.Wrap(ftserr.Fst, "dict.NewWriter", err)
	}
	return &Writer{b: b}, nil
}

// Insert records that term resolves to the given dictionary-file
// offset. term must sort after every previously inserted term.
func (w *Writer) Insert(term string, offset uint64) error {
	if err := w.b.Insert([]byte(term), offset); err != nil {
		return ftserr.Wrap(ftserr.Fst, "dict.Writer.Insert", err)
	}
	return nil
}

// Close finalizes the FST image. No further Insert calls are valid
// afterward.
func (w *Writer) Close() error {
	if err := w.b.Close(); err != nil {
		return ftserr.Wrap(ftserr.Fst, "dict.Writer.Close", err)
	}
	return nil
}
