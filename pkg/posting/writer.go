package posting

import (
	"encoding/binary"
	"io"

	"github.com/mnohosten/yomu/pkg/ftserr"
	"github.com/mnohosten/yomu/pkg/score"
)

// WriteList serializes entries — which must already be sorted
// ascending by DocID — as a length-prefixed block of fixed-size
// records, and returns the number of bytes written.
func WriteList(w io.Writer, entries []Entry) (int64, error) {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(entries)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return 0, ftserr.Wrap(ftserr.Io, "posting.WriteList", err)
	}

	written := int64(4)
	var rec [RecordSize]byte
	for _, e := range entries {
		binary.LittleEndian.PutUint32(rec[0:4], e.DocID)
		rec[4] = score.TF(e.FreqTitle)
		rec[5] = score.TF(e.FreqContent)
		rec[6] = e.NormTitle
		rec[7] = e.NormContent

		if _, err := w.Write(rec[:]); err != nil {
			return written, ftserr.Wrap(ftserr.Io, "posting.WriteList", err)
		}
		written += RecordSize
	}

	return written, nil
}
