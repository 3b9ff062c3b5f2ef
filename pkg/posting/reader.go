package posting

import (
	"encoding/binary"
	"io"
	"os"

	mmap "github.com/edsrzf/mmap-go"

	"github.com/mnohosten/yomu/pkg/ftserr"
)

// Reader is a random-access view over one term's on-disk posting
// list. It owns a read-only memory mapping of the record region,
// starting at the page boundary at or before the first record (mmap
// offsets must be page-aligned); the mapping is valid as long as the file it was opened
// against stays open and unmodified. A Reader is not safe for
// concurrent use, matching the single-threaded-per-instance model of
// the rest of the engine, but independent Readers may be opened
// against the same file concurrently.
type Reader struct {
	mm     mmap.MMap
	skew   uint32 // bytes between the mapping start and the first record
	length uint32
}

// Open reads the len:u32le header at offset within f, validates that
// the file holds len*RecordSize more bytes, and memory-maps that
// region read-only. An empty list (len == 0) cannot occur by
// construction and is reported as OutOfRange rather than an empty
// Reader.
func Open(f *os.File, offset int64) (*Reader, error) {
	var lenBuf [4]byte
	if _, err := f.ReadAt(lenBuf[:], offset); err != nil {
		return nil, ftserr.Wrap(ftserr.Io, "posting.Open", err)
	}
	n := binary.LittleEndian.Uint32(lenBuf[:])
	if n == 0 {
		return nil, ftserr.New(ftserr.OutOfRange, "posting.Open")
	}

	byteLen := int64(n) * RecordSize

	info, err := f.Stat()
	if err != nil {
		return nil, ftserr.Wrap(ftserr.Io, "posting.Open", err)
	}
	if info.Size() < offset+4+byteLen {
		return nil, ftserr.New(ftserr.OutOfRange, "posting.Open")
	}

	recStart := offset + 4
	skew := recStart % int64(os.Getpagesize())
	region, err := mmap.MapRegion(f, int(skew+byteLen), mmap.RDONLY, 0, recStart-skew)
	if err != nil {
		return nil, ftserr.Wrap(ftserr.Io, "posting.Open", err)
	}

	return &Reader{mm: region, skew: uint32(skew), length: n}, nil
}

// Len returns the number of postings in the list.
func (r *Reader) Len() uint32 { return r.length }

// DocID returns the document identifier of the i-th posting.
func (r *Reader) DocID(i uint32) (uint32, error) {
	if i >= r.length {
		return 0, ftserr.New(ftserr.OutOfRange, "posting.Reader.DocID")
	}
	base := r.skew + i*RecordSize
	return binary.LittleEndian.Uint32(r.mm[base : base+4]), nil
}

// TF returns the compressed title and content term frequencies of the
// i-th posting.
func (r *Reader) TF(i uint32) (title, content uint8, err error) {
	if i >= r.length {
		return 0, 0, ftserr.New(ftserr.OutOfRange, "posting.Reader.TF")
	}
	base := r.skew + i*RecordSize
	return r.mm[base+4], r.mm[base+5], nil
}

// Norm returns the title and content length-norms of the i-th
// posting.
func (r *Reader) Norm(i uint32) (title, content uint8, err error) {
	if i >= r.length {
		return 0, 0, ftserr.New(ftserr.OutOfRange, "posting.Reader.Norm")
	}
	base := r.skew + i*RecordSize
	return r.mm[base+6], r.mm[base+7], nil
}

// Close releases the memory mapping. It does not close the
// underlying file, which the caller (the query planner) owns for the
// lifetime of the Query.
func (r *Reader) Close() error {
	return ftserr.Wrap(ftserr.Io, "posting.Reader.Close", r.mm.Unmap())
}

var _ io.Closer = (*Reader)(nil)
