package dict

import (
	"encoding/binary"
	"io"

	"github.com/mnohosten/yomu/pkg/ftserr"
)

// WriteIndexHeader writes the 9-byte term-index header: magic then
// version, both little-endian.
func WriteIndexHeader(w io.Writer) error {
	var buf [indexHeaderSize]byte
	binary.LittleEndian.PutUint64(buf[0:8], IndexMagic)
	buf[8] = Version
	if _, err := w.Write(buf[:]); err != nil {
		return ftserr.Wrap(ftserr.Io, "dict.WriteIndexHeader", err)
	}
	return nil
}

// WriteDictHeader writes the 13-byte dictionary header: magic,
// version, then the total document count captured at build-finish
// time.
func WriteDictHeader(w io.Writer, totalDocs uint32) error {
	var buf [dictHeaderSize]byte
	binary.LittleEndian.PutUint64(buf[0:8], DictMagic)
	buf[8] = Version
	binary.LittleEndian.PutUint32(buf[9:13], totalDocs)
	if _, err := w.Write(buf[:]); err != nil {
		return ftserr.Wrap(ftserr.Io, "dict.WriteDictHeader", err)
	}
	return nil
}

// CheckIndexHeader validates the first 9 bytes read from r and
// returns nothing on success; a magic or version mismatch is a fatal
// Incompatible error.
func CheckIndexHeader(r io.Reader) error {
	var buf [indexHeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return ftserr.Wrap(ftserr.Io, "dict.CheckIndexHeader", err)
	}
	magic := binary.LittleEndian.Uint64(buf[0:8])
	version := buf[8]
	if magic != IndexMagic || version != Version {
		return ftserr.New(ftserr.Incompatible, "dict.CheckIndexHeader")
	}
	return nil
}

// CheckDictHeader validates the first 13 bytes read from r and
// returns the total document count on success.
func CheckDictHeader(r io.Reader) (uint32, error) {
	var buf [dictHeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, ftserr.Wrap(ftserr.Io, "dict.CheckDictHeader", err)
	}
	magic := binary.LittleEndian.Uint64(buf[0:8])
	version := buf[8]
	if magic != DictMagic || version != Version {
		return 0, ftserr.New(ftserr.Incompatible, "dict.CheckDictHeader")
	}
	return binary.LittleEndian.Uint32(buf[9:13]), nil
}
