// Package dict implements the on-disk term index (an FST mapping term
// bytes to a byte offset) and the header of the dictionary file that
// holds the posting-list blocks those offsets point at.
package dict

import "path/filepath"

const (
	// IndexMagic distinguishes a term-index file from any other file
	// that happens to be handed to Open.
	IndexMagic uint64 = 0x594f4d5501494458 // "YOMU" + 0x01 + "IDX"

	// DictMagic distinguishes a term-dictionary file.
	DictMagic uint64 = 0x594f4d55014d4454 // "YOMU" + 0x01 + "MDT"

	// Version is bumped on any layout change. Readers reject any other
	// version rather than heuristically decoding it.
	Version uint8 = 1

	// IndexFileSuffix and DictFileSuffix name the two files produced
	// by a build for a given identifier. The exact text is an ABI
	// choice; only their distinctness and stability matter.
	IndexFileSuffix = ".term_index"
	DictFileSuffix  = ".term_dict"

	// indexHeaderSize is magic(8) + version(1). The FST image starts
	// immediately after.
	indexHeaderSize = 9

	// dictHeaderSize is magic(8) + version(1) + doc_count(4). Posting
	// blocks start immediately after.
	dictHeaderSize = 13
)

// IndexPath returns the term-index file path for an identifier rooted
// at storeDir.
func IndexPath(storeDir, identifier string) string {
	return filepath.Join(storeDir, identifier+IndexFileSuffix)
}

// DictPath returns the term-dictionary file path for an identifier
// rooted at storeDir.
func DictPath(storeDir, identifier string) string {
	return filepath.Join(storeDir, identifier+DictFileSuffix)
}
