// Package posting implements the on-disk posting-list format (codec)
// and the in-memory combinators (union, intersection) the query
// planner uses to merge multiple terms' posting lists into a single
// scored working set.
package posting

// RecordSize is the width in bytes of one posting record:
// doc_id(4) + tf_title(1) + tf_content(1) + norm_title(1) +
// norm_content(1), little-endian throughout.
const RecordSize = 8

// Entry is one document's contribution to a term's posting list, as
// the builder has it in memory right before writing: raw (saturating)
// frequencies and already-computed norm bytes. Writing compresses
// FreqTitle/FreqContent with score.TF.
type Entry struct {
	DocID       uint32
	FreqTitle   uint16
	FreqContent uint16
	NormTitle   uint8
	NormContent uint8
}
