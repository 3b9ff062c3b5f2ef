// Package engine holds the small set of types shared by the build and
// query sides of the index: the input document shape and a result
// page range. Everything else lives in pkg/build and pkg/query.
package engine

// Document is the only input the builder accepts. The analyzer turns
// Title and Content into ordered term sequences; ID is stored as-is
// in every posting produced from this document's terms.
type Document struct {
	ID      uint32
	Title   string
	Content string
}

// Range selects a half-open slice [Start, End) of a ranked result
// list. Start == 0 is the best-scoring document. A Range extending
// past the available results is silently clipped by the query
// planner rather than treated as an error.
type Range struct {
	Start int
	End   int
}
