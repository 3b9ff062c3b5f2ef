// Command yomu-query runs a single query against an already-built
// index and prints the ranked document identifiers.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mnohosten/yomu/pkg/analyze"
	"github.com/mnohosten/yomu/pkg/engine"
	"github.com/mnohosten/yomu/pkg/query"
)

const version = "1.0.0"

func main() {
	storeDir := flag.String("store-dir", "./data", "Directory the term index and term dictionary were written to")
	identifier := flag.String("identifier", "default", "Index identifier")
	boostTitle := flag.Uint("boost-title", 3, "Title-field score boost")
	boostContent := flag.Uint("boost-content", 1, "Content-field score boost")
	start := flag.Int("start", 0, "First result to return (0-indexed, best-scoring first)")
	end := flag.Int("end", 10, "One past the last result to return")
	fuzzy := flag.Bool("fuzzy", true, "Resolve query terms via Levenshtein automaton instead of exact FST lookup")
	intersect := flag.Bool("intersect", false, "Require every resolved query term to match (default: union)")
	showVersion := flag.Bool("version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "yomu-query v%s\n\n", version)
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <query terms...>\n\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("yomu-query v%s\n", version)
		return
	}

	sentence := strings.Join(flag.Args(), " ")
	if sentence == "" {
		fmt.Fprintln(os.Stderr, "Error: no query terms given")
		flag.Usage()
		os.Exit(1)
	}

	cfg := query.Config{
		StoreDir:     *storeDir,
		Identifier:   *identifier,
		BoostTitle:   uint8(*boostTitle),
		BoostContent: uint8(*boostContent),
	}

	q, err := query.Open(cfg, analyze.New())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open index: %v\n", err)
		os.Exit(1)
	}
	defer q.Close()

	factory := query.DefaultAutomatonFactory
	if !*fuzzy {
		factory = query.ExactAutomatonFactory
	}
	mode := query.ModeUnion
	if *intersect {
		mode = query.ModeIntersect
	}

	ids, err := q.Search(sentence, factory, mode, engine.Range{Start: *start, End: *end})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: query failed: %v\n", err)
		os.Exit(1)
	}

	if len(ids) == 0 {
		fmt.Println("(no matches)")
		return
	}
	for _, id := range ids {
		fmt.Println(id)
	}
}
