// Command yomu-build reads a newline-delimited JSON document stream
// and builds a term index and term dictionary from it.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mnohosten/yomu/pkg/analyze"
	"github.com/mnohosten/yomu/pkg/build"
	"github.com/mnohosten/yomu/pkg/engine"
)

const version = "1.0.0"

// inputDoc mirrors engine.Document for JSON decoding; the input
// format is not part of the core (the spec treats a persisted
// document store as out of scope), so this shape is this command's
// own convention, not a wire format other tools must match.
type inputDoc struct {
	ID      uint32 `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

func main() {
	storeDir := flag.String("store-dir", "./data", "Directory the term index and term dictionary are written to")
	identifier := flag.String("identifier", "default", "Index identifier; names the two output files")
	input := flag.String("input", "", "Path to a newline-delimited JSON document file (id, title, content); defaults to stdin")
	showVersion := flag.Bool("version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "yomu-build v%s\n\n", version)
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s -store-dir ./data -identifier articles -input docs.ndjson\n", filepath.Base(os.Args[0]))
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("yomu-build v%s\n", version)
		return
	}

	if err := os.MkdirAll(*storeDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create store directory: %v\n", err)
		os.Exit(1)
	}

	src := os.Stdin
	if *input != "" {
		f, err := os.Open(*input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to open input: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		src = f
	}

	b := build.New(build.Config{StoreDir: *storeDir, Identifier: *identifier})
	a := analyze.New()

	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	count := 0
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var doc inputDoc
		if err := json.Unmarshal(line, &doc); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to parse document %d: %v\n", count+1, err)
			os.Exit(1)
		}
		if err := b.AddDocument(engine.Document{ID: doc.ID, Title: doc.Title, Content: doc.Content}, a, a); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to add document %d: %v\n", doc.ID, err)
			os.Exit(1)
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to read input: %v\n", err)
		os.Exit(1)
	}

	if err := b.Finish(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to finish build: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Indexed %d documents into %s/%s{%s,%s}\n", count, *storeDir, *identifier, ".term_index", ".term_dict")
}
