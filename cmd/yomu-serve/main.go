// Command yomu-serve opens an already-built index and serves search
// queries over HTTP until interrupted.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mnohosten/yomu/pkg/analyze"
	"github.com/mnohosten/yomu/pkg/httpapi"
	"github.com/mnohosten/yomu/pkg/query"
)

func main() {
	storeDir := flag.String("store-dir", "./data", "Directory the term index and term dictionary were written to")
	identifier := flag.String("identifier", "default", "Index identifier")
	addr := flag.String("addr", ":8080", "HTTP listen address")
	boostTitle := flag.Uint("boost-title", 3, "Title-field score boost")
	boostContent := flag.Uint("boost-content", 1, "Content-field score boost")
	flag.Parse()

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

	srv := httpapi.New(httpapi.Config{Addr: *addr}, q)

	go func() {
		fmt.Printf("yomu-serve listening on %s (index %s/%s)\n", *addr, *storeDir, *identifier)
		if err := srv.ListenAndServe(); err != nil && err.Error() != "http: Server closed" {
			fmt.Fprintf(os.Stderr, "Error: server stopped: %v\n", err)
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	fmt.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: shutdown failed: %v\n", err)
	}
}
