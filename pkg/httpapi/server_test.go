package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mnohosten/yomu/pkg/analyze"
	"github.com/mnohosten/yomu/pkg/build"
	"github.com/mnohosten/yomu/pkg/engine"
	"github.com/mnohosten/yomu/pkg/query"
)

func setupTestServer(t *testing.T) *Server {
	t.Helper()

	storeDir := t.TempDir()
	a := analyze.New()
	b := build.New(build.Config{StoreDir: storeDir, Identifier: "http"})

	docs := []engine.Document{
		{ID: 1, Title: "cat", Content: "a cat sat"},
		{ID: 2, Title: "dog", Content: "a dog ran"},
	}
	for _, d := range docs {
		if err := b.AddDocument(d, a, a); err != nil {
			t.Fatalf("AddDocument: %v", err)
		}
	}
	if err := b.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	q, err := query.Open(query.Config{StoreDir: storeDir, Identifier: "http", BoostTitle: 3, BoostContent: 1}, a)
	if err != nil {
		t.Fatalf("query.Open: %v", err)
	}
	t.Cleanup(func() { q.Close() })

	return New(Config{Addr: ":0"}, q)
}

func TestHandleSearchReturnsResults(t *testing.T) {
	srv := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/search?q=cat", nil)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp searchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0] != 1 {
		t.Fatalf("results = %v, want [1]", resp.Results)
	}
}

func TestHandleSearchRequiresQuery(t *testing.T) {
	srv := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/search", nil)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	srv := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/_health", nil)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
