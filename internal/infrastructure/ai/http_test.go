package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTTPGeneratorGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != "sqlcoder" || req.Prompt != "the prompt" || req.Stream {
			t.Errorf("unexpected payload %+v", req)
		}
		_ = json.NewEncoder(w).Encode(generateResponse{Model: req.Model, Response: "  SELECT 1;\n", Done: true})
	}))
	defer srv.Close()

	gen := NewHTTPGenerator(srv.URL+"/", "sqlcoder", srv.Client())
	out, err := gen.Generate(context.Background(), "the prompt")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if out != "  SELECT 1;\n" {
		t.Fatalf("Generate() = %q", out)
	}
}

func TestHTTPGeneratorStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model 'x' not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewHTTPGenerator(srv.URL, "x", srv.Client()).Generate(context.Background(), "p")
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("error = %v", err)
	}
}

func TestHTTPGeneratorBodyError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":"out of memory"}`))
	}))
	defer srv.Close()

	_, err := NewHTTPGenerator(srv.URL, "x", srv.Client()).Generate(context.Background(), "p")
	if err == nil || !strings.Contains(err.Error(), "out of memory") {
		t.Fatalf("error = %v", err)
	}
}

func TestHTTPGeneratorUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	if _, err := NewHTTPGenerator(url, "x", nil).Generate(context.Background(), "p"); err == nil {
		t.Fatal("expected connection error")
	}
}
