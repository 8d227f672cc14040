package ingest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sentinel-india/sentinel/internal/model"
)

func fetcherConfig() model.HTTPConfig {
	cfg := model.DefaultConfig().HTTP
	cfg.RatePerHost = 100 // keep tests fast
	return cfg
}

func TestFetch_HTMLFiling(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.Write([]byte("User-agent: *\nAllow: /\n"))
			return
		}
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><body><h2>Related Party Transactions</h2><p>Rs. 50 Lakhs</p></body></html>"))
	}))
	defer server.Close()

	f := NewFetcher(fetcherConfig(), 0)
	filing, err := f.Fetch(context.Background(), server.URL+"/annual-report")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if !strings.Contains(filing.Pages[0].Text, "Related Party Transactions") {
		t.Errorf("Expected parsed HTML text, got %q", filing.Pages[0].Text)
	}
	if filing.Source != server.URL+"/annual-report" {
		t.Errorf("Source must be the fetched URL, got %q", filing.Source)
	}
	if gotUA == "" {
		t.Error("Expected the configured User-Agent on the request")
	}
}

func TestFetch_PlainTextFiling(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("Page one\fPage two"))
	}))
	defer server.Close()

	f := NewFetcher(fetcherConfig(), 0)
	filing, err := f.Fetch(context.Background(), server.URL+"/filing.txt")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if filing.PageCount() != 2 {
		t.Errorf("Expected form-feed paging, got %d pages", filing.PageCount())
	}
}

func TestFetch_RobotsDisallowed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
			return
		}
		t.Errorf("Disallowed path was fetched: %s", r.URL.Path)
	}))
	defer server.Close()

	f := NewFetcher(fetcherConfig(), 0)
	_, err := f.Fetch(context.Background(), server.URL+"/private/filing.html")
	if !errors.Is(err, ErrRobotsDisallowed) {
		t.Fatalf("Expected ErrRobotsDisallowed, got %v", err)
	}
}

func TestFetch_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "gone", http.StatusGone)
	}))
	defer server.Close()

	f := NewFetcher(fetcherConfig(), 0)
	if _, err := f.Fetch(context.Background(), server.URL+"/missing"); err == nil {
		t.Fatal("Expected error for non-2xx status")
	}
}

func TestFetch_BodyLimitApplies(t *testing.T) {
	big := strings.Repeat("related party disclosures ", 4096)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(big))
	}))
	defer server.Close()

	cfg := fetcherConfig()
	cfg.MaxBodyBytes = 1024

	f := NewFetcher(cfg, 0)
	filing, err := f.Fetch(context.Background(), server.URL+"/filing.txt")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	total := 0
	for _, p := range filing.Pages {
		total += len(p.Text)
	}
	if total > 1024 {
		t.Errorf("Body limit not applied: got %d chars", total)
	}
}
