package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFromText_FormFeedPaging(t *testing.T) {
	text := "Cover page\fDirectors' report\fRelated Party Transactions note"

	filing, err := FromText("annual.txt", text, 0)
	if err != nil {
		t.Fatalf("FromText failed: %v", err)
	}
	if len(filing.Pages) != 3 {
		t.Fatalf("Expected 3 pages, got %d", len(filing.Pages))
	}
	if filing.Pages[0].Number != 1 || filing.Pages[2].Number != 3 {
		t.Errorf("Page numbers must be 1-based and sequential: %+v", filing.Pages)
	}
	if filing.Pages[2].Text != "Related Party Transactions note" {
		t.Errorf("Unexpected page 3 text: %q", filing.Pages[2].Text)
	}
}

func TestFromText_ChunksUnpaginatedInput(t *testing.T) {
	words := strings.Repeat("disclosure ", 100) // ~1100 chars

	filing, err := FromText("note.txt", words, 300)
	if err != nil {
		t.Fatalf("FromText failed: %v", err)
	}
	if len(filing.Pages) < 3 {
		t.Fatalf("Expected chunking into multiple pseudo-pages, got %d", len(filing.Pages))
	}
	for _, p := range filing.Pages {
		if len(p.Text) > 300 {
			t.Errorf("Page %d exceeds the chunk size: %d chars", p.Number, len(p.Text))
		}
		// Breaking on whitespace keeps words intact
		for _, w := range strings.Fields(p.Text) {
			if w != "disclosure" {
				t.Errorf("Page %d split a word: %q", p.Number, w)
			}
		}
	}
}

func TestFromText_EmptyInput(t *testing.T) {
	if _, err := FromText("empty.txt", "", 0); !errors.Is(err, ErrEmptyFiling) {
		t.Errorf("Expected ErrEmptyFiling, got %v", err)
	}
	if _, err := FromText("blank.txt", "   \n \f \n ", 0); !errors.Is(err, ErrEmptyFiling) {
		t.Errorf("Expected ErrEmptyFiling for whitespace-only input, got %v", err)
	}
}

func TestFromHTML_SkipsScriptAndStyle(t *testing.T) {
	doc := `<!DOCTYPE html>
<html><head>
<style>body { color: red; }</style>
<script>var tracking = "XYZAB1234C";</script>
</head><body>
<h2>Related Party Transactions</h2>
<p>Loan to M/s ABC Pvt Ltd of Rs. 50 Lakhs.</p>
</body></html>`

	filing, err := FromHTML("filing.html", doc, 0)
	if err != nil {
		t.Fatalf("FromHTML failed: %v", err)
	}

	text := filing.Pages[0].Text
	if !strings.Contains(text, "Related Party Transactions") {
		t.Errorf("Visible heading missing from %q", text)
	}
	if !strings.Contains(text, "Rs. 50 Lakhs") {
		t.Errorf("Visible body text missing from %q", text)
	}
	if strings.Contains(text, "tracking") || strings.Contains(text, "color: red") {
		t.Errorf("Script/style content leaked into %q", text)
	}
}

func TestLoadFile_SniffsHTMLWithoutExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "filing.dat")
	content := "<!doctype html><html><body><p>Notes to Accounts</p></body></html>"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	filing, err := LoadFile(path, 0)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if !strings.Contains(filing.Pages[0].Text, "Notes to Accounts") {
		t.Errorf("Expected HTML parsing, got %q", filing.Pages[0].Text)
	}
	if strings.Contains(filing.Pages[0].Text, "<p>") {
		t.Errorf("Markup leaked into %q", filing.Pages[0].Text)
	}
}

func TestLoadFile_PlainText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "filing.txt")
	if err := os.WriteFile(path, []byte("Page one\fPage two"), 0o644); err != nil {
		t.Fatal(err)
	}

	filing, err := LoadFile(path, 0)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if len(filing.Pages) != 2 {
		t.Errorf("Expected 2 pages, got %d", len(filing.Pages))
	}
	if filing.Source != "filing.txt" {
		t.Errorf("Source must be the base name, got %q", filing.Source)
	}
}
