// Package ingest turns raw filing content into a paginated model.Filing.
// Two shapes are accepted: extracted text with form-feed page breaks (the
// pdftotext convention) and HTML filings, whose visible text is chunked
// into pseudo-pages so extraction heuristics still have page provenance.
package ingest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sentinel-india/sentinel/internal/model"
	"golang.org/x/net/html"
)

// ErrEmptyFiling is returned when the input carries no text at all
var ErrEmptyFiling = errors.New("filing contains no text")

// DefaultPageChars is the pseudo-page size for unpaginated input
const DefaultPageChars = 3000

// LoadFile reads a filing from disk, choosing the parser by extension and
// content sniffing.
func LoadFile(path string, pageChars int) (*model.Filing, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read filing: %w", err)
	}

	name := filepath.Base(path)
	if isHTML(path, raw) {
		return FromHTML(name, string(raw), pageChars)
	}
	return FromText(name, string(raw), pageChars)
}

// FromText builds a filing from extracted text. Form feeds mark page
// boundaries; without them the text is chunked into pseudo-pages.
func FromText(name, text string, pageChars int) (*model.Filing, error) {
	if pageChars <= 0 {
		pageChars = DefaultPageChars
	}

	var pages []string
	if strings.ContainsRune(text, '\f') {
		pages = strings.Split(text, "\f")
	} else {
		pages = chunk(text, pageChars)
	}

	filing := &model.Filing{Source: name}
	for i, p := range pages {
		filing.Pages = append(filing.Pages, model.Page{Number: i + 1, Text: p})
	}
	if filing.IsEmpty() {
		return nil, ErrEmptyFiling
	}
	return filing, nil
}

// FromHTML builds a filing from an HTML document, extracting visible text
// and chunking it into pseudo-pages.
func FromHTML(name, htmlContent string, pageChars int) (*model.Filing, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}
	return FromText(name, visibleText(doc), pageChars)
}

// visibleText walks the HTML tree collecting text nodes, skipping
// script/style/noscript/iframe content.
func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return buf.String()
}

// chunk splits text into pieces of at most size characters, breaking on
// whitespace where possible so words stay intact.
func chunk(text string, size int) []string {
	var chunks []string
	for len(text) > size {
		cut := size
		if idx := strings.LastIndexAny(text[:size], " \t\n"); idx > size/2 {
			cut = idx
		}
		chunks = append(chunks, text[:cut])
		text = text[cut:]
	}
	if strings.TrimSpace(text) != "" || len(chunks) == 0 {
		chunks = append(chunks, text)
	}
	return chunks
}

// isHTML decides between the HTML and text parsers
func isHTML(path string, raw []byte) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
		return true
	}
	head := strings.ToLower(string(raw[:min(len(raw), 512)]))
	return strings.Contains(head, "<html") || strings.Contains(head, "<!doctype html")
}
