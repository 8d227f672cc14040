package model

import "strings"

// Page is a single page of a filing with its extracted text
type Page struct {
	Number int    `json:"number"` // 1-based page number
	Text   string `json:"text"`
}

// Filing represents a loaded financial filing, segmented into pages.
// It is immutable once loaded and lives only for one pipeline run.
type Filing struct {
	Source string `json:"source"` // File name or URL the filing came from
	Pages  []Page `json:"pages"`
}

// PageCount returns the number of pages in the filing
func (f *Filing) PageCount() int {
	return len(f.Pages)
}

// IsEmpty reports whether the filing contains any text at all
func (f *Filing) IsEmpty() bool {
	for _, p := range f.Pages {
		if strings.TrimSpace(p.Text) != "" {
			return false
		}
	}
	return true
}
