package learning

import (
	"strings"

	"github.com/homecare-ojt/ltcsim/internal/domain"
)

// AllCategories selects every category in a library search
const AllCategories = "전체"

// LibraryFilter narrows a library search. Empty fields match everything.
type LibraryFilter struct {
	Query    string
	Category string
	Type     domain.DocumentType
}

// SearchLibrary returns the documents matching every part of the filter, in
// library order. The query matches case-insensitively against the title,
// the description or any tag.
func SearchLibrary(docs []domain.LibraryDocument, f LibraryFilter) []domain.LibraryDocument {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	var out []domain.LibraryDocument
	for _, d := range docs {
		if !matchesCategory(d.Category, f.Category) {
			continue
		}
		if f.Type != "" && d.Type != f.Type {
			continue
		}
		if query != "" && !matchesQuery(d, query) {
			continue
		}
		out = append(out, d)
	}
	return out
}

func matchesCategory(category, want string) bool {
	switch strings.TrimSpace(want) {
	case "", AllCategories, "all":
		return true
	}
	return category == strings.TrimSpace(want)
}

func matchesQuery(d domain.LibraryDocument, query string) bool {
	if strings.Contains(strings.ToLower(d.Title), query) ||
		strings.Contains(strings.ToLower(d.Description), query) {
		return true
	}
	for _, tag := range d.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
