package config

import (
	_ "embed"
	"fmt"
	"os"
	"slices"

	"github.com/homecare-ojt/ltcsim/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed library/library.yaml
var defaultLibrary []byte

// LibraryParser loads the document library
type LibraryParser struct{}

// NewLibraryParser creates a new library parser
func NewLibraryParser() *LibraryParser {
	return &LibraryParser{}
}

// LoadDefault returns the library compiled into the binary
func (lp *LibraryParser) LoadDefault() (*domain.Library, error) {
	return lp.Parse(defaultLibrary)
}

// LoadFromFile loads a library from a YAML file
func (lp *LibraryParser) LoadFromFile(filename string) (*domain.Library, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return lp.Parse(data)
}

// Load returns the file's library when filename is set and the embedded one otherwise
func (lp *LibraryParser) Load(filename string) (*domain.Library, error) {
	if filename == "" {
		return lp.LoadDefault()
	}
	return lp.LoadFromFile(filename)
}

// Parse decodes and validates a library
func (lp *LibraryParser) Parse(data []byte) (*domain.Library, error) {
	var lib domain.Library
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := lp.ValidateLibrary(&lib); err != nil {
		return nil, fmt.Errorf("library validation failed: %w", err)
	}
	return &lib, nil
}

// ValidateLibrary checks document identity, types and categories. When the
// library lists categories, every document must use one of them.
func (lp *LibraryParser) ValidateLibrary(lib *domain.Library) error {
	seen := make(map[string]bool, len(lib.Documents))
	for i, d := range lib.Documents {
		if d.ID == "" {
			return fmt.Errorf("document %d: id is required", i)
		}
		if seen[d.ID] {
			return fmt.Errorf("document %s: duplicate id", d.ID)
		}
		seen[d.ID] = true
		if d.Title == "" {
			return fmt.Errorf("document %s: title is required", d.ID)
		}
		if !d.Type.Valid() {
			return fmt.Errorf("document %s: unknown type %q (form, guide, template)", d.ID, d.Type)
		}
		if d.Category == "" {
			return fmt.Errorf("document %s: category is required", d.ID)
		}
		if len(lib.Categories) > 0 && !slices.Contains(lib.Categories, d.Category) {
			return fmt.Errorf("document %s: category %q is not listed", d.ID, d.Category)
		}
	}
	return nil
}
