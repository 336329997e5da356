package seed

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/shelfcheck/internal/model"
)

// Catalog is a named set of fixtures, loaded from a YAML file.
// Journeys reference catalogs by name so scenarios can share an
// additively-merged baseline dataset.
type Catalog struct {
	// Name identifies this catalog in logs and journey definitions.
	Name string `yaml:"name"`

	// Description explains what the catalog sets up.
	Description string `yaml:"description"`

	// Products are the fixtures to ensure exist.
	Products []model.Fixture `yaml:"products"`
}

// LoadCatalog reads and parses a catalog YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or fails schema validation.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog parses catalog YAML bytes.
//
// Validation runs in two passes: the raw document is checked against the
// CUE schema (catches wrong categories, negative stock, missing fields
// with real positions), then decoded strictly into the typed Catalog
// (catches unknown fields, preserves exact price literals).
func ParseCatalog(data []byte) (*Catalog, error) {
	// Schema validation on the raw document
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := validateCatalog(raw); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	// Strict typed decode (catches typos like "product:" vs "products:")
	var catalog Catalog
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&catalog); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return &catalog, nil
}
