package prompts

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

//go:embed rewrite.md
var Rewrite string

//go:embed detect.md
var Detect string

//go:embed catalog.toml
var catalogTOML string

// Catalog holds per-option prompt hints, keyed by option id.
type Catalog struct {
	Tones       map[string]string `toml:"tones"`
	Strengths   map[string]string `toml:"strengths"`
	Purposes    map[string]string `toml:"purposes"`
	Readability map[string]string `toml:"readability"`
}

var (
	catalogOnce sync.Once
	catalog     *Catalog
	catalogErr  error
)

// ParseCatalog decodes a catalog from TOML.
func ParseCatalog(data string) (*Catalog, error) {
	var c Catalog
	if _, err := toml.Decode(data, &c); err != nil {
		return nil, fmt.Errorf("parse prompt catalog: %w", err)
	}
	return &c, nil
}

// Load returns the embedded catalog, parsed once.
func Load() (*Catalog, error) {
	catalogOnce.Do(func() {
		catalog, catalogErr = ParseCatalog(catalogTOML)
	})
	return catalog, catalogErr
}

func lookup(m map[string]string, id, fallback string) string {
	if v, ok := m[id]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

// Persona returns the tone hint for id, or fallback when absent.
func (c *Catalog) Persona(id, fallback string) string {
	return lookup(c.Tones, id, fallback)
}

// Directive returns the strength hint for id, or fallback when absent.
func (c *Catalog) Directive(id, fallback string) string {
	return lookup(c.Strengths, id, fallback)
}

func (c *Catalog) PurposeHint(id, fallback string) string {
	return lookup(c.Purposes, id, fallback)
}

func (c *Catalog) ReadabilityHint(id, fallback string) string {
	return lookup(c.Readability, id, fallback)
}

// RewriteSystem returns the rewrite system prompt.
func RewriteSystem() string {
	return strings.TrimSpace(Rewrite)
}

// DetectSystem returns the detector instruction.
func DetectSystem() string {
	return strings.TrimSpace(Detect)
}
