// Package prompts holds the prompt sets that drive the tool-calling modes.
package prompts

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Placeholder is replaced with the PDF path in the first prompt.
const Placeholder = "{pdf_path}"

var (
	// ErrUnrenderedPlaceholder is returned when the rendered first prompt still contains {pdf_path}.
	ErrUnrenderedPlaceholder = errors.New("pdf path placeholder was not replaced")
	// ErrUnknownSet is returned when a prompt set name is not in the catalog.
	ErrUnknownSet = errors.New("unknown prompt set")
)

//go:embed prompts.yaml
var builtinYAML []byte

// Set is one mode's prompts.
type Set struct {
	Name string `yaml:"name"`
	// System is sent as the system message on both model calls.
	System string `yaml:"system"`
	// First must contain {pdf_path}.
	First  string `yaml:"first"`
	Second string `yaml:"second"`
	// CheckOutline runs the outline checker on the final answer.
	CheckOutline bool `yaml:"check_outline"`
}

// Catalog is an ordered collection of prompt sets.
type Catalog struct {
	Sets []Set `yaml:"sets"`
}

// Builtin returns the embedded prompt catalog.
func Builtin() (*Catalog, error) {
	return Parse(builtinYAML)
}

// Load reads a catalog from path, or the built-in one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Builtin()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompts file: %w", err)
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("prompts file %s: %w", path, err)
	}
	return cat, nil
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to parse prompts: %w", err)
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Validate checks that every set is complete and names are unique.
func (c *Catalog) Validate() error {
	if len(c.Sets) == 0 {
		return errors.New("no prompt sets defined")
	}
	seen := make(map[string]bool, len(c.Sets))
	for i, s := range c.Sets {
		if s.Name == "" {
			return fmt.Errorf("prompt set %d: name is required", i)
		}
		if seen[s.Name] {
			return fmt.Errorf("prompt set %q defined twice", s.Name)
		}
		seen[s.Name] = true
		if strings.TrimSpace(s.System) == "" || strings.TrimSpace(s.Second) == "" {
			return fmt.Errorf("prompt set %q: system and second are required", s.Name)
		}
		if !strings.Contains(s.First, Placeholder) {
			return fmt.Errorf("prompt set %q: first prompt must contain %s", s.Name, Placeholder)
		}
	}
	return nil
}

// Get returns the set with the given name.
func (c *Catalog) Get(name string) (Set, error) {
	for _, s := range c.Sets {
		if s.Name == name {
			return s, nil
		}
	}
	return Set{}, fmt.Errorf("%w: %s", ErrUnknownSet, name)
}

// Names returns the set names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.Sets))
	for _, s := range c.Sets {
		names = append(names, s.Name)
	}
	return names
}

// RenderFirst substitutes pdfPath into the first prompt.
func (s Set) RenderFirst(pdfPath string) (string, error) {
	rendered := strings.ReplaceAll(s.First, Placeholder, pdfPath)
	if strings.Contains(rendered, Placeholder) {
		return "", ErrUnrenderedPlaceholder
	}
	return rendered, nil
}
