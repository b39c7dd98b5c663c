// Package rules loads the YAML file that configures page processing:
// which selectors the enhancement passes use and which cleanup steps run.
//
// Example:
//
//	enhance:
//	  example_selector: '[data-group="example"]'
//	  highlight_selector: 'span.font_xlarge a, .color_orange'
//	cleanup:
//	  remove_citations: true
//	  unwrap_font: true
package rules

import (
	"errors"
	"fmt"
	"os"

	"github.com/andybalholm/cascadia"
	"github.com/goccy/go-yaml"

	"sskj/internal/cleanup"
	"sskj/internal/enhance"
)

// MaxFileSize limits the size of a rules file.
const MaxFileSize = 1 << 20

var (
	ErrEmptyRules    = errors.New("rules: empty file")
	ErrInputTooLarge = errors.New("rules: input exceeds maximum size")
	ErrBadSelector   = errors.New("rules: invalid selector")
)

// File is the parsed rules file.
type File struct {
	Enhance enhance.Rules   `yaml:"enhance"`
	Cleanup cleanup.Options `yaml:"cleanup"`
}

// Default returns the rules used when no file is given: both passes with
// default selectors, no cleanup.
func Default() File {
	return File{Enhance: enhance.Rules{}.WithDefaults()}
}

// Load reads, parses and validates a rules file.
func Load(path string) (File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read rules file: %w", err)
	}
	return Parse(b)
}

// Parse decodes a rules document. Unknown keys are rejected so that a typo
// does not silently disable a step.
func Parse(data []byte) (File, error) {
	if len(data) == 0 {
		return File{}, ErrEmptyRules
	}
	if len(data) > MaxFileSize {
		return File{}, fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxFileSize)
	}

	var f File
	if err := yaml.UnmarshalWithOptions(data, &f, yaml.Strict()); err != nil {
		return File{}, fmt.Errorf("parse rules yaml: %w", err)
	}

	f.Enhance = f.Enhance.WithDefaults()
	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

// Validate compiles every selector once so that a broken selector is reported
// up front instead of silently matching nothing.
func (f File) Validate() error {
	r := f.Enhance.WithDefaults()
	for name, sel := range map[string]string{
		"example_selector":   r.ExampleSelector,
		"highlight_selector": r.HighlightSelector,
	} {
		if _, err := cascadia.Compile(sel); err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrBadSelector, name, sel, err)
		}
	}
	return nil
}
