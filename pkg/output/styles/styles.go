// Package styles defines the visual styling for projman's text output.
//
// Styles have semantic names (Name, Path, Pattern...) and adaptive colors
// that follow the terminal's light or dark background. Definitions live in
// styles.yaml, embedded at build time.
package styles

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var defaultStyles []byte

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold        bool   `yaml:"bold,omitempty"`
	Italic      bool   `yaml:"italic,omitempty"`
	Underline   bool   `yaml:"underline,omitempty"`
	Foreground  string `yaml:"foreground,omitempty"`
	Background  string `yaml:"background,omitempty"`
	Width       int    `yaml:"width,omitempty"`
	MarginLeft  int    `yaml:"marginLeft,omitempty"`
	PaddingLeft int    `yaml:"paddingLeft,omitempty"`
}

// Config represents the complete styles configuration
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// Registry maps semantic names to lipgloss styles
type Registry map[string]lipgloss.Style

// Default returns the embedded style configuration
func Default() *Config {
	cfg, err := Parse(defaultStyles)
	if err != nil {
		panic(fmt.Sprintf("embedded styles are invalid: %v", err))
	}
	return cfg
}

// Parse reads a YAML style configuration
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse styles: %w", err)
	}
	for name, def := range cfg.Styles {
		for _, ref := range []string{def.Foreground, def.Background} {
			if ref == "" {
				continue
			}
			if _, ok := cfg.Colors[ref]; !ok {
				return nil, fmt.Errorf("style %s references unknown color %q", name, ref)
			}
		}
	}
	return &cfg, nil
}

// Build creates the styles for renderer r. Styles bound to a renderer
// pick up its color profile, so output to a pipe carries no escapes.
func (c *Config) Build(r *lipgloss.Renderer) Registry {
	reg := make(Registry, len(c.Styles))
	for name, def := range c.Styles {
		reg[name] = c.buildStyle(r, def)
	}
	return reg
}

// buildStyle constructs a lipgloss style from a style definition
func (c *Config) buildStyle(r *lipgloss.Renderer, def StyleDef) lipgloss.Style {
	style := r.NewStyle()

	if def.Bold {
		style = style.Bold(true)
	}
	if def.Italic {
		style = style.Italic(true)
	}
	if def.Underline {
		style = style.Underline(true)
	}

	if def.Foreground != "" {
		color := c.Colors[def.Foreground]
		style = style.Foreground(lipgloss.AdaptiveColor{Light: color.Light, Dark: color.Dark})
	}
	if def.Background != "" {
		color := c.Colors[def.Background]
		style = style.Background(lipgloss.AdaptiveColor{Light: color.Light, Dark: color.Dark})
	}

	if def.Width > 0 {
		style = style.Width(def.Width)
	}
	if def.MarginLeft > 0 {
		style = style.MarginLeft(def.MarginLeft)
	}
	if def.PaddingLeft > 0 {
		style = style.PaddingLeft(def.PaddingLeft)
	}

	return style
}

// Get safely retrieves a style, falling back to an unstyled one
func (reg Registry) Get(name string) lipgloss.Style {
	if style, ok := reg[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}
