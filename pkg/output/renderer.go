package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/arthur-debert/projman/pkg/logging"
	"github.com/arthur-debert/projman/pkg/output/styles"
	"github.com/arthur-debert/projman/pkg/projects"
	"github.com/arthur-debert/projman/pkg/templates"
	"github.com/arthur-debert/projman/pkg/ui"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

// ProjectView is the serialised form of a project
type ProjectView struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
}

// TemplateView is the serialised form of a template
type TemplateView struct {
	Name            string   `json:"name" yaml:"name"`
	Description     string   `json:"description" yaml:"description"`
	SourcePath      string   `json:"sourcePath" yaml:"sourcePath"`
	DateCreated     string   `json:"dateCreated" yaml:"dateCreated"`
	ExcludePatterns []string `json:"excludePatterns" yaml:"excludePatterns"`
	// SourceMissing is set when the source folder no longer exists
	SourceMissing bool `json:"sourceMissing,omitempty" yaml:"sourceMissing,omitempty"`
}

// Setting is one configuration key and its value
type Setting struct {
	Key   string      `json:"key" yaml:"key"`
	Value interface{} `json:"value" yaml:"value"`
}

// Renderer writes registries and settings in one format
type Renderer struct {
	w      io.Writer
	format ui.Format
	styles styles.Registry
	// Width wraps markdown descriptions; 0 keeps glamour's default
	Width int
}

// NewRenderer creates a Renderer. format must already be resolved;
// FormatAuto is treated as text.
func NewRenderer(w io.Writer, format ui.Format) *Renderer {
	if format == ui.FormatAuto {
		format = ui.FormatText
	}

	lr := lipgloss.NewRenderer(w)
	if format != ui.FormatTerminal {
		lr.SetColorProfile(termenv.Ascii)
	}

	logger := logging.GetLogger("output")
	logger.Debug().
		Str("format", format.String()).
		Str("colorProfile", fmt.Sprintf("%v", lr.ColorProfile())).
		Msg("Creating renderer")

	return &Renderer{
		w:      w,
		format: format,
		styles: styles.Default().Build(lr),
	}
}

func (r *Renderer) structured(v interface{}) (bool, error) {
	switch r.format {
	case ui.FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return true, fmt.Errorf("failed to encode json: %w", err)
		}
		_, err = fmt.Fprintln(r.w, string(data))
		return true, err
	case ui.FormatYAML:
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, fmt.Errorf("failed to encode yaml: %w", err)
		}
		return true, enc.Close()
	default:
		return false, nil
	}
}

func (r *Renderer) style(name string) lipgloss.Style {
	return r.styles.Get(name)
}

// Projects renders the project list
func (r *Renderer) Projects(list []projects.Project) error {
	views := make([]ProjectView, len(list))
	for i, p := range list {
		views[i] = ProjectView{Name: p.Name, Path: p.Path}
	}
	if ok, err := r.structured(views); ok {
		return err
	}

	if len(list) == 0 {
		_, err := fmt.Fprintln(r.w, r.style("Empty").Render("No projects added yet."))
		return err
	}

	width := 0
	for _, p := range list {
		width = max(width, lipgloss.Width(p.Name))
	}

	var b strings.Builder
	b.WriteString(r.style("Heading").Render("Projects"))
	b.WriteString("\n")
	for _, p := range list {
		fmt.Fprintf(&b, "  %s  %s\n", r.style("Name").Render(pad(p.Name, width)), r.style("Path").Render(p.Path))
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

// Templates renders the template list. missing reports templates whose
// source folder has vanished; it may be nil.
func (r *Renderer) Templates(list []templates.Template, missing func(templates.Template) bool) error {
	views := make([]TemplateView, len(list))
	for i, t := range list {
		views[i] = templateView(t, missing)
	}
	if ok, err := r.structured(views); ok {
		return err
	}

	if len(list) == 0 {
		_, err := fmt.Fprintln(r.w, r.style("Empty").Render("No templates saved yet."))
		return err
	}

	width := 0
	for _, t := range list {
		width = max(width, lipgloss.Width(t.Name))
	}

	var b strings.Builder
	b.WriteString(r.style("Heading").Render("Templates"))
	b.WriteString("\n")
	for _, v := range views {
		summary := v.Description
		if summary == "" {
			summary = v.SourcePath
		}
		if i := strings.IndexByte(summary, '\n'); i >= 0 {
			summary = summary[:i]
		}
		fmt.Fprintf(&b, "  %s  %s", r.style("Name").Render(pad(v.Name, width)), summary)
		if v.SourceMissing {
			fmt.Fprintf(&b, " %s", r.style("Stale").Render("(source missing)"))
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

// Template renders one template in detail. The description is treated
// as markdown.
func (r *Renderer) Template(t templates.Template, missing func(templates.Template) bool) error {
	view := templateView(t, missing)
	if ok, err := r.structured(view); ok {
		return err
	}

	var b strings.Builder
	b.WriteString(r.style("Heading").Render(t.Name))
	b.WriteString("\n\n")

	source := r.style("Path").Render(t.SourcePath)
	if view.SourceMissing {
		source += " " + r.style("Stale").Render("(missing)")
	}
	fmt.Fprintf(&b, "  %s %s\n", r.style("Key").Render(pad("Source:", 9)), source)

	created := t.DateCreated
	if ts := t.Created(); !ts.IsZero() {
		created = ts.Local().Format("2006-01-02 15:04")
	}
	fmt.Fprintf(&b, "  %s %s\n", r.style("Key").Render(pad("Created:", 9)), r.style("Date").Render(created))

	patterns := make([]string, len(t.ExcludePatterns))
	for i, p := range t.ExcludePatterns {
		patterns[i] = r.style("Pattern").Render(p)
	}
	if len(patterns) == 0 {
		patterns = []string{r.style("Empty").Render("none")}
	}
	fmt.Fprintf(&b, "  %s %s\n", r.style("Key").Render(pad("Excludes:", 9)), strings.Join(patterns, ", "))

	if strings.TrimSpace(t.Description) != "" {
		b.WriteString("\n")
		b.WriteString(r.markdown(t.Description))
	}

	_, err := io.WriteString(r.w, strings.TrimRight(b.String(), "\n")+"\n")
	return err
}

// Settings renders every setting, sorted by key
func (r *Renderer) Settings(values map[string]interface{}) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	list := make([]Setting, len(keys))
	for i, k := range keys {
		list[i] = Setting{Key: k, Value: values[k]}
	}
	if ok, err := r.structured(list); ok {
		return err
	}

	width := 0
	for _, k := range keys {
		width = max(width, len(k))
	}
	var b strings.Builder
	for _, s := range list {
		fmt.Fprintf(&b, "%s  %s\n", r.style("Key").Render(pad(s.Key, width)), r.style("Value").Render(FormatValue(s.Value)))
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

// Value renders a single setting value
func (r *Renderer) Value(key string, value interface{}) error {
	if ok, err := r.structured(Setting{Key: key, Value: value}); ok {
		return err
	}
	_, err := fmt.Fprintln(r.w, FormatValue(value))
	return err
}

// FormatValue renders a setting value as plain text; lists are comma
// separated.
func FormatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []string:
		return strings.Join(val, ",")
	case []interface{}:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(val)
	}
}

func (r *Renderer) markdown(content string) string {
	options := []glamour.TermRendererOption{}
	if r.format == ui.FormatTerminal {
		options = append(options, glamour.WithAutoStyle())
	} else {
		options = append(options, glamour.WithStandardStyle("notty"))
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		// Fallback to plain text on error
		return content + "\n"
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content + "\n"
	}
	return rendered
}

func templateView(t templates.Template, missing func(templates.Template) bool) TemplateView {
	patterns := t.ExcludePatterns
	if patterns == nil {
		patterns = []string{}
	}
	return TemplateView{
		Name:            t.Name,
		Description:     t.Description,
		SourcePath:      t.SourcePath,
		DateCreated:     t.DateCreated,
		ExcludePatterns: patterns,
		SourceMissing:   missing != nil && missing(t),
	}
}

func pad(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
