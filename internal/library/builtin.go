package library

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed templates/*.md
var builtinFS embed.FS

// Builtin loads a built-in template by name.
func Builtin(name string) (*Template, error) {
	path := "templates/" + name + ".md"
	data, err := builtinFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	tmpl, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing builtin template %s: %w", name, err)
	}
	if tmpl.Name == "" {
		tmpl.Name = name
	}
	tmpl.Source = "built-in"
	return tmpl, nil
}

// Default returns the content of the default built-in template.
func Default() string {
	tmpl, err := Builtin(DefaultName)
	if err != nil {
		return ""
	}
	return tmpl.Content
}

// Builtins returns info for all built-in templates, sorted by name.
func Builtins() []Info {
	dirEntries, err := builtinFS.ReadDir("templates")
	if err != nil {
		return nil
	}

	var infos []Info
	for _, entry := range dirEntries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		tmpl, err := Builtin(strings.TrimSuffix(entry.Name(), ".md"))
		if err != nil {
			continue
		}
		infos = append(infos, Info{
			Name:        tmpl.Name,
			Description: tmpl.Description,
			Source:      tmpl.Source,
		})
	}
	return infos
}
