// Package library loads form-letter templates from the built-in set and from
// files on disk.
//
// Template files are Markdown (or plain text) with optional YAML frontmatter:
//
//	---
//	name: contrato-servicos
//	description: Contrato de prestação de serviços
//	version: 1
//	---
//	# Contrato ...
package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when a named built-in template does not exist.
var ErrNotFound = errors.New("template not found")

// DefaultName is the built-in used when no current template has been stored.
const DefaultName = "contrato-servicos"

// Template is a template body plus its frontmatter metadata.
type Template struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Version     int    `yaml:"version,omitempty"`

	// Content is the body after the frontmatter.
	Content string `yaml:"-"`

	// Source is "built-in" or the file path the template was read from.
	Source string `yaml:"-"`
}

// Info is template metadata for listings.
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Source      string `json:"source"`
}

// metadataKeys are the frontmatter fields; a leading "---" block without any
// of them is template text, not frontmatter.
var metadataKeys = []string{"name", "description", "version"}

// Parse parses raw template text with optional YAML frontmatter.
// A leading "---" block counts as frontmatter only when it is a YAML mapping
// with a name, description or version key. Anything else, such as a
// horizontal rule followed by text, is returned whole as the content.
func Parse(raw string) (*Template, error) {
	frontmatter, content := splitFrontmatter(raw)
	if frontmatter == "" || !isMetadata(frontmatter) {
		return &Template{Content: raw}, nil
	}

	var tmpl Template
	if err := yaml.Unmarshal([]byte(frontmatter), &tmpl); err != nil {
		return nil, fmt.Errorf("invalid frontmatter: %w", err)
	}
	tmpl.Content = content
	return &tmpl, nil
}

func isMetadata(block string) bool {
	var fields map[string]any
	if err := yaml.Unmarshal([]byte(block), &fields); err != nil {
		return false
	}
	for _, key := range metadataKeys {
		if _, ok := fields[key]; ok {
			return true
		}
	}
	return false
}

// splitFrontmatter separates YAML frontmatter from content.
// Frontmatter is delimited by --- lines at the very start of the text.
func splitFrontmatter(raw string) (frontmatter, content string) {
	normalized := strings.ReplaceAll(raw, "\r\n", "\n")
	if !strings.HasPrefix(normalized, "---\n") {
		return "", raw
	}

	rest := normalized[len("---\n"):]
	before, after, ok := strings.Cut(rest, "\n---\n")
	if !ok {
		before, ok = strings.CutSuffix(rest, "\n---")
		if !ok {
			return "", raw
		}
		after = ""
	}

	return strings.TrimSpace(before), after
}

// ReadFile loads a template from path. When the file carries no name in
// frontmatter the base file name without extension is used.
func ReadFile(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", path, err)
	}

	tmpl, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", path, err)
	}
	if tmpl.Name == "" {
		tmpl.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	tmpl.Source = path
	return tmpl, nil
}

// Glob expands pattern to template files. "**" matches across directories.
// Only .md and .txt files are returned.
func Glob(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("expanding glob pattern: %w", err)
	}

	var files []string
	for _, match := range matches {
		switch strings.ToLower(filepath.Ext(match)) {
		case ".md", ".txt", ".markdown":
		default:
			continue
		}
		if info, err := os.Stat(match); err != nil || info.IsDir() {
			continue
		}
		files = append(files, match)
	}
	return files, nil
}
