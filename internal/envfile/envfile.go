// Package envfile reads and writes variable values as KEY=VALUE lines.
//
// Names may contain spaces; everything before the first "=" is the name.
// Blank lines and lines starting with "#" are ignored. A value wrapped in
// matching single or double quotes has the quotes removed.
package envfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
)

// ErrUnrepresentable is returned by Write for a name or value that cannot
// be written as a single KEY=VALUE line.
var ErrUnrepresentable = errors.New("value cannot be written as a KEY=VALUE line")

// Entry is one assignment in file order.
type Entry struct {
	Name  string
	Value string
	Line  int
}

// Read parses the file at path.
func Read(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening values file %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck // read-only

	entries, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// Parse reads assignments from r. A non-comment line without "=" or with an
// empty name is an error.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, value, ok := parseLine(line)
		if !ok {
			return nil, fmt.Errorf("line %d: expected NAME=VALUE", lineNo)
		}
		entries = append(entries, Entry{Name: name, Value: value, Line: lineNo})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading values: %w", err)
	}
	return entries, nil
}

// Values folds entries into a mapping. Later entries win.
func Values(entries []Entry) map[string]string {
	values := make(map[string]string, len(entries))
	for _, e := range entries {
		values[e.Name] = e.Value
	}
	return values
}

// Names returns the entry names in first-occurrence order.
func Names(entries []Entry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !slices.Contains(names, e.Name) {
			names = append(names, e.Name)
		}
	}
	return names
}

// Write writes values sorted by name, quoting values that would not survive
// Parse unquoted.
func Write(w io.Writer, values map[string]string) error {
	bw := bufio.NewWriter(w)
	for _, name := range slices.Sorted(maps.Keys(values)) {
		value := values[name]
		if err := checkWritable(name, value); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(bw, "%s=%s\n", name, quote(value)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func parseLine(line string) (name, value string, ok bool) {
	name, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}

	name = strings.TrimSpace(strings.TrimPrefix(name, "export "))
	if name == "" {
		return "", "", false
	}

	value = strings.TrimSpace(value)
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '"' || first == '\'') && first == last {
			value = value[1 : len(value)-1]
		}
	}
	return name, value, true
}

func checkWritable(name, value string) error {
	switch {
	case strings.TrimSpace(name) != name, name == "":
		return fmt.Errorf("%w: name %q has surrounding spaces", ErrUnrepresentable, name)
	case strings.ContainsAny(name, "=\r\n"), strings.HasPrefix(name, "#"), strings.HasPrefix(name, "export "):
		return fmt.Errorf("%w: name %q", ErrUnrepresentable, name)
	case strings.ContainsAny(value, "\r\n"):
		return fmt.Errorf("%w: value of %q spans lines", ErrUnrepresentable, name)
	}
	return nil
}

func quote(value string) string {
	needsQuotes := value != strings.TrimSpace(value) ||
		strings.HasPrefix(value, `"`) || strings.HasPrefix(value, "'")
	if !needsQuotes {
		return value
	}
	if strings.HasSuffix(value, `"`) {
		return "'" + value + "'"
	}
	return `"` + value + `"`
}
