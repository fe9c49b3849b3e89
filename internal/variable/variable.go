// Package variable extracts and substitutes {Name} placeholder tokens in
// form-letter templates.
//
// A token is an open brace, one or more characters that are neither '{' nor
// '}', and a close brace. There is no escape sequence and no nesting: in
// "{a{b}" only "{b}" is a token. Both operations are total; a placeholder with
// no value renders as its name in square brackets so the author can see what
// still needs input.
package variable

import (
	"regexp"
	"strings"
)

var tokenPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// Token is one recognized placeholder occurrence.
// Start and End are byte offsets of the opening brace and one past the
// closing brace.
type Token struct {
	Name  string
	Start int
	End   int
}

// Tokens returns every recognized token in template order, duplicates included.
func Tokens(template string) []Token {
	matches := tokenPattern.FindAllStringSubmatchIndex(template, -1)
	tokens := make([]Token, 0, len(matches))
	for _, m := range matches {
		tokens = append(tokens, Token{
			Name:  template[m[2]:m[3]],
			Start: m[0],
			End:   m[1],
		})
	}
	return tokens
}

// Extract returns the distinct variable names in template, in order of first
// occurrence. The result is never nil.
func Extract(template string) []string {
	seen := make(map[string]struct{})
	names := []string{}
	for _, tok := range Tokens(template) {
		if _, ok := seen[tok.Name]; ok {
			continue
		}
		seen[tok.Name] = struct{}{}
		names = append(names, tok.Name)
	}
	return names
}

// Substitute replaces every token with its value from values. Missing or
// empty values render as "[name]". Text outside tokens is copied unchanged.
func Substitute(template string, values map[string]string) string {
	tokens := Tokens(template)
	if len(tokens) == 0 {
		return template
	}

	var b strings.Builder
	b.Grow(len(template))
	last := 0
	for _, tok := range tokens {
		b.WriteString(template[last:tok.Start])
		b.WriteString(Value(tok.Name, values))
		last = tok.End
	}
	b.WriteString(template[last:])
	return b.String()
}

// Value returns the rendered text for a single variable name.
func Value(name string, values map[string]string) string {
	if v := values[name]; v != "" {
		return v
	}
	return Unfilled(name)
}

// Unfilled returns the marker shown in place of a variable with no value.
func Unfilled(name string) string {
	return "[" + name + "]"
}

// Missing returns the variables of template that have no non-empty value,
// in first-occurrence order.
func Missing(template string, values map[string]string) []string {
	missing := []string{}
	for _, name := range Extract(template) {
		if values[name] == "" {
			missing = append(missing, name)
		}
	}
	return missing
}
