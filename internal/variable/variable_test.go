package variable

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     []string
	}{
		{name: "empty", template: "", want: []string{}},
		{name: "no tokens", template: "plain text [x] (y)", want: []string{}},
		{name: "two names", template: "Hello {Name}, CPF {CPF}.", want: []string{"Name", "CPF"}},
		{name: "duplicates keep first position", template: "{A}{A}{B}", want: []string{"A", "B"}},
		{name: "later duplicate does not move", template: "{B} {A} {B}", want: []string{"B", "A"}},
		{name: "unclosed", template: "{Unclosed", want: []string{}},
		{name: "empty braces", template: "{} and {x}", want: []string{"x"}},
		{name: "nested open starts over", template: "{a{b}", want: []string{"b"}},
		{name: "stray close", template: "a} {b}}", want: []string{"b"}},
		{name: "whitespace and punctuation kept", template: "{ first name }{R$-valor}", want: []string{" first name ", "R$-valor"}},
		{name: "multiline name", template: "{line\nbreak}", want: []string{"line\nbreak"}},
		{name: "unicode", template: "{Endereço_Cliente} {Cidade}", want: []string{"Endereço_Cliente", "Cidade"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.template)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_Idempotent(t *testing.T) {
	tmpl := "{Cidade}, {Data}\n**{Nome_Cliente}** {CPF_Cliente} {Nome_Cliente}"
	first := Extract(tmpl)
	second := Extract(tmpl)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"Cidade", "Data", "Nome_Cliente", "CPF_Cliente"}, first)
}

func TestTokens(t *testing.T) {
	tokens := Tokens("x {A} y {A}")
	require.Len(t, tokens, 2)
	assert.Equal(t, Token{Name: "A", Start: 2, End: 5}, tokens[0])
	assert.Equal(t, Token{Name: "A", Start: 8, End: 11}, tokens[1])
	assert.Empty(t, Tokens("{nothing"))
}

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name     string
		template string
		values   map[string]string
		want     string
	}{
		{name: "empty template", template: "", values: map[string]string{"a": "b"}, want: ""},
		{name: "partial fill", template: "Hello {Name}, CPF {CPF}.", values: map[string]string{"Name": "Ana"}, want: "Hello Ana, CPF [CPF]."},
		{name: "nil map", template: "{A} and {B}", values: nil, want: "[A] and [B]"},
		{name: "empty value falls back", template: "{A}", values: map[string]string{"A": ""}, want: "[A]"},
		{name: "whitespace value is kept", template: "[{A}]", values: map[string]string{"A": " "}, want: "[ ]"},
		{name: "repeated token", template: "{A}-{A}", values: map[string]string{"A": "x"}, want: "x-x"},
		{name: "malformed left alone", template: "{Unclosed and {} stay", values: map[string]string{"Unclosed": "x"}, want: "{Unclosed and {} stay"},
		{name: "nested open", template: "{a{b}", values: map[string]string{"b": "B"}, want: "{aB"},
		{name: "value with braces is not re-expanded", template: "{A}", values: map[string]string{"A": "{B}", "B": "no"}, want: "{B}"},
		{name: "text outside tokens byte for byte", template: "  tab\t{X}\r\n", values: map[string]string{"X": "1"}, want: "  tab\t1\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Substitute(tt.template, tt.values))
		})
	}
}

func TestSubstitute_EmptyValuesBracketsEveryToken(t *testing.T) {
	tmpl := "Eu, {Nome}, portador do CPF {CPF}, declaro que {Nome} ..."
	got := Substitute(tmpl, map[string]string{})

	want := tmpl
	for _, name := range Extract(tmpl) {
		want = strings.ReplaceAll(want, "{"+name+"}", "["+name+"]")
	}
	assert.Equal(t, want, got)
}

func TestSubstitute_ConsumesAllTokens(t *testing.T) {
	templates := []string{
		"Hello {Name}, CPF {CPF}.",
		"{A}{A}{B}",
		"# {Title}\n\n**{Who}** em {Where}",
		"no tokens at all",
	}
	values := map[string]string{"Name": "Ana", "A": "1", "Title": "Contrato"}

	for _, tmpl := range templates {
		resolved := Substitute(tmpl, values)
		assert.Empty(t, Extract(resolved), "template %q", tmpl)
		for name, v := range values {
			if v != "" {
				assert.NotContains(t, resolved, "{"+name+"}")
			}
		}
	}
}

func TestMissing(t *testing.T) {
	tmpl := "{A} {B} {C} {A}"
	assert.Equal(t, []string{"A", "C"}, Missing(tmpl, map[string]string{"B": "b", "C": ""}))
	assert.Equal(t, []string{}, Missing("", nil))
	assert.Empty(t, Missing(tmpl, map[string]string{"A": "1", "B": "2", "C": "3"}))
}

func TestUnfilled(t *testing.T) {
	assert.Equal(t, "[Nome]", Unfilled("Nome"))
	assert.Equal(t, "x", Value("Nome", map[string]string{"Nome": "x"}))
	assert.Equal(t, "[Nome]", Value("Nome", nil))
}
