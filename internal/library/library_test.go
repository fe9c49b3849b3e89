package library

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorewood/docgen/internal/variable"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantName    string
		wantContent string
		wantErr     bool
	}{
		{
			name:        "with frontmatter",
			raw:         "---\nname: carta\ndescription: d\n---\nOlá {Nome}\n",
			wantName:    "carta",
			wantContent: "Olá {Nome}\n",
		},
		{
			name:        "no frontmatter keeps text verbatim",
			raw:         "  Olá {Nome}\n\n",
			wantContent: "  Olá {Nome}\n\n",
		},
		{
			name:        "crlf frontmatter",
			raw:         "---\r\nname: x\r\n---\r\nbody",
			wantName:    "x",
			wantContent: "body",
		},
		{
			name:        "frontmatter only",
			raw:         "---\nname: empty\n---",
			wantName:    "empty",
			wantContent: "",
		},
		{
			name:        "unterminated frontmatter is content",
			raw:         "---\nname: x\nbody",
			wantContent: "---\nname: x\nbody",
		},
		{
			name:        "unparsable block is content",
			raw:         "---\nname: [unclosed\n---\nbody",
			wantContent: "---\nname: [unclosed\n---\nbody",
		},
		{
			name:        "leading rule with placeholders is content",
			raw:         "---\nPrezado {Nome}: segue o contrato\n---\nAssinado, {Cidade}",
			wantContent: "---\nPrezado {Nome}: segue o contrato\n---\nAssinado, {Cidade}",
		},
		{
			name:        "leading rule with plain line is content",
			raw:         "---\nCarta para {Nome}\n---\nCorpo {X}",
			wantContent: "---\nCarta para {Nome}\n---\nCorpo {X}",
		},
		{
			name:        "mapping without metadata keys is content",
			raw:         "---\nCliente: {Nome}\n---\nCorpo",
			wantContent: "---\nCliente: {Nome}\n---\nCorpo",
		},
		{
			name:    "metadata with wrong type",
			raw:     "---\nversion: [1, 2]\n---\nbody",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := Parse(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, tmpl.Name)
			assert.Equal(t, tt.wantContent, tmpl.Content)
		})
	}
}

func TestBuiltin(t *testing.T) {
	tmpl, err := Builtin(DefaultName)
	require.NoError(t, err)
	assert.Equal(t, "contrato-servicos", tmpl.Name)
	assert.Equal(t, "built-in", tmpl.Source)
	assert.True(t, strings.HasPrefix(tmpl.Content, "# Contrato de Prestação de Serviços"))
	assert.Equal(t,
		[]string{"Nome_Cliente", "CPF_Cliente", "Endereco_Cliente", "Valor_Contrato", "Cidade", "Data"},
		variable.Extract(tmpl.Content))

	_, err = Builtin("nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestBuiltins(t *testing.T) {
	infos := Builtins()
	require.Len(t, infos, 2)
	assert.Equal(t, "carta-simples", infos[0].Name)
	assert.Equal(t, "contrato-servicos", infos[1].Name)
	for _, info := range infos {
		assert.NotEmpty(t, info.Description)
	}
}

func TestDefault(t *testing.T) {
	assert.Contains(t, Default(), "{Nome_Cliente}")
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "recibo.txt")
	require.NoError(t, os.WriteFile(plain, []byte("Recebi de {Pagador}"), 0o600))

	tmpl, err := ReadFile(plain)
	require.NoError(t, err)
	assert.Equal(t, "recibo", tmpl.Name)
	assert.Equal(t, plain, tmpl.Source)
	assert.Equal(t, "Recebi de {Pagador}", tmpl.Content)

	_, err = ReadFile(filepath.Join(dir, "missing.md"))
	require.Error(t, err)
}

func TestGlob(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	for _, name := range []string{
		filepath.Join(dir, "top.md"),
		filepath.Join(nested, "deep.txt"),
		filepath.Join(nested, "image.png"),
	} {
		require.NoError(t, os.WriteFile(name, []byte("x"), 0o600))
	}

	files, err := Glob(filepath.Join(dir, "**", "*"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{filepath.Join(dir, "top.md"), filepath.Join(nested, "deep.txt")}, files)

	files, err = Glob(filepath.Join(dir, "*.md"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "top.md")}, files)
}
