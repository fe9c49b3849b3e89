package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorewood/docgen/internal/library"
	"github.com/gorewood/docgen/internal/output"
)

type savedResult struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestTemplate_SaveAsAndConflict(t *testing.T) {
	sess := newTestSession(t)

	var first savedResult
	decode(t, execute(t, sess, "", "--json", "template", "save-as", "declaracao"), &first)
	assert.Equal(t, "declaracao", first.Name)
	assert.NotEmpty(t, first.ID)

	r := execute(t, sess, "", "template", "save-as", "declaracao")
	require.Error(t, r.err)
	assert.Equal(t, output.ExitConflict, r.code())
	assert.Contains(t, r.stderr, "--force")

	require.NoError(t, execute(t, sess, "Novo {X}", "edit", "--file", "-").err)
	var second savedResult
	decode(t, execute(t, sess, "", "--json", "template", "save-as", "declaracao", "--force"), &second)
	assert.Equal(t, first.ID, second.ID)

	r = execute(t, sess, "", "template", "show", "declaracao")
	require.NoError(t, r.err)
	assert.Equal(t, "Novo {X}\n", r.stdout)
}

func TestTemplate_ListLoadDelete(t *testing.T) {
	sess := newTestSession(t)

	r := execute(t, sess, "", "template", "list")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "No saved templates.")

	require.NoError(t, execute(t, sess, "", "template", "save-as", "declaracao").err)
	require.NoError(t, execute(t, sess, "Carta {A} {B}", "edit", "--file", "-").err)
	require.NoError(t, execute(t, sess, "", "template", "save-as", "carta").err)

	var rows []templateRow
	decode(t, execute(t, sess, "", "--json", "template", "list"), &rows)
	require.Len(t, rows, 2)
	assert.Equal(t, "declaracao", rows[0].Name)
	assert.Equal(t, 2, rows[0].Variables)
	assert.Equal(t, "carta", rows[1].Name)

	r = execute(t, sess, "", "template", "load", "declaracao")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, `Loaded "declaracao"`)
	r = execute(t, sess, "", "template", "show")
	require.NoError(t, r.err)
	assert.Equal(t, testTemplate+"\n", r.stdout)

	r = execute(t, sess, "", "template", "delete", rows[1].ID)
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, `Deleted "carta"`)

	r = execute(t, sess, "", "template", "load", "carta")
	require.Error(t, r.err)
	assert.Equal(t, output.ExitUserError, r.code())
}

func TestTemplate_SaveOverwrites(t *testing.T) {
	sess := newTestSession(t)
	require.NoError(t, execute(t, sess, "", "template", "save-as", "declaracao").err)
	require.NoError(t, execute(t, sess, "Outro {Y}", "edit", "--file", "-").err)

	require.NoError(t, execute(t, sess, "", "template", "save", "declaracao").err)
	r := execute(t, sess, "", "template", "show", "declaracao")
	require.NoError(t, r.err)
	assert.Equal(t, "Outro {Y}\n", r.stdout)

	r = execute(t, sess, "", "template", "save", "nope")
	assert.Equal(t, output.ExitUserError, r.code())
}

func TestTemplate_Import(t *testing.T) {
	sess := newTestSession(t)
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "recibo.md"), []byte("Recibo {Valor}"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "aviso.txt"),
		[]byte("---\nname: aviso-previo\n---\nAviso {Data}"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "notes.json"), []byte("{}"), 0o600))

	var out struct {
		Imported []templateRow `json:"imported"`
		Skipped  []string      `json:"skipped"`
	}
	decode(t, execute(t, sess, "", "--json", "template", "import", filepath.Join(dir, "**", "*")), &out)
	names := []string{}
	for _, row := range out.Imported {
		names = append(names, row.Name)
	}
	assert.ElementsMatch(t, []string{"recibo", "aviso-previo"}, names)
	assert.Empty(t, out.Skipped)

	decode(t, execute(t, sess, "", "--json", "template", "import", filepath.Join(dir, "*.md")), &out)
	assert.Empty(t, out.Imported)
	assert.Equal(t, []string{"recibo"}, out.Skipped)

	r := execute(t, sess, "", "template", "import", filepath.Join(dir, "*.docx"))
	assert.Equal(t, output.ExitUserError, r.code())
}

func TestTemplate_ImportKeepsLeadingRule(t *testing.T) {
	sess := newTestSession(t)
	path := filepath.Join(t.TempDir(), "aviso.md")
	text := "---\nPrezado {Nome}\n---\nAssinado, {Cidade}"
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))

	require.NoError(t, execute(t, sess, "", "template", "import", path).err)

	r := execute(t, sess, "", "template", "show", "aviso")
	require.NoError(t, r.err)
	assert.Equal(t, text+"\n", r.stdout)
}

func TestTemplate_Builtin(t *testing.T) {
	sess := newTestSession(t)

	var infos []library.Info
	decode(t, execute(t, sess, "", "--json", "template", "builtin"), &infos)
	require.NotEmpty(t, infos)

	r := execute(t, sess, "", "template", "builtin", "carta-simples")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "Loaded built-in carta-simples")

	tmpl, err := library.Builtin("carta-simples")
	require.NoError(t, err)
	r = execute(t, sess, "", "template", "show")
	require.NoError(t, r.err)
	assert.Equal(t, tmpl.Content+"\n", r.stdout)

	r = execute(t, sess, "", "template", "builtin", "nao-existe")
	assert.Equal(t, output.ExitUserError, r.code())
}
