package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorewood/docgen/internal/output"
)

func TestVars(t *testing.T) {
	sess := newTestSession(t)

	r := execute(t, sess, "", "vars")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "VARIABLE")
	assert.Contains(t, r.stdout, "Nome")
	assert.Contains(t, r.stdout, "missing")
	assert.Contains(t, r.stderr, "2 variables, 2 unfilled")

	var out varsResult
	decode(t, execute(t, sess, "", "vars", "--json"), &out)
	assert.Equal(t, []variableRow{{Name: "Nome"}, {Name: "CPF"}}, out.Variables)
	assert.Equal(t, []string{"Nome", "CPF"}, out.Missing)
}

func TestSet(t *testing.T) {
	sess := newTestSession(t)

	r := execute(t, sess, "", "set", "Nome", "Ana Souza", "CPF", "123")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "Set Nome, CPF")

	var out varsResult
	decode(t, execute(t, sess, "", "vars", "--json"), &out)
	assert.Equal(t, []variableRow{
		{Name: "Nome", Value: "Ana Souza", Filled: true},
		{Name: "CPF", Value: "123", Filled: true},
	}, out.Variables)
	assert.Empty(t, out.Missing)
}

func TestSet_WarnsOnUnusedName(t *testing.T) {
	sess := newTestSession(t)

	r := execute(t, sess, "", "set", "Cidade", "Recife")
	require.NoError(t, r.err)
	assert.Contains(t, r.stderr, "not used by the current template: Cidade")

	var out map[string]any
	decode(t, execute(t, sess, "", "--json", "set", "Nome", "Ana"), &out)
	assert.Equal(t, []any{"Nome"}, out["set"])
	assert.Equal(t, []any{}, out["unused"])
}

func TestSet_OddArgs(t *testing.T) {
	r := execute(t, newTestSession(t), "", "set", "Nome")
	require.Error(t, r.err)
	assert.Equal(t, output.ExitUserError, r.code())
	assert.Contains(t, r.stderr, "NAME VALUE pairs")
}

func TestUnsetAndValues(t *testing.T) {
	sess := newTestSession(t)
	require.NoError(t, execute(t, sess, "", "set", "Nome", "Ana", "Extra", "x").err)

	var values map[string]string
	decode(t, execute(t, sess, "", "values", "--json"), &values)
	assert.Equal(t, map[string]string{"Nome": "Ana", "Extra": "x"}, values)

	require.NoError(t, execute(t, sess, "", "unset", "Extra").err)
	r := execute(t, sess, "", "values")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "Nome")
	assert.NotContains(t, r.stdout, "Extra")

	require.NoError(t, execute(t, sess, "", "values", "--clear").err)
	r = execute(t, sess, "", "values")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "No values stored.")
}

func TestFill_RequiresTerminal(t *testing.T) {
	r := execute(t, newTestSession(t), "", "fill")
	require.Error(t, r.err)
	assert.Equal(t, output.ExitUserError, r.code())
	assert.Contains(t, r.stderr, "interactive terminal")
}

func TestSet_FromFile(t *testing.T) {
	sess := newTestSession(t)
	path := filepath.Join(t.TempDir(), "cliente.env")
	require.NoError(t, os.WriteFile(path, []byte("# cliente\nNome=Ana\nCPF=111\n"), 0o600))

	r := execute(t, sess, "", "set", "--from", path, "CPF", "222")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "Set Nome, CPF")

	var values map[string]string
	decode(t, execute(t, sess, "", "values", "--json"), &values)
	assert.Equal(t, map[string]string{"Nome": "Ana", "CPF": "222"}, values)

	require.NoError(t, execute(t, sess, "Nome = Beatriz\n", "set", "--from", "-").err)
	decode(t, execute(t, sess, "", "values", "--json"), &values)
	assert.Equal(t, "Beatriz", values["Nome"])

	r = execute(t, sess, "sem igual\n", "set", "--from", "-")
	assert.Equal(t, output.ExitUserError, r.code())
	assert.Contains(t, r.stderr, "line 1")
}

func TestValues_EnvRoundTrip(t *testing.T) {
	sess := newTestSession(t)
	require.NoError(t, execute(t, sess, "", "set", "Nome", "Ana Souza", "CPF", " 123 ").err)

	r := execute(t, sess, "", "values", "--env")
	require.NoError(t, r.err)
	assert.Equal(t, "CPF=\" 123 \"\nNome=Ana Souza\n", r.stdout)

	other := newTestSession(t)
	require.NoError(t, execute(t, other, r.stdout, "set", "--from", "-").err)

	var values map[string]string
	decode(t, execute(t, other, "", "values", "--json"), &values)
	assert.Equal(t, map[string]string{"Nome": "Ana Souza", "CPF": " 123 "}, values)
}

func TestValues_EnvRejectsExportPrefix(t *testing.T) {
	sess := newTestSession(t)
	require.NoError(t, execute(t, sess, "", "set", "export Foo", "x").err)

	r := execute(t, sess, "", "values", "--env")
	require.Error(t, r.err)
	assert.Equal(t, output.ExitUserError, r.code())
	assert.Contains(t, r.stderr, "export Foo")
}
