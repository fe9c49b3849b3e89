package store

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorewood/docgen/internal/kv"
	"github.com/gorewood/docgen/internal/library"
)

var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// newTestStore returns a Store on a memory backend with deterministic IDs.
func newTestStore(t *testing.T, opts ...Option) (*Store, *kv.MemoryStore) {
	t.Helper()
	backend := kv.NewMemoryStore()
	seq := 0
	base := []Option{
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
	}
	return New(backend, append(base, opts...)...), backend
}

func TestTemplate_DefaultsToBuiltin(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	text, err := s.Template(ctx)
	require.NoError(t, err)
	assert.Equal(t, library.Default(), text)

	require.NoError(t, s.SetTemplate(ctx, "Olá {Nome}"))
	text, err = s.Template(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Olá {Nome}", text)

	require.NoError(t, s.SetTemplate(ctx, ""))
	text, err = s.Template(ctx)
	require.NoError(t, err)
	assert.Empty(t, text, "an explicitly empty template is kept")

	require.NoError(t, s.ResetTemplate(ctx))
	text, err = s.Template(ctx)
	require.NoError(t, err)
	assert.Equal(t, library.Default(), text)
}

func TestValues_SurviveTemplateEdits(t *testing.T) {
	s, _ := newTestStore(t, WithDefaultTemplate(""))
	ctx := context.Background()

	values, err := s.Values(ctx)
	require.NoError(t, err)
	assert.NotNil(t, values)
	assert.Empty(t, values)

	require.NoError(t, s.SetTemplate(ctx, "Hello {Name}, CPF {CPF}."))
	require.NoError(t, s.SetValue(ctx, "Name", "Ana"))
	require.NoError(t, s.SetValue(ctx, "Name", "Bia"))
	require.NoError(t, s.SetTemplate(ctx, "Bye {Name}"))

	doc, err := s.Resolve(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bye Bia", doc.Resolved)
	assert.Equal(t, map[string]string{"Name": "Bia"}, doc.Values)

	require.NoError(t, s.SetTemplate(ctx, "Hello {Name}, CPF {CPF}."))
	doc, err = s.Resolve(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Hello Bia, CPF [CPF].", doc.Resolved)
	assert.Equal(t, []string{"Name", "CPF"}, doc.Variables)
	assert.Equal(t, []string{"CPF"}, doc.Missing)
}

func TestSetValues_UnsetAndClear(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetValues(ctx, map[string]string{"A": "1", "B": "2"}))
	require.NoError(t, s.SetValue(ctx, "C", ""))
	require.NoError(t, s.UnsetValue(ctx, "A"))
	require.NoError(t, s.UnsetValue(ctx, "never-set"))

	values, err := s.Values(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"B": "2", "C": ""}, values)

	require.NoError(t, s.ClearValues(ctx))
	values, err = s.Values(ctx)
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestCorruptStateFallsBackAndLogs(t *testing.T) {
	var logs bytes.Buffer
	s, backend := newTestStore(t, WithLogger(zerolog.New(&logs)), WithDefaultTemplate("default"))
	ctx := context.Background()

	require.NoError(t, backend.Set(ctx, KeyTemplate, []byte("not json")))
	require.NoError(t, backend.Set(ctx, KeyValues, []byte("[1,2")))
	require.NoError(t, backend.Set(ctx, KeySavedTemplates, []byte("{}")))

	text, err := s.Template(ctx)
	require.NoError(t, err)
	assert.Equal(t, "default", text)

	values, err := s.Values(ctx)
	require.NoError(t, err)
	assert.Empty(t, values)

	saved, err := s.SavedTemplates(ctx)
	require.NoError(t, err)
	assert.Empty(t, saved)

	assert.Contains(t, logs.String(), "ignoring unreadable stored value")
	assert.Contains(t, logs.String(), KeyTemplate)

	// Writing repairs the value.
	require.NoError(t, s.SetValue(ctx, "X", "1"))
	values, err = s.Values(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"X": "1"}, values)
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument("{A}{A}{B}", nil)
	assert.Equal(t, []string{"A", "B"}, doc.Variables)
	assert.Equal(t, []string{"A", "B"}, doc.Missing)
	assert.Equal(t, "[A][A][B]", doc.Resolved)
	assert.NotNil(t, doc.Values)
}
