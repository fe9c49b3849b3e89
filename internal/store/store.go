// Package store holds the form-letter session state: the current template,
// the variable values and the list of saved named templates.
//
// State lives in a kv.Store under three fixed keys. Values are kept by
// variable name, independent of the template, so they survive template edits.
package store

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gorewood/docgen/internal/kv"
	"github.com/gorewood/docgen/internal/library"
	"github.com/gorewood/docgen/internal/variable"
)

// Persistence keys.
const (
	KeyTemplate       = "doc-gen-template"
	KeyValues         = "doc-gen-values"
	KeySavedTemplates = "doc-gen-saved-templates"
)

var (
	// ErrTemplateNotFound is returned when no saved template matches an ID or name.
	ErrTemplateNotFound = errors.New("saved template not found")

	// ErrEmptyName is returned when saving a template without a name.
	ErrEmptyName = errors.New("template name is required")

	// ErrNameTaken is returned by SaveAs when another saved template has the name.
	ErrNameTaken = errors.New("a saved template with that name already exists")
)

// SavedTemplate is a named template kept alongside the current one.
type SavedTemplate struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Document is the resolved view of the current session.
type Document struct {
	Name      string            `json:"name,omitempty"`
	Template  string            `json:"template"`
	Values    map[string]string `json:"values"`
	Variables []string          `json:"variables"`
	Missing   []string          `json:"missing"`
	Resolved  string            `json:"resolved"`
}

// NewDocument resolves template against values with the variable engine.
func NewDocument(template string, values map[string]string) *Document {
	if values == nil {
		values = map[string]string{}
	}
	return &Document{
		Template:  template,
		Values:    values,
		Variables: variable.Extract(template),
		Missing:   variable.Missing(template, values),
		Resolved:  variable.Substitute(template, values),
	}
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used to report unreadable stored state.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides how saved template IDs are minted.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithDefaultTemplate sets the text returned when no template has been stored.
func WithDefaultTemplate(text string) Option {
	return func(s *Store) { s.defaultTemplate = text }
}

// Store reads and writes session state through a kv.Store.
type Store struct {
	kv              kv.Store
	logger          zerolog.Logger
	now             func() time.Time
	newID           func() string
	defaultTemplate string
}

// New creates a Store backed by backend.
func New(backend kv.Store, opts ...Option) *Store {
	s := &Store{
		kv:              backend,
		logger:          zerolog.Nop(),
		now:             func() time.Time { return time.Now().UTC() },
		newID:           uuid.NewString,
		defaultTemplate: library.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close closes the underlying backend.
func (s *Store) Close() error {
	return s.kv.Close()
}

// load decodes key into v. A missing or undecodable value leaves v untouched
// and reports false; decode failures are logged, not returned.
func (s *Store) load(ctx context.Context, key string, v any) (bool, error) {
	err := kv.GetJSON(ctx, s.kv, key, v)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, kv.ErrNotFound):
		return false, nil
	case errors.Is(err, kv.ErrCorrupt):
		s.logger.Error().Err(err).Str("key", key).Msg("ignoring unreadable stored value")
		return false, nil
	default:
		return false, fmt.Errorf("loading %s: %w", key, err)
	}
}

// --- Current template ---

// Template returns the current template text, or the default template when
// none has been stored.
func (s *Store) Template(ctx context.Context) (string, error) {
	var text string
	ok, err := s.load(ctx, KeyTemplate, &text)
	if err != nil {
		return "", err
	}
	if !ok {
		return s.defaultTemplate, nil
	}
	return text, nil
}

// SetTemplate replaces the current template text. Values are left untouched.
func (s *Store) SetTemplate(ctx context.Context, text string) error {
	return kv.SetJSON(ctx, s.kv, KeyTemplate, text)
}

// ResetTemplate drops the stored template so the default is used again.
func (s *Store) ResetTemplate(ctx context.Context) error {
	return s.kv.Delete(ctx, KeyTemplate)
}

// --- Values ---

// Values returns the value mapping. It is never nil.
func (s *Store) Values(ctx context.Context) (map[string]string, error) {
	var values map[string]string
	ok, err := s.load(ctx, KeyValues, &values)
	if err != nil {
		return nil, err
	}
	if !ok || values == nil {
		return map[string]string{}, nil
	}
	return values, nil
}

// SetValue sets one variable. An empty value is stored as empty and renders
// as the unfilled marker.
func (s *Store) SetValue(ctx context.Context, name, value string) error {
	return s.SetValues(ctx, map[string]string{name: value})
}

// SetValues merges updates into the stored mapping; later keys win.
func (s *Store) SetValues(ctx context.Context, updates map[string]string) error {
	values, err := s.Values(ctx)
	if err != nil {
		return err
	}
	maps.Copy(values, updates)
	return kv.SetJSON(ctx, s.kv, KeyValues, values)
}

// UnsetValue removes one variable from the mapping.
func (s *Store) UnsetValue(ctx context.Context, name string) error {
	values, err := s.Values(ctx)
	if err != nil {
		return err
	}
	delete(values, name)
	return kv.SetJSON(ctx, s.kv, KeyValues, values)
}

// ClearValues removes every stored value.
func (s *Store) ClearValues(ctx context.Context) error {
	return kv.SetJSON(ctx, s.kv, KeyValues, map[string]string{})
}

// Resolve reads the current template and values and resolves them.
func (s *Store) Resolve(ctx context.Context) (*Document, error) {
	text, err := s.Template(ctx)
	if err != nil {
		return nil, err
	}
	values, err := s.Values(ctx)
	if err != nil {
		return nil, err
	}
	return NewDocument(text, values), nil
}
