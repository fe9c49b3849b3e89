package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/gorewood/docgen/internal/kv"
)

// SavedTemplates returns the saved templates in the order they were created.
func (s *Store) SavedTemplates(ctx context.Context) ([]SavedTemplate, error) {
	var saved []SavedTemplate
	ok, err := s.load(ctx, KeySavedTemplates, &saved)
	if err != nil {
		return nil, err
	}
	if !ok || saved == nil {
		return []SavedTemplate{}, nil
	}
	return saved, nil
}

func (s *Store) writeSaved(ctx context.Context, saved []SavedTemplate) error {
	return kv.SetJSON(ctx, s.kv, KeySavedTemplates, saved)
}

// Find returns the saved template whose ID equals ref, or failing that the
// first one whose name equals ref.
func (s *Store) Find(ctx context.Context, ref string) (SavedTemplate, error) {
	saved, err := s.SavedTemplates(ctx)
	if err != nil {
		return SavedTemplate{}, err
	}
	idx := indexOf(saved, ref)
	if idx < 0 {
		return SavedTemplate{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, ref)
	}
	return saved[idx], nil
}

// indexOf matches by ID first, then by name.
func indexOf(saved []SavedTemplate, ref string) int {
	for i, t := range saved {
		if t.ID == ref {
			return i
		}
	}
	for i, t := range saved {
		if t.Name == ref {
			return i
		}
	}
	return -1
}

// SaveAs stores content as a new named template. When replace is true an
// existing template with the same name is overwritten in place instead of
// returning ErrNameTaken.
func (s *Store) SaveAs(ctx context.Context, name, content string, replace bool) (SavedTemplate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return SavedTemplate{}, ErrEmptyName
	}

	saved, err := s.SavedTemplates(ctx)
	if err != nil {
		return SavedTemplate{}, err
	}

	now := s.now()
	for i, t := range saved {
		if t.Name != name {
			continue
		}
		if !replace {
			return SavedTemplate{}, fmt.Errorf("%w: %s", ErrNameTaken, name)
		}
		saved[i].Content = content
		saved[i].UpdatedAt = now
		if err := s.writeSaved(ctx, saved); err != nil {
			return SavedTemplate{}, err
		}
		return saved[i], nil
	}

	tmpl := SavedTemplate{
		ID:        s.newID(),
		Name:      name,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	saved = append(saved, tmpl)
	if err := s.writeSaved(ctx, saved); err != nil {
		return SavedTemplate{}, err
	}
	return tmpl, nil
}

// Save overwrites the content of an existing saved template.
func (s *Store) Save(ctx context.Context, ref, content string) (SavedTemplate, error) {
	saved, err := s.SavedTemplates(ctx)
	if err != nil {
		return SavedTemplate{}, err
	}
	idx := indexOf(saved, ref)
	if idx < 0 {
		return SavedTemplate{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, ref)
	}
	saved[idx].Content = content
	saved[idx].UpdatedAt = s.now()
	if err := s.writeSaved(ctx, saved); err != nil {
		return SavedTemplate{}, err
	}
	return saved[idx], nil
}

// Load makes a saved template the current template and returns it.
func (s *Store) Load(ctx context.Context, ref string) (SavedTemplate, error) {
	tmpl, err := s.Find(ctx, ref)
	if err != nil {
		return SavedTemplate{}, err
	}
	if err := s.SetTemplate(ctx, tmpl.Content); err != nil {
		return SavedTemplate{}, err
	}
	return tmpl, nil
}

// Delete removes a saved template. The current template is not changed.
func (s *Store) Delete(ctx context.Context, ref string) (SavedTemplate, error) {
	saved, err := s.SavedTemplates(ctx)
	if err != nil {
		return SavedTemplate{}, err
	}
	idx := indexOf(saved, ref)
	if idx < 0 {
		return SavedTemplate{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, ref)
	}
	removed := saved[idx]
	saved = append(saved[:idx], saved[idx+1:]...)
	if err := s.writeSaved(ctx, saved); err != nil {
		return SavedTemplate{}, err
	}
	return removed, nil
}
