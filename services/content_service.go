package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/tamohar/foundationbackend/database"
	"github.com/tamohar/foundationbackend/models"
)

var sectionNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]{0,63}$`)

type ContentService struct {
	store  database.ContentStore
	seeder *Seeder
}

func NewContentService(store database.ContentStore, seeder *Seeder) *ContentService {
	return &ContentService{store: store, seeder: seeder}
}

// GetAll returns the whole content document, creating it on first use.
func (s *ContentService) GetAll(ctx context.Context) (*models.SiteContent, error) {
	if err := s.seeder.Ensure(ctx); err != nil {
		return nil, err
	}
	content, err := s.store.Get(ctx, s.seeder.ContentKey())
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	return content, nil
}

// GetSection returns the value of one section and its version.
func (s *ContentService) GetSection(ctx context.Context, name string) (any, int64, error) {
	content, err := s.GetAll(ctx)
	if err != nil {
		return nil, 0, err
	}
	value, ok := content.Sections[name]
	if !ok {
		return nil, 0, ErrSectionNotFound
	}
	return value, content.Version(name), nil
}

// PutSection replaces a section wholesale. When baseVersion is set it must
// match the stored version of the section (0 for a section that was never
// written through the API).
func (s *ContentService) PutSection(ctx context.Context, name string, data json.RawMessage, baseVersion *int64) (int64, error) {
	if err := ValidateSectionName(name); err != nil {
		return 0, err
	}
	value, err := decodeSectionValue(name, data)
	if err != nil {
		return 0, err
	}
	if baseVersion != nil && *baseVersion < 0 {
		return 0, fmt.Errorf("%w: version must not be negative", ErrInvalidSection)
	}

	if err := s.seeder.Ensure(ctx); err != nil {
		return 0, err
	}

	version, err := s.store.ReplaceSection(ctx, s.seeder.ContentKey(), name, value, baseVersion)
	switch {
	case errors.Is(err, database.ErrVersionConflict):
		return 0, ErrVersionConflict
	case err != nil:
		return 0, fmt.Errorf("save section %s: %w", name, err)
	}
	return version, nil
}

func ValidateSectionName(name string) error {
	if !sectionNamePattern.MatchString(name) {
		return fmt.Errorf("%w: name must start with a letter and contain only letters, digits, '-' or '_'", ErrInvalidSection)
	}
	if models.ReservedSectionNames[name] {
		return fmt.Errorf("%w: %q is reserved", ErrInvalidSection, name)
	}
	return nil
}

// decodeSectionValue parses the payload and checks the shape of known
// sections. Fields inside records are not inspected.
func decodeSectionValue(name string, data json.RawMessage) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: data is required", ErrInvalidSection)
	}

	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("%w: data is not valid JSON", ErrInvalidSection)
	}

	switch models.KnownSections[name] {
	case models.SectionObject:
		if _, ok := value.(map[string]any); !ok {
			return nil, fmt.Errorf("%w: %s must be an object", ErrInvalidSection, name)
		}
	case models.SectionList:
		items, ok := value.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s must be a list", ErrInvalidSection, name)
		}
		for i, item := range items {
			if _, ok := item.(map[string]any); !ok {
				return nil, fmt.Errorf("%w: %s[%d] must be an object", ErrInvalidSection, name, i)
			}
		}
	}
	return value, nil
}
