package models

import (
	"encoding/json"
	"time"
)

const DefaultContentKey = "site_content"

type SectionKind int

const (
	SectionAny SectionKind = iota
	SectionObject
	SectionList
)

// KnownSections maps the section names the admin panel edits to the shape
// their payload must have. Names missing from the map accept any JSON value.
var KnownSections = map[string]SectionKind{
	"hero":         SectionObject,
	"about":        SectionObject,
	"donation":     SectionObject,
	"contact":      SectionObject,
	"stats":        SectionList,
	"programs":     SectionList,
	"team":         SectionList,
	"testimonials": SectionList,
	"events":       SectionList,
	"gallery":      SectionList,
	"blogs":        SectionList,
}

// ReservedSectionNames collide with document metadata in the flattened JSON view.
var ReservedSectionNames = map[string]bool{
	"_id":       true,
	"id":        true,
	"type":      true,
	"createdAt": true,
	"updatedAt": true,
	"versions":  true,
}

// SiteContent is one content document. Sections hold plain JSON values
// (map[string]any, []any, string, float64, bool, nil).
type SiteContent struct {
	Type      string           `json:"type"`
	Sections  map[string]any   `json:"-"`
	Versions  map[string]int64 `json:"versions"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// MarshalJSON flattens the sections next to the metadata, which is the shape
// the public site reads (content.hero, content.programs, ...).
func (s SiteContent) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Sections)+4)
	for name, value := range s.Sections {
		out[name] = value
	}
	versions := s.Versions
	if versions == nil {
		versions = map[string]int64{}
	}
	out["type"] = s.Type
	out["versions"] = versions
	out["createdAt"] = s.CreatedAt
	out["updatedAt"] = s.UpdatedAt
	return json.Marshal(out)
}

func (s *SiteContent) Version(section string) int64 {
	if s.Versions == nil {
		return 0
	}
	return s.Versions[section]
}
