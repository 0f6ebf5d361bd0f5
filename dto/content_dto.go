package dto

import "encoding/json"

// UpdateSectionDTO replaces one content section. Version is the section
// version the editor loaded; omit it to overwrite unconditionally.
type UpdateSectionDTO struct {
	Data    json.RawMessage `json:"data"`
	Version *int64          `json:"version,omitempty"`
}

type UpdateSectionResponse struct {
	Message string `json:"message"`
	Section string `json:"section"`
	Version int64  `json:"version"`
}
