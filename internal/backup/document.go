package backup

import "encoding/json"

// SupportedVersion is the only backup schema version this build accepts.
const SupportedVersion = "1.0"

// Document is the parsed form of a backup file. Immutable once parsed;
// theme names and note theme references are trimmed during parsing,
// everything else is kept as written.
type Document struct {
	Version           string        `json:"version"`
	ExportTime        string        `json:"exportTime"`
	AppVersion        string        `json:"appVersion"`
	TotalInspirations int           `json:"totalInspirations"`
	TotalThemes       int           `json:"totalThemes"`
	Themes            []ThemeRecord `json:"themes"`
	Inspirations      []NoteRecord  `json:"inspirations"`
}

// ThemeRecord is one theme as it appears in a backup file.
type ThemeRecord struct {
	Name             string `json:"name"`
	Icon             string `json:"icon"`
	Color            string `json:"color"`
	InspirationCount int    `json:"inspirationCount"`
}

// NoteRecord is one note as it appears in a backup file.
// ID is opaque and ignored on import; the store assigns new identities.
// WordCount is informational and recomputed on import.
type NoteRecord struct {
	ID        json.RawMessage `json:"id,omitempty"`
	Content   string          `json:"content"`
	ThemeName string          `json:"themeName"`
	CreatedAt string          `json:"createdAt"`
	WordCount int             `json:"wordCount"`
}
