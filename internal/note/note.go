package note

// Defaults applied when a theme carries no usable icon or color.
const (
	DefaultIcon  = "📝"
	DefaultColor = "8E8E93"
)

// MaxThemeNameChars is the maximum theme name length in runes, after trimming.
const MaxThemeNameChars = 20

// Theme is a user-defined label grouping notes.
type Theme struct {
	// ID is a ULID that uniquely identifies this theme
	ID string `json:"id"`

	// Name is the display name, trimmed, unique across the store
	Name string `json:"name"`

	// Icon is a short glyph shown next to the name
	Icon string `json:"icon"`

	// Color is a 6-hex-digit color without a leading '#'
	Color string `json:"color"`

	// NoteCount is a cached counter of notes under this theme.
	// Advisory only; the integrity check recounts it.
	NoteCount int `json:"note_count"`

	// CreatedAt is the Unix timestamp when the theme was created
	CreatedAt int64 `json:"created_at"`
}

// Note is a single user-authored text entry.
type Note struct {
	// ID is a ULID that uniquely identifies this note
	ID string `json:"id"`

	// Content is the note text, trimmed
	Content string `json:"content"`

	// ThemeName references the owning theme by name
	ThemeName string `json:"theme_name"`

	// WordCount is recomputed from Content, never taken from input
	WordCount int `json:"word_count"`

	// CreatedAt is the Unix timestamp when the note was created
	CreatedAt int64 `json:"created_at"`
}
