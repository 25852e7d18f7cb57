package note

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ContentState classifies the outcome of a content check.
type ContentState int

const (
	ContentOK ContentState = iota
	ContentEmpty
	ContentTooLong
)

// ContentCheck is the outcome of validating note content.
type ContentCheck struct {
	State    ContentState
	Trimmed  string // what gets stored and counted
	Chars    int
	MaxChars int
}

// OK reports whether the content passed validation.
func (c *ContentCheck) OK() bool {
	return c.State == ContentOK
}

// Reason returns a human-readable description for a failed check.
func (c *ContentCheck) Reason() string {
	switch c.State {
	case ContentEmpty:
		return "content is empty"
	case ContentTooLong:
		return fmt.Sprintf("content exceeds %d characters (got %d)", c.MaxChars, c.Chars)
	default:
		return ""
	}
}

// CheckContent validates note content against the maximum rune length.
// Content of exactly maxChars is valid.
func CheckContent(content string, maxChars int) *ContentCheck {
	trimmed := strings.TrimSpace(content)
	check := &ContentCheck{
		Trimmed:  trimmed,
		Chars:    utf8.RuneCountInString(trimmed),
		MaxChars: maxChars,
	}

	switch {
	case check.Chars == 0:
		check.State = ContentEmpty
	case maxChars > 0 && check.Chars > maxChars:
		check.State = ContentTooLong
	}

	return check
}

// NameState classifies the outcome of a theme name check.
type NameState int

const (
	NameOK NameState = iota
	NameEmpty
	NameTooLong
)

// Reason returns a human-readable description for a failed name check.
func (s NameState) Reason() string {
	switch s {
	case NameEmpty:
		return "theme name is empty"
	case NameTooLong:
		return fmt.Sprintf("theme name exceeds %d characters", MaxThemeNameChars)
	default:
		return ""
	}
}

// CheckThemeName validates a theme name and returns the trimmed form
// alongside its state.
func CheckThemeName(name string) (string, NameState) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", NameEmpty
	}
	if utf8.RuneCountInString(trimmed) > MaxThemeNameChars {
		return trimmed, NameTooLong
	}
	return trimmed, NameOK
}

// ValidColorHex reports whether s is a 6-hex-digit color without a leading '#'.
func ValidColorHex(s string) bool {
	if len(s) != 6 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
