package note

import (
	"strings"
	"unicode/utf8"
)

// WordCount returns the word count for note content. CJK text carries no
// word boundaries, so this counts runes of the trimmed content, which
// matches what users see as the character count.
func WordCount(content string) int {
	return utf8.RuneCountInString(strings.TrimSpace(content))
}

// CountChars returns the character count as runes (not bytes).
// This correctly handles multi-byte UTF-8 characters.
func CountChars(text string) int {
	return utf8.RuneCountInString(text)
}
