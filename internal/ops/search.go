package ops

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/museboxapp/musebox/internal/errors"
	"github.com/museboxapp/musebox/internal/note"
	"github.com/museboxapp/musebox/internal/store"
)

// MaxSnippetRunes bounds the match context returned per result.
const MaxSnippetRunes = 120

// SearchNotesInput contains parameters for the SearchNotes operation.
type SearchNotesInput struct {
	Query  string // required
	Limit  int    // default: 20, max: 100
	Offset int    // default: 0
}

// SearchResultItem wraps a note with a match snippet.
type SearchResultItem struct {
	note.Note
	Snippet string `json:"snippet"` // match context, plain text
}

// SearchNotesOutput contains the result of the SearchNotes operation.
type SearchNotesOutput struct {
	Items      []SearchResultItem `json:"items"`
	Pagination Pagination         `json:"pagination"`
	Query      string             `json:"query"`
}

// SearchNotes performs a substring search over note content, newest first.
// Matching is case-sensitive for non-ASCII text, which is what substring
// search means for CJK content; ASCII letters match case-insensitively.
func SearchNotes(ctx context.Context, st *store.Store, input SearchNotesInput) (*SearchNotesOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, errors.NewInvalidRequest("query is required")
	}
	if utf8.RuneCountInString(query) > MaxQueryChars {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("query exceeds maximum length of %d characters", MaxQueryChars))
	}

	// Apply limit defaults and bounds
	limit := clampLimit(input.Limit, DefaultSearchLimit, MaxSearchLimit)

	// Ensure offset is non-negative
	offset := max(input.Offset, 0)

	notes, total, err := st.SearchNotes(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}

	items := make([]SearchResultItem, len(notes))
	for i, n := range notes {
		items[i] = SearchResultItem{
			Note:    n,
			Snippet: snippetAround(n.Content, query, MaxSnippetRunes),
		}
	}

	hasMore := offset+len(items) < total

	return &SearchNotesOutput{
		Items: items,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: hasMore,
			Total:   total,
		},
		Query: query,
	}, nil
}

// snippetAround returns up to maxRunes of context centered on the first
// occurrence of query, never splitting a multi-byte rune. Ellipses mark
// truncated ends.
func snippetAround(content, query string, maxRunes int) string {
	runes := []rune(content)
	if len(runes) <= maxRunes {
		return content
	}

	// Locate the first match, case-insensitively for ASCII.
	idx := strings.Index(strings.ToLower(content), strings.ToLower(query))
	if idx < 0 {
		idx = 0
	}
	matchRune := utf8.RuneCountInString(content[:idx])

	start := matchRune - maxRunes/2
	if start < 0 {
		start = 0
	}
	end := start + maxRunes
	if end > len(runes) {
		end = len(runes)
		start = end - maxRunes
	}

	snippet := string(runes[start:end])
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(runes) {
		snippet += "..."
	}
	return snippet
}
