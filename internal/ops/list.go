package ops

import (
	"context"
	"strings"

	"github.com/museboxapp/musebox/internal/errors"
	"github.com/museboxapp/musebox/internal/note"
	"github.com/museboxapp/musebox/internal/store"
)

// ListNotesInput contains parameters for the ListNotes operation.
type ListNotesInput struct {
	Theme  string // optional filter; empty lists all notes
	Limit  int    // default: 20, max: 100
	Offset int    // default: 0
}

// ListNotesOutput contains the result of the ListNotes operation.
type ListNotesOutput struct {
	Items      []note.Note `json:"items"`
	Pagination Pagination  `json:"pagination"`
	Sort       string      `json:"sort"`
}

// ListNotes retrieves notes newest first, optionally filtered by theme.
func ListNotes(ctx context.Context, st *store.Store, input ListNotesInput) (*ListNotesOutput, error) {
	theme := strings.TrimSpace(input.Theme)
	if theme != "" {
		exists, err := st.ThemeExists(ctx, theme)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, errors.NewNotFound("theme", theme)
		}
	}

	// Apply limit defaults and bounds
	limit := clampLimit(input.Limit, DefaultListLimit, MaxListLimit)

	// Ensure offset is non-negative
	offset := max(input.Offset, 0)

	notes, total, err := st.ListNotes(ctx, theme, limit, offset)
	if err != nil {
		return nil, err
	}

	// Ensure we return an empty array rather than nil
	if notes == nil {
		notes = []note.Note{}
	}

	hasMore := offset+len(notes) < total

	return &ListNotesOutput{
		Items: notes,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: hasMore,
			Total:   total,
		},
		Sort: "created_at_desc",
	}, nil
}
