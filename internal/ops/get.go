package ops

import (
	"context"
	"strings"

	"github.com/museboxapp/musebox/internal/errors"
	"github.com/museboxapp/musebox/internal/note"
	"github.com/museboxapp/musebox/internal/store"
)

// GetNoteInput contains parameters for the GetNote operation.
type GetNoteInput struct {
	ID string // required
}

// GetNoteOutput contains the result of the GetNote operation.
type GetNoteOutput struct {
	note.Note
	Theme *note.Theme `json:"theme,omitempty"` // nil if the note is orphaned
}

// GetNote retrieves a single note by ID, along with its theme when the
// theme still exists.
func GetNote(ctx context.Context, st *store.Store, input GetNoteInput) (*GetNoteOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	n, err := st.GetNote(ctx, id)
	if err != nil {
		return nil, err
	}

	output := &GetNoteOutput{Note: *n}

	th, err := st.GetTheme(ctx, n.ThemeName)
	if err != nil {
		// An orphaned note is still returned; the integrity check is
		// the place that reports the dangling reference.
		if errors.Is(err, errors.ErrNotFound) {
			return output, nil
		}
		return nil, err
	}
	output.Theme = th

	return output, nil
}
