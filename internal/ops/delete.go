package ops

import (
	"context"
	"strings"

	"github.com/museboxapp/musebox/internal/errors"
	"github.com/museboxapp/musebox/internal/store"
)

// DeleteNoteInput contains parameters for the DeleteNote operation.
type DeleteNoteInput struct {
	ID string // required
}

// DeleteNoteOutput contains the result of the DeleteNote operation.
type DeleteNoteOutput struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// DeleteNote removes a note and decrements its theme's cached counter.
func DeleteNote(ctx context.Context, st *store.Store, input DeleteNoteInput) (*DeleteNoteOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	if err := st.DeleteNote(ctx, id); err != nil {
		return nil, err
	}

	return &DeleteNoteOutput{
		Deleted: true,
		ID:      id,
	}, nil
}
