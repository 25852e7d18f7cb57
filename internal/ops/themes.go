package ops

import (
	"context"

	"github.com/museboxapp/musebox/internal/note"
	"github.com/museboxapp/musebox/internal/store"
)

// ThemeInfo is a theme together with its live note count. The embedded
// NoteCount is the cached counter; ActualNotes is recounted on each call.
type ThemeInfo struct {
	note.Theme
	ActualNotes int `json:"actual_notes"`
}

// ListThemesOutput contains the result of the ListThemes operation.
type ListThemesOutput struct {
	Items []ThemeInfo `json:"items"`
	Total int         `json:"total"`
}

// ListThemes retrieves all themes in creation order with live note counts.
func ListThemes(ctx context.Context, st *store.Store) (*ListThemesOutput, error) {
	themes, err := st.ListThemes(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := st.CountNotesByTheme(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]ThemeInfo, len(themes))
	for i, th := range themes {
		items[i] = ThemeInfo{
			Theme:       th,
			ActualNotes: counts[th.Name],
		}
	}

	return &ListThemesOutput{
		Items: items,
		Total: len(items),
	}, nil
}
