package ops

import (
	"context"
	"strings"

	"github.com/museboxapp/musebox/internal/config"
	"github.com/museboxapp/musebox/internal/errors"
	"github.com/museboxapp/musebox/internal/match"
	"github.com/museboxapp/musebox/internal/note"
	"github.com/museboxapp/musebox/internal/store"
)

// AddNoteInput contains parameters for the AddNote operation.
type AddNoteInput struct {
	Content string // required
	Theme   string // optional, default from config
}

// AddNoteOutput contains the result of the AddNote operation.
type AddNoteOutput struct {
	note.Note
	ThemeCreated bool `json:"theme_created"`
}

// AddNote validates and stores a single note. The theme is created on
// first use with derived icon and color defaults, matching what the
// import pipeline does for themes it has to invent.
func AddNote(ctx context.Context, st *store.Store, cfg *config.Config, input AddNoteInput) (*AddNoteOutput, error) {
	check := note.CheckContent(input.Content, cfg.NoteMaxChars)
	if !check.OK() {
		return nil, errors.NewInvalidRequest(check.Reason())
	}

	themeName := input.Theme
	if strings.TrimSpace(themeName) == "" {
		themeName = cfg.DefaultTheme
	}
	themeName, state := note.CheckThemeName(themeName)
	if state != note.NameOK {
		return nil, errors.NewInvalidRequest(state.Reason())
	}

	exists, err := st.ThemeExists(ctx, themeName)
	if err != nil {
		return nil, err
	}

	created := false
	if !exists {
		icon, color := match.DeriveDefaults(themeName)
		if err := st.CreateTheme(ctx, &note.Theme{
			Name:  themeName,
			Icon:  icon,
			Color: color,
		}); err != nil {
			// A concurrent writer may have created it between the
			// existence check and the insert; that is fine.
			if !errors.Is(err, errors.ErrNameAlreadyExists) {
				return nil, err
			}
		} else {
			created = true
		}
	}

	n := &note.Note{
		Content:   check.Trimmed,
		ThemeName: themeName,
		WordCount: note.WordCount(check.Trimmed),
	}
	if err := st.InsertNote(ctx, n); err != nil {
		return nil, err
	}

	return &AddNoteOutput{
		Note:         *n,
		ThemeCreated: created,
	}, nil
}
