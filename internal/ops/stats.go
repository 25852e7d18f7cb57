package ops

import (
	"context"

	"github.com/museboxapp/musebox/internal/store"
)

// ThemeStat is the per-theme line of the Stats breakdown.
type ThemeStat struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Notes int    `json:"notes"`
}

// StatsOutput contains the result of the Stats operation.
type StatsOutput struct {
	TotalNotes  int         `json:"total_notes"`
	TotalThemes int         `json:"total_themes"`
	Themes      []ThemeStat `json:"themes"`
}

// Stats summarizes the store: totals plus a per-theme breakdown with
// live counts, in theme creation order.
func Stats(ctx context.Context, st *store.Store) (*StatsOutput, error) {
	themes, err := st.ListThemes(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := st.CountNotesByTheme(ctx)
	if err != nil {
		return nil, err
	}

	totalNotes, err := st.CountNotes(ctx)
	if err != nil {
		return nil, err
	}

	stats := make([]ThemeStat, len(themes))
	for i, th := range themes {
		stats[i] = ThemeStat{
			Name:  th.Name,
			Icon:  th.Icon,
			Notes: counts[th.Name],
		}
	}

	return &StatsOutput{
		TotalNotes:  totalNotes,
		TotalThemes: len(themes),
		Themes:      stats,
	}, nil
}
