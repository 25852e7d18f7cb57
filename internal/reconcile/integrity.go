package reconcile

import (
	"context"
	"fmt"

	"github.com/museboxapp/musebox/internal/store"
)

// IntegrityReport is the outcome of a store health check.
type IntegrityReport struct {
	IsValid  bool     `json:"is_valid"`
	Warnings []string `json:"warnings"`
}

// Verify cross-checks themes against notes without mutating anything.
// Safe to run at any time; the import pipeline runs it after every
// import.
//
// A cached per-theme counter that disagrees with the actual note count is
// a warning only, since cached counters are advisory. A note referencing
// a theme that does not exist is a warning and makes the report invalid:
// the import path never writes such a note, so one in the store means the
// data was damaged some other way.
func Verify(ctx context.Context, themes store.ThemeStore, notes store.NoteStore) (*IntegrityReport, error) {
	allThemes, err := themes.ListThemes(ctx)
	if err != nil {
		return nil, err
	}
	allNotes, err := notes.ListAllNotes(ctx)
	if err != nil {
		return nil, err
	}

	actual := make(map[string]int, len(allThemes))
	for _, n := range allNotes {
		actual[n.ThemeName]++
	}

	themeSet := make(map[string]bool, len(allThemes))
	for _, th := range allThemes {
		themeSet[th.Name] = true
	}

	report := &IntegrityReport{IsValid: true, Warnings: []string{}}

	for _, th := range allThemes {
		if th.NoteCount != actual[th.Name] {
			report.Warnings = append(report.Warnings, fmt.Sprintf(
				"theme %q caches note count %d, actual count is %d",
				th.Name, th.NoteCount, actual[th.Name]))
		}
	}

	for _, n := range allNotes {
		if !themeSet[n.ThemeName] {
			report.Warnings = append(report.Warnings, fmt.Sprintf(
				"note %s references missing theme %q", n.ID, n.ThemeName))
			report.IsValid = false
		}
	}

	return report, nil
}
