package reconcile

import (
	"context"
	"fmt"
	"strings"

	"github.com/museboxapp/musebox/internal/backup"
	"github.com/museboxapp/musebox/internal/errors"
	"github.com/museboxapp/musebox/internal/note"
	"github.com/museboxapp/musebox/internal/store"
)

// Execute applies a merge plan: creates the scheduled themes, then inserts
// the document's notes one at a time in document order. Theme creation
// completes before any dependent note is evaluated; the store offers no
// multi-record transaction, so ordering is the consistency mechanism.
//
// invalid maps note indices that already failed validation to their
// reasons; those notes are reported, never inserted. Every other note is
// attempted: a creation or insertion failure is recorded per-note and the
// batch continues. Cancellation is honored before each store call;
// already-committed records are not rolled back, so a cancelled run can
// leave a partial import behind.
func Execute(ctx context.Context, plan *MergePlan, doc *backup.Document, invalid map[int]string, themes store.ThemeStore, notes store.NoteStore) (*ImportReport, error) {
	if !plan.CanProceed() {
		return nil, errors.NewStructuralInvalid(
			"unresolvable theme names: " + strings.Join(plan.Unresolvable, ", "))
	}

	b := newReportBuilder()

	// Names scheduled for creation become known only if creation succeeds;
	// every other mapping target is an existing theme.
	scheduled := make(map[string]bool, len(plan.ThemesToCreate))
	for _, th := range plan.ThemesToCreate {
		scheduled[th.Name] = true
	}

	known := make(map[string]bool, len(plan.NameMapping))
	for from, to := range plan.NameMapping {
		if scheduled[from] {
			continue
		}
		known[to] = true
		b.themeReused(to)
		b.mappingApplied(from, to)
	}

	for _, th := range plan.ThemesToCreate {
		select {
		case <-ctx.Done():
			return nil, errors.NewCancelled("import")
		default:
		}

		t := th
		if err := themes.CreateTheme(ctx, &t); err != nil {
			// Non-fatal, e.g. a collision introduced concurrently. The
			// theme stays unknown, so its notes fail below.
			continue
		}
		known[t.Name] = true
		b.themeCreated()
	}

	for i := range doc.Inspirations {
		rec := &doc.Inspirations[i]

		if reason, bad := invalid[i]; bad {
			b.noteFailed(i, errors.ErrSemanticInvalid, reason)
			continue
		}

		resolved, ok := plan.NameMapping[rec.ThemeName]
		if !ok || !known[resolved] {
			b.noteFailed(i, errors.ErrCategoryUnavailable,
				fmt.Sprintf("theme %q is unavailable", rec.ThemeName))
			continue
		}

		select {
		case <-ctx.Done():
			return nil, errors.NewCancelled("import")
		default:
		}

		// Fresh authorship: word count recomputed from trimmed content,
		// ID and timestamp assigned by the store at insert time.
		n := &note.Note{
			Content:   strings.TrimSpace(rec.Content),
			ThemeName: resolved,
			WordCount: note.WordCount(rec.Content),
		}
		if err := notes.InsertNote(ctx, n); err != nil {
			b.noteFailed(i, errors.ErrStoreFailure, err.Error())
			continue
		}
		b.noteImported()
	}

	return b.build(), nil
}
