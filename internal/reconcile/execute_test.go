package reconcile

import (
	"context"
	"testing"
	"time"

	"github.com/museboxapp/musebox/internal/backup"
	"github.com/museboxapp/musebox/internal/errors"
	"github.com/museboxapp/musebox/internal/note"
	"github.com/museboxapp/musebox/internal/store"
)

// newTestStore opens a store in a temp directory.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("store.Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestExecute_CreatesThemeAndImportsValidNotes(t *testing.T) {
	// Backup declares Work and carries one good note and one blank one;
	// the target store is empty.
	s := newTestStore(t)
	ctx := context.Background()

	doc := &backup.Document{
		Version: backup.SupportedVersion,
		Themes:  []backup.ThemeRecord{{Name: "Work", Icon: "💼", Color: "4A90D9"}},
		Inspirations: []backup.NoteRecord{
			{Content: "ship it", ThemeName: "Work"},
			{Content: "   ", ThemeName: "Work"},
		},
	}
	invalid := map[int]string{1: "note content is empty"}

	plan := BuildPlan(doc, nil, nil)
	started := time.Now().Unix()
	report, err := Execute(ctx, plan, doc, invalid, s, s)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if report.CreatedThemes != 1 {
		t.Errorf("CreatedThemes = %d, want 1", report.CreatedThemes)
	}
	if report.ReusedThemes != 0 {
		t.Errorf("ReusedThemes = %d, want 0", report.ReusedThemes)
	}
	if report.ImportedNotes != 1 {
		t.Errorf("ImportedNotes = %d, want 1", report.ImportedNotes)
	}
	if len(report.FailedNotes) != 1 {
		t.Fatalf("FailedNotes has %d entries, want 1", len(report.FailedNotes))
	}
	failure := report.FailedNotes[0]
	if failure.Index != 1 || failure.Code != errors.ErrSemanticInvalid {
		t.Errorf("failure = %+v, want index 1 with SEMANTIC_INVALID", failure)
	}
	if len(report.MappingsApplied) != 0 {
		t.Errorf("MappingsApplied = %v, want empty (identity only)", report.MappingsApplied)
	}

	// The store holds the created theme and the imported note with fresh
	// identity and a recomputed word count.
	th, err := s.GetTheme(ctx, "Work")
	if err != nil {
		t.Fatalf("GetTheme failed: %v", err)
	}
	if th.Icon != "💼" || th.Color != "4A90D9" {
		t.Errorf("theme = %+v, want declared icon and color", th)
	}

	notes, err := s.ListAllNotes(ctx)
	if err != nil {
		t.Fatalf("ListAllNotes failed: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("store has %d notes, want 1", len(notes))
	}
	n := notes[0]
	if n.Content != "ship it" || n.ThemeName != "Work" {
		t.Errorf("note = %+v", n)
	}
	if n.WordCount != 7 {
		t.Errorf("WordCount = %d, want 7 (recomputed)", n.WordCount)
	}
	if len(n.ID) != 26 {
		t.Errorf("ID = %q, want a fresh ULID", n.ID)
	}
	if n.CreatedAt < started {
		t.Errorf("CreatedAt = %d, want import time (>= %d)", n.CreatedAt, started)
	}
}

func TestExecute_ReusesMatchedTheme(t *testing.T) {
	// The store already has 工作; the backup references "work". One
	// remap, no creation.
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateTheme(ctx, &note.Theme{Name: "工作", Icon: "💼", Color: "4A90D9"}); err != nil {
		t.Fatalf("CreateTheme failed: %v", err)
	}

	doc := &backup.Document{
		Version:      backup.SupportedVersion,
		Inspirations: []backup.NoteRecord{{Content: "weekly sync notes", ThemeName: "work"}},
	}

	existing, err := s.ListThemeNames(ctx)
	if err != nil {
		t.Fatalf("ListThemeNames failed: %v", err)
	}
	plan := BuildPlan(doc, existing, nil)
	report, err := Execute(ctx, plan, doc, nil, s, s)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if report.CreatedThemes != 0 {
		t.Errorf("CreatedThemes = %d, want 0", report.CreatedThemes)
	}
	if report.ReusedThemes != 1 {
		t.Errorf("ReusedThemes = %d, want 1", report.ReusedThemes)
	}
	if report.ImportedNotes != 1 {
		t.Errorf("ImportedNotes = %d, want 1", report.ImportedNotes)
	}
	if got := report.MappingsApplied["work"]; got != "工作" {
		t.Errorf("MappingsApplied[work] = %q, want 工作", got)
	}

	notes, _, err := s.ListNotes(ctx, "工作", 10, 0)
	if err != nil {
		t.Fatalf("ListNotes failed: %v", err)
	}
	if len(notes) != 1 {
		t.Errorf("工作 has %d notes, want 1", len(notes))
	}
}

func TestExecute_CreationCollisionFailsDependentNotesOnly(t *testing.T) {
	// The plan schedules Work against a store that was empty at planning
	// time; by execution time someone created Work. The collision is
	// non-fatal: Work's notes fail, the rest of the batch continues.
	s := newTestStore(t)
	ctx := context.Background()

	doc := &backup.Document{
		Version: backup.SupportedVersion,
		Themes: []backup.ThemeRecord{
			{Name: "Work", Icon: "💼", Color: "4A90D9"},
			{Name: "Life", Icon: "🌿", Color: "67C23A"},
		},
		Inspirations: []backup.NoteRecord{
			{Content: "under work", ThemeName: "Work"},
			{Content: "under life", ThemeName: "Life"},
		},
	}

	plan := BuildPlan(doc, nil, nil)

	if err := s.CreateTheme(ctx, &note.Theme{Name: "Work", Icon: "📌", Color: "000000"}); err != nil {
		t.Fatalf("concurrent CreateTheme failed: %v", err)
	}

	report, err := Execute(ctx, plan, doc, nil, s, s)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if report.CreatedThemes != 1 {
		t.Errorf("CreatedThemes = %d, want 1 (only Life)", report.CreatedThemes)
	}
	if report.ImportedNotes != 1 {
		t.Errorf("ImportedNotes = %d, want 1", report.ImportedNotes)
	}
	if len(report.FailedNotes) != 1 {
		t.Fatalf("FailedNotes has %d entries, want 1", len(report.FailedNotes))
	}
	failure := report.FailedNotes[0]
	if failure.Index != 0 || failure.Code != errors.ErrCategoryUnavailable {
		t.Errorf("failure = %+v, want index 0 with CATEGORY_UNAVAILABLE", failure)
	}
}

func TestExecute_UnavailableThemeSkipsNoteAndContinues(t *testing.T) {
	// Middle note references a name the plan never resolved; its
	// neighbors import normally.
	s := newTestStore(t)
	ctx := context.Background()

	doc := &backup.Document{
		Version: backup.SupportedVersion,
		Inspirations: []backup.NoteRecord{
			{Content: "first", ThemeName: "Alpha"},
			{Content: "second", ThemeName: "Ghost"},
			{Content: "third", ThemeName: "Alpha"},
		},
	}

	plan := BuildPlan(doc, nil, nil)
	// Simulate a resolution gap for Ghost.
	delete(plan.NameMapping, "Ghost")
	for i, th := range plan.ThemesToCreate {
		if th.Name == "Ghost" {
			plan.ThemesToCreate = append(plan.ThemesToCreate[:i], plan.ThemesToCreate[i+1:]...)
			break
		}
	}

	report, err := Execute(ctx, plan, doc, nil, s, s)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if report.ImportedNotes != 2 {
		t.Errorf("ImportedNotes = %d, want 2", report.ImportedNotes)
	}
	if len(report.FailedNotes) != 1 || report.FailedNotes[0].Index != 1 {
		t.Errorf("FailedNotes = %+v, want only index 1", report.FailedNotes)
	}
	if report.FailedNotes[0].Code != errors.ErrCategoryUnavailable {
		t.Errorf("Code = %s, want CATEGORY_UNAVAILABLE", report.FailedNotes[0].Code)
	}
}

func TestExecute_CancelledBeforeStoreCall(t *testing.T) {
	s := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doc := &backup.Document{
		Version:      backup.SupportedVersion,
		Themes:       []backup.ThemeRecord{{Name: "Work", Icon: "💼", Color: "4A90D9"}},
		Inspirations: []backup.NoteRecord{{Content: "never lands", ThemeName: "Work"}},
	}
	plan := BuildPlan(doc, nil, nil)

	_, err := Execute(ctx, plan, doc, nil, s, s)
	if !errors.Is(err, errors.ErrCancelled) {
		t.Fatalf("Execute with cancelled context = %v, want CANCELLED", err)
	}

	// Nothing was committed before the first suspension point.
	total, err := s.CountNotes(context.Background())
	if err != nil {
		t.Fatalf("CountNotes failed: %v", err)
	}
	if total != 0 {
		t.Errorf("store has %d notes after cancellation, want 0", total)
	}
}

func TestExecute_RefusesUnresolvablePlan(t *testing.T) {
	s := newTestStore(t)

	doc := &backup.Document{Version: backup.SupportedVersion}
	plan := BuildPlan(doc, nil, nil)
	plan.Unresolvable = append(plan.Unresolvable, "broken name")

	_, err := Execute(context.Background(), plan, doc, nil, s, s)
	if !errors.Is(err, errors.ErrStructuralInvalid) {
		t.Fatalf("Execute on unresolvable plan = %v, want STRUCTURAL_INVALID", err)
	}
}

func TestExecute_IgnoresBackupIdentityAndCounters(t *testing.T) {
	// The backup's id, createdAt and wordCount are never trusted.
	s := newTestStore(t)
	ctx := context.Background()

	doc := &backup.Document{
		Version: backup.SupportedVersion,
		Inspirations: []backup.NoteRecord{{
			ID:        []byte(`42`),
			Content:   "  五个字而已  ",
			ThemeName: "随记",
			CreatedAt: "2020-01-01T00:00:00Z",
			WordCount: 999,
		}},
	}

	plan := BuildPlan(doc, nil, nil)
	report, err := Execute(ctx, plan, doc, nil, s, s)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if report.ImportedNotes != 1 {
		t.Fatalf("ImportedNotes = %d, want 1", report.ImportedNotes)
	}

	notes, err := s.ListAllNotes(ctx)
	if err != nil {
		t.Fatalf("ListAllNotes failed: %v", err)
	}
	n := notes[0]
	if n.Content != "五个字而已" {
		t.Errorf("Content = %q, want trimmed", n.Content)
	}
	if n.WordCount != 5 {
		t.Errorf("WordCount = %d, want 5 (recomputed, not the backup's 999)", n.WordCount)
	}
	if n.ID == "42" || len(n.ID) != 26 {
		t.Errorf("ID = %q, want a fresh ULID", n.ID)
	}
	if n.CreatedAt < 1577836800+1 { // well after 2020-01-01
		t.Errorf("CreatedAt = %d, want import time", n.CreatedAt)
	}
}
