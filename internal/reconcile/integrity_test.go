package reconcile

import (
	"context"
	"strings"
	"testing"

	"github.com/museboxapp/musebox/internal/note"
)

func TestVerify_EmptyStore(t *testing.T) {
	s := newTestStore(t)

	report, err := Verify(context.Background(), s, s)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !report.IsValid {
		t.Error("IsValid = false for an empty store")
	}
	if len(report.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", report.Warnings)
	}
}

func TestVerify_ConsistentStore(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateTheme(ctx, &note.Theme{Name: "Work", Icon: "💼", Color: "4A90D9"}); err != nil {
		t.Fatalf("CreateTheme failed: %v", err)
	}
	for _, content := range []string{"one", "two"} {
		n := &note.Note{Content: content, ThemeName: "Work", WordCount: note.WordCount(content)}
		if err := s.InsertNote(ctx, n); err != nil {
			t.Fatalf("InsertNote failed: %v", err)
		}
	}

	report, err := Verify(ctx, s, s)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !report.IsValid || len(report.Warnings) != 0 {
		t.Errorf("report = %+v, want valid with no warnings", report)
	}
}

func TestVerify_CountMismatchIsWarningOnly(t *testing.T) {
	// Notes inserted before their theme existed leave the cached counter
	// behind the actual count. Advisory counters never invalidate the
	// store.
	s := newTestStore(t)
	ctx := context.Background()

	for range 2 {
		if err := s.InsertNote(ctx, &note.Note{Content: "x", ThemeName: "Work", WordCount: 1}); err != nil {
			t.Fatalf("InsertNote failed: %v", err)
		}
	}
	if err := s.CreateTheme(ctx, &note.Theme{Name: "Work", Icon: "💼", Color: "4A90D9"}); err != nil {
		t.Fatalf("CreateTheme failed: %v", err)
	}

	report, err := Verify(ctx, s, s)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !report.IsValid {
		t.Error("IsValid = false for a counter mismatch, want true")
	}
	if len(report.Warnings) != 1 || !strings.Contains(report.Warnings[0], "note count") {
		t.Errorf("Warnings = %v, want one counter warning", report.Warnings)
	}
}

func TestVerify_OrphanNoteInvalidates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.InsertNote(ctx, &note.Note{Content: "stray", ThemeName: "Ghost", WordCount: 5}); err != nil {
		t.Fatalf("InsertNote failed: %v", err)
	}

	report, err := Verify(ctx, s, s)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if report.IsValid {
		t.Error("IsValid = true with an orphan note, want false")
	}
	if len(report.Warnings) != 1 || !strings.Contains(report.Warnings[0], "Ghost") {
		t.Errorf("Warnings = %v, want one orphan warning naming Ghost", report.Warnings)
	}
}
