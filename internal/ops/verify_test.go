package ops

import (
	"context"
	"testing"

	"github.com/museboxapp/musebox/internal/note"
)

func TestVerifyIntegrity_HealthyStore(t *testing.T) {
	st, cfg, _ := newTestEnv(t)
	ctx := context.Background()

	if _, err := AddNote(ctx, st, cfg, AddNoteInput{Content: "完成季度总结", Theme: "工作"}); err != nil {
		t.Fatalf("AddNote failed: %v", err)
	}

	output, err := VerifyIntegrity(ctx, st)
	if err != nil {
		t.Fatalf("VerifyIntegrity failed: %v", err)
	}
	if !output.Integrity.IsValid {
		t.Errorf("IsValid = false, warnings: %v", output.Integrity.Warnings)
	}
	if len(output.Integrity.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", output.Integrity.Warnings)
	}
	if output.Themes != 1 || output.Notes != 1 {
		t.Errorf("Themes/Notes = %d/%d, want 1/1", output.Themes, output.Notes)
	}
}

func TestVerifyIntegrity_OrphanedNote(t *testing.T) {
	st, _, _ := newTestEnv(t)
	ctx := context.Background()

	n := &note.Note{Content: "lost", ThemeName: "ghost", WordCount: 4}
	if err := st.InsertNote(ctx, n); err != nil {
		t.Fatalf("InsertNote failed: %v", err)
	}

	output, err := VerifyIntegrity(ctx, st)
	if err != nil {
		t.Fatalf("VerifyIntegrity failed: %v", err)
	}
	if output.Integrity.IsValid {
		t.Error("IsValid = true with an orphaned note")
	}
	if len(output.Integrity.Warnings) == 0 {
		t.Error("expected a warning about the missing theme")
	}
}

func TestVerifyIntegrity_CounterDriftIsWarningOnly(t *testing.T) {
	st, _, _ := newTestEnv(t)
	ctx := context.Background()

	// Theme created after the note leaves its cached counter at zero.
	n := &note.Note{Content: "early", ThemeName: "工作", WordCount: 5}
	if err := st.InsertNote(ctx, n); err != nil {
		t.Fatalf("InsertNote failed: %v", err)
	}
	if err := st.CreateTheme(ctx, &note.Theme{Name: "工作", Icon: "💼", Color: "FF6B6B"}); err != nil {
		t.Fatalf("CreateTheme failed: %v", err)
	}

	output, err := VerifyIntegrity(ctx, st)
	if err != nil {
		t.Fatalf("VerifyIntegrity failed: %v", err)
	}
	if !output.Integrity.IsValid {
		t.Error("IsValid = false, counter drift should stay a warning")
	}
	if len(output.Integrity.Warnings) != 1 {
		t.Errorf("Warnings = %v, want exactly one", output.Integrity.Warnings)
	}
}

func TestVerifyIntegrity_EmptyStore(t *testing.T) {
	st, _, _ := newTestEnv(t)

	output, err := VerifyIntegrity(context.Background(), st)
	if err != nil {
		t.Fatalf("VerifyIntegrity failed: %v", err)
	}
	if !output.Integrity.IsValid {
		t.Error("empty store should be valid")
	}
	if output.Themes != 0 || output.Notes != 0 {
		t.Errorf("Themes/Notes = %d/%d, want 0/0", output.Themes, output.Notes)
	}
}
