package ops

import (
	"context"
	"testing"

	"github.com/museboxapp/musebox/internal/errors"
	"github.com/museboxapp/musebox/internal/note"
)

func TestGetNote(t *testing.T) {
	st, cfg, _ := newTestEnv(t)
	ctx := context.Background()

	added, err := AddNote(ctx, st, cfg, AddNoteInput{Content: "完成季度总结", Theme: "工作"})
	if err != nil {
		t.Fatalf("AddNote failed: %v", err)
	}

	output, err := GetNote(ctx, st, GetNoteInput{ID: added.ID})
	if err != nil {
		t.Fatalf("GetNote failed: %v", err)
	}
	if output.Content != "完成季度总结" {
		t.Errorf("Content = %q", output.Content)
	}
	if output.Theme == nil {
		t.Fatal("Theme is nil, want the 工作 theme")
	}
	if output.Theme.Name != "工作" {
		t.Errorf("Theme.Name = %q, want 工作", output.Theme.Name)
	}
}

func TestGetNote_NotFound(t *testing.T) {
	st, _, _ := newTestEnv(t)

	_, err := GetNote(context.Background(), st, GetNoteInput{ID: "01ARZ3NDEKTSV4RRFFQ69G5FAV"})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestGetNote_EmptyID(t *testing.T) {
	st, _, _ := newTestEnv(t)

	for _, id := range []string{"", "   "} {
		_, err := GetNote(context.Background(), st, GetNoteInput{ID: id})
		if !errors.Is(err, errors.ErrInvalidRequest) {
			t.Fatalf("id %q: expected ErrInvalidRequest, got: %v", id, err)
		}
	}
}

func TestGetNote_OrphanedNote(t *testing.T) {
	st, _, _ := newTestEnv(t)
	ctx := context.Background()

	// Insert a note whose theme does not exist.
	n := &note.Note{Content: "lost", ThemeName: "ghost", WordCount: 4}
	if err := st.InsertNote(ctx, n); err != nil {
		t.Fatalf("InsertNote failed: %v", err)
	}

	output, err := GetNote(ctx, st, GetNoteInput{ID: n.ID})
	if err != nil {
		t.Fatalf("GetNote failed for orphaned note: %v", err)
	}
	if output.Theme != nil {
		t.Errorf("Theme = %+v, want nil for orphaned note", output.Theme)
	}
	if output.Content != "lost" {
		t.Errorf("Content = %q", output.Content)
	}
}
