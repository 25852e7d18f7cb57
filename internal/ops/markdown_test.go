package ops

import (
	"context"
	"strings"
	"testing"

	"github.com/museboxapp/musebox/internal/errors"
	"github.com/museboxapp/musebox/internal/note"
)

func TestExportMarkdown(t *testing.T) {
	st, cfg, _ := newTestEnv(t)
	ctx := context.Background()

	for _, n := range []struct{ content, theme string }{
		{"完成季度总结", "工作"},
		{"周末去爬山", "生活"},
		{"review the budget", "工作"},
	} {
		if _, err := AddNote(ctx, st, cfg, AddNoteInput{Content: n.content, Theme: n.theme}); err != nil {
			t.Fatalf("AddNote failed: %v", err)
		}
	}

	output, err := ExportMarkdown(ctx, st, ExportMarkdownInput{})
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}
	if output.Themes != 2 || output.Notes != 3 {
		t.Errorf("Themes/Notes = %d/%d, want 2/3", output.Themes, output.Notes)
	}

	md := output.Markdown
	if !strings.HasPrefix(md, "# Musebox Notes\n") {
		t.Errorf("missing document title, got prefix %q", md[:min(len(md), 40)])
	}
	for _, want := range []string{"工作 (2)", "生活 (1)", "完成季度总结", "周末去爬山", "review the budget"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
	// Theme sections are separated by horizontal rules.
	if got := strings.Count(md, "\n---\n"); got != 1 {
		t.Errorf("got %d separators for 2 themes, want 1", got)
	}
}

func TestExportMarkdown_ThemeFilter(t *testing.T) {
	st, cfg, _ := newTestEnv(t)
	ctx := context.Background()

	for _, n := range []struct{ content, theme string }{
		{"完成季度总结", "工作"},
		{"周末去爬山", "生活"},
	} {
		if _, err := AddNote(ctx, st, cfg, AddNoteInput{Content: n.content, Theme: n.theme}); err != nil {
			t.Fatalf("AddNote failed: %v", err)
		}
	}

	output, err := ExportMarkdown(ctx, st, ExportMarkdownInput{Theme: "生活"})
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}
	if output.Themes != 1 || output.Notes != 1 {
		t.Errorf("Themes/Notes = %d/%d, want 1/1", output.Themes, output.Notes)
	}
	if strings.Contains(output.Markdown, "工作") {
		t.Error("filtered export still contains the other theme")
	}
	if !strings.Contains(output.Markdown, "周末去爬山") {
		t.Error("filtered export missing the note")
	}
}

func TestExportMarkdown_UnknownTheme(t *testing.T) {
	st, _, _ := newTestEnv(t)

	_, err := ExportMarkdown(context.Background(), st, ExportMarkdownInput{Theme: "missing"})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestExportMarkdown_NotesOldestFirstWithinTheme(t *testing.T) {
	st, _, _ := newTestEnv(t)
	ctx := context.Background()

	if err := st.CreateTheme(ctx, &note.Theme{Name: "工作", Icon: "💼", Color: "FF6B6B"}); err != nil {
		t.Fatalf("CreateTheme failed: %v", err)
	}
	insertNoteAt(t, st, "first entry", "工作", 1000)
	insertNoteAt(t, st, "second entry", "工作", 2000)

	output, err := ExportMarkdown(ctx, st, ExportMarkdownInput{})
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}

	firstIdx := strings.Index(output.Markdown, "first entry")
	secondIdx := strings.Index(output.Markdown, "second entry")
	if firstIdx < 0 || secondIdx < 0 {
		t.Fatal("markdown missing the notes")
	}
	if firstIdx > secondIdx {
		t.Error("notes are not oldest first within the theme section")
	}
}

func TestExportMarkdown_EmptyStore(t *testing.T) {
	st, _, _ := newTestEnv(t)

	output, err := ExportMarkdown(context.Background(), st, ExportMarkdownInput{})
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}
	if output.Themes != 0 || output.Notes != 0 {
		t.Errorf("Themes/Notes = %d/%d, want 0/0", output.Themes, output.Notes)
	}
	if !strings.HasPrefix(output.Markdown, "# Musebox Notes") {
		t.Error("empty export still carries the document title")
	}
}
