package ops

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/museboxapp/musebox/internal/errors"
	"github.com/museboxapp/musebox/internal/note"
	"github.com/museboxapp/musebox/internal/store"
)

// ExportMarkdownInput contains parameters for the ExportMarkdown operation.
type ExportMarkdownInput struct {
	Theme string // optional; empty exports every theme
}

// ExportMarkdownOutput contains the result of the ExportMarkdown operation.
type ExportMarkdownOutput struct {
	Markdown string `json:"markdown"`
	Themes   int    `json:"themes"`
	Notes    int    `json:"notes"`
}

// ExportMarkdown renders themes and notes as a Markdown document, one
// section per theme in creation order, notes oldest first within each
// section. Pure formatting; nothing is reconciled or mutated.
func ExportMarkdown(ctx context.Context, st *store.Store, input ExportMarkdownInput) (*ExportMarkdownOutput, error) {
	themes, err := st.ListThemes(ctx)
	if err != nil {
		return nil, err
	}

	filter := strings.TrimSpace(input.Theme)
	if filter != "" {
		kept := themes[:0]
		for _, th := range themes {
			if th.Name == filter {
				kept = append(kept, th)
			}
		}
		if len(kept) == 0 {
			return nil, errors.NewNotFound("theme", filter)
		}
		themes = kept
	}

	notes, err := st.ListAllNotes(ctx)
	if err != nil {
		return nil, err
	}
	byTheme := make(map[string][]note.Note)
	for _, n := range notes {
		byTheme[n.ThemeName] = append(byTheme[n.ThemeName], n)
	}

	var sb strings.Builder
	sb.WriteString("# Musebox Notes\n\n")
	total := 0

	for i, th := range themes {
		if i > 0 {
			sb.WriteString("\n---\n\n")
		}
		themeNotes := byTheme[th.Name]
		fmt.Fprintf(&sb, "## %s %s (%d)\n", th.Icon, th.Name, len(themeNotes))
		for _, n := range themeNotes {
			sb.WriteString("\n")
			sb.WriteString(n.Content)
			sb.WriteString("\n\n")
			fmt.Fprintf(&sb, "*%s*\n", time.Unix(n.CreatedAt, 0).UTC().Format("2006-01-02"))
			total++
		}
	}

	return &ExportMarkdownOutput{
		Markdown: sb.String(),
		Themes:   len(themes),
		Notes:    total,
	}, nil
}
