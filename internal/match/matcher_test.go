package match

import (
	"testing"

	"github.com/museboxapp/musebox/internal/note"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercase", input: "Work", want: "work"},
		{name: "spaces removed", input: "my work notes", want: "myworknotes"},
		{name: "hyphens and underscores removed", input: "My-Work_Notes", want: "myworknotes"},
		{name: "surrounding whitespace", input: "  Work  ", want: "work"},
		{name: "chinese with space", input: "工 作", want: "工作"},
		{name: "tabs and newlines", input: "a\tb\nc", want: "abc"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeKey(tt.input); got != tt.want {
				t.Errorf("normalizeKey(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFindBestMatch_ExactAfterNormalization(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		existing []string
		want     string
	}{
		{
			name:     "case difference",
			target:   "WORK",
			existing: []string{"work"},
			want:     "work",
		},
		{
			name:     "whitespace difference",
			target:   "  work  ",
			existing: []string{"Work"},
			want:     "Work",
		},
		{
			name:     "hyphen vs space",
			target:   "my work",
			existing: []string{"My-Work"},
			want:     "My-Work",
		},
		{
			name:     "underscore vs space",
			target:   "Reading_List",
			existing: []string{"reading list"},
			want:     "reading list",
		},
		{
			name:     "chinese with internal space",
			target:   "工 作",
			existing: []string{"工作"},
			want:     "工作",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, strategy, ok := FindBestMatch(tt.target, tt.existing)
			if !ok {
				t.Fatalf("FindBestMatch(%q, %v) found nothing, want %q", tt.target, tt.existing, tt.want)
			}
			if got != tt.want {
				t.Errorf("FindBestMatch(%q, %v) = %q, want %q", tt.target, tt.existing, got, tt.want)
			}
			if strategy != StrategyExact {
				t.Errorf("strategy = %q, want %q", strategy, StrategyExact)
			}
		})
	}
}

func TestFindBestMatch_Containment(t *testing.T) {
	// Target contained in an existing name.
	got, strategy, ok := FindBestMatch("Design", []string{"Product Design"})
	if !ok || got != "Product Design" {
		t.Errorf("FindBestMatch(Design) = %q, %v, want Product Design", got, ok)
	}
	if strategy != StrategyContainment {
		t.Errorf("strategy = %q, want %q", strategy, StrategyContainment)
	}

	// Existing name contained in the target.
	got, _, ok = FindBestMatch("Product Design Notes", []string{"Design"})
	if !ok || got != "Design" {
		t.Errorf("FindBestMatch(Product Design Notes) = %q, %v, want Design", got, ok)
	}
}

func TestFindBestMatch_SemanticGroup(t *testing.T) {
	// Neither exact nor containment: produce-design and Product Design
	// only share the design concept.
	got, strategy, ok := FindBestMatch("produce-design", []string{"Product Design"})
	if !ok || got != "Product Design" {
		t.Errorf("FindBestMatch(produce-design) = %q, %v, want Product Design", got, ok)
	}
	if strategy != StrategySemantic {
		t.Errorf("strategy = %q, want %q", strategy, StrategySemantic)
	}

	got, _, ok = FindBestMatch("job", []string{"职场"})
	if !ok || got != "职场" {
		t.Errorf("FindBestMatch(job) = %q, %v, want 职场", got, ok)
	}
}

func TestFindBestMatch_Translation(t *testing.T) {
	// Terms outside the concept groups still match through the
	// translation dictionary, in both directions.
	got, strategy, ok := FindBestMatch("摄影", []string{"Photography"})
	if !ok || got != "Photography" {
		t.Errorf("FindBestMatch(摄影) = %q, %v, want Photography", got, ok)
	}
	if strategy != StrategyTranslation {
		t.Errorf("strategy = %q, want %q", strategy, StrategyTranslation)
	}

	got, _, ok = FindBestMatch("poetry", []string{"诗歌"})
	if !ok || got != "诗歌" {
		t.Errorf("FindBestMatch(poetry) = %q, %v, want 诗歌", got, ok)
	}
}

func TestFindBestMatch_WorkMapsToChinese(t *testing.T) {
	got, _, ok := FindBestMatch("work", []string{"工作"})
	if !ok || got != "工作" {
		t.Errorf("FindBestMatch(work, [工作]) = %q, %v, want 工作", got, ok)
	}
}

func TestFindBestMatch_PriorityOrder(t *testing.T) {
	// Candidates at every level; peeling the best one off moves the
	// result down exactly one strategy at a time.
	existing := []string{"Work", "workspace", "职场", "工作"}

	got, strategy, ok := FindBestMatch("work", existing)
	if !ok || got != "Work" || strategy != StrategyExact {
		t.Fatalf("level 1: got %q (%s), %v, want Work (exact)", got, strategy, ok)
	}

	got, strategy, ok = FindBestMatch("work", existing[1:])
	if !ok || got != "workspace" || strategy != StrategyContainment {
		t.Fatalf("level 2: got %q (%s), %v, want workspace (containment)", got, strategy, ok)
	}

	got, strategy, ok = FindBestMatch("work", existing[2:])
	if !ok || got != "职场" || strategy != StrategySemantic {
		t.Fatalf("level 3: got %q (%s), %v, want 职场 (semantic)", got, strategy, ok)
	}

	got, strategy, ok = FindBestMatch("work", existing[3:])
	if !ok || got != "工作" || strategy != StrategyTranslation {
		t.Fatalf("level 4: got %q (%s), %v, want 工作 (translation)", got, strategy, ok)
	}
}

func TestFindBestMatch_NoMatch(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		existing []string
	}{
		{name: "unrelated names", target: "随想", existing: []string{"Quantum"}},
		{name: "empty existing", target: "Work", existing: nil},
		{name: "empty target", target: "", existing: []string{"Work"}},
		{name: "whitespace target", target: "   ", existing: []string{"Work"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, _, ok := FindBestMatch(tt.target, tt.existing); ok {
				t.Errorf("FindBestMatch(%q, %v) = %q, want no match", tt.target, tt.existing, got)
			}
		})
	}
}

func TestFindBestMatch_Deterministic(t *testing.T) {
	existing := []string{"职场", "事业", "工作"}

	first, _, ok := FindBestMatch("work", existing)
	if !ok {
		t.Fatal("FindBestMatch found nothing")
	}
	// First group member in slice order wins, every time.
	if first != "职场" {
		t.Errorf("FindBestMatch = %q, want 职场 (first in slice order)", first)
	}
	for range 10 {
		if got, _, _ := FindBestMatch("work", existing); got != first {
			t.Fatalf("FindBestMatch not deterministic: %q then %q", first, got)
		}
	}
}

func TestSuggestAlternatives(t *testing.T) {
	t.Run("group and translation candidates", func(t *testing.T) {
		existing := []string{"职场", "Cooking", "工作"}
		got := SuggestAlternatives("work", existing)

		if len(got) == 0 {
			t.Fatal("SuggestAlternatives returned nothing")
		}
		if len(got) > MaxSuggestions {
			t.Fatalf("SuggestAlternatives returned %d items, max %d", len(got), MaxSuggestions)
		}
		for _, s := range got {
			if s == "Cooking" {
				t.Error("SuggestAlternatives included unrelated name Cooking")
			}
		}
	})

	t.Run("capped at three", func(t *testing.T) {
		existing := []string{"职场", "工作", "事业", "Career", "Office"}
		got := SuggestAlternatives("work", existing)
		if len(got) != MaxSuggestions {
			t.Errorf("SuggestAlternatives returned %d items, want %d", len(got), MaxSuggestions)
		}
	})

	t.Run("no candidates", func(t *testing.T) {
		if got := SuggestAlternatives("随想", []string{"Quantum"}); len(got) != 0 {
			t.Errorf("SuggestAlternatives = %v, want empty", got)
		}
	})

	t.Run("deduplicated", func(t *testing.T) {
		// 工作 qualifies through both group and translation.
		got := SuggestAlternatives("work", []string{"工作"})
		if len(got) != 1 {
			t.Errorf("SuggestAlternatives = %v, want one entry", got)
		}
	})
}

func TestDeriveDefaults(t *testing.T) {
	tests := []struct {
		name      string
		theme     string
		wantIcon  string
		wantColor string
	}{
		{name: "exact keyword", theme: "工作", wantIcon: "💼", wantColor: "4A90D9"},
		{name: "english keyword", theme: "Fitness", wantIcon: "🏃", wantColor: "2ECC71"},
		{name: "keyword inside name", theme: "My Trip Plans", wantIcon: "✈️", wantColor: "45B7D1"},
		{name: "no keyword", theme: "Xyzzy", wantIcon: note.DefaultIcon, wantColor: note.DefaultColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			icon, color := DeriveDefaults(tt.theme)
			if icon != tt.wantIcon || color != tt.wantColor {
				t.Errorf("DeriveDefaults(%q) = %q, %q, want %q, %q", tt.theme, icon, color, tt.wantIcon, tt.wantColor)
			}
		})
	}
}
