package match

import (
	"strings"
	"testing"

	"github.com/museboxapp/musebox/internal/note"
)

// The tables are hand-maintained; these tests keep edits honest.

func TestConcepts_KeywordsNormalized(t *testing.T) {
	for _, c := range concepts {
		for _, kw := range c.keywords {
			if normalizeKey(kw) != kw {
				t.Errorf("concept %q keyword %q is not in normalized form", c.name, kw)
			}
		}
	}
}

func TestConcepts_KeywordsUniqueAcrossConcepts(t *testing.T) {
	owner := make(map[string]string)
	for _, c := range concepts {
		for _, kw := range c.keywords {
			if prev, ok := owner[kw]; ok && prev != c.name {
				t.Errorf("keyword %q appears in both %q and %q", kw, prev, c.name)
			}
			owner[kw] = c.name
		}
	}
}

func TestConcepts_NoCrossConceptSubstrings(t *testing.T) {
	// A keyword that is a substring of another concept's keyword would
	// make conceptFor depend on scan position in surprising ways.
	for i, a := range concepts {
		for j, b := range concepts {
			if i == j {
				continue
			}
			for _, kwA := range a.keywords {
				for _, kwB := range b.keywords {
					if strings.Contains(kwB, kwA) {
						t.Errorf("keyword %q (%s) is a substring of %q (%s)", kwA, a.name, kwB, b.name)
					}
				}
			}
		}
	}
}

func TestConcepts_DefaultsValid(t *testing.T) {
	for _, c := range concepts {
		if c.icon == "" {
			t.Errorf("concept %q has no icon", c.name)
		}
		if !note.ValidColorHex(c.color) {
			t.Errorf("concept %q color %q is not a 6-hex-digit color", c.name, c.color)
		}
	}
}

func TestTranslationPairs_Normalized(t *testing.T) {
	for _, pair := range translationPairs {
		for _, term := range pair {
			if normalizeKey(term) != term {
				t.Errorf("translation term %q is not in normalized form", term)
			}
		}
	}
}

func TestTranslations_Bidirectional(t *testing.T) {
	for _, pair := range translationPairs {
		found := false
		for _, tr := range translations[pair[0]] {
			if tr == pair[1] {
				found = true
			}
		}
		if !found {
			t.Errorf("translations[%q] missing %q", pair[0], pair[1])
		}

		found = false
		for _, tr := range translations[pair[1]] {
			if tr == pair[0] {
				found = true
			}
		}
		if !found {
			t.Errorf("translations[%q] missing %q", pair[1], pair[0])
		}
	}
}
