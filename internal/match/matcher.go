package match

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/museboxapp/musebox/internal/note"
)

// MaxSuggestions caps how many alternatives SuggestAlternatives returns.
const MaxSuggestions = 3

// Strategy names the matching layer that produced a result, in priority
// order. Logged with every smart match so remappings are explainable.
type Strategy string

const (
	StrategyExact       Strategy = "exact"
	StrategyContainment Strategy = "containment"
	StrategySemantic    Strategy = "semantic"
	StrategyTranslation Strategy = "translation"
)

// normalizeKey reduces a theme name to its comparison form: lower-cased
// with all whitespace, hyphens and underscores removed.
func normalizeKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsSpace(r) || r == '-' || r == '_' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FindBestMatch finds the best existing theme name for target, trying
// strategies in strict priority order:
//
//  1. exact match after normalization
//  2. case-insensitive containment in either direction
//  3. both names resolve to the same concept group
//  4. single-term translation, checked in both directions
//
// The first strategy that yields a result wins. Pure and deterministic:
// existing is scanned in slice order, so callers pass a sorted slice when
// they need stable results across runs.
func FindBestMatch(target string, existing []string) (string, Strategy, bool) {
	targetKey := normalizeKey(target)
	if targetKey == "" {
		return "", "", false
	}

	// 1. Exact after normalization.
	for _, name := range existing {
		if normalizeKey(name) == targetKey {
			return name, StrategyExact, true
		}
	}

	// 2. Containment, case-insensitive, either direction.
	targetLower := strings.ToLower(strings.TrimSpace(target))
	for _, name := range existing {
		nameLower := strings.ToLower(strings.TrimSpace(name))
		if nameLower == "" {
			continue
		}
		if strings.Contains(nameLower, targetLower) || strings.Contains(targetLower, nameLower) {
			return name, StrategyContainment, true
		}
	}

	// 3. Semantic group.
	if targetConcept, ok := conceptFor(targetKey); ok {
		for _, name := range existing {
			if existingConcept, ok := conceptFor(normalizeKey(name)); ok && existingConcept == targetConcept {
				return name, StrategySemantic, true
			}
		}
	}

	// 4. Translation.
	for _, tr := range translations[targetKey] {
		for _, name := range existing {
			if normalizeKey(name) == tr {
				return name, StrategyTranslation, true
			}
		}
	}

	return "", "", false
}

// SuggestAlternatives surfaces up to MaxSuggestions existing names that
// relate to target through its concept group, translations, or
// containment. Non-binding: callers show these next to a missing-theme
// warning, nothing more.
func SuggestAlternatives(target string, existing []string) []string {
	targetKey := normalizeKey(target)
	if targetKey == "" {
		return nil
	}

	var suggestions []string
	seen := make(map[string]bool)
	add := func(name string) {
		if len(suggestions) < MaxSuggestions && !seen[name] {
			seen[name] = true
			suggestions = append(suggestions, name)
		}
	}

	if targetConcept, ok := conceptFor(targetKey); ok {
		for _, name := range existing {
			if existingConcept, ok := conceptFor(normalizeKey(name)); ok && existingConcept == targetConcept {
				add(name)
			}
		}
	}

	for _, tr := range translations[targetKey] {
		for _, name := range existing {
			if normalizeKey(name) == tr {
				add(name)
			}
		}
	}

	targetLower := strings.ToLower(strings.TrimSpace(target))
	for _, name := range existing {
		nameLower := strings.ToLower(strings.TrimSpace(name))
		if nameLower == "" {
			continue
		}
		if strings.Contains(nameLower, targetLower) || strings.Contains(targetLower, nameLower) {
			add(name)
		}
	}

	return suggestions
}

// DeriveDefaults picks the icon and color for an auto-created theme by
// matching its name against the concept keywords, falling back to the
// neutral defaults.
func DeriveDefaults(name string) (icon, color string) {
	if idx, ok := conceptFor(normalizeKey(name)); ok {
		return concepts[idx].icon, concepts[idx].color
	}
	return note.DefaultIcon, note.DefaultColor
}

// conceptFor resolves a normalized key to a concept index. Exact keyword
// hits win; otherwise the key matches a concept when it contains one of
// its keywords ("producedesign" resolves to the design group). Scans run
// in table order, keeping the result deterministic.
func conceptFor(key string) (int, bool) {
	if key == "" {
		return 0, false
	}
	if idx, ok := keywordConcept[key]; ok {
		return idx, true
	}
	for i, c := range concepts {
		for _, kw := range c.keywords {
			if utf8.RuneCountInString(kw) < 2 {
				continue
			}
			if strings.Contains(key, kw) {
				return i, true
			}
		}
	}
	return 0, false
}
