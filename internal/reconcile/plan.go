package reconcile

import (
	"log/slog"

	"github.com/museboxapp/musebox/internal/backup"
	"github.com/museboxapp/musebox/internal/match"
	"github.com/museboxapp/musebox/internal/note"
)

// MergePlan decides, for every theme name a backup references, what to do
// with it locally: reuse it, remap it onto an existing theme, or create
// it. Built once per import attempt and discarded afterward.
type MergePlan struct {
	// NameMapping has an entry for every referenced name, identity
	// mappings included, so the executor resolves every note the same
	// way.
	NameMapping map[string]string

	// ThemesToCreate lists themes with no local counterpart, in
	// first-reference order, ready to insert. Declared records keep
	// their own icon and color; names only notes mention get derived
	// defaults.
	ThemesToCreate []note.Theme

	// Unresolvable collects names that can neither be matched nor
	// created, such as a name over the length limit in a hand-edited
	// file. Non-empty means the import must not start.
	Unresolvable []string
}

// CanProceed reports whether the executor may run this plan.
func (p *MergePlan) CanProceed() bool {
	return len(p.Unresolvable) == 0
}

// BuildPlan reconciles the document's theme names against the existing
// ones. Resolution per name: present verbatim, then the matcher's
// layered lookup, then scheduled creation with derived defaults.
//
// The logger receives the reconciliation trace (every smart match and
// scheduled creation); nil disables it. Aside from the trace the
// function is pure: the same document and existing list always produce
// the same plan. Existing names are scanned in slice order, so callers
// wanting stable remaps across runs pass a stable order.
func BuildPlan(doc *backup.Document, existing []string, logger *slog.Logger) *MergePlan {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	plan := &MergePlan{NameMapping: make(map[string]string)}

	existingSet := make(map[string]bool, len(existing))
	for _, name := range existing {
		existingSet[name] = true
	}

	// Declared records carry icon/color for their own creation.
	declared := make(map[string]backup.ThemeRecord, len(doc.Themes))
	for _, th := range doc.Themes {
		if _, ok := declared[th.Name]; !ok {
			declared[th.Name] = th
		}
	}

	for _, name := range requiredNames(doc) {
		if existingSet[name] {
			plan.NameMapping[name] = name
			logger.Debug("theme exists verbatim", "name", name)
			continue
		}

		if matched, strategy, ok := match.FindBestMatch(name, existing); ok {
			plan.NameMapping[name] = matched
			logger.Info("smart match",
				"from", name,
				"to", matched,
				"strategy", string(strategy),
			)
			continue
		}

		// No local counterpart. Anything with a usable name is created;
		// the suggestions are advisory context for the caller's warning.
		if _, state := note.CheckThemeName(name); state != note.NameOK {
			plan.Unresolvable = append(plan.Unresolvable, name)
			logger.Warn("theme cannot be created",
				"name", name,
				"reason", state.Reason(),
			)
			continue
		}

		th := note.Theme{Name: name}
		if rec, ok := declared[name]; ok {
			th.Icon = rec.Icon
			th.Color = rec.Color
		} else {
			th.Icon, th.Color = match.DeriveDefaults(name)
		}
		plan.ThemesToCreate = append(plan.ThemesToCreate, th)
		plan.NameMapping[name] = name
		logger.Info("no match found, scheduling theme creation",
			"name", name,
			"icon", th.Icon,
			"color", th.Color,
			"suggestions", match.SuggestAlternatives(name, existing),
		)
	}

	return plan
}

// requiredNames unions the declared theme names with every note's theme
// reference, deduplicated in first-reference order. Empty references are
// left out: the notes carrying them already failed validation, so there
// is nothing to resolve.
func requiredNames(doc *backup.Document) []string {
	seen := make(map[string]bool)
	names := make([]string, 0, len(doc.Themes))

	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	}

	for _, th := range doc.Themes {
		add(th.Name)
	}
	for _, n := range doc.Inspirations {
		add(n.ThemeName)
	}

	return names
}
