package backup

import (
	"encoding/json"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/museboxapp/musebox/internal/errors"
	"github.com/museboxapp/musebox/internal/note"
)

// DefaultMaxContentChars is the content limit of the backup format itself.
// A local configuration may lower it for import.
const DefaultMaxContentChars = 1000

// ParseOptions controls how record-level violations are handled.
type ParseOptions struct {
	// BatchTolerant collects note-level violations instead of failing the
	// parse, so one bad note cannot block the rest of the batch. Default
	// (false) is strict: any invalid note fails the whole parse.
	BatchTolerant bool

	// MaxContentChars overrides the note content limit.
	// Zero means DefaultMaxContentChars.
	MaxContentChars int
}

// RecordError describes one invalid record inside an otherwise readable backup.
type RecordError struct {
	Index  int              `json:"index"`
	Code   errors.ErrorCode `json:"code"`
	Reason string           `json:"reason"`
}

// ValidationResult collects record-level findings from a parse.
// Document-level failures are returned as errors instead.
type ValidationResult struct {
	// ThemeErrors lists theme records that were reported and excluded
	// from the document. These never abort the parse.
	ThemeErrors []RecordError

	// NoteErrors lists note records that failed validation. The notes
	// stay in the document so indices remain stable; the import skips
	// them. In strict mode the first entry doubles as the parse error.
	NoteErrors []RecordError
}

// Parse deserializes and validates a backup document.
//
// Fatal outcomes (nil document, non-nil error): undecodable bytes
// (MALFORMED), an unknown or missing version (UNSUPPORTED_VERSION), and a
// document whose shape does not match the format (STRUCTURAL_INVALID).
// Nothing downstream runs after a fatal outcome, so no store mutation can
// have happened.
//
// Record-level outcomes land in the ValidationResult. Theme records with
// unusable names are excluded and reported. Note records are validated
// for content length, blankness, and a present theme reference; in strict
// mode the first violation fails the parse.
func Parse(raw []byte, opts ParseOptions) (*Document, *ValidationResult, error) {
	maxChars := opts.MaxContentChars
	if maxChars <= 0 {
		maxChars = DefaultMaxContentChars
	}

	// Generic decode first: undecodable bytes are malformed, full stop.
	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return nil, nil, errors.NewMalformed(err)
	}

	top, ok := instance.(map[string]any)
	if !ok {
		return nil, nil, errors.NewStructuralInvalid("top level is not an object")
	}

	// Version gate before shape checks, so an old backup reports as
	// unsupported rather than structurally broken.
	version, _ := top["version"].(string)
	if version != SupportedVersion {
		return nil, nil, errors.NewUnsupportedVersion(version, SupportedVersion)
	}

	if err := compiledSchema.Validate(instance); err != nil {
		return nil, nil, errors.NewStructuralInvalid(schemaDetail(err))
	}

	// Shape is verified, so the typed decode only fails on numeric edge
	// cases the schema tolerates (e.g. floats in integer fields).
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nil, errors.NewStructuralInvalid(err.Error())
	}

	result := &ValidationResult{}

	// Theme records: unusable names are reported and the record dropped.
	kept := make([]ThemeRecord, 0, len(doc.Themes))
	for i, th := range doc.Themes {
		name, state := note.CheckThemeName(th.Name)
		if state != note.NameOK {
			result.ThemeErrors = append(result.ThemeErrors, RecordError{
				Index:  i,
				Code:   errors.ErrStructuralInvalid,
				Reason: state.Reason(),
			})
			continue
		}
		th.Name = name
		if strings.TrimSpace(th.Icon) == "" {
			th.Icon = note.DefaultIcon
		}
		if !note.ValidColorHex(th.Color) {
			th.Color = note.DefaultColor
		}
		kept = append(kept, th)
	}
	doc.Themes = kept

	// Note records keep their positions; violations are recorded per index.
	for i := range doc.Inspirations {
		doc.Inspirations[i].ThemeName = strings.TrimSpace(doc.Inspirations[i].ThemeName)

		reason := ""
		if check := note.CheckContent(doc.Inspirations[i].Content, maxChars); !check.OK() {
			reason = check.Reason()
		} else if doc.Inspirations[i].ThemeName == "" {
			reason = "theme name is missing"
		}
		if reason == "" {
			continue
		}

		result.NoteErrors = append(result.NoteErrors, RecordError{
			Index:  i,
			Code:   errors.ErrSemanticInvalid,
			Reason: reason,
		})
	}

	if !opts.BatchTolerant && len(result.NoteErrors) > 0 {
		first := result.NoteErrors[0]
		return nil, result, errors.NewSemanticInvalid(first.Index, first.Reason)
	}

	return &doc, result, nil
}

// InvalidNoteReasons maps each failed note index to its reason, for
// callers that fold the findings into a per-note report.
func (r *ValidationResult) InvalidNoteReasons() map[int]string {
	if r == nil || len(r.NoteErrors) == 0 {
		return nil
	}
	reasons := make(map[int]string, len(r.NoteErrors))
	for _, re := range r.NoteErrors {
		reasons[re.Index] = re.Reason
	}
	return reasons
}

// schemaDetail flattens a jsonschema validation error to its first leaf
// cause, which names the offending location.
func schemaDetail(err error) string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err.Error()
	}
	leaf := ve
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}
	loc := leaf.InstanceLocation
	if loc == "" {
		loc = "document"
	}
	return loc + ": " + leaf.Message
}
