package reconcile

import (
	"github.com/museboxapp/musebox/internal/errors"
)

// NoteFailure records one note that could not be imported and why.
type NoteFailure struct {
	Index  int              `json:"index"`
	Code   errors.ErrorCode `json:"code"`
	Reason string           `json:"reason"`
}

// ImportReport summarizes one import run. A report is only returned once
// the run is over; callers never observe it mid-build.
type ImportReport struct {
	// CreatedThemes counts themes the run created in the store.
	CreatedThemes int `json:"created_themes"`

	// ReusedThemes counts distinct existing themes the backup's notes
	// landed in, through verbatim or smart-matched names.
	ReusedThemes int `json:"reused_themes"`

	// ImportedNotes counts notes written to the store.
	ImportedNotes int `json:"imported_notes"`

	// FailedNotes lists every note that was not imported, in document
	// order, with the failure code and a human-readable reason.
	FailedNotes []NoteFailure `json:"failed_notes"`

	// MappingsApplied holds only the renames (source != target), so a
	// caller can show the user what the reconciliation changed.
	MappingsApplied map[string]string `json:"mappings_applied"`
}

// reportBuilder accumulates the counters of a running import. Only build
// hands the data out, as a finished ImportReport.
type reportBuilder struct {
	created  int
	reused   map[string]bool
	imported int
	failed   []NoteFailure
	mappings map[string]string
}

func newReportBuilder() *reportBuilder {
	return &reportBuilder{
		reused:   make(map[string]bool),
		mappings: make(map[string]string),
	}
}

func (b *reportBuilder) themeCreated() {
	b.created++
}

// themeReused records a distinct existing theme the import resolved into.
func (b *reportBuilder) themeReused(name string) {
	b.reused[name] = true
}

func (b *reportBuilder) noteImported() {
	b.imported++
}

func (b *reportBuilder) noteFailed(index int, code errors.ErrorCode, reason string) {
	b.failed = append(b.failed, NoteFailure{Index: index, Code: code, Reason: reason})
}

// mappingApplied records a rename. Identity mappings are not reported.
func (b *reportBuilder) mappingApplied(from, to string) {
	if from == to {
		return
	}
	b.mappings[from] = to
}

func (b *reportBuilder) build() *ImportReport {
	failed := make([]NoteFailure, len(b.failed))
	copy(failed, b.failed)

	mappings := make(map[string]string, len(b.mappings))
	for from, to := range b.mappings {
		mappings[from] = to
	}

	return &ImportReport{
		CreatedThemes:   b.created,
		ReusedThemes:    len(b.reused),
		ImportedNotes:   b.imported,
		FailedNotes:     failed,
		MappingsApplied: mappings,
	}
}
