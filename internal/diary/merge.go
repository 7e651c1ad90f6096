package diary

import "github.com/julianstephens/daylog/internal/models"

// A blank field submitted by the user means "no change", never "clear".

// SanitizeWellness drops blank text fields from a submitted entry. The date id is kept.
func SanitizeWellness(submitted models.WellnessEntry) models.WellnessEntry {
	out := submitted.Clone()
	if isBlank(out.Comments) {
		out.Comments = nil
	}
	return out
}

// SanitizeActivity drops blank text fields from a submitted activity. The id is kept.
func SanitizeActivity(submitted models.Activity) models.Activity {
	out := submitted.Clone()
	if isBlank(out.Type) {
		out.Type = nil
	}
	if isBlank(out.Name) {
		out.Name = nil
	}
	if isBlank(out.Description) {
		out.Description = nil
	}
	return out
}

// Merger applies confirmed remote writes to an Index and then calls onChange so
// the owner can rebuild its views. Callers must only invoke it after the write succeeded.
type Merger struct {
	index    *Index
	onChange func()
}

func NewMerger(ix *Index, onChange func()) *Merger {
	if onChange == nil {
		onChange = func() {}
	}
	return &Merger{index: ix, onChange: onChange}
}

// ApplyWellness merges a written wellness entry.
func (m *Merger) ApplyWellness(submitted models.WellnessEntry) bool {
	if !m.index.UpsertWellness(SanitizeWellness(submitted)) {
		return false
	}
	m.onChange()
	return true
}

// ApplyActivity merges a written activity patch. It reports false for unknown ids.
func (m *Merger) ApplyActivity(id models.ActivityID, submitted models.Activity) bool {
	patch := SanitizeActivity(submitted)
	patch.ID = id
	if !m.index.UpsertActivity(id, patch) {
		return false
	}
	m.onChange()
	return true
}

// ApplyEvent stores the canonical event returned by the server verbatim.
func (m *Merger) ApplyEvent(canonical models.Event) {
	m.index.UpsertEvent(canonical)
	m.onChange()
}

// ApplyEventDelete removes a deleted event.
func (m *Merger) ApplyEventDelete(id int64) bool {
	if !m.index.RemoveEvent(id) {
		return false
	}
	m.onChange()
	return true
}
