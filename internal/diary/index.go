package diary

import (
	"maps"
	"slices"
	"sort"

	"github.com/julianstephens/daylog/internal/logger"
	"github.com/julianstephens/daylog/internal/models"
	"github.com/julianstephens/daylog/internal/utils"
)

// Index owns the fetched wellness entries, activities and events.
// It is not safe for concurrent use; session.Session serializes access.
type Index struct {
	wellness map[string]models.WellnessEntry

	activities    map[models.ActivityID]models.Activity
	activityOrder []models.ActivityID
	// date key -> actionable activity ids, rebuilt whenever activities change
	buckets map[string][]models.ActivityID

	events     map[int64]models.Event
	eventOrder []int64
}

func NewIndex() *Index {
	return &Index{
		wellness:   map[string]models.WellnessEntry{},
		activities: map[models.ActivityID]models.Activity{},
		buckets:    map[string][]models.ActivityID{},
		events:     map[int64]models.Event{},
	}
}

// IndexWellness replaces all wellness entries, keyed by each entry's date id.
func (ix *Index) IndexWellness(entries []models.WellnessEntry) {
	ix.wellness = make(map[string]models.WellnessEntry, len(entries))
	for _, e := range entries {
		if e.ID == "" {
			continue
		}
		ix.wellness[e.ID] = e.Clone()
	}
}

// IndexActivities replaces all activities and rebuilds the per-day buckets.
func (ix *Index) IndexActivities(activities []models.Activity) {
	ix.activities = make(map[models.ActivityID]models.Activity, len(activities))
	ix.activityOrder = make([]models.ActivityID, 0, len(activities))
	for _, a := range activities {
		if _, seen := ix.activities[a.ID]; !seen {
			ix.activityOrder = append(ix.activityOrder, a.ID)
		}
		ix.activities[a.ID] = a.Clone()
	}
	ix.rebuildBuckets()
}

// IndexEvents replaces all events, keeping input order for rendering.
func (ix *Index) IndexEvents(events []models.Event) {
	ix.events = make(map[int64]models.Event, len(events))
	ix.eventOrder = make([]int64, 0, len(events))
	for _, e := range events {
		if _, seen := ix.events[e.ID]; !seen {
			ix.eventOrder = append(ix.eventOrder, e.ID)
		}
		ix.events[e.ID] = e
	}
}

// LookupWellness returns the entry for key, or an empty entry carrying the key.
func (ix *Index) LookupWellness(key string) models.WellnessEntry {
	if e, ok := ix.wellness[key]; ok {
		return e.Clone()
	}
	return models.WellnessEntry{ID: key}
}

// LookupActivities returns the actionable activities on key, ordered by start time.
func (ix *Index) LookupActivities(key string) []models.Activity {
	ids := ix.buckets[key]
	out := make([]models.Activity, 0, len(ids))
	for _, id := range ids {
		out = append(out, ix.activities[id].Clone())
	}
	return out
}

// Activity returns any indexed activity by id, actionable or not.
func (ix *Index) Activity(id models.ActivityID) (models.Activity, bool) {
	a, ok := ix.activities[id]
	if !ok {
		return models.Activity{}, false
	}
	return a.Clone(), true
}

// Activities returns every indexed activity in fetch order.
func (ix *Index) Activities() []models.Activity {
	out := make([]models.Activity, 0, len(ix.activityOrder))
	for _, id := range ix.activityOrder {
		out = append(out, ix.activities[id].Clone())
	}
	return out
}

// Events returns every indexed event in stable order.
func (ix *Index) Events() []models.Event {
	out := make([]models.Event, 0, len(ix.eventOrder))
	for _, id := range ix.eventOrder {
		out = append(out, ix.events[id])
	}
	return out
}

// Event returns an event by id.
func (ix *Index) Event(id int64) (models.Event, bool) {
	e, ok := ix.events[id]
	return e, ok
}

// UpsertWellness shallow-merges partial into the entry for partial.ID, inserting if absent.
// Unset fields in partial never overwrite known values.
func (ix *Index) UpsertWellness(partial models.WellnessEntry) bool {
	if partial.ID == "" {
		return false
	}
	existing, ok := ix.wellness[partial.ID]
	if !ok {
		existing = models.WellnessEntry{ID: partial.ID}
	}
	ix.wellness[partial.ID] = mergeWellness(existing, partial)
	return true
}

// UpsertActivity shallow-merges partial into the activity with id.
// Activities are only created upstream, so an unknown id is reported and ignored.
func (ix *Index) UpsertActivity(id models.ActivityID, partial models.Activity) bool {
	existing, ok := ix.activities[id]
	if !ok {
		return false
	}
	ix.activities[id] = mergeActivity(existing, partial)
	ix.rebuildBuckets()
	return true
}

// UpsertEvent replaces the event at its id with the given object.
func (ix *Index) UpsertEvent(event models.Event) {
	if _, ok := ix.events[event.ID]; !ok {
		ix.eventOrder = append(ix.eventOrder, event.ID)
	}
	ix.events[event.ID] = event
}

// RemoveEvent drops an event, reporting whether it was present.
func (ix *Index) RemoveEvent(id int64) bool {
	if _, ok := ix.events[id]; !ok {
		return false
	}
	delete(ix.events, id)
	ix.eventOrder = slices.DeleteFunc(ix.eventOrder, func(v int64) bool { return v == id })
	return true
}

// Clone returns a deep copy, used to prove failed writes leave state untouched.
func (ix *Index) Clone() *Index {
	cp := &Index{
		wellness:      make(map[string]models.WellnessEntry, len(ix.wellness)),
		activities:    make(map[models.ActivityID]models.Activity, len(ix.activities)),
		activityOrder: slices.Clone(ix.activityOrder),
		buckets:       make(map[string][]models.ActivityID, len(ix.buckets)),
		events:        maps.Clone(ix.events),
		eventOrder:    slices.Clone(ix.eventOrder),
	}
	for k, v := range ix.wellness {
		cp.wellness[k] = v.Clone()
	}
	for k, v := range ix.activities {
		cp.activities[k] = v.Clone()
	}
	for k, v := range ix.buckets {
		cp.buckets[k] = slices.Clone(v)
	}
	return cp
}

// IsActionable reports whether an activity belongs in the editable day view:
// it must be classified and must not come from a read-only external sync.
func IsActionable(a models.Activity) bool {
	return a.IsClassified() && !a.IsReadOnly()
}

func (ix *Index) rebuildBuckets() {
	ix.buckets = map[string][]models.ActivityID{}
	for _, id := range ix.activityOrder {
		a := ix.activities[id]
		if !IsActionable(a) {
			continue
		}
		key, err := utils.LocalDateKey(a.StartDateLocal)
		if err != nil {
			logger.Debug("Skipping activity without a local start date", "id", id, "error", err)
			continue
		}
		ix.buckets[key] = append(ix.buckets[key], id)
	}
	for _, ids := range ix.buckets {
		sort.SliceStable(ids, func(i, j int) bool {
			return ix.activities[ids[i]].StartDateLocal < ix.activities[ids[j]].StartDateLocal
		})
	}
}

func mergeWellness(dst, src models.WellnessEntry) models.WellnessEntry {
	out := dst.Clone()
	outScores := out.Scores()
	for i, s := range src.Scores() {
		if *s.Value != nil {
			v := **s.Value
			*outScores[i].Value = &v
		}
	}
	if !isBlank(src.Comments) {
		out.Comments = models.String(*src.Comments)
	}
	return out
}

func mergeActivity(dst, src models.Activity) models.Activity {
	out := dst.Clone()
	if src.StartDateLocal != "" {
		out.StartDateLocal = src.StartDateLocal
	}
	if !isBlank(src.Type) {
		out.Type = models.String(*src.Type)
	}
	if !isBlank(src.Name) {
		out.Name = models.String(*src.Name)
	}
	if !isBlank(src.Description) {
		out.Description = models.String(*src.Description)
	}
	if src.ICURPE != nil {
		out.ICURPE = models.Int(*src.ICURPE)
	}
	if src.Feel != nil {
		out.Feel = models.Int(*src.Feel)
	}
	if src.Source != "" {
		out.Source = src.Source
	}
	return out
}
