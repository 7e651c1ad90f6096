package diary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/daylog/internal/constants"
	"github.com/julianstephens/daylog/internal/models"
)

func TestSanitizeWellness(t *testing.T) {
	in := models.WellnessEntry{ID: "2024-01-01", Comments: models.String(""), Mood: models.Int(0)}

	out := SanitizeWellness(in)

	assert.Equal(t, "2024-01-01", out.ID)
	assert.Nil(t, out.Comments)
	assert.Equal(t, 0, *out.Mood)
	assert.NotNil(t, in.Comments, "input must not be modified")
}

func TestSanitizeActivity(t *testing.T) {
	in := models.Activity{
		ID:          "i9",
		Name:        models.String(""),
		Type:        models.String(""),
		Description: models.String("hills"),
		Feel:        models.Int(2),
	}

	out := SanitizeActivity(in)

	assert.Equal(t, models.Activity{ID: "i9", Description: models.String("hills"), Feel: models.Int(2)}, out)
}

func TestMergerSignalsChanges(t *testing.T) {
	ix := NewIndex()
	ix.IndexActivities([]models.Activity{ride("1", "2024-01-01T07:00:00")})
	changes := 0
	m := NewMerger(ix, func() { changes++ })

	assert.True(t, m.ApplyWellness(models.WellnessEntry{ID: "2024-01-01", Mood: models.Int(2), Comments: models.String("")}))
	assert.True(t, m.ApplyActivity("1", models.Activity{Feel: models.Int(3)}))
	assert.False(t, m.ApplyActivity("missing", models.Activity{Feel: models.Int(3)}))
	m.ApplyEvent(models.Event{ID: 5, Category: constants.EventSick, StartDateLocal: "2024-01-01T00:00:00"})
	assert.True(t, m.ApplyEventDelete(5))
	assert.False(t, m.ApplyEventDelete(5))

	assert.Equal(t, 4, changes)
	assert.Nil(t, ix.LookupWellness("2024-01-01").Comments)
}

func TestMergerBlankFieldsNeverClear(t *testing.T) {
	ix := NewIndex()
	a := ride("1", "2024-01-01T07:00:00")
	a.Description = models.String("threshold")
	ix.IndexActivities([]models.Activity{a})
	ix.IndexWellness([]models.WellnessEntry{{ID: "2024-01-01", Comments: models.String("tired")}})
	m := NewMerger(ix, nil)

	m.ApplyActivity("1", models.Activity{Description: models.String(""), Name: models.String("")})
	m.ApplyWellness(models.WellnessEntry{ID: "2024-01-01", Comments: models.String("")})

	got, ok := ix.Activity("1")
	require.True(t, ok)
	assert.Equal(t, "threshold", *got.Description)
	assert.Equal(t, "Ride 1", *got.Name)
	assert.Equal(t, "tired", *ix.LookupWellness("2024-01-01").Comments)
}

func TestMergerEventReplacesVerbatim(t *testing.T) {
	ix := NewIndex()
	ix.IndexEvents([]models.Event{{ID: 1, Category: constants.EventSick, Name: "flu", Description: "bad", StartDateLocal: "2024-01-01T00:00:00"}})
	m := NewMerger(ix, nil)

	canonical := models.Event{ID: 1, Category: constants.EventSick, Name: "flu", StartDateLocal: "2024-01-01T00:00:00", EndDateLocal: "2024-01-03T00:00:00"}
	m.ApplyEvent(canonical)

	got, _ := ix.Event(1)
	assert.Equal(t, canonical, got, "no partial merge: the description is gone because the server dropped it")
}
