package diary

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/julianstephens/daylog/internal/models"
)

func fullWellness() models.WellnessEntry {
	return models.WellnessEntry{
		ID:           "2024-01-01",
		SleepQuality: models.Int(2),
		Soreness:     models.Int(1),
		Fatigue:      models.Int(3),
		Stress:       models.Int(1),
		Mood:         models.Int(2),
		Motivation:   models.Int(2),
		Injury:       models.Int(1),
		Comments:     models.String("slept badly"),
	}
}

func TestIsWellnessComplete(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.WellnessEntry)
		want   bool
	}{
		{name: "all fields", mutate: func(*models.WellnessEntry) {}, want: true},
		{name: "zero scores count", mutate: func(w *models.WellnessEntry) {
			w.SleepQuality = models.Int(0)
			w.Injury = models.Int(0)
		}, want: true},
		{name: "missing sleep", mutate: func(w *models.WellnessEntry) { w.SleepQuality = nil }, want: false},
		{name: "missing soreness", mutate: func(w *models.WellnessEntry) { w.Soreness = nil }, want: false},
		{name: "missing fatigue", mutate: func(w *models.WellnessEntry) { w.Fatigue = nil }, want: false},
		{name: "missing stress", mutate: func(w *models.WellnessEntry) { w.Stress = nil }, want: false},
		{name: "missing mood", mutate: func(w *models.WellnessEntry) { w.Mood = nil }, want: false},
		{name: "missing motivation", mutate: func(w *models.WellnessEntry) { w.Motivation = nil }, want: false},
		{name: "missing injury", mutate: func(w *models.WellnessEntry) { w.Injury = nil }, want: false},
		{name: "missing comments", mutate: func(w *models.WellnessEntry) { w.Comments = nil }, want: false},
		{name: "empty comments", mutate: func(w *models.WellnessEntry) { w.Comments = models.String("") }, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := fullWellness()
			tt.mutate(&w)
			assert.Equal(t, tt.want, IsWellnessComplete(w))
		})
	}
}

func TestMissingWellnessFields(t *testing.T) {
	assert.Empty(t, MissingWellnessFields(fullWellness()))

	missing := MissingWellnessFields(models.WellnessEntry{ID: "2024-01-02", Mood: models.Int(0)})
	assert.Equal(t, []string{"sleepQuality", "soreness", "fatigue", "stress", "motivation", "injury", "comments"}, missing)
}

func TestIsActivityComplete(t *testing.T) {
	tests := []struct {
		name     string
		activity models.Activity
		want     bool
	}{
		{
			name:     "zero ratings are valid",
			activity: models.Activity{Description: models.String("x"), ICURPE: models.Int(0), Feel: models.Int(0)},
			want:     true,
		},
		{
			name:     "missing rpe",
			activity: models.Activity{Description: models.String("x"), ICURPE: nil, Feel: models.Int(1)},
			want:     false,
		},
		{
			name:     "missing feel",
			activity: models.Activity{Description: models.String("x"), ICURPE: models.Int(5)},
			want:     false,
		},
		{
			name:     "empty description",
			activity: models.Activity{Description: models.String(""), ICURPE: models.Int(5), Feel: models.Int(2)},
			want:     false,
		},
		{
			name:     "nothing set",
			activity: models.Activity{},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsActivityComplete(tt.activity))
		})
	}
}
