package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/daylog/internal/constants"
	apperrors "github.com/julianstephens/daylog/internal/errors"
	"github.com/julianstephens/daylog/internal/models"
)

func strPtr(s string) *string { return &s }

func TestAddEvent(t *testing.T) {
	cmd := EventAddCmd{Category: " sick ", Name: "flu", Start: "yesterday"}

	e, err := cmd.Event("2024-01-14")

	require.NoError(t, err)
	assert.Equal(t, constants.EventSick, e.Category)
	assert.Equal(t, "2024-01-13T00:00:00", e.StartDateLocal)
	assert.Equal(t, "2024-01-14T00:00:00", e.EndDateLocal)
	assert.Zero(t, e.ID)
}

func TestEditEvent(t *testing.T) {
	existing := models.Event{
		ID:             4,
		Category:       constants.EventHoliday,
		Name:           "trip",
		StartDateLocal: "2024-01-10T00:00:00",
		EndDateLocal:   "2024-01-13T00:00:00",
	}

	tests := []struct {
		name      string
		cmd       EventEditCmd
		wantStart string
		wantEnd   string
		wantName  string
	}{
		{"name only", EventEditCmd{Name: strPtr("beach")}, "2024-01-10T00:00:00", "2024-01-13T00:00:00", "beach"},
		{"extend", EventEditCmd{End: strPtr("2024-01-14")}, "2024-01-10T00:00:00", "2024-01-15T00:00:00", "trip"},
		{"start past end", EventEditCmd{Start: strPtr("2024-01-13")}, "2024-01-13T00:00:00", "2024-01-14T00:00:00", "trip"},
		{"both", EventEditCmd{Start: strPtr("2024-01-01"), End: strPtr("2024-01-02")}, "2024-01-01T00:00:00", "2024-01-03T00:00:00", "trip"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cmd.Apply(existing, "2024-01-14")
			require.NoError(t, err)
			assert.Equal(t, int64(4), got.ID)
			assert.Equal(t, tt.wantStart, got.StartDateLocal)
			assert.Equal(t, tt.wantEnd, got.EndDateLocal)
			assert.Equal(t, tt.wantName, got.Name)
		})
	}

	backwards := EventEditCmd{End: strPtr("2024-01-01")}
	_, err := backwards.Apply(existing, "2024-01-14")
	assert.True(t, apperrors.IsValidation(err))
}
