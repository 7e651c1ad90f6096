package models

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/daylog/internal/constants"
)

// ActivityID is the upstream activity identifier. Upstream variants send it as a
// number or a string, so it is always held and compared as a string.
type ActivityID string

func (id *ActivityID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ActivityID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid activity id %s: %w", string(data), err)
	}
	*id = ActivityID(n.String())
	return nil
}

func (id ActivityID) String() string {
	return string(id)
}

// Activity is a workout summary created upstream. Only name, type, description
// and the two ratings are editable here.
type Activity struct {
	ID             ActivityID `json:"id,omitempty"`
	StartDateLocal string     `json:"start_date_local,omitempty"`
	Type           *string    `json:"type,omitempty"`
	Name           *string    `json:"name,omitempty"`
	Description    *string    `json:"description,omitempty"`
	ICURPE         *int       `json:"icu_rpe,omitempty"`
	Feel           *int       `json:"feel,omitempty"`
	Source         string     `json:"source,omitempty"`
}

// IsReadOnly reports whether the activity came from an external sync that cannot be edited here.
func (a Activity) IsReadOnly() bool {
	return a.Source == constants.SourceStrava
}

// IsClassified reports whether the activity has a type.
func (a Activity) IsClassified() bool {
	return a.Type != nil && *a.Type != ""
}

// DisplayName returns the name, falling back to the type and then the id.
func (a Activity) DisplayName() string {
	if a.Name != nil && *a.Name != "" {
		return *a.Name
	}
	if a.IsClassified() {
		return *a.Type
	}
	return "activity " + a.ID.String()
}

// Clone returns a deep copy of the activity.
func (a Activity) Clone() Activity {
	return Activity{
		ID:             a.ID,
		StartDateLocal: a.StartDateLocal,
		Type:           cloneString(a.Type),
		Name:           cloneString(a.Name),
		Description:    cloneString(a.Description),
		ICURPE:         cloneInt(a.ICURPE),
		Feel:           cloneInt(a.Feel),
		Source:         a.Source,
	}
}
