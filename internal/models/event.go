package models

import "github.com/julianstephens/daylog/internal/constants"

// Event is a calendar event. StartDateLocal is inclusive, EndDateLocal is exclusive
// (the day after the last affected day).
type Event struct {
	ID             int64                   `json:"id,omitempty"`
	Category       constants.EventCategory `json:"category"`
	Name           string                  `json:"name,omitempty"`
	Description    string                  `json:"description,omitempty"`
	StartDateLocal string                  `json:"start_date_local"`
	EndDateLocal   string                  `json:"end_date_local,omitempty"`
}
