package models

// WellnessEntry is one day's subjective wellness record. ID is the date key (YYYY-MM-DD).
// Nil fields are unset; the upstream bulk update never clears a field that is omitted.
type WellnessEntry struct {
	ID           string  `json:"id"`
	SleepQuality *int    `json:"sleepQuality,omitempty"`
	Soreness     *int    `json:"soreness,omitempty"`
	Fatigue      *int    `json:"fatigue,omitempty"`
	Stress       *int    `json:"stress,omitempty"`
	Mood         *int    `json:"mood,omitempty"`
	Motivation   *int    `json:"motivation,omitempty"`
	Injury       *int    `json:"injury,omitempty"`
	Comments     *string `json:"comments,omitempty"`
}

// Clone returns a deep copy of the entry.
func (w WellnessEntry) Clone() WellnessEntry {
	return WellnessEntry{
		ID:           w.ID,
		SleepQuality: cloneInt(w.SleepQuality),
		Soreness:     cloneInt(w.Soreness),
		Fatigue:      cloneInt(w.Fatigue),
		Stress:       cloneInt(w.Stress),
		Mood:         cloneInt(w.Mood),
		Motivation:   cloneInt(w.Motivation),
		Injury:       cloneInt(w.Injury),
		Comments:     cloneString(w.Comments),
	}
}

// Scores exposes the numeric fields by their upstream names, in display order.
func (w *WellnessEntry) Scores() []Score {
	return []Score{
		{Field: "sleepQuality", Label: "Sleep", Value: &w.SleepQuality},
		{Field: "soreness", Label: "Soreness", Value: &w.Soreness},
		{Field: "fatigue", Label: "Fatigue", Value: &w.Fatigue},
		{Field: "stress", Label: "Stress", Value: &w.Stress},
		{Field: "mood", Label: "Mood", Value: &w.Mood},
		{Field: "motivation", Label: "Motivation", Value: &w.Motivation},
		{Field: "injury", Label: "Injury", Value: &w.Injury},
	}
}

// Score addresses one numeric wellness field.
type Score struct {
	Field string
	Label string
	Value **int
}
