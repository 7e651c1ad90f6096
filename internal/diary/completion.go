package diary

import "github.com/julianstephens/daylog/internal/models"

// Completion is presence-based: a field counts once it is set and, for text,
// not the empty string. Zero is a valid score.

// MissingWellnessFields lists the required wellness fields that are unset, by upstream name.
func MissingWellnessFields(entry models.WellnessEntry) []string {
	var missing []string
	for _, s := range entry.Scores() {
		if *s.Value == nil {
			missing = append(missing, s.Field)
		}
	}
	if isBlank(entry.Comments) {
		missing = append(missing, "comments")
	}
	return missing
}

// IsWellnessComplete reports whether every required wellness field is present.
func IsWellnessComplete(entry models.WellnessEntry) bool {
	return len(MissingWellnessFields(entry)) == 0
}

// MissingActivityFields lists the required activity fields that are unset, by upstream name.
func MissingActivityFields(activity models.Activity) []string {
	var missing []string
	if isBlank(activity.Description) {
		missing = append(missing, "description")
	}
	if activity.ICURPE == nil {
		missing = append(missing, "icu_rpe")
	}
	if activity.Feel == nil {
		missing = append(missing, "feel")
	}
	return missing
}

// IsActivityComplete reports whether description, perceived effort and feel are all present.
func IsActivityComplete(activity models.Activity) bool {
	return len(MissingActivityFields(activity)) == 0
}

func isBlank(s *string) bool {
	return s == nil || *s == ""
}
