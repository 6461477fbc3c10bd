package api

import "github.com/rutahealth/ruta/internal/models"

// intakeFieldLabels holds the display label for every intake column, in
// questionnaire order (models.IntakeAnswerColumns).
var intakeFieldLabels = map[string]string{
	"preferred_name":           "Preferred name",
	"birthday":                 "Birthday",
	"location":                 "Location",
	"biological_sex":           "Biological sex",
	"goals":                    "Goals",
	"chronic_conditions":       "Chronic conditions",
	"medications_supplements":  "Medications & supplements",
	"pregnancy_status":         "Pregnancy status",
	"has_menstrual_cycle":      "Menstrual cycle",
	"menstrual_symptoms":       "Menstrual symptoms",
	"bowel_movement_frequency": "Bowel movement frequency",
	"bowel_movement_type":      "Bowel movement type",
	"digestive_symptoms":       "Digestive symptoms",
	"other_symptoms":           "Other symptoms",
	"body_temperature":         "Body temperature",
	"nervous_system_signals":   "Nervous system signals",
	"energy_pattern":           "Energy pattern",
	"sleep_pattern":            "Sleep pattern",
	"movement_level":           "Daily movement",
	"appetite_pattern":         "Appetite",
	"diet_type":                "Diet",
	"food_allergies":           "Food allergies & intolerances",
	"emotional_patterns":       "Emotional & stress patterns",
	"birth_history":            "Birth history",
	"past_medications":         "Past medications",
	"significant_history":      "Significant history",
}

type IntakeEntry struct {
	Column string
	Label  string
	Value  models.Answer
}

// buildIntakeEntries flattens an intake row into labelled entries in
// questionnaire order, skipping unanswered questions.
func buildIntakeEntries(intake *models.Intake) []IntakeEntry {
	entries := make([]IntakeEntry, 0, len(models.IntakeAnswerColumns))
	for _, column := range models.IntakeAnswerColumns {
		answer, ok := intake.AnswerByColumn(column)
		if !ok || answer.IsZero() {
			continue
		}
		entries = append(entries, IntakeEntry{
			Column: column,
			Label:  intakeFieldLabels[column],
			Value:  answer,
		})
	}
	return entries
}
