package services

import (
	"encoding/json"

	"github.com/rutahealth/ruta/internal/models"
)

// tallyColumnByFieldKey is the fixed map from Tally question keys to
// comprehensive_intake columns. Keys not listed here are dropped.
var tallyColumnByFieldKey = map[string]string{
	"question_d9ONWo": "preferred_name",           // "First things first, what would you like us to call you?"
	"question_Y41R5B": "birthday",                 // "When's your birthday?"
	"question_D7jK4R": "location",                 // "Where are you living?"
	"question_l6xqbk": "biological_sex",           // "What's your biological sex?"
	"question_RDAdG9": "goals",                    // "What do you hope to get out of Ruta?"
	"question_o2qDbP": "chronic_conditions",       // "Do you have any chronic conditions?"
	"question_GRZKxZ": "medications_supplements",  // "Are you taking any meds or supplements?"
	"question_O76lDR": "pregnancy_status",         // "Are you pregnant, breastfeeding, or planning to be?"
	"question_VzKjLg": "has_menstrual_cycle",      // "Do you have a menstrual cycle?"
	"question_Pz7DdV": "menstrual_symptoms",       // "Do you experience any of the following related to your menstrual cycle?"
	"question_Ex25k4": "bowel_movement_frequency", // "How often do you have a bowel movement?"
	"question_roeBjN": "bowel_movement_type",      // "How would you describe your bowel movements?"
	"question_4KMBaX": "digestive_symptoms",       // "Do you notice any of the following related to your digestion?"
	"question_jljbea": "other_symptoms",           // "Do you experience any other symptoms?"
	"question_2KpBjj": "body_temperature",         // "How does your body temperature run?"
	"question_xJAjVr": "nervous_system_signals",   // "Do you notice any of these nervous system signals?"
	"question_RDAdWd": "energy_pattern",           // "How's your energy throughout the day?"
	"question_o2qD9e": "sleep_pattern",            // "How's your sleep?"
	"question_GRZKep": "movement_level",           // "What does your daily movement look like?"
	"question_O76lQ7": "appetite_pattern",         // "How's your appetite lately?"
	"question_VzKjpJ": "diet_type",                // "Do you eat according to a specific diet?"
	"question_Pz7DR5": "food_allergies",           // "Do you have any food allergies or intolerances?"
	"question_Ex25qX": "emotional_patterns",       // "Do you experience any of these emotional or stress patterns?"
	"question_roeBDl": "birth_history",            // "What's your birth history?"
	"question_4KMBak": "past_medications",         // "Have you ever taken any of these in the past?"
	"question_jljbex": "significant_history",      // "Do you have a history of any of the following?"
}

// NormalizeTallyFields flattens the ordered field descriptors into a
// key -> answer map. Choice selections are resolved to their display
// text through the field's own options list: a single resolved
// selection collapses to a scalar, several stay a list, and selected
// ids missing from the options contribute nothing. Scalar values pass
// through untouched.
func NormalizeTallyFields(fields []TallyField) map[string]models.Answer {
	flat := make(map[string]models.Answer, len(fields))
	for _, field := range fields {
		if field.Key == "" {
			continue
		}
		flat[field.Key] = resolveFieldValue(field)
	}
	return flat
}

func resolveFieldValue(field TallyField) models.Answer {
	var selectedIDs []string
	if err := json.Unmarshal(field.Value, &selectedIDs); err == nil {
		if len(selectedIDs) == 0 {
			return models.Answer{}
		}
		return resolveSelectedOptions(field.Options, selectedIDs)
	}

	var answer models.Answer
	if err := answer.UnmarshalJSON(field.Value); err != nil {
		return models.Answer{}
	}
	return answer
}

func resolveSelectedOptions(options []TallyOption, selectedIDs []string) models.Answer {
	selected := make(map[string]struct{}, len(selectedIDs))
	for _, id := range selectedIDs {
		selected[id] = struct{}{}
	}

	// Resolution follows option order, matching the form's layout.
	texts := make([]string, 0, len(selectedIDs))
	for _, option := range options {
		if _, ok := selected[option.ID]; ok {
			texts = append(texts, option.Text)
		}
	}

	switch len(texts) {
	case 0:
		return models.Answer{}
	case 1:
		return models.TextAnswer(texts[0])
	default:
		return models.MultiAnswer(texts...)
	}
}

// MapIntakeColumns applies the fixed field-key table, returning answers
// keyed by intake column name. Unknown keys never appear in the output.
func MapIntakeColumns(flat map[string]models.Answer) map[string]models.Answer {
	columns := make(map[string]models.Answer, len(tallyColumnByFieldKey))
	for fieldKey, answer := range flat {
		column, known := tallyColumnByFieldKey[fieldKey]
		if !known {
			continue
		}
		columns[column] = answer
	}
	return columns
}
