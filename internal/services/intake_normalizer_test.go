package services

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/rutahealth/ruta/internal/models"
)

func choiceField(key string, selected []string, options ...TallyOption) TallyField {
	raw, _ := json.Marshal(selected)
	return TallyField{Key: key, Type: "MULTIPLE_CHOICE", Value: raw, Options: options}
}

func textField(key string, value string) TallyField {
	raw, _ := json.Marshal(value)
	return TallyField{Key: key, Type: "INPUT_TEXT", Value: raw}
}

func TestNormalizeResolvesOptionIDs(t *testing.T) {
	fields := []TallyField{
		choiceField("question_4KMBaX", []string{"opt-a", "opt-c"},
			TallyOption{ID: "opt-a", Text: "Bloating"},
			TallyOption{ID: "opt-b", Text: "Heartburn"},
			TallyOption{ID: "opt-c", Text: "Constipation"},
		),
	}

	flat := NormalizeTallyFields(fields)
	answer := flat["question_4KMBaX"]
	if !answer.IsMulti() {
		t.Fatalf("two selections should stay a list, got %+v", answer)
	}
	if got := answer.Values(); !reflect.DeepEqual(got, []string{"Bloating", "Constipation"}) {
		t.Fatalf("unexpected resolved values: %v", got)
	}
}

func TestNormalizeCollapsesSingleSelection(t *testing.T) {
	fields := []TallyField{
		choiceField("question_l6xqbk", []string{"opt-f"},
			TallyOption{ID: "opt-f", Text: "Female"},
			TallyOption{ID: "opt-m", Text: "Male"},
		),
	}

	answer := NormalizeTallyFields(fields)["question_l6xqbk"]
	if answer.IsMulti() {
		t.Fatalf("single selection should collapse to a scalar, got %+v", answer)
	}
	if answer.Text != "Female" {
		t.Fatalf("unexpected scalar: %q", answer.Text)
	}
}

func TestNormalizeDropsUnknownOptionIDs(t *testing.T) {
	fields := []TallyField{
		choiceField("question_Pz7DdV", []string{"opt-gone"},
			TallyOption{ID: "opt-cramps", Text: "Cramps"},
		),
	}

	answer := NormalizeTallyFields(fields)["question_Pz7DdV"]
	if !answer.IsZero() {
		t.Fatalf("selection without a matching option should yield no value, got %+v", answer)
	}
}

func TestNormalizeKeepsScalarsVerbatim(t *testing.T) {
	fields := []TallyField{
		textField("question_d9ONWo", "Maya"),
		textField("question_Y41R5B", "1991-04-02"),
	}

	flat := NormalizeTallyFields(fields)
	if flat["question_d9ONWo"].Text != "Maya" {
		t.Fatalf("unexpected name: %+v", flat["question_d9ONWo"])
	}
	if flat["question_Y41R5B"].Text != "1991-04-02" {
		t.Fatalf("unexpected date: %+v", flat["question_Y41R5B"])
	}
}

func TestMapIntakeColumnsDropsUnknownKeys(t *testing.T) {
	flat := map[string]models.Answer{
		"question_d9ONWo":   models.TextAnswer("Maya"),
		"question_unmapped": models.TextAnswer("ignored"),
		TallyUserIDFieldKey: models.TextAnswer("user-1"),
		"question_o2qD9e":   models.TextAnswer("7-8 hours"),
	}

	columns := MapIntakeColumns(flat)
	if len(columns) != 2 {
		t.Fatalf("expected 2 mapped columns, got %d: %v", len(columns), columns)
	}
	if columns["preferred_name"].Text != "Maya" {
		t.Fatalf("preferred_name not mapped: %v", columns)
	}
	if columns["sleep_pattern"].Text != "7-8 hours" {
		t.Fatalf("sleep_pattern not mapped: %v", columns)
	}
}

func TestMapCoversEveryIntakeColumn(t *testing.T) {
	mapped := make(map[string]bool, len(tallyColumnByFieldKey))
	for _, column := range tallyColumnByFieldKey {
		if mapped[column] {
			t.Fatalf("column %q mapped from more than one field key", column)
		}
		mapped[column] = true
	}
	for _, column := range models.IntakeAnswerColumns {
		if !mapped[column] {
			t.Fatalf("column %q has no field key mapping", column)
		}
	}
}

func TestWebhookUserID(t *testing.T) {
	payload := &TallyWebhook{Data: TallyPayload{Fields: []TallyField{
		textField("question_d9ONWo", "Maya"),
		textField(TallyUserIDFieldKey, "  user-123  "),
	}}}
	if got := payload.UserID(); got != "user-123" {
		t.Fatalf("unexpected user id: %q", got)
	}

	empty := &TallyWebhook{Data: TallyPayload{Fields: []TallyField{
		textField("question_d9ONWo", "Maya"),
	}}}
	if got := empty.UserID(); got != "" {
		t.Fatalf("missing field should yield empty id, got %q", got)
	}
}
