package services

import (
	"encoding/json"
	"strings"
)

// TallyUserIDFieldKey is the hidden form field that carries the
// authenticated user's id into every submission. A payload without it
// cannot be attributed and is rejected before normalization.
const TallyUserIDFieldKey = "question_bdVV96_173643ff-973c-4990-b125-0fe255b0ab67"

// TallyWebhook is the envelope Tally posts on each form submission.
type TallyWebhook struct {
	EventID   string       `json:"eventId"`
	EventType string       `json:"eventType"`
	CreatedAt string       `json:"createdAt"`
	Data      TallyPayload `json:"data"`
}

type TallyPayload struct {
	ResponseID   string       `json:"responseId"`
	SubmissionID string       `json:"submissionId"`
	RespondentID string       `json:"respondentId"`
	FormID       string       `json:"formId"`
	FormName     string       `json:"formName"`
	CreatedAt    string       `json:"createdAt"`
	Fields       []TallyField `json:"fields"`
}

// TallyField is one answered question. Value is either a scalar (free
// text, date, number) or a list of selected option ids; for choice
// questions Options maps those ids to display text.
type TallyField struct {
	Key     string          `json:"key"`
	Label   string          `json:"label"`
	Type    string          `json:"type"`
	Value   json.RawMessage `json:"value"`
	Options []TallyOption   `json:"options"`
}

type TallyOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// UserID extracts the hidden user-id field value, if present.
func (payload *TallyWebhook) UserID() string {
	for _, field := range payload.Data.Fields {
		if field.Key != TallyUserIDFieldKey {
			continue
		}
		var value string
		if err := json.Unmarshal(field.Value, &value); err != nil {
			return ""
		}
		return strings.TrimSpace(value)
	}
	return ""
}
