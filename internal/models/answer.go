package models

import (
	"encoding/json"
	"strings"
)

// Answer holds one intake answer. Tally delivers answers either as free
// text or as a set of selected choices, and the stored JSON keeps that
// shape: a bare string for a single value, an array for multiple.
type Answer struct {
	Text  string
	Multi []string
}

func TextAnswer(value string) Answer {
	return Answer{Text: value}
}

func MultiAnswer(values ...string) Answer {
	return Answer{Multi: values}
}

func (answer Answer) IsZero() bool {
	return answer.Text == "" && answer.Multi == nil
}

func (answer Answer) IsMulti() bool {
	return answer.Multi != nil
}

// Values returns the answer as a list regardless of shape.
func (answer Answer) Values() []string {
	if answer.Multi != nil {
		return answer.Multi
	}
	if answer.Text == "" {
		return nil
	}
	return []string{answer.Text}
}

func (answer Answer) String() string {
	if answer.Multi != nil {
		return strings.Join(answer.Multi, ", ")
	}
	return answer.Text
}

func (answer Answer) MarshalJSON() ([]byte, error) {
	if answer.Multi != nil {
		return json.Marshal(answer.Multi)
	}
	if answer.Text == "" {
		return []byte("null"), nil
	}
	return json.Marshal(answer.Text)
}

func (answer *Answer) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*answer = Answer{}
		return nil
	}

	if strings.HasPrefix(trimmed, "[") {
		values := make([]string, 0)
		if err := json.Unmarshal(data, &values); err != nil {
			return err
		}
		*answer = Answer{Multi: values}
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*answer = Answer{Text: text}
		return nil
	}

	// Numbers and booleans pass through as their literal text.
	*answer = Answer{Text: trimmed}
	return nil
}
