// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingField is returned when a required request field is absent or null.
var ErrMissingField = errors.New("field required")

func missingField(name string) error {
	return fmt.Errorf("%s: %w", name, ErrMissingField)
}

// UnmarshalJSON rejects questions without id, text or type. Empty strings
// are fine; absent or null is not.
func (q *QuestionInput) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID       *string  `json:"id"`
		Text     *string  `json:"text"`
		Type     *string  `json:"type"`
		Required bool     `json:"required"`
		Options  []string `json:"options"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch {
	case raw.ID == nil:
		return missingField("question id")
	case raw.Text == nil:
		return missingField("question " + *raw.ID + " text")
	case raw.Type == nil:
		return missingField("question " + *raw.ID + " type")
	}

	*q = QuestionInput{
		ID:       *raw.ID,
		Text:     *raw.Text,
		Type:     *raw.Type,
		Required: raw.Required,
		Options:  raw.Options,
	}
	return nil
}

// UnmarshalJSON requires question_id and a string or list answer.
func (a *AnswerInput) UnmarshalJSON(data []byte) error {
	var raw struct {
		QuestionID *string     `json:"question_id"`
		Answer     AnswerValue `json:"answer"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if raw.QuestionID == nil {
		return missingField("question_id")
	}
	if !raw.Answer.IsValid() {
		return fmt.Errorf("answer for question %s: %w", *raw.QuestionID, ErrInvalidAnswerValue)
	}

	*a = AnswerInput{QuestionID: *raw.QuestionID, Answer: raw.Answer}
	return nil
}
