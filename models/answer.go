// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"bytes"
	"encoding/json"
	"errors"
)

// ValueKind tags which variant an AnswerValue holds.
type ValueKind int

const (
	KindNone ValueKind = iota
	KindText
	KindList
)

var ErrInvalidAnswerValue = errors.New("answer must be a string or a list of strings")

// AnswerValue is either a single string or an ordered list of strings.
// On the wire it is the bare JSON string or JSON array.
type AnswerValue struct {
	kind ValueKind
	text string
	list []string
}

func NewTextValue(s string) AnswerValue {
	return AnswerValue{kind: KindText, text: s}
}

func NewListValue(items []string) AnswerValue {
	if items == nil {
		items = []string{}
	}
	return AnswerValue{kind: KindList, list: items}
}

func (v AnswerValue) Kind() ValueKind { return v.kind }
func (v AnswerValue) IsList() bool    { return v.kind == KindList }
func (v AnswerValue) IsValid() bool   { return v.kind != KindNone }

// Text returns the single-string variant, false for lists.
func (v AnswerValue) Text() (string, bool) {
	return v.text, v.kind == KindText
}

// List returns the list variant, false for single strings.
func (v AnswerValue) List() ([]string, bool) {
	return v.list, v.kind == KindList
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindText:
		return json.Marshal(v.text)
	case KindList:
		return json.Marshal(v.list)
	default:
		return []byte("null"), nil
	}
}

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ErrInvalidAnswerValue
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = NewTextValue(s)
		return nil
	case '[':
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return ErrInvalidAnswerValue
		}
		*v = NewListValue(items)
		return nil
	case 'n':
		// null leaves the value unset; handlers reject it
		*v = AnswerValue{}
		return nil
	default:
		return ErrInvalidAnswerValue
	}
}
