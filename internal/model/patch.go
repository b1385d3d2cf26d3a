package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Nullable is a patch field for optional event attributes. Set marks the
// field as present; a present field with a nil Value clears the attribute.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// Some returns a present field holding v
func Some[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

// Null returns a present field that clears the attribute
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// EventPatch is a partial event. Fields left nil (or unset) are untouched by
// Apply; present fields replace the event's value wholesale.
type EventPatch struct {
	Title             *string
	Description       *string
	StartDateTime     *time.Time
	Budget            *Budget
	Status            *Status
	ExpectedAttendees Nullable[int]
	ActualAttendees   Nullable[int]
	Tags              Nullable[[]string]
	Location          Nullable[Location]
}

// Empty reports whether the patch carries no fields
func (p EventPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.StartDateTime == nil &&
		p.Budget == nil && p.Status == nil && !p.ExpectedAttendees.Set &&
		!p.ActualAttendees.Set && !p.Tags.Set && !p.Location.Set
}

// Apply returns a copy of e with the patch merged in
func (p EventPatch) Apply(e Event) Event {
	out := e.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.StartDateTime != nil {
		out.StartDateTime = *p.StartDateTime
	}
	if p.Budget != nil {
		out.Budget = *p.Budget
	}
	if p.Status != nil {
		out.Status = *p.Status
	}
	if p.ExpectedAttendees.Set {
		out.ExpectedAttendees = clonePtr(p.ExpectedAttendees.Value)
	}
	if p.ActualAttendees.Set {
		out.ActualAttendees = clonePtr(p.ActualAttendees.Value)
	}
	if p.Tags.Set {
		out.Tags = nil
		if p.Tags.Value != nil && len(*p.Tags.Value) > 0 {
			out.Tags = append([]string(nil), (*p.Tags.Value)...)
		}
	}
	if p.Location.Set {
		out.Location = clonePtr(p.Location.Value)
	}
	return out
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// UnmarshalJSON decodes a partial event object. A key that is present marks
// the field as present, and null clears optional attributes.
func (p *EventPatch) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var out EventPatch
	for key, value := range raw {
		var err error
		switch key {
		case "title":
			err = decodeRequired(value, &out.Title)
		case "description":
			err = decodeRequired(value, &out.Description)
		case "startDateTime":
			err = decodeRequired(value, &out.StartDateTime)
		case "budget":
			err = decodeRequired(value, &out.Budget)
		case "status":
			err = decodeRequired(value, &out.Status)
		case "expectedAttendees":
			err = decodeNullable(value, &out.ExpectedAttendees)
		case "actualAttendees":
			err = decodeNullable(value, &out.ActualAttendees)
		case "tags":
			err = decodeNullable(value, &out.Tags)
		case "location":
			err = decodeNullable(value, &out.Location)
		case "id":
			return fmt.Errorf("event id cannot be patched")
		default:
			return fmt.Errorf("unknown event field %q", key)
		}
		if err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
	}
	*p = out
	return nil
}

func decodeRequired[T any](value json.RawMessage, dst **T) error {
	if isNull(value) {
		return fmt.Errorf("field cannot be null")
	}
	var v T
	if err := json.Unmarshal(value, &v); err != nil {
		return err
	}
	*dst = &v
	return nil
}

func decodeNullable[T any](value json.RawMessage, dst *Nullable[T]) error {
	if isNull(value) {
		*dst = Null[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(value, &v); err != nil {
		return err
	}
	*dst = Some(v)
	return nil
}

func isNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
