package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Validation errors
var (
	ErrMissingID       = errors.New("event id is required")
	ErrMissingTitle    = errors.New("event title is required")
	ErrMissingStart    = errors.New("event start time is required")
	ErrNegativeBudget  = errors.New("budget total must not be negative")
	ErrInvalidBudget   = errors.New("budget total must be a finite number")
	ErrInvalidStatus   = errors.New("invalid event status")
	ErrNegativeCounter = errors.New("attendee count must not be negative")
)

// Validate checks the field-level invariants of an event. The store does not
// call it; front ends validate user input before handing events over.
func Validate(e Event) error {
	var errs []error
	if strings.TrimSpace(e.ID) == "" {
		errs = append(errs, ErrMissingID)
	}
	if strings.TrimSpace(e.Title) == "" {
		errs = append(errs, ErrMissingTitle)
	}
	if e.StartDateTime.IsZero() {
		errs = append(errs, ErrMissingStart)
	}
	switch total := e.Budget.Total; {
	case math.IsNaN(total) || math.IsInf(total, 0):
		errs = append(errs, ErrInvalidBudget)
	case total < 0:
		errs = append(errs, ErrNegativeBudget)
	}
	if !e.Status.Valid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidStatus, e.Status))
	}
	if e.ExpectedAttendees != nil && *e.ExpectedAttendees < 0 {
		errs = append(errs, fmt.Errorf("expected attendees: %w", ErrNegativeCounter))
	}
	if e.ActualAttendees != nil && *e.ActualAttendees < 0 {
		errs = append(errs, fmt.Errorf("actual attendees: %w", ErrNegativeCounter))
	}
	return errors.Join(errs...)
}
