package model

import (
	"strings"
	"time"
)

// Status is the publication state of an event
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Statuses lists every known status in display order
var Statuses = []Status{StatusDraft, StatusPublished, StatusCompleted, StatusCancelled}

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Budget holds the planned spend of an event. The amount is currency-agnostic.
type Budget struct {
	Total float64 `json:"total"`
}

// Location describes where an event takes place
type Location struct {
	City  string `json:"city,omitempty"`
	Venue string `json:"venue,omitempty"`
}

// Event represents a single scheduled event owned by one geo
type Event struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	StartDateTime     time.Time `json:"startDateTime"`
	Budget            Budget    `json:"budget"`
	Status            Status    `json:"status"`
	ExpectedAttendees *int      `json:"expectedAttendees,omitempty"`
	ActualAttendees   *int      `json:"actualAttendees,omitempty"`
	Tags              []string  `json:"tags,omitempty"`
	Location          *Location `json:"location,omitempty"`
}

// Geo represents a geographic region with its events
type Geo struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	DisplayName string  `json:"displayName"`
	Region      string  `json:"region"`
	Events      []Event `json:"events"`
}

// Clone returns a deep copy of the event
func (e Event) Clone() Event {
	out := e
	if e.ExpectedAttendees != nil {
		out.ExpectedAttendees = Int(*e.ExpectedAttendees)
	}
	if e.ActualAttendees != nil {
		out.ActualAttendees = Int(*e.ActualAttendees)
	}
	if e.Tags != nil {
		out.Tags = append([]string(nil), e.Tags...)
	}
	if e.Location != nil {
		loc := *e.Location
		out.Location = &loc
	}
	return out
}

// Normalize returns a copy with an empty tag list stored as nil, the form
// the persisted record decodes to
func (e Event) Normalize() Event {
	out := e.Clone()
	if len(out.Tags) == 0 {
		out.Tags = nil
	}
	return out
}

// Clone returns a deep copy of the geo including its events
func (g Geo) Clone() Geo {
	out := g
	out.Events = CloneEvents(g.Events)
	return out
}

// CloneEvents deep-copies a list of events. The result is never nil.
func CloneEvents(events []Event) []Event {
	out := make([]Event, len(events))
	for i, e := range events {
		out[i] = e.Clone()
	}
	return out
}

// CloneGeos deep-copies a list of geos. The result is never nil.
func CloneGeos(geos []Geo) []Geo {
	out := make([]Geo, len(geos))
	for i, g := range geos {
		out[i] = g.Clone()
	}
	return out
}

// Int returns a pointer to v
func Int(v int) *int {
	return &v
}

// NormalizeTags trims tags, drops empty ones and removes duplicates while
// keeping the first occurrence order. Returns nil when nothing is left.
func NormalizeTags(tags []string) []string {
	var out []string
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
