// Package export renders event lists as iCalendar, CSV or JSON documents.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/klabast/wb-services/geo-events/internal/model"
)

// Supported formats
const (
	FormatICS  = "ics"
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// ICS constants
const (
	ICSProductID    = "-//KlaBast//Geo Events//EN"
	ICSUIDDomain    = "geo-events.local"
	DefaultDuration = time.Hour
)

// ErrUnknownFormat is returned by Write for an unsupported format
var ErrUnknownFormat = errors.New("unknown export format")

// Options tune the rendered documents
type Options struct {
	// Now stamps DTSTAMP and generatedAt. Zero means time.Now().
	Now time.Time
	// Duration is the assumed event length for DTEND. Zero means one hour.
	Duration time.Duration
	// Reminders adds one alarm per entry, each that long before the start.
	Reminders []time.Duration
}

func (o Options) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

// Formats lists the supported export formats
var Formats = []string{FormatICS, FormatCSV, FormatJSON}

// CheckFormat returns ErrUnknownFormat for an unsupported format
func CheckFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return nil
}

// Write renders events for geo in the given format
func Write(w io.Writer, format string, geo model.Geo, events []model.Event, opts Options) error {
	switch format {
	case FormatICS:
		return WriteICS(w, geo, events, opts)
	case FormatCSV:
		return WriteCSV(w, events)
	case FormatJSON:
		return WriteJSON(w, geo, events, opts)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Filename returns a download-style file name for an export
func Filename(geoID, format string) string {
	return fmt.Sprintf("events_%s.%s", geoID, format)
}

// icsWriter writes CRLF-terminated content lines and keeps the first error
type icsWriter struct {
	w   io.Writer
	err error
}

func (iw *icsWriter) line(format string, args ...any) {
	if iw.err != nil {
		return
	}
	_, iw.err = fmt.Fprintf(iw.w, format+"\r\n", args...)
}

// WriteICS generates an iCalendar document with optional reminders
func WriteICS(w io.Writer, geo model.Geo, events []model.Event, opts Options) error {
	iw := &icsWriter{w: w}
	stamp := opts.now().UTC().Format("20060102T150405Z")
	duration := opts.Duration
	if duration <= 0 {
		duration = DefaultDuration
	}

	// ICS header
	iw.line("BEGIN:VCALENDAR")
	iw.line("VERSION:2.0")
	iw.line("PRODID:%s", ICSProductID)
	iw.line("X-WR-CALNAME:%s", escapeText(geo.DisplayName+" Events"))
	iw.line("CALSCALE:GREGORIAN")

	for _, event := range events {
		start := event.StartDateTime.UTC()
		iw.line("BEGIN:VEVENT")
		iw.line("UID:%s-%s@%s", event.ID, geo.ID, ICSUIDDomain)
		iw.line("DTSTAMP:%s", stamp)
		iw.line("DTSTART:%s", start.Format("20060102T150405Z"))
		iw.line("DTEND:%s", start.Add(duration).Format("20060102T150405Z"))
		iw.line("SUMMARY:%s", escapeText(event.Title))
		if event.Description != "" {
			iw.line("DESCRIPTION:%s", escapeText(event.Description))
		}
		iw.line("LOCATION:%s", escapeText(locationText(geo, event)))
		iw.line("STATUS:%s", icsStatus(event.Status))
		if len(event.Tags) > 0 {
			escaped := make([]string, len(event.Tags))
			for i, t := range event.Tags {
				escaped[i] = escapeText(t)
			}
			iw.line("CATEGORIES:%s", strings.Join(escaped, ","))
		}
		for _, before := range opts.Reminders {
			addAlarm(iw, before, event.Title)
		}
		iw.line("END:VEVENT")
	}

	iw.line("END:VCALENDAR")
	return iw.err
}

// addAlarm adds a display alarm firing `before` ahead of the event start
func addAlarm(iw *icsWriter, before time.Duration, description string) {
	iw.line("BEGIN:VALARM")
	iw.line("ACTION:DISPLAY")
	iw.line("DESCRIPTION:%s", escapeText("Reminder: "+description))
	iw.line("TRIGGER:%s", Trigger(before))
	iw.line("END:VALARM")
}

// Trigger formats an offset before the event start as an ISO 8601 duration.
// Negative offsets yield a trigger after the start.
func Trigger(before time.Duration) string {
	totalMinutes := int(before.Minutes())
	sign := "-"
	if totalMinutes < 0 {
		sign = ""
		totalMinutes = -totalMinutes
	}
	days := totalMinutes / (24 * 60)
	remainingMinutes := totalMinutes % (24 * 60)
	hours := remainingMinutes / 60
	minutes := remainingMinutes % 60
	return fmt.Sprintf("%sP%dDT%dH%dM", sign, days, hours, minutes)
}

func locationText(geo model.Geo, e model.Event) string {
	if e.Location != nil {
		parts := make([]string, 0, 2)
		if e.Location.Venue != "" {
			parts = append(parts, e.Location.Venue)
		}
		if e.Location.City != "" {
			parts = append(parts, e.Location.City)
		}
		if len(parts) > 0 {
			return strings.Join(parts, ", ")
		}
	}
	return geo.DisplayName
}

func icsStatus(s model.Status) string {
	switch s {
	case model.StatusDraft:
		return "TENTATIVE"
	case model.StatusCancelled:
		return "CANCELLED"
	default:
		return "CONFIRMED"
	}
}

var textEscaper = strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\r\n", `\n`, "\n", `\n`)

func escapeText(s string) string {
	return textEscaper.Replace(s)
}

// CSVHeader is the first row of a CSV export
var CSVHeader = []string{"id", "title", "start", "status", "budget", "expected_attendees", "actual_attendees", "tags"}

// WriteCSV generates a CSV document with one row per event
func WriteCSV(w io.Writer, events []model.Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range events {
		row := []string{
			e.ID,
			e.Title,
			e.StartDateTime.UTC().Format(time.RFC3339),
			string(e.Status),
			strconv.FormatFloat(e.Budget.Total, 'f', -1, 64),
			optionalInt(e.ExpectedAttendees),
			optionalInt(e.ActualAttendees),
			strings.Join(e.Tags, ";"),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %s: %w", e.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// WriteJSON generates a JSON document with the geo and its events
func WriteJSON(w io.Writer, geo model.Geo, events []model.Event, opts Options) error {
	if events == nil {
		events = []model.Event{}
	}
	data := struct {
		Geo         string        `json:"geo"`
		DisplayName string        `json:"displayName"`
		GeneratedAt time.Time     `json:"generatedAt"`
		Count       int           `json:"count"`
		Events      []model.Event `json:"events"`
	}{
		Geo:         geo.ID,
		DisplayName: geo.DisplayName,
		GeneratedAt: opts.now().UTC(),
		Count:       len(events),
		Events:      events,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encode json export: %w", err)
	}
	return nil
}
