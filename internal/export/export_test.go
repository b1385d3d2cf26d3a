package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/klabast/wb-services/geo-events/internal/model"
)

var testGeo = model.Geo{ID: "uk-london", Name: "London", DisplayName: "London, UK", Region: "Europe"}

func testEvents() []model.Event {
	return []model.Event{
		{
			ID:                "3",
			Title:             "Product Launch, Phase 1",
			Description:       "Launch; with notes",
			StartDateTime:     time.Date(2025, 12, 20, 18, 0, 0, 0, time.UTC),
			Budget:            model.Budget{Total: 15000},
			Status:            model.StatusPublished,
			ExpectedAttendees: model.Int(200),
			Tags:              []string{"launch", "product"},
			Location:          &model.Location{City: "London", Venue: "Tower Hall"},
		},
		{
			ID:            "4",
			Title:         "Planning Draft",
			StartDateTime: time.Date(2026, 1, 10, 9, 30, 0, 0, time.UTC),
			Budget:        model.Budget{Total: 250.5},
			Status:        model.StatusDraft,
		},
	}
}

func TestWriteICS(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{
		Now:       time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		Reminders: []time.Duration{24 * time.Hour, 30 * time.Minute},
	}
	if err := WriteICS(&buf, testGeo, testEvents(), opts); err != nil {
		t.Fatalf("WriteICS: %v", err)
	}
	body := buf.String()

	// Check for required ICS structure
	requiredFields := []string{
		"BEGIN:VCALENDAR\r\n",
		"VERSION:2.0\r\n",
		"PRODID:" + ICSProductID + "\r\n",
		"X-WR-CALNAME:London\\, UK Events\r\n",
		"BEGIN:VEVENT\r\n",
		"UID:3-uk-london@" + ICSUIDDomain + "\r\n",
		"DTSTAMP:20251201T000000Z\r\n",
		"DTSTART:20251220T180000Z\r\n",
		"DTEND:20251220T190000Z\r\n",
		"SUMMARY:Product Launch\\, Phase 1\r\n",
		"DESCRIPTION:Launch\\; with notes\r\n",
		"LOCATION:Tower Hall\\, London\r\n",
		"STATUS:CONFIRMED\r\n",
		"CATEGORIES:launch,product\r\n",
		"STATUS:TENTATIVE\r\n",
		"LOCATION:London\\, UK\r\n",
		"END:VEVENT\r\n",
		"END:VCALENDAR\r\n",
	}
	for _, field := range requiredFields {
		if !strings.Contains(body, field) {
			t.Errorf("ICS output missing required field: %q", field)
		}
	}

	// Each event gets one alarm per reminder
	if got := strings.Count(body, "BEGIN:VALARM"); got != 4 {
		t.Errorf("Expected 4 alarms, got %d", got)
	}
	if !strings.Contains(body, "TRIGGER:-P1DT0H0M") {
		t.Error("Missing 24h reminder trigger")
	}
	if !strings.Contains(body, "TRIGGER:-P0DT0H30M") {
		t.Error("Missing 30m reminder trigger")
	}

	// Event without description has no DESCRIPTION line of its own
	if got := strings.Count(body, "DESCRIPTION:Launch"); got != 1 {
		t.Errorf("Expected one event description, got %d", got)
	}
}

func TestWriteICSDuration(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteICS(&buf, testGeo, testEvents()[:1], Options{Duration: 3 * time.Hour}); err != nil {
		t.Fatalf("WriteICS: %v", err)
	}
	if !strings.Contains(buf.String(), "DTEND:20251220T210000Z") {
		t.Errorf("Expected three hour event, got:\n%s", buf.String())
	}
}

func TestTrigger(t *testing.T) {
	tests := []struct {
		name   string
		before time.Duration
		want   string
	}{
		{name: "one day", before: 24 * time.Hour, want: "-P1DT0H0M"},
		{name: "mixed", before: 26*time.Hour + 15*time.Minute, want: "-P1DT2H15M"},
		{name: "minutes", before: 90 * time.Minute, want: "-P0DT1H30M"},
		{name: "after start", before: -7 * time.Hour, want: "P0DT7H0M"},
		{name: "at start", before: 0, want: "-P0DT0H0M"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Trigger(tt.before); got != tt.want {
				t.Errorf("Trigger(%v) = %s, want %s", tt.before, got, tt.want)
			}
		})
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, testEvents()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d", len(rows))
	}
	if strings.Join(rows[0], ",") != strings.Join(CSVHeader, ",") {
		t.Errorf("Unexpected header: %v", rows[0])
	}

	want := []string{"3", "Product Launch, Phase 1", "2025-12-20T18:00:00Z", "published", "15000", "200", "", "launch;product"}
	if strings.Join(rows[1], "|") != strings.Join(want, "|") {
		t.Errorf("First row = %v, want %v", rows[1], want)
	}
	if rows[2][4] != "250.5" {
		t.Errorf("Budget = %s, want 250.5", rows[2][4])
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Now: time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)}
	if err := WriteJSON(&buf, testGeo, testEvents(), opts); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var doc struct {
		Geo         string        `json:"geo"`
		DisplayName string        `json:"displayName"`
		GeneratedAt time.Time     `json:"generatedAt"`
		Count       int           `json:"count"`
		Events      []model.Event `json:"events"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if doc.Geo != "uk-london" || doc.DisplayName != "London, UK" {
		t.Errorf("Unexpected geo header: %+v", doc)
	}
	if !doc.GeneratedAt.Equal(opts.Now) {
		t.Errorf("generatedAt = %v, want %v", doc.GeneratedAt, opts.Now)
	}
	if doc.Count != 2 || len(doc.Events) != 2 {
		t.Errorf("Expected 2 events, got count=%d len=%d", doc.Count, len(doc.Events))
	}
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, testGeo, nil, Options{}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if !strings.Contains(buf.String(), `"events": []`) {
		t.Errorf("Empty export should contain an empty events array, got:\n%s", buf.String())
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, "xml", testGeo, testEvents(), Options{})
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}
}

func TestCheckFormat(t *testing.T) {
	for _, format := range Formats {
		if err := CheckFormat(format); err != nil {
			t.Errorf("CheckFormat(%s) = %v", format, err)
		}
	}
	if err := CheckFormat("xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}
}

func TestFilename(t *testing.T) {
	if got := Filename("us-new-york", FormatCSV); got != "events_us-new-york.csv" {
		t.Errorf("Filename = %s", got)
	}
}
