package query

import (
	"time"

	"github.com/klabast/wb-services/geo-events/internal/model"
)

// Stats are the dashboard totals for a list of events
type Stats struct {
	TotalEvents    int
	UpcomingEvents int
	TotalBudget    float64
	TotalAttendees int
}

// Summarize computes dashboard totals. Attendance uses the actual count when
// one was recorded and the expected count otherwise.
func Summarize(events []model.Event, now time.Time) Stats {
	var st Stats
	for _, e := range events {
		st.TotalEvents++
		if !IsPast(e, now) {
			st.UpcomingEvents++
		}
		st.TotalBudget += e.Budget.Total
		switch {
		case e.ActualAttendees != nil:
			st.TotalAttendees += *e.ActualAttendees
		case e.ExpectedAttendees != nil:
			st.TotalAttendees += *e.ExpectedAttendees
		}
	}
	return st
}

// IsPast reports whether the event started before now
func IsPast(e model.Event, now time.Time) bool {
	return e.StartDateTime.Before(now)
}

// GeoSummary is one landing page entry
type GeoSummary struct {
	ID                  string
	Name                string
	DisplayName         string
	Region              string
	UpcomingEventsCount int
}

// Summaries builds landing page entries in geo order
func Summaries(geos []model.Geo, now time.Time) []GeoSummary {
	out := make([]GeoSummary, 0, len(geos))
	for _, g := range geos {
		out = append(out, GeoSummary{
			ID:                  g.ID,
			Name:                g.Name,
			DisplayName:         g.DisplayName,
			Region:              g.Region,
			UpcomingEventsCount: Summarize(g.Events, now).UpcomingEvents,
		})
	}
	return out
}
