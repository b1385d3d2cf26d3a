package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"
	"unicode/utf8"

	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/klabast/wb-services/geo-events/internal/model"
	"github.com/klabast/wb-services/geo-events/internal/query"
)

const (
	dateLayout     = "Mon Jan 2, 2006"
	dateTimeLayout = "Mon Jan 2, 2006 15:04 MST"
	// titleWidth is used when the output is not a terminal
	titleWidth = 40
)

// view renders human-readable output in the configured locale and timezone
type view struct {
	w        io.Writer
	printer  *message.Printer
	currency string
	loc      *time.Location
	width    int
}

func (c *cli) newView(w io.Writer) (*view, error) {
	loc, err := c.cfg.Location()
	if err != nil {
		return nil, err
	}
	tag, err := language.Parse(c.cfg.Display.Locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	return &view{
		w:        w,
		printer:  message.NewPrinter(tag),
		currency: c.cfg.Display.Currency,
		loc:      loc,
		width:    terminalWidth(w),
	}, nil
}

// terminalWidth returns the terminal column count, or 0 when w is not a terminal
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	cols, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return cols
}

func (v *view) money(amount float64) string {
	return v.printer.Sprintf("%v %s", number.Decimal(amount, number.MaxFractionDigits(2)), v.currency)
}

func (v *view) count(n int) string {
	return v.printer.Sprintf("%d", n)
}

func (v *view) println(a ...any) {
	fmt.Fprintln(v.w, a...)
}

func (v *view) printf(format string, a ...any) {
	fmt.Fprintf(v.w, format, a...)
}

// titleLimit sizes the title column from the terminal width, leaving room
// for the date, status and budget columns
func (v *view) titleLimit() int {
	if v.width == 0 {
		return titleWidth
	}
	if limit := v.width - 70; limit > 20 {
		return limit
	}
	return 20
}

func truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}

// eventTable prints one row per event
func (v *view) eventTable(events []model.Event, now time.Time) error {
	tw := tabwriter.NewWriter(v.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tSTART\tSTATUS\tBUDGET\t")
	limit := v.titleLimit()
	for _, e := range events {
		status := string(e.Status)
		if query.IsPast(e, now) {
			status += " (past event)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n",
			e.ID,
			truncate(e.Title, limit),
			e.StartDateTime.In(v.loc).Format(dateLayout),
			status,
			v.money(e.Budget.Total),
		)
	}
	return tw.Flush()
}

// eventDetail prints every field of one event
func (v *view) eventDetail(geo model.Geo, e model.Event) {
	v.printf("%s\n%s\n\n", e.Title, strings.Repeat("=", utf8.RuneCountInString(e.Title)))
	v.printf("ID:          %s\n", e.ID)
	v.printf("Geo:         %s\n", geo.DisplayName)
	v.printf("Status:      %s\n", e.Status)
	v.printf("Starts:      %s\n", e.StartDateTime.In(v.loc).Format(dateTimeLayout))
	v.printf("Budget:      %s\n", v.money(e.Budget.Total))
	if e.ExpectedAttendees != nil {
		v.printf("Expected:    %s people\n", v.count(*e.ExpectedAttendees))
	}
	if e.ActualAttendees != nil {
		v.printf("Attended:    %s people\n", v.count(*e.ActualAttendees))
	}
	if e.Location != nil {
		v.printf("Location:    %s\n", strings.Trim(e.Location.Venue+", "+e.Location.City, ", "))
	}
	if len(e.Tags) > 0 {
		v.printf("Tags:        %s\n", strings.Join(e.Tags, ", "))
	}
	if e.Description != "" {
		v.printf("\n%s\n", e.Description)
	}
}

// geoTable prints the landing listing
func (v *view) geoTable(geos []query.GeoSummary) error {
	tw := tabwriter.NewWriter(v.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tREGION\tUPCOMING\t")
	for _, g := range geos {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", g.ID, g.DisplayName, g.Region, v.count(g.UpcomingEventsCount))
	}
	return tw.Flush()
}

// stats prints the dashboard cards
func (v *view) stats(s query.Stats) {
	v.printf("Events: %s  Upcoming: %s  Budget: %s  Attendees: %s\n",
		v.count(s.TotalEvents), v.count(s.UpcomingEvents), v.money(s.TotalBudget), v.count(s.TotalAttendees))
}
