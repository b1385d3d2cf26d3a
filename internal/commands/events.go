package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/klabast/wb-services/geo-events/internal/model"
	"github.com/klabast/wb-services/geo-events/internal/query"
)

// Accepted --start layouts, tried in order. Layouts without an offset are
// read in the configured timezone.
var startLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Fields that update --clear accepts
const (
	clearExpected = "expected"
	clearActual   = "actual"
	clearTags     = "tags"
	clearLocation = "location"
)

var (
	errUnknownGeo   = errors.New("unknown geo")
	errUnknownEvent = errors.New("unknown event")
)

// eventFlags backs the add and update commands
type eventFlags struct {
	id          string
	title       string
	description string
	start       string
	budget      float64
	status      string
	expected    int
	actual      int
	tags        []string
	city        string
	venue       string

	clear []string
	patch string
}

// fieldFlags names the flags register defines, one per event field
var fieldFlags = []string{"title", "description", "start", "budget", "status", "expected", "actual", "tag", "city", "venue"}

func (f *eventFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.title, "title", "", "event title")
	fl.StringVar(&f.description, "description", "", "event description")
	fl.StringVar(&f.start, "start", "", "start time (RFC 3339, 2006-01-02T15:04 or 2006-01-02)")
	fl.Float64Var(&f.budget, "budget", 0, "total budget")
	fl.StringVar(&f.status, "status", "", "draft, published, completed or cancelled")
	fl.IntVar(&f.expected, "expected", 0, "expected attendees")
	fl.IntVar(&f.actual, "actual", 0, "actual attendees")
	fl.StringSliceVar(&f.tags, "tag", nil, "tag (repeatable or comma separated)")
	fl.StringVar(&f.city, "city", "", "location city")
	fl.StringVar(&f.venue, "venue", "", "location venue")
}

func parseStart(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range startLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid start time %q", s)
}

func (c *cli) lookupGeo(geoID string) (model.Geo, error) {
	geo, ok := c.app.Store.GeoByID(geoID)
	if !ok {
		return model.Geo{}, fmt.Errorf("%w %q", errUnknownGeo, geoID)
	}
	return geo, nil
}

func (c *cli) lookupEvent(geoID, eventID string) (model.Geo, model.Event, error) {
	geo, err := c.lookupGeo(geoID)
	if err != nil {
		return model.Geo{}, model.Event{}, err
	}
	e, ok := c.app.Store.EventByID(geoID, eventID)
	if !ok {
		return model.Geo{}, model.Event{}, fmt.Errorf("%w %q in %s", errUnknownEvent, eventID, geoID)
	}
	return geo, e, nil
}

// warnIfUnsaved surfaces a failed write of the last mutation
func (c *cli) warnIfUnsaved(cmd *cobra.Command) {
	if err := c.app.Store.PersistError(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: change kept for this run only, saving failed: %v\n", err)
	}
}

func addFilterFlags(cmd *cobra.Command, f *query.Filter) {
	fl := cmd.Flags()
	fl.StringVarP(&f.Search, "search", "s", "", "match title, description or status (case-insensitive)")
	fl.StringVar(&f.Status, "status", query.All, "draft, published, completed, cancelled or all")
	fl.StringVar(&f.Timeframe, "timeframe", query.All,
		"upcoming, past, this-week, this-month or all")
	fl.StringVar(&f.MinBudget, "min-budget", "", "minimum total budget")
	fl.StringVar(&f.MaxBudget, "max-budget", "", "maximum total budget")
}

func (c *cli) geosCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "geos",
		Short: "List geos with their upcoming event counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := c.clock()
			if err != nil {
				return err
			}
			v, err := c.newView(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return v.geoTable(query.Summaries(c.app.Store.Geos(), now))
		},
	}
}

func (c *cli) listCommand() *cobra.Command {
	var f query.Filter
	cmd := &cobra.Command{
		Use:   "list GEO",
		Short: "Show a geo dashboard with filtered events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			geo, err := c.lookupGeo(args[0])
			if err != nil {
				return err
			}
			now, err := c.clock()
			if err != nil {
				return err
			}
			v, err := c.newView(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			v.printf("%s (%s)\n", geo.DisplayName, geo.Region)
			v.stats(query.Summarize(geo.Events, now))

			events := query.Apply(geo.Events, f, now)
			if n := f.ActiveCount(); n > 0 {
				v.printf("Filters active: %d\n", n)
			}
			if strings.TrimSpace(f.Search) != "" {
				v.printf("Search results (%d)\n", len(events))
			} else {
				v.printf("All events (%d)\n", len(events))
			}
			v.println()

			if len(events) == 0 {
				v.println("No events found.")
				if f.ActiveCount() > 0 {
					v.println("Try adjusting your search terms or filters.")
				}
				return nil
			}
			return v.eventTable(events, now)
		},
	}
	addFilterFlags(cmd, &f)
	return cmd
}

func (c *cli) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show GEO EVENT",
		Short: "Show every detail of one event",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			geo, e, err := c.lookupEvent(args[0], args[1])
			if err != nil {
				return err
			}
			now, err := c.clock()
			if err != nil {
				return err
			}
			v, err := c.newView(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			v.eventDetail(geo, e)
			if query.IsPast(e, now) {
				v.println("\nThis event has already taken place.")
			}
			return nil
		},
	}
}

func (c *cli) addCommand() *cobra.Command {
	var f eventFlags
	cmd := &cobra.Command{
		Use:   "add GEO",
		Short: "Create an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			geoID := args[0]
			if _, err := c.lookupGeo(geoID); err != nil {
				return err
			}
			e, err := c.newEvent(cmd, &f)
			if err != nil {
				return err
			}
			if _, exists := c.app.Store.EventByID(geoID, e.ID); exists {
				return fmt.Errorf("event %q already exists in %s", e.ID, geoID)
			}
			if err := model.Validate(e); err != nil {
				return err
			}

			c.app.Store.AddEvent(geoID, e)
			c.warnIfUnsaved(cmd)
			fmt.Fprintf(cmd.OutOrStdout(), "Created event %s in %s\n", e.ID, geoID)
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&f.id, "id", "", "event id (default: random UUID)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("budget")
	return cmd
}

// newEvent builds an event from add flags. New events are drafts unless a
// status is given.
func (c *cli) newEvent(cmd *cobra.Command, f *eventFlags) (model.Event, error) {
	loc, err := c.cfg.Location()
	if err != nil {
		return model.Event{}, err
	}
	start, err := parseStart(f.start, loc)
	if err != nil {
		return model.Event{}, err
	}

	e := model.Event{
		ID:            f.id,
		Title:         strings.TrimSpace(f.title),
		Description:   f.description,
		StartDateTime: start,
		Budget:        model.Budget{Total: f.budget},
		Status:        model.StatusDraft,
		Tags:          model.NormalizeTags(f.tags),
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if f.status != "" {
		e.Status = model.Status(f.status)
	}
	fl := cmd.Flags()
	if fl.Changed("expected") {
		e.ExpectedAttendees = model.Int(f.expected)
	}
	if fl.Changed("actual") {
		e.ActualAttendees = model.Int(f.actual)
	}
	if f.city != "" || f.venue != "" {
		e.Location = &model.Location{City: f.city, Venue: f.venue}
	}
	return e, nil
}

func (c *cli) updateCommand() *cobra.Command {
	var f eventFlags
	cmd := &cobra.Command{
		Use:   "update GEO EVENT",
		Short: "Change fields of an event",
		Long: `Change fields of an event. Only the given flags are applied; every other
field keeps its value. --patch takes a JSON object of event fields instead,
where null clears an optional field.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			geoID, eventID := args[0], args[1]
			_, current, err := c.lookupEvent(geoID, eventID)
			if err != nil {
				return err
			}
			patch, err := c.buildPatch(cmd, &f)
			if err != nil {
				return err
			}
			if patch.Empty() {
				return errors.New("nothing to update")
			}
			if err := model.Validate(patch.Apply(current)); err != nil {
				return err
			}

			c.app.Store.UpdateEvent(geoID, eventID, patch)
			c.warnIfUnsaved(cmd)
			fmt.Fprintf(cmd.OutOrStdout(), "Updated event %s in %s\n", eventID, geoID)
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringSliceVar(&f.clear, "clear", nil, "clear optional fields: expected, actual, tags, location")
	cmd.Flags().StringVar(&f.patch, "patch", "", "JSON object of fields to change")
	for _, name := range append(fieldFlags, "clear") {
		cmd.MarkFlagsMutuallyExclusive("patch", name)
	}
	return cmd
}

// buildPatch turns the changed update flags into a patch
func (c *cli) buildPatch(cmd *cobra.Command, f *eventFlags) (model.EventPatch, error) {
	var p model.EventPatch
	if f.patch != "" {
		if err := json.Unmarshal([]byte(f.patch), &p); err != nil {
			return p, fmt.Errorf("invalid --patch: %w", err)
		}
		return p, nil
	}

	fl := cmd.Flags()
	if fl.Changed("title") {
		title := strings.TrimSpace(f.title)
		p.Title = &title
	}
	if fl.Changed("description") {
		p.Description = &f.description
	}
	if fl.Changed("start") {
		loc, err := c.cfg.Location()
		if err != nil {
			return p, err
		}
		start, err := parseStart(f.start, loc)
		if err != nil {
			return p, err
		}
		p.StartDateTime = &start
	}
	if fl.Changed("budget") {
		p.Budget = &model.Budget{Total: f.budget}
	}
	if fl.Changed("status") {
		status := model.Status(f.status)
		p.Status = &status
	}
	if fl.Changed("expected") {
		p.ExpectedAttendees = model.Some(f.expected)
	}
	if fl.Changed("actual") {
		p.ActualAttendees = model.Some(f.actual)
	}
	if fl.Changed("tag") {
		p.Tags = model.Some(model.NormalizeTags(f.tags))
	}
	if fl.Changed("city") || fl.Changed("venue") {
		p.Location = model.Some(model.Location{City: f.city, Venue: f.venue})
	}

	for _, field := range f.clear {
		switch strings.TrimSpace(field) {
		case clearExpected:
			p.ExpectedAttendees = model.Null[int]()
		case clearActual:
			p.ActualAttendees = model.Null[int]()
		case clearTags:
			p.Tags = model.Null[[]string]()
		case clearLocation:
			p.Location = model.Null[model.Location]()
		default:
			return p, fmt.Errorf("cannot clear %q", field)
		}
	}
	return p, nil
}

func (c *cli) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete GEO EVENT",
		Aliases: []string{"rm"},
		Short:   "Delete an event",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			geoID, eventID := args[0], args[1]
			if _, _, err := c.lookupEvent(geoID, eventID); err != nil {
				return err
			}
			c.app.Store.DeleteEvent(geoID, eventID)
			c.warnIfUnsaved(cmd)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted event %s from %s\n", eventID, geoID)
			return nil
		},
	}
}

func (c *cli) resetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Discard all changes and restore the demo data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.app.Store.Reset()
			c.warnIfUnsaved(cmd)
			fmt.Fprintln(cmd.OutOrStdout(), "Restored demo data")
			return nil
		},
	}
}
