package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/klabast/wb-services/geo-events/internal/export"
	"github.com/klabast/wb-services/geo-events/internal/query"
)

func (c *cli) exportCommand() *cobra.Command {
	var (
		f         query.Filter
		format    string
		output    string
		duration  time.Duration
		reminders []time.Duration
	)
	cmd := &cobra.Command{
		Use:   "export GEO",
		Short: "Export the filtered events of a geo as ICS, CSV or JSON",
		Long: `Export the filtered events of a geo. Filters work as in "list".
--output - writes to stdout; a directory writes events_<geo>.<format> inside it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := export.CheckFormat(format); err != nil {
				return err
			}
			geo, err := c.lookupGeo(args[0])
			if err != nil {
				return err
			}
			now, err := c.clock()
			if err != nil {
				return err
			}
			events := query.Apply(geo.Events, f, now)
			opts := export.Options{Now: now, Duration: duration, Reminders: reminders}

			if output == "" || output == "-" {
				return export.Write(cmd.OutOrStdout(), format, geo, events, opts)
			}
			path := output
			if info, err := os.Stat(output); err == nil && info.IsDir() {
				path = filepath.Join(output, export.Filename(geo.ID, format))
			}
			if err := writeFile(path, func(w io.Writer) error {
				return export.Write(w, format, geo, events, opts)
			}); err != nil {
				return err
			}
			c.log.Info("exported events",
				zap.String("geo", geo.ID), zap.String("format", format),
				zap.Int("count", len(events)), zap.String("path", path))
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d events to %s\n", len(events), path)
			return nil
		},
	}
	addFilterFlags(cmd, &f)
	fl := cmd.Flags()
	fl.StringVarP(&format, "format", "f", export.FormatICS, "ics, csv or json")
	fl.StringVarP(&output, "output", "o", "-", "output file or directory")
	fl.DurationVar(&duration, "duration", export.DefaultDuration, "assumed event length for calendar entries")
	fl.DurationSliceVar(&reminders, "reminder", nil, "add a calendar alarm this long before each event (repeatable)")
	return cmd
}

func writeFile(path string, render func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := render(file); err != nil {
		file.Close()
		_ = os.Remove(path)
		return err
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("close export file: %w", err)
	}
	return nil
}
