package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Nixie-Tech-LLC/warden/internal/schedule"
	"github.com/Nixie-Tech-LLC/warden/internal/tui"
)

func (a *App) editCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <camera-id>",
		Short: "Open the interactive schedule editor for a camera",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "camera id")
			if err != nil {
				return err
			}
			c := a.client()
			title := fmt.Sprintf("Camera %d", id)
			if cam, err := c.Cameras().GetCamera(cmd.Context(), id); err == nil {
				title = fmt.Sprintf("%s (#%d)", cam.Name, id)
			}
			ctl := schedule.NewScheduleController(c.Schedules(), id, schedule.WithLogger(a.logger))
			return tui.Run(cmd.Context(), ctl, title)
		},
	}
}

func (a *App) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <camera-id>",
		Short: "Print a camera's week as a grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "camera id")
			if err != nil {
				return err
			}
			slots, err := a.client().Schedules().GetSchedules(cmd.Context(), id)
			if err != nil {
				return err
			}
			g, err := schedule.Decode(slots)
			if err != nil {
				return err
			}
			writeGrid(a.out, g)
			return nil
		},
	}
}

func (a *App) getCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "get <camera-id>",
		Short: "List a camera's schedule slots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "camera id")
			if err != nil {
				return err
			}
			slots, err := a.client().Schedules().GetSchedules(cmd.Context(), id)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(schedule.ToWire(slots))
			}
			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "DAY\tSTART\tEND\tMODE")
			for _, w := range schedule.ToWire(slots) {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", schedule.DayName(w.DayOfWeek), w.StartTime, w.EndTime, w.Mode)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the wire form as JSON")
	return cmd
}

func (a *App) setCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "set <camera-id>",
		Short: "Replace a camera's schedule from a JSON slot list",
		Long: `Replace a camera's whole schedule. The input is a JSON array of
{"day_of_week", "start_time", "end_time", "mode"} objects; an empty array
clears the schedule. Overlapping slots are applied in order, later wins.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "camera id")
			if err != nil {
				return err
			}
			var r io.Reader = cmd.InOrStdin()
			if file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			var wire []schedule.WireSlot
			if err := json.NewDecoder(r).Decode(&wire); err != nil {
				return fmt.Errorf("parsing slots: %w", err)
			}
			slots, err := schedule.FromWire(wire)
			if err != nil {
				return err
			}
			// normalise through the grid so the stored list is canonical
			g, err := schedule.Decode(slots)
			if err != nil {
				return err
			}
			canonical := schedule.Encode(g)
			if err := a.client().Schedules().SetSchedules(cmd.Context(), id, canonical); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "camera %d: stored %d slots\n", id, len(canonical))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "Slot file, - for stdin")
	return cmd
}

func (a *App) activeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "active <camera-id>",
		Short: "Show the mode a camera records with right now",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "camera id")
			if err != nil {
				return err
			}
			am, err := a.client().Schedules().Active(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s %02d:00  %s (%s)\n", schedule.DayName(am.Day), am.Hour, am.Mode, am.Source)
			return nil
		},
	}
}

var gridGlyph = map[schedule.Mode]byte{
	schedule.Unset:      '.',
	schedule.Continuous: 'C',
	schedule.Motion:     'M',
	schedule.Events:     'E',
}

func writeGrid(w io.Writer, g schedule.Grid) {
	var b strings.Builder
	b.WriteString("    ")
	for h := 0; h < schedule.HoursPerDay; h += 3 {
		fmt.Fprintf(&b, "%-3s", fmt.Sprintf("%02d", h))
	}
	b.WriteByte('\n')
	for d := 0; d < schedule.DaysPerWeek; d++ {
		b.WriteString(schedule.DayName(d))
		b.WriteByte(' ')
		for h := 0; h < schedule.HoursPerDay; h++ {
			b.WriteByte(gridGlyph[g[d][h]])
		}
		b.WriteByte('\n')
	}
	b.WriteString("C continuous  M motion  E events  . default\n")
	io.WriteString(w, b.String())
}
