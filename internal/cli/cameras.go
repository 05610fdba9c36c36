package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Nixie-Tech-LLC/warden/internal/gateway"
	"github.com/Nixie-Tech-LLC/warden/internal/schedule"
)

func (a *App) camerasCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cameras",
		Aliases: []string{"cam"},
		Short:   "List and update cameras",
	}
	cmd.AddCommand(a.camerasListCmd(), a.camerasGetCmd(), a.camerasUpdateCmd())
	return cmd
}

func (a *App) camerasListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the cameras you can see",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cams, err := a.client().Cameras().ListCameras(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tACTIVE\tDEFAULT\tNOW\tRETENTION")
			for _, c := range cams {
				fmt.Fprintf(tw, "%d\t%s\t%t\t%s\t%s\t%dd/%dd\n",
					c.ID, c.Name, c.IsActive, c.RecordingMode, c.ActiveMode, c.RetentionDays, c.EventRetentionDays)
			}
			return tw.Flush()
		},
	}
}

func (a *App) camerasGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <camera-id>",
		Short: "Print one camera as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "camera id")
			if err != nil {
				return err
			}
			cam, err := a.client().Cameras().GetCamera(cmd.Context(), id)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(a.out)
			enc.SetIndent("", "  ")
			return enc.Encode(cam)
		},
	}
}

func (a *App) camerasUpdateCmd() *cobra.Command {
	var (
		name, mainURL, subURL, location, mode string
		retention, eventRetention             int
	)
	cmd := &cobra.Command{
		Use:   "update <camera-id>",
		Short: "Change camera fields; only flags given are sent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "camera id")
			if err != nil {
				return err
			}
			var u gateway.CameraUpdate
			f := cmd.Flags()
			if f.Changed("name") {
				u.Name = &name
			}
			if f.Changed("main-stream") {
				u.MainStreamURL = &mainURL
			}
			if f.Changed("sub-stream") {
				u.SubStreamURL = &subURL
			}
			if f.Changed("location") {
				u.Location = &location
			}
			if f.Changed("recording-mode") {
				m, err := schedule.ParseMode(mode)
				if err != nil {
					return err
				}
				s := m.String()
				u.RecordingMode = &s
			}
			if f.Changed("retention-days") {
				u.RetentionDays = &retention
			}
			if f.Changed("event-retention-days") {
				u.EventRetentionDays = &eventRetention
			}
			if u == (gateway.CameraUpdate{}) {
				return fmt.Errorf("nothing to update")
			}
			cam, err := a.client().Cameras().UpdateCamera(cmd.Context(), id, u)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "camera %d (%s) updated\n", cam.ID, cam.Name)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&name, "name", "", "Camera name")
	f.StringVar(&mainURL, "main-stream", "", "Main stream URL")
	f.StringVar(&subURL, "sub-stream", "", "Sub stream URL")
	f.StringVar(&location, "location", "", "Location")
	f.StringVar(&mode, "recording-mode", "", "Default recording mode (continuous, motion, events)")
	f.IntVar(&retention, "retention-days", 0, "Days to keep continuous footage")
	f.IntVar(&eventRetention, "event-retention-days", 0, "Days to keep event footage")
	return cmd
}
