package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Nixie-Tech-LLC/warden/internal/model"
)

func (a *App) exportCmd() *cobra.Command {
	var (
		req                  model.ExportRequest
		caseNumber, notes    string
		noClips, noSnapshots bool
	)
	cmd := &cobra.Command{
		Use:   "export-evidence <event-id...>",
		Short: "Request an evidence package for events",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.EventIDs = args
			req.IncludeClips = !noClips
			req.IncludeSnapshots = !noSnapshots
			if caseNumber != "" {
				req.CaseNumber = &caseNumber
			}
			if notes != "" {
				req.OperatorNotes = &notes
			}
			exports := a.client().Exports()
			desc, err := exports.CreateExport(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "export %s: %d files, %.1f MB, expires %s\n",
				desc.ExportID, desc.FileCount, desc.TotalSizeMB, desc.ExpiresAt)
			fmt.Fprintln(a.out, exports.DownloadURL(desc.ExportID))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.CaseName, "case", "", "Case name (required)")
	f.StringVar(&caseNumber, "case-number", "", "Case number")
	f.StringVar(&notes, "notes", "", "Operator notes")
	f.BoolVar(&noClips, "no-clips", false, "Leave video clips out")
	f.BoolVar(&noSnapshots, "no-snapshots", false, "Leave snapshots out")
	_ = cmd.MarkFlagRequired("case")
	return cmd
}
