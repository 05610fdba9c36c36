package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (a *App) permsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "perms",
		Short: "Show or replace which cameras a user may access",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "get <user-id>",
		Short: "List a user's camera ids",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseID(args[0], "user id")
			if err != nil {
				return err
			}
			ids, err := a.client().Permissions().GetUserCameras(cmd.Context(), userID)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "user %d: %s\n", userID, joinIDs(ids))
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set <user-id> [camera-id...]",
		Short: "Replace a user's camera ids; none revokes all",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseID(args[0], "user id")
			if err != nil {
				return err
			}
			ids := make([]int, 0, len(args)-1)
			for _, arg := range args[1:] {
				id, err := parseID(arg, "camera id")
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}
			stored, err := a.client().Permissions().SetUserCameras(cmd.Context(), userID, ids)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "user %d: %s\n", userID, joinIDs(stored))
			return nil
		},
	})
	return cmd
}

func joinIDs(ids []int) string {
	if len(ids) == 0 {
		return "(none)"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, ",")
}
