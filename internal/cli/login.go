package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func (a *App) loginCmd() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the token in the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if username == "" {
				username = a.config.Username
			}
			if password == "" {
				password = os.Getenv("WARDEN_PASSWORD")
			}
			if username == "" || password == "" {
				return errors.New("username and password are required (--username, --password or WARDEN_PASSWORD)")
			}
			c := a.client()
			token, err := c.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			a.config.APIURL = c.BaseURL
			a.config.Token = token
			a.config.Username = username
			if err := a.config.Save(a.configPath); err != nil {
				return fmt.Errorf("saving token: %w", err)
			}
			a.logger.Debug().Str("config", a.configPath).Msg("token stored")
			fmt.Fprintf(a.out, "logged in as %s\n", username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "Username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (or WARDEN_PASSWORD)")
	return cmd
}
