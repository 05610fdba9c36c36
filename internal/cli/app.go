// Package cli is the wardenctl command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Nixie-Tech-LLC/warden/internal/gateway"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config     *Config
	configPath string
	root       *cobra.Command
	out        io.Writer
	logger     zerolog.Logger

	apiURL string
	token  string
	debug  bool
}

// NewApp builds the command tree around a loaded config. configPath is
// where login stores the token.
func NewApp(cfg *Config, configPath string) *App {
	a := &App{config: cfg, configPath: configPath, out: os.Stdout}

	a.root = &cobra.Command{
		Use:           "wardenctl",
		Short:         "Manage camera recording schedules",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := zerolog.WarnLevel
			if a.debug {
				level = zerolog.DebugLevel
			}
			a.logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen}).
				Level(level).With().Timestamp().Logger()
		},
	}

	flags := a.root.PersistentFlags()
	flags.StringVar(&a.apiURL, "api", "", "API base URL (overrides config and WARDEN_API_URL)")
	flags.StringVar(&a.token, "token", "", "API token (overrides config and WARDEN_TOKEN)")
	flags.BoolVar(&a.debug, "debug", false, "Enable debug logging")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.loginCmd())
	a.root.AddCommand(a.editCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.getCmd())
	a.root.AddCommand(a.setCmd())
	a.root.AddCommand(a.activeCmd())
	a.root.AddCommand(a.camerasCmd())
	a.root.AddCommand(a.permsCmd())
	a.root.AddCommand(a.exportCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "wardenctl %s (commit: %s)\n", Version, Commit)
		},
	}
}

// SetOutput redirects command output; used by tests.
func (a *App) SetOutput(w io.Writer) {
	a.out = w
	a.root.SetOut(w)
	a.root.SetErr(w)
}

func (a *App) SetArgs(args []string) { a.root.SetArgs(args) }

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

func (a *App) ExecuteContext(ctx context.Context) error {
	return a.root.ExecuteContext(ctx)
}

// client builds an API client; flags win over the config file.
func (a *App) client() *gateway.Client {
	base, token := a.config.APIURL, a.config.Token
	if a.apiURL != "" {
		base = a.apiURL
	}
	if a.token != "" {
		token = a.token
	}
	return gateway.New(base, token)
}

func parseID(arg, what string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", what, arg)
	}
	return id, nil
}
