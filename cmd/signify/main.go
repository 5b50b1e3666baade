package main

import (
	"fmt"
	"os"

	"signify/cmd/signify/dashboard"
	"signify/cmd/signify/ui"
	"signify/internal/api"
	"signify/internal/config"
	"signify/internal/logging"
	"signify/internal/session"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	configPath string
	apiURL     string
	verbose    bool

	cfg      *config.Config
	sessions *session.Store
	client   *api.Client
)

// rootCmd launches the interactive dashboard when called without a
// subcommand.
var rootCmd = &cobra.Command{
	Use:   "signify",
	Short: "Signify - community health signals client",
	Long: `Signify turns community voices into preventive health action.

It collects real-time health signals from communities and gives health
authorities a live view of districts and sectors, shifting response from
reactive care to early action.

Run without arguments to start the interactive dashboard.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			var err error
			if path, err = config.DefaultPath(); err != nil {
				return fmt.Errorf("resolving config path: %w", err)
			}
		}
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if apiURL != "" {
			cfg.API.BaseURL = apiURL
		}

		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		logFile, err := cfg.LogFile()
		if err != nil {
			return fmt.Errorf("resolving log file: %w", err)
		}
		if err := logging.Initialize(level, logFile); err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}

		dir, err := config.Dir()
		if err != nil {
			return fmt.Errorf("resolving config dir: %w", err)
		}
		sessions = session.NewStore(session.DefaultPath(dir))
		if err := sessions.Load(); err != nil {
			return fmt.Errorf("loading session: %w", err)
		}

		client = api.New(api.Options{
			BaseURL: cfg.API.BaseURL,
			Timeout: cfg.API.Timeout,
			Tokens:  sessions,
		})
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard()
	},
}

func runDashboard() error {
	styles := ui.NewStyles(ui.ThemeByName(cfg.UI.Theme))
	model := dashboard.New(dashboard.Deps{
		Client:   client,
		Sessions: sessions,
		Styles:   styles,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		logging.L(logging.CategoryUI).Error("dashboard exited", zap.Error(err))
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}

// requireAuth guards subcommands that need a logged-in admin.
func requireAuth() error {
	if !sessions.Authenticated() {
		return fmt.Errorf("not logged in; run 'signify login' first")
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is the user config dir)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "backend base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(surveysCmd)
	rootCmd.AddCommand(responsesCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(smsCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
