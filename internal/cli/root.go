package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/truthlens/truthlens/internal/api"
	"github.com/truthlens/truthlens/internal/config"
	"github.com/truthlens/truthlens/internal/emoji"
	"github.com/truthlens/truthlens/internal/logger"
	"github.com/truthlens/truthlens/internal/ui"
)

var (
	cfgFile   string
	verbose   bool
	noColor   bool
	noEmoji   bool
	outputFmt string
	serverURL string
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "truthlens",
		Short: "Fake News & Image Forensics Viewer",
		Long: `TruthLens is a terminal client for the TruthLens analysis service.

It submits images or text claims to the remote forensic backend and renders
the returned verdict as a structured report: risk gauge, per-analyzer
breakdown, evidence summaries and flags. All analysis happens server-side;
this tool is the viewer.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Auto-disable emojis on Windows if not explicitly set
			if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
				noEmoji = true
			}
			emoji.SetEmojiDisabled(noEmoji)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "", "output format (text, json, markdown)")
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "", "analysis server URL (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newVerifyCommand())
	rootCmd.AddCommand(newTUICommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			fmt.Printf("TruthLens %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// loadConfig loads configuration honoring the global flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.NewLoader().LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}
	if serverURL != "" {
		cfg.Server.URL = serverURL
	}
	if outputFmt != "" {
		cfg.Output.DefaultFormat = outputFmt
	}
	if verbose {
		cfg.Output.Verbose = true
	}
	if noEmoji {
		cfg.UI.NoEmoji = true
	}
	return cfg, nil
}

// newClient builds a backend client from the loaded config.
func newClient(cfg *config.Config) (*api.Client, error) {
	client, err := api.NewClient(cfg.Server.URL, cfg.Server.Timeout)
	if err != nil {
		return nil, err
	}
	client.SetLogger(logger.New("api", isVerbose))
	return client, nil
}

// colorEnabled resolves the effective color mode.
func colorEnabled(cfg *config.Config) bool {
	if noColor {
		return false
	}
	switch cfg.Output.ColorMode {
	case "never":
		return false
	case "always":
		return true
	default:
		return !ui.IsColorDisabled()
	}
}

// Global helpers
func isVerbose() bool {
	return verbose
}

// preflight pings the backend health endpoint so connection problems
// surface before a large upload starts.
func preflight(client *api.Client, timeout time.Duration) error {
	ctx, cancel := contextWithOptionalTimeout(timeout)
	defer cancel()

	health, err := client.Health(ctx)
	if err != nil {
		return fmt.Errorf("analysis server unreachable at %s: %w", client.BaseURL(), err)
	}
	if !client.IsLoopback() && strings.HasPrefix(client.BaseURL(), "http://") {
		fmt.Fprintln(os.Stderr, "warning: uploading to a remote server over plain HTTP")
	}
	if isVerbose() {
		fmt.Printf("server %s (%s) is %s\n", health.Service, health.Version, health.Status)
	}
	return nil
}
