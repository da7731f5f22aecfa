package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/truthlens/truthlens/internal/ui"
)

func newTUICommand() *cobra.Command {
	var theme string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Launch the interactive viewer",
		Long: `Start the full-screen interactive viewer.

Tab switches between the image and text flows. Submit an image path or a
claim, watch the analysis progress, and browse the rendered report with
the arrow keys.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(theme)
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "", "UI theme (default, high-contrast, minimal)")

	return cmd
}

func runTUI(theme string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if theme == "" {
		theme = cfg.UI.Theme
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	return ui.Run(client, theme)
}
