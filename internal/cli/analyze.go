package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/truthlens/truthlens/internal/api"
	"github.com/truthlens/truthlens/internal/config"
	"github.com/truthlens/truthlens/internal/formatter"
	"github.com/truthlens/truthlens/internal/submission"
)

func newAnalyzeCommand() *cobra.Command {
	var skipHealthCheck bool

	cmd := &cobra.Command{
		Use:   "analyze <image-file>",
		Short: "Analyze an image for manipulation",
		Long: `Upload an image to the analysis server and print the forensic report.

The image is validated locally (must be an image format, at most 20 MiB)
before upload. The server runs EXIF, error-level, tampering, OCR and
AI-generation analysis and returns a combined risk verdict.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(args[0], skipHealthCheck)
		},
	}

	cmd.Flags().BoolVar(&skipHealthCheck, "skip-health-check", false, "skip the server health probe before uploading")

	return cmd
}

func runAnalyze(path string, skipHealthCheck bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	store := submission.NewStore()
	sub, _, err := store.Select(path)
	if err != nil {
		return err
	}

	if !skipHealthCheck {
		if err := preflight(client, 5*time.Second); err != nil {
			return err
		}
	}

	if isVerbose() {
		fmt.Printf("uploading %s (%s, %s)...\n", sub.Filename, sub.MIME, sub.SizeLabel)
	}

	f, err := os.Open(sub.Path) // #nosec G304 -- user-selected file
	if err != nil {
		return fmt.Errorf("cannot read file: %w", err)
	}
	defer func() { _ = f.Close() }()

	ctx, cancel := contextWithOptionalTimeout(cfg.Server.Timeout)
	defer cancel()

	result, err := client.Analyze(ctx, sub.Filename, f)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	return writeAnalysis(cfg, result)
}

func writeAnalysis(cfg *config.Config, result *api.AnalysisResponse) error {
	fm, err := formatter.New(cfg.Output.DefaultFormat, colorEnabled(cfg))
	if err != nil {
		return err
	}
	out, err := fm.FormatAnalysis(result)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}

func writeVerification(cfg *config.Config, result *api.TextVerificationResponse) error {
	fm, err := formatter.New(cfg.Output.DefaultFormat, colorEnabled(cfg))
	if err != nil {
		return err
	}
	out, err := fm.FormatVerification(result)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}

// contextWithOptionalTimeout returns a context bounded by d, or an
// unbounded one when d is zero.
func contextWithOptionalTimeout(d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), d)
}
