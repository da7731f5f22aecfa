package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/truthlens/truthlens/internal/submission"
)

func newVerifyCommand() *cobra.Command {
	var fromStdin bool

	cmd := &cobra.Command{
		Use:   "verify [claim]",
		Short: "Verify a text claim against web sources",
		Long: `Submit a text claim to the verification server and print the result.

The claim must be between 5 and 5000 characters. The server extracts the
factual claims, searches for corroborating or contradicting sources, and
returns a truth score with an explanation.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := claimText(args, fromStdin)
			if err != nil {
				return err
			}
			return runVerify(text)
		},
	}

	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "read the claim from standard input")

	return cmd
}

func claimText(args []string, fromStdin bool) (string, error) {
	if fromStdin {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	if len(args) == 0 {
		return "", fmt.Errorf("provide a claim as an argument or use --stdin")
	}
	return args[0], nil
}

func runVerify(text string) error {
	if err := submission.ValidateClaim(text); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	if isVerbose() {
		fmt.Printf("verifying claim (%d characters)...\n", len(text))
	}

	ctx, cancel := contextWithOptionalTimeout(cfg.Server.Timeout)
	defer cancel()

	result, err := client.VerifyText(ctx, text)
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	return writeVerification(cfg, result)
}
