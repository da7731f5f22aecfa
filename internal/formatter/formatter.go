package formatter

import (
	"fmt"

	"github.com/truthlens/truthlens/internal/api"
)

// Formatter renders backend responses for one-shot CLI output.
type Formatter interface {
	FormatAnalysis(result *api.AnalysisResponse) ([]byte, error)
	FormatVerification(result *api.TextVerificationResponse) ([]byte, error)
}

// New creates a formatter for the given output format.
func New(format string, color bool) (Formatter, error) {
	switch format {
	case "text", "":
		return NewTerminal(color), nil
	case "json":
		return NewJSON(), nil
	case "markdown":
		return NewMarkdown(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
