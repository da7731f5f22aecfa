package formatter

import (
	"fmt"
	"math"
	"strings"

	"github.com/yildizm/go-termfmt"

	"github.com/truthlens/truthlens/internal/api"
	"github.com/truthlens/truthlens/internal/report"
)

// terminalFormatter formats a report as plain text for terminal display
// using go-termfmt tree views
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = true
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) FormatAnalysis(result *api.AnalysisResponse) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b, "TruthLens Image Analysis")
	f.writeFileTree(&b, result)
	f.writeRisk(&b, result)
	f.writeAnalyzers(&b, result)
	f.writeFlagList(&b, result.Risk.AllFlags)

	if result.TextVerification != nil {
		b.WriteString("Extracted Text Verification\n")
		f.writeVerificationBody(&b, result.TextVerification)
	}

	return []byte(b.String()), nil
}

func (f *terminalFormatter) FormatVerification(result *api.TextVerificationResponse) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b, "TruthLens Claim Verification")
	f.writeVerificationBody(&b, result)

	return []byte(b.String()), nil
}

func (f *terminalFormatter) writeHeader(b *strings.Builder, title string) {
	b.WriteString("╭" + strings.Repeat("─", len(title)+2) + "╮\n")
	b.WriteString("│ " + title + " │\n")
	b.WriteString("╰" + strings.Repeat("─", len(title)+2) + "╯\n\n")
}

func (f *terminalFormatter) writeFileTree(b *strings.Builder, result *api.AnalysisResponse) {
	items := []termfmt.TreeItem{
		{Label: "File", Value: result.Filename},
		{Label: "Size", Value: fmt.Sprintf("%d bytes", result.FileSize)},
		{Label: "Analysis ID", Value: result.AnalysisID},
		{Label: "Analysis Time", Value: fmt.Sprintf("%.2fs", result.AnalysisTime), Last: true},
	}
	b.WriteString("File\n")
	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

func (f *terminalFormatter) writeRisk(b *strings.Builder, result *api.AnalysisResponse) {
	level := report.ParseRiskLevel(result.Risk.RiskLevel)

	b.WriteString(fmt.Sprintf("Risk: %s (%d/100)\n", level.String(), int(math.Round(result.Risk.OverallScore))))
	b.WriteString(termfmt.CreateConfidenceBar(result.Risk.OverallScore/100, f.opts) + "\n")
	b.WriteString(result.Risk.RiskDescription + "\n\n")

	b.WriteString(fmt.Sprintf("Verdict: %s\n", result.Verdict.Verdict))
	b.WriteString(result.Verdict.AIAnalysis + "\n\n")
}

func (f *terminalFormatter) writeAnalyzers(b *strings.Builder, result *api.AnalysisResponse) {
	items := make([]termfmt.TreeItem, 0, 5)
	entries := []struct {
		name   string
		result api.AnalyzerResult
	}{
		{"EXIF Metadata", result.EXIF},
		{"Error Level Analysis", result.ELA},
		{"Tampering Detection", result.Tampering},
		{"Text / OCR", result.OCR},
		{"AI Generation", result.AIDetection},
	}
	for i, e := range entries {
		items = append(items, termfmt.TreeItem{
			Label: e.name,
			Value: fmt.Sprintf("%d/100 - %s", int(math.Round(e.result.RiskScore)), e.result.Summary),
			Last:  i == len(entries)-1,
		})
	}
	b.WriteString("Analyzers\n")
	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

func (f *terminalFormatter) writeFlagList(b *strings.Builder, flags []string) {
	b.WriteString("Flags\n")
	if len(flags) == 0 {
		b.WriteString("  none\n\n")
		return
	}
	for _, flag := range flags {
		b.WriteString(fmt.Sprintf("  [%s] %s\n", report.ClassifyFlag(flag).String(), flag))
	}
	b.WriteString("\n")
}

func (f *terminalFormatter) writeVerificationBody(b *strings.Builder, result *api.TextVerificationResponse) {
	class := report.ClassifyTruthScore(result.TruthScore)

	b.WriteString(fmt.Sprintf("Verdict: %s (%s)\n", result.Verdict, class.String()))
	b.WriteString(fmt.Sprintf("Truth score: %d/100\n", int(math.Round(result.TruthScore))))
	b.WriteString(termfmt.CreateConfidenceBar(result.Confidence/100, f.opts) + "\n")
	b.WriteString(result.Explanation + "\n\n")

	if len(result.Sources) == 0 {
		b.WriteString("Sources: none found\n")
		return
	}
	items := make([]termfmt.TreeItem, 0, len(result.Sources))
	for i, src := range result.Sources {
		items = append(items, termfmt.TreeItem{
			Label: src.Domain,
			Value: fmt.Sprintf("%s - %s", src.Category, src.Title),
			Last:  i == len(result.Sources)-1,
		})
	}
	b.WriteString("Sources\n")
	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n")
}
