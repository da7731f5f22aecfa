package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/truthlens/truthlens/internal/api"
	"github.com/truthlens/truthlens/internal/report"
)

// markdownFormatter formats a report as Markdown
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) FormatAnalysis(result *api.AnalysisResponse) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# Image Forensics Report\n\n")
	b.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05")))

	f.writeSummaryTable(&b, result)
	f.writeRiskSection(&b, result)
	f.writeAnalyzerSections(&b, result)
	f.writeFlags(&b, result.Risk.AllFlags)

	if result.TextVerification != nil {
		b.WriteString("## Extracted Text Verification\n\n")
		f.writeVerification(&b, result.TextVerification)
	}

	return []byte(b.String()), nil
}

func (f *markdownFormatter) FormatVerification(result *api.TextVerificationResponse) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# Claim Verification Report\n\n")
	b.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05")))
	f.writeVerification(&b, result)

	return []byte(b.String()), nil
}

func (f *markdownFormatter) writeSummaryTable(b *strings.Builder, result *api.AnalysisResponse) {
	b.WriteString("## Summary\n\n")
	b.WriteString("| Field | Value |\n")
	b.WriteString("|-------|-------|\n")
	b.WriteString(fmt.Sprintf("| File | %s |\n", result.Filename))
	b.WriteString(fmt.Sprintf("| Size | %d bytes |\n", result.FileSize))
	b.WriteString(fmt.Sprintf("| Analysis ID | %s |\n", result.AnalysisID))
	b.WriteString(fmt.Sprintf("| Analysis time | %.2fs |\n", result.AnalysisTime))
	b.WriteString(fmt.Sprintf("| Verdict | %s |\n", result.Verdict.Verdict))
	b.WriteString("\n")
}

func (f *markdownFormatter) writeRiskSection(b *strings.Builder, result *api.AnalysisResponse) {
	level := report.ParseRiskLevel(result.Risk.RiskLevel)

	b.WriteString("## Risk Assessment\n\n")
	b.WriteString(fmt.Sprintf("**%s RISK** - score %d/100\n\n",
		level.String(), int(math.Round(result.Risk.OverallScore))))
	b.WriteString(result.Risk.RiskDescription + "\n\n")

	if len(result.Risk.Breakdown) > 0 {
		b.WriteString("| Analyzer | Score | Level |\n")
		b.WriteString("|----------|-------|-------|\n")
		for _, entry := range result.Risk.Breakdown {
			b.WriteString(fmt.Sprintf("| %s | %d | %s |\n",
				entry.Analyzer, int(math.Round(entry.RawScore)), entry.Level))
		}
		b.WriteString("\n")
	}

	b.WriteString("### Verdict\n\n")
	b.WriteString(result.Verdict.AIAnalysis + "\n\n")
}

func (f *markdownFormatter) writeAnalyzerSections(b *strings.Builder, result *api.AnalysisResponse) {
	entries := []struct {
		name   string
		result api.AnalyzerResult
	}{
		{"EXIF Metadata", result.EXIF},
		{"Error Level Analysis", result.ELA},
		{"Tampering Detection", result.Tampering},
		{"Text / OCR", result.OCR},
		{"AI Generation Detection", result.AIDetection},
	}

	b.WriteString("## Analyzers\n\n")
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("### %s (%d/100)\n\n", e.name, int(math.Round(e.result.RiskScore))))
		b.WriteString(e.result.Summary + "\n\n")
		for _, flag := range e.result.Flags {
			b.WriteString("- " + flag + "\n")
		}
		if len(e.result.Flags) > 0 {
			b.WriteString("\n")
		}
	}
}

func (f *markdownFormatter) writeFlags(b *strings.Builder, flags []string) {
	b.WriteString("## All Flags\n\n")
	if len(flags) == 0 {
		b.WriteString("No flags raised.\n\n")
		return
	}
	for _, flag := range flags {
		b.WriteString(fmt.Sprintf("- [%s] %s\n", report.ClassifyFlag(flag).String(), flag))
	}
	b.WriteString("\n")
}

func (f *markdownFormatter) writeVerification(b *strings.Builder, result *api.TextVerificationResponse) {
	class := report.ClassifyTruthScore(result.TruthScore)

	b.WriteString(fmt.Sprintf("**%s** (%s) - truth score %d/100, confidence %d%%\n\n",
		result.Verdict, class.String(), int(math.Round(result.TruthScore)), int(math.Round(result.Confidence))))
	b.WriteString(result.Explanation + "\n\n")

	if len(result.Claims) > 0 {
		b.WriteString("### Claims\n\n")
		for _, claim := range result.Claims {
			b.WriteString("- " + claim + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("### Sources\n\n")
	if len(result.Sources) == 0 {
		b.WriteString("No sources found.\n\n")
		return
	}
	for _, src := range result.Sources {
		b.WriteString(fmt.Sprintf("- **%s** (%s): [%s](%s)\n",
			src.Domain, src.Category, src.Title, src.Href))
	}
	b.WriteString("\n")
}
