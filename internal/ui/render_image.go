package ui

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/truthlens/truthlens/internal/api"
	"github.com/truthlens/truthlens/internal/emoji"
	"github.com/truthlens/truthlens/internal/report"
	"github.com/truthlens/truthlens/internal/submission"
)

const metadataValueLimit = 200

// renderImageReport builds the full card tree for an image analysis.
func (m *Model) renderImageReport(width int) string {
	r := m.imageResult

	cards := []string{
		m.metaCard(width, r),
		m.riskCard(width, r),
		m.verdictCard(width, r),
		m.breakdownCard(width),
	}

	cards = append(cards, m.analyzerCards(width, r)...)

	if ev := m.evidenceCards(width, r); ev != "" {
		cards = append(cards, ev)
	}
	if meta := m.metadataTable(width, r); meta != "" {
		cards = append(cards, meta)
	}
	cards = append(cards, m.flagsCard(width, r.Risk.AllFlags))

	if r.TextVerification != nil {
		cards = append(cards, m.embeddedTextCard(width, r.TextVerification))
	}

	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func (m *Model) metaCard(width int, r *api.AnalysisResponse) string {
	line := fmt.Sprintf("%s  %s • %s • %.2fs • id %s",
		emoji.GetEmoji("metadata"),
		sanitize(r.Filename),
		submission.HumanSize(r.FileSize),
		r.AnalysisTime,
		sanitize(r.AnalysisID),
	)
	return m.styles.Panel.Width(width).Render(m.styles.Muted.Render(line))
}

// riskCard shows the animated gauge next to the level and description.
func (m *Model) riskCard(width int, r *api.AnalysisResponse) string {
	level := report.ParseRiskLevel(r.Risk.RiskLevel)
	accent := lipgloss.Color(level.Color())

	var gaugeView string
	if m.gauge != nil {
		gaugeView = m.gauge.View()
	}

	levelLine := lipgloss.NewStyle().Foreground(accent).Bold(true).
		Render(emoji.GetEmoji(level.EmojiKey()) + " " + level.String() + " RISK")
	scoreLine := m.styles.Body.Render(
		fmt.Sprintf("Overall score: %d / 100", int(math.Round(r.Risk.OverallScore))))
	desc := m.styles.Muted.Width(width - gaugeCols - 10).Render(sanitize(r.Risk.RiskDescription))

	text := lipgloss.JoinVertical(lipgloss.Left, levelLine, scoreLine, "", desc)
	inner := lipgloss.JoinHorizontal(lipgloss.Center, gaugeView, "   ", text)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(1, 2).
		Width(width).
		Render(inner)
}

func (m *Model) verdictCard(width int, r *api.AnalysisResponse) string {
	style := report.VerdictColors(r.Verdict.Verdict)

	label := r.Verdict.Verdict
	if label == "" {
		label = "NO VERDICT"
	}

	banner := lipgloss.NewStyle().
		Background(lipgloss.Color(style.Background)).
		Foreground(lipgloss.Color(style.Foreground)).
		Bold(true).
		Padding(0, 2).
		Render(emoji.GetEmoji("verdict") + " " + sanitize(label))

	analysis := m.styles.Body.Width(width - 6).Render(sanitize(r.Verdict.AIAnalysis))

	return m.styles.Box.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, banner, "", analysis))
}

// breakdownCard renders one horizontal bar per analyzer, animated from
// empty toward its raw score.
func (m *Model) breakdownCard(width int) string {
	if len(m.bars) == 0 {
		return ""
	}

	barWidth := width - 34
	if barWidth < 10 {
		barWidth = 10
	}

	var rows []string
	rows = append(rows, m.styles.Subheader.Render("Risk Breakdown"))
	for _, bar := range m.bars {
		rows = append(rows, m.renderBar(bar, barWidth))
	}
	return m.styles.Box.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) renderBar(bar barAnim, barWidth int) string {
	shown := bar.score * bar.fill
	filled := int(float64(barWidth) * shown / 100)
	if filled > barWidth {
		filled = barWidth
	}

	fillStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(bar.level.Color()))
	track := m.styles.Muted.Render(strings.Repeat("░", barWidth-filled))
	fill := fillStyle.Render(strings.Repeat("█", filled))

	label := fmt.Sprintf("%-24s", truncate(sanitize(bar.label), 24))
	value := fmt.Sprintf("%3d", int(math.Round(shown)))
	return fmt.Sprintf("%s %s%s %s", m.styles.Muted.Render(label), fill, track, m.styles.Body.Render(value))
}

// analyzerCards renders the five fixed per-analyzer cards. Absent analyzer
// data was defaulted at the API boundary, so every card always renders.
func (m *Model) analyzerCards(width int, r *api.AnalysisResponse) []string {
	entries := []struct {
		name   string
		icon   string
		result api.AnalyzerResult
	}{
		{"EXIF Metadata", "metadata", r.EXIF},
		{"Error Level Analysis", "heatmap", r.ELA},
		{"Tampering Detection", "tamper", r.Tampering},
		{"Text / OCR", "text", r.OCR},
		{"AI Generation", "brain", r.AIDetection},
	}

	cards := make([]string, 0, len(entries))
	for _, e := range entries {
		cards = append(cards, m.analyzerCard(width, e.name, e.icon, e.result))
	}
	return cards
}

func (m *Model) analyzerCard(width int, name, icon string, result api.AnalyzerResult) string {
	level := levelForScore(result.RiskScore)
	accent := lipgloss.Color(level.Color())

	title := m.styles.Header.Render(emoji.GetEmoji(icon)+" "+name) + "  " +
		lipgloss.NewStyle().Foreground(accent).Bold(true).
			Render(fmt.Sprintf("%d/100", int(math.Round(result.RiskScore))))
	summary := m.styles.Body.Width(width - 6).Render(sanitize(result.Summary))

	lines := []string{title, summary}
	for _, flag := range result.Flags {
		lines = append(lines, m.renderFlag(flag, width-8))
	}

	return m.styles.Panel.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// levelForScore buckets a raw 0-100 score the way the backend does.
func levelForScore(score float64) report.RiskLevel {
	switch {
	case score <= 25:
		return report.RiskLow
	case score <= 50:
		return report.RiskMedium
	case score <= 75:
		return report.RiskHigh
	default:
		return report.RiskCritical
	}
}

func (m *Model) renderFlag(flag string, width int) string {
	class := report.ClassifyFlag(flag)
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(class.Color()))
	return "  " + style.Render(truncate(sanitize(flag), width))
}

// evidenceCards renders a labeled panel per evidence image present in the
// response. Absent fields render nothing; an all-absent response yields an
// empty section rather than an error.
func (m *Model) evidenceCards(width int, r *api.AnalysisResponse) string {
	entries := []struct {
		label string
		uri   string
	}{
		{"Original Image", r.OriginalImage},
		{"ELA Heatmap", r.ELAImage},
		{"Tamper Annotation", r.TamperAnnotatedImage},
		{"Noise Map", r.NoiseMapImage},
	}

	var panels []string
	for _, e := range entries {
		if e.uri == "" {
			continue
		}
		mime, size := describeDataURI(e.uri)
		line := m.styles.Body.Render(e.label) + "  " +
			m.styles.Muted.Render(fmt.Sprintf("%s, %s", mime, submission.HumanSize(size)))
		panels = append(panels, "  "+emoji.GetEmoji("camera")+" "+line)
	}
	if len(panels) == 0 {
		return ""
	}

	rows := append([]string{m.styles.Subheader.Render("Evidence")}, panels...)
	return m.styles.Box.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// describeDataURI reports the MIME type and decoded byte size of a
// data: URI without materializing the payload.
func describeDataURI(uri string) (string, int64) {
	mime := "unknown"
	rest := uri
	if strings.HasPrefix(uri, "data:") {
		rest = uri[len("data:"):]
		if i := strings.Index(rest, ";"); i >= 0 {
			mime = rest[:i]
			rest = rest[i+1:]
		}
	}
	if i := strings.Index(rest, ","); i >= 0 {
		rest = rest[i+1:]
	}
	// base64 expands 3 bytes to 4 characters
	return mime, int64(len(rest)) * 3 / 4
}

// metadataTable renders EXIF key/value pairs; nothing renders when the
// analyzer returned no metadata.
func (m *Model) metadataTable(width int, r *api.AnalysisResponse) string {
	meta := r.EXIF.Metadata
	if len(meta) == 0 {
		return ""
	}

	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := []string{m.styles.Subheader.Render("EXIF Metadata")}
	for _, k := range keys {
		value := truncate(sanitize(fmt.Sprintf("%v", meta[k])), metadataValueLimit)
		rows = append(rows, fmt.Sprintf("%s %s",
			m.styles.Muted.Render(fmt.Sprintf("%-22s", truncate(sanitize(k), 22))),
			m.styles.Body.Render(value)))
	}
	return m.styles.Box.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) flagsCard(width int, flags []string) string {
	rows := []string{m.styles.Subheader.Render("All Flags")}
	if len(flags) == 0 {
		rows = append(rows, m.styles.Muted.Render("No flags raised."))
	}
	for _, flag := range flags {
		rows = append(rows, m.renderFlag(flag, width-6))
	}
	return m.styles.Box.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// sanitize strips control characters from server-supplied text so it can
// never smuggle escape sequences into the terminal.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 && r != '\n' && r != '\t' {
			return -1
		}
		if r == 0x7F {
			return -1
		}
		return r
	}, s)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}
