package ui

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"

	"github.com/truthlens/truthlens/internal/api"
	"github.com/truthlens/truthlens/internal/emoji"
	"github.com/truthlens/truthlens/internal/report"
)

// renderTextReport builds the card tree for a text verification result.
func (m *Model) renderTextReport(width int) string {
	r := m.textResult
	class := report.ClassifyTruthScore(r.TruthScore)
	accent := lipgloss.Color(class.Color())

	verdictLine := lipgloss.NewStyle().Foreground(accent).Bold(true).
		Render(emoji.GetEmoji("verdict") + " " + sanitize(r.Verdict))
	scoreLine := m.styles.Body.Render(
		fmt.Sprintf("Truth score: %d / 100  •  confidence %d%%",
			int(math.Round(r.TruthScore)), int(math.Round(r.Confidence))))
	explanation := m.styles.Body.Width(width - 6).Render(sanitize(r.Explanation))

	verdictCard := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(1, 2).
		Width(width).
		Render(lipgloss.JoinVertical(lipgloss.Left, verdictLine, scoreLine, "", explanation))

	cards := []string{verdictCard}

	if len(r.Claims) > 0 {
		rows := []string{m.styles.Subheader.Render("Claims Checked")}
		for _, claim := range r.Claims {
			rows = append(rows, m.styles.Body.Render("  • "+truncate(sanitize(claim), width-8)))
		}
		cards = append(cards, m.styles.Panel.Width(width).Render(
			lipgloss.JoinVertical(lipgloss.Left, rows...)))
	}

	cards = append(cards, m.sourcesCard(width, r.Sources))

	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// sourcesCard renders one card per evidence source, styled by its category
// slug, with a placeholder when the verifier returned none.
func (m *Model) sourcesCard(width int, sources []api.Source) string {
	rows := []string{m.styles.Subheader.Render(emoji.GetEmoji("link") + " Sources")}

	if len(sources) == 0 {
		rows = append(rows, m.styles.Muted.Render("No sources found for this claim."))
		return m.styles.Box.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	for _, src := range sources {
		slug := report.CategorySlug(src.Category)
		accent := lipgloss.Color(report.CategoryColor(slug))

		header := lipgloss.NewStyle().Foreground(accent).Bold(true).Render(sanitize(src.Domain)) +
			"  " + m.styles.Muted.Render(slug)
		title := m.styles.Body.Render(truncate(sanitize(src.Title), width-8))
		body := m.styles.Muted.Width(width - 8).Render(truncate(sanitize(src.Body), 240))

		rows = append(rows, lipgloss.JoinVertical(lipgloss.Left, header, title, body, ""))
	}

	return m.styles.Box.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// embeddedTextCard renders the text-verification block the backend attaches
// to an image analysis when OCR finds enough text. The SKIPPED verdict is
// shown as-is.
func (m *Model) embeddedTextCard(width int, r *api.TextVerificationResponse) string {
	class := report.ClassifyTruthScore(r.TruthScore)
	accent := lipgloss.Color(class.Color())

	header := m.styles.Subheader.Render(emoji.GetEmoji("text") + " Extracted Text Verification")
	verdict := lipgloss.NewStyle().Foreground(accent).Bold(true).Render(sanitize(r.Verdict))
	explanation := m.styles.Muted.Width(width - 6).Render(sanitize(r.Explanation))

	return m.styles.Panel.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, verdict, explanation))
}
