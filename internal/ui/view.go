package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/truthlens/truthlens/internal/emoji"
	"github.com/truthlens/truthlens/internal/submission"
)

// View implements tea.Model. The visible surface is a pure function of the
// view state and the active flow.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	switch m.state {
	case ViewIdle:
		content = m.viewIdle()
	case ViewPreviewing:
		content = m.viewPreviewing()
	case ViewAnalyzing:
		content = m.viewAnalyzing()
	case ViewResults:
		content = m.viewResults()
	case ViewError:
		content = m.viewError()
	}

	return content
}

func (m *Model) header() string {
	title := m.styles.Title.Render(emoji.GetEmoji("shield") + " TruthLens")
	sub := m.styles.Muted.Render("Fake News & Image Forensics Viewer")

	imgTab := "  " + emoji.GetEmoji("camera") + " Image  "
	txtTab := "  " + emoji.GetEmoji("text") + " Text Claim  "
	activeTab := lipgloss.NewStyle().
		Background(m.styles.Theme.Selected).
		Foreground(m.styles.Theme.Primary).
		Bold(true)
	idleTab := m.styles.Muted

	var tabs string
	if m.flow == FlowImage {
		tabs = activeTab.Render(imgTab) + idleTab.Render(txtTab)
	} else {
		tabs = idleTab.Render(imgTab) + activeTab.Render(txtTab)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, sub, "", tabs, "")
}

func (m *Model) helpLine(entries ...string) string {
	return m.styles.Muted.Render(strings.Join(entries, " • "))
}

func (m *Model) viewIdle() string {
	var body string
	if m.flow == FlowImage {
		body = lipgloss.JoinVertical(lipgloss.Left,
			m.styles.Subheader.Render("Select an image to analyze"),
			"",
			m.pathInput.View(),
			"",
			m.helpLine("enter select", "tab switch mode", "ctrl+c quit"),
		)
	} else {
		counter := m.claimCounter()
		body = lipgloss.JoinVertical(lipgloss.Left,
			m.styles.Subheader.Render("Enter a claim to verify"),
			"",
			m.claimInput.View(),
			counter,
			"",
			m.helpLine("ctrl+s verify", "tab switch mode", "ctrl+c quit"),
		)
	}

	box := m.styles.Box.Width(min(m.width-4, 80)).Render(
		lipgloss.JoinVertical(lipgloss.Left, m.header(), body))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// claimCounter renders the live character count against the 5..5000 bound.
func (m *Model) claimCounter() string {
	n := len([]rune(m.claimInput.Value()))
	text := fmt.Sprintf("%d / %d", n, submission.MaxTextLen)
	if n > 0 && (n < submission.MinTextLen || n > submission.MaxTextLen) {
		return m.styles.Error.Render(text)
	}
	return m.styles.Muted.Render(text)
}

func (m *Model) viewPreviewing() string {
	sub := m.store.Current()
	if sub == nil {
		return m.viewIdle()
	}

	lines := []string{
		m.styles.Subheader.Render(emoji.GetEmoji("camera") + " Selected image"),
		"",
		m.styles.Body.Render(sub.Filename),
		m.styles.Muted.Render(sub.MIME + " • " + sub.SizeLabel),
	}
	if m.preview != nil {
		lines = append(lines, m.styles.Muted.Render(
			fmt.Sprintf("%dx%d %s", m.preview.Width, m.preview.Height, m.preview.Format)))
	}
	lines = append(lines, "",
		m.helpLine("enter analyze", "esc back", "q quit"))

	box := m.styles.Box.Width(min(m.width-4, 80)).Render(
		lipgloss.JoinVertical(lipgloss.Left, m.header(), lipgloss.JoinVertical(lipgloss.Left, lines...)))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) viewAnalyzing() string {
	title := m.styles.Subheader.Render(emoji.GetEmoji("search") + " Analyzing...")
	body := lipgloss.JoinVertical(lipgloss.Left, title, "", m.sim.View(m.styles))

	box := m.styles.Box.Width(min(m.width-4, 80)).Render(
		lipgloss.JoinVertical(lipgloss.Left, m.header(), body))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) viewError() string {
	banner := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(m.styles.Theme.Error).
		Padding(0, 2).
		Render(m.styles.Error.Render(emoji.GetEmoji("error")+" "+m.errText) + "\n" +
			m.styles.Muted.Render("press any key to continue"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, banner)
}

// viewResults rebuilds the whole results tree every render; there is no
// incremental diffing.
func (m *Model) viewResults() string {
	return m.clipToViewport(m.resultsBody())
}

func (m *Model) resultsBody() string {
	width := min(m.width-4, 84)

	var content string
	switch {
	case m.imageResult != nil:
		content = m.renderImageReport(width)
	case m.textResult != nil:
		content = m.renderTextReport(width)
	default:
		content = m.styles.Muted.Render("No results.")
	}

	footer := m.helpLine("↑/↓ scroll", "r new analysis", "q quit") +
		"  " + m.styles.Muted.Render("render "+m.displayID)

	return lipgloss.JoinVertical(lipgloss.Left, content, "", footer)
}

// resultsMaxScroll is the largest offset that still leaves a full viewport
// of content. The scroll key handler clamps against it.
func (m *Model) resultsMaxScroll() int {
	lines := strings.Count(m.resultsBody(), "\n") + 1
	maxScroll := lines - m.height
	if maxScroll < 0 {
		maxScroll = 0
	}
	return maxScroll
}

// clipToViewport applies the scroll offset. The view never mutates model
// state, so an offset gone stale after a resize is clamped locally.
func (m *Model) clipToViewport(body string) string {
	lines := strings.Split(body, "\n")
	offset := m.scroll
	if maxScroll := len(lines) - m.height; offset > maxScroll {
		offset = maxScroll
	}
	if offset < 0 {
		offset = 0
	}
	end := offset + m.height
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[offset:end], "\n")
}
