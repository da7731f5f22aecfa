package ui

import (
	"context"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/truthlens/truthlens/internal/api"
	"github.com/truthlens/truthlens/internal/submission"
)

// frameInterval drives the gauge sweep and the breakdown bar fills.
const frameInterval = 50 * time.Millisecond

// barFillDelay postpones the breakdown bar animation after the results
// card appears, to avoid an instant jarring fill.
const barFillDelay = 300 * time.Millisecond

// Every scheduled message carries the generation it was issued under; the
// model drops messages from a superseded generation so a cancelled
// activity can never mutate view state after a transition.
type (
	progressTickMsg struct{ gen int }
	settleMsg       struct{ gen int }
	frameMsg        struct{ gen int }

	previewMsg struct {
		gen     int
		preview submission.Preview
	}

	analysisCompleteMsg struct {
		gen    int
		result *api.AnalysisResponse
	}

	verifyCompleteMsg struct {
		gen    int
		result *api.TextVerificationResponse
	}

	analysisErrorMsg struct {
		gen int
		err error
	}
)

func progressTick(gen int) tea.Cmd {
	return tea.Tick(TickInterval, func(time.Time) tea.Msg {
		return progressTickMsg{gen: gen}
	})
}

func settle(gen int) tea.Cmd {
	return tea.Tick(SettleDelay, func(time.Time) tea.Msg {
		return settleMsg{gen: gen}
	})
}

func frame(gen int) tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return frameMsg{gen: gen}
	})
}

// waitForPreview adapts the store's fire-and-forget probe channel into a
// bubbletea message.
func waitForPreview(gen int, ch <-chan submission.Preview) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return nil
		}
		return previewMsg{gen: gen, preview: p}
	}
}

// analyzeImage submits the stored image. It runs concurrently with the
// progress ticking; neither assumes the other has finished.
func analyzeImage(gen int, client *api.Client, sub *submission.Submission) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(sub.Path)
		if err != nil {
			return analysisErrorMsg{gen: gen, err: err}
		}
		defer func() { _ = f.Close() }()

		result, err := client.Analyze(context.Background(), sub.Filename, f)
		if err != nil {
			return analysisErrorMsg{gen: gen, err: err}
		}
		return analysisCompleteMsg{gen: gen, result: result}
	}
}

// verifyText submits the stored claim.
func verifyText(gen int, client *api.Client, text string) tea.Cmd {
	return func() tea.Msg {
		result, err := client.VerifyText(context.Background(), text)
		if err != nil {
			return analysisErrorMsg{gen: gen, err: err}
		}
		return verifyCompleteMsg{gen: gen, result: result}
	}
}
