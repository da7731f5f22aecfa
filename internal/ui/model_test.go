package ui

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/truthlens/truthlens/internal/api"
	"github.com/truthlens/truthlens/internal/submission"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	client, err := api.NewClient("http://localhost:9", 0)
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	return NewModel(client)
}

// armAnalyzing places the model mid-request the way startImageAnalysis
// does, without the network command.
func armAnalyzing(m *Model) {
	m.gen++
	m.sim = NewSimulator(ImageSteps())
	m.sim.Start()
	m.state = ViewAnalyzing
}

func writeTestPNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("png.Encode() error: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	return path
}

func TestModelStartsIdle(t *testing.T) {
	m := newTestModel(t)
	if m.state != ViewIdle {
		t.Errorf("initial state = %v, want ViewIdle", m.state)
	}
	if m.flow != FlowImage {
		t.Errorf("initial flow = %v, want FlowImage", m.flow)
	}
}

func TestSwitchFlow(t *testing.T) {
	m := newTestModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.flow != FlowText {
		t.Errorf("flow after tab = %v, want FlowText", m.flow)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.flow != FlowImage {
		t.Errorf("flow after second tab = %v, want FlowImage", m.flow)
	}
}

func TestSubmitInvalidClaimShowsError(t *testing.T) {
	m := newTestModel(t)
	m.flow = FlowText
	m.claimInput.SetValue("hi")

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	if m.state != ViewError {
		t.Fatalf("state = %v, want ViewError", m.state)
	}
	if m.errText == "" {
		t.Error("error text should carry the validation message")
	}
}

func TestErrorViewRecoversOnAnyKey(t *testing.T) {
	m := newTestModel(t)
	m.state = ViewError
	m.errText = "something broke"

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})

	if m.state != ViewIdle {
		t.Errorf("state = %v, want ViewIdle after any key", m.state)
	}
	if m.errText != "" {
		t.Error("error text should be cleared on recovery")
	}
}

func TestAnalysisErrorTransition(t *testing.T) {
	m := newTestModel(t)
	armAnalyzing(m)

	m.Update(analysisErrorMsg{gen: m.gen, err: errors.New("connection refused")})

	if m.state != ViewError {
		t.Fatalf("state = %v, want ViewError", m.state)
	}
	if m.sim.Running() {
		t.Error("simulator must be cancelled on error")
	}
	if !strings.Contains(m.errText, "Analysis failed") {
		t.Errorf("errText = %q, want an analysis failure message", m.errText)
	}
}

func TestStaleMessagesAreDropped(t *testing.T) {
	m := newTestModel(t)
	armAnalyzing(m)
	current := m.gen

	m.Update(analysisErrorMsg{gen: current - 1, err: errors.New("late failure")})
	if m.state != ViewAnalyzing {
		t.Errorf("stale error changed state to %v", m.state)
	}

	m.Update(analysisCompleteMsg{gen: current - 1, result: &api.AnalysisResponse{}})
	if m.imageResult != nil {
		t.Error("stale completion must not store a result")
	}

	m.Update(settleMsg{gen: current - 1})
	if m.state != ViewAnalyzing {
		t.Errorf("stale settle changed state to %v", m.state)
	}
}

func TestCompleteThenSettleShowsResults(t *testing.T) {
	m := newTestModel(t)
	armAnalyzing(m)

	result := &api.AnalysisResponse{}
	result.Risk.OverallScore = 63
	result.Risk.RiskLevel = "high"
	result.Risk.Breakdown = []api.BreakdownEntry{
		{Analyzer: "ELA", RawScore: 70, Level: "high"},
		{Analyzer: "EXIF", RawScore: 40, Level: "medium"},
	}
	result.Normalize()

	m.Update(analysisCompleteMsg{gen: m.gen, result: result})

	// the settle pause keeps the progress view up with every step done
	if m.state != ViewAnalyzing {
		t.Fatalf("state after completion = %v, want ViewAnalyzing until settle", m.state)
	}
	if m.sim.Running() {
		t.Error("simulator should stop once the request settles")
	}

	m.Update(settleMsg{gen: m.gen})

	if m.state != ViewResults {
		t.Fatalf("state after settle = %v, want ViewResults", m.state)
	}
	if m.gauge == nil {
		t.Fatal("settle must arm the gauge for an image result")
	}
	if m.gauge.target != TargetAngle(63) {
		t.Errorf("gauge target = %v, want %v", m.gauge.target, TargetAngle(63))
	}
	if len(m.bars) != 2 {
		t.Errorf("bar count = %d, want 2", len(m.bars))
	}
	if m.displayID == "" {
		t.Error("settle must mint a display id")
	}
}

func TestFramesAnimateGaugeAndBars(t *testing.T) {
	m := newTestModel(t)
	armAnalyzing(m)

	result := &api.AnalysisResponse{}
	result.Risk.OverallScore = 10
	result.Risk.RiskLevel = "low"
	result.Risk.Breakdown = []api.BreakdownEntry{{Analyzer: "ELA", RawScore: 50, Level: "medium"}}
	result.Normalize()

	m.Update(analysisCompleteMsg{gen: m.gen, result: result})
	m.Update(settleMsg{gen: m.gen})

	// bars hold until the fill delay has elapsed
	m.Update(frameMsg{gen: m.gen})
	if m.bars[0].fill != 0 {
		t.Error("bars must not fill before the delay")
	}

	for i := 0; i < 200 && (!m.gauge.Done() || m.bars[0].fill < 1); i++ {
		m.Update(frameMsg{gen: m.gen})
	}

	if !m.gauge.Done() {
		t.Error("gauge never finished its sweep")
	}
	if m.bars[0].fill != 1 {
		t.Errorf("bar fill = %v, want 1", m.bars[0].fill)
	}
}

func TestResetToIdleIsIdempotent(t *testing.T) {
	m := newTestModel(t)
	armAnalyzing(m)
	m.Update(analysisCompleteMsg{gen: m.gen, result: &api.AnalysisResponse{}})
	m.Update(settleMsg{gen: m.gen})

	m.resetToIdle()
	genAfterFirst := m.gen

	if m.state != ViewIdle {
		t.Errorf("state = %v, want ViewIdle", m.state)
	}
	if m.imageResult != nil || m.textResult != nil || m.gauge != nil || m.bars != nil {
		t.Error("reset must drop every result surface")
	}
	if m.store.Current() != nil {
		t.Error("reset must clear the submission store")
	}

	m.resetToIdle()
	if m.state != ViewIdle || m.imageResult != nil || m.store.Current() != nil {
		t.Error("a second reset must land in the same idle state")
	}
	if m.gen <= genAfterFirst {
		t.Error("every reset must bump the generation")
	}
}

func TestVerifyCompleteUsesTextResult(t *testing.T) {
	m := newTestModel(t)
	m.flow = FlowText
	armAnalyzing(m)
	m.sim = NewSimulator(TextSteps())
	m.sim.Start()

	result := &api.TextVerificationResponse{TruthScore: 85, Verdict: "TRUE"}
	result.Normalize()

	m.Update(verifyCompleteMsg{gen: m.gen, result: result})
	m.Update(settleMsg{gen: m.gen})

	if m.state != ViewResults {
		t.Fatalf("state = %v, want ViewResults", m.state)
	}
	if m.textResult == nil {
		t.Fatal("text result missing")
	}
	if m.gauge != nil {
		t.Error("text flow must not arm the image gauge")
	}
}

func TestErrorMessageSelection(t *testing.T) {
	tests := []struct {
		name string
		flow Flow
		err  error
		want string
	}{
		{
			"text flow is generic",
			FlowText,
			&api.APIError{StatusCode: 500, Detail: "model unavailable"},
			"Verification failed. Please try again.",
		},
		{
			"image flow uses server detail",
			FlowImage,
			&api.APIError{StatusCode: 400, Detail: "File must be an image"},
			"Analysis failed: File must be an image",
		},
		{
			"image flow without detail uses status",
			FlowImage,
			&api.APIError{StatusCode: 503},
			"Analysis failed: server returned HTTP 503",
		},
		{
			"image flow transport error",
			FlowImage,
			errors.New("connection refused"),
			"Analysis failed: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorMessage(tt.flow, tt.err); got != tt.want {
				t.Errorf("errorMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t)

	// plain q must stay typeable in the idle path input
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if m.quitting {
		t.Fatal("plain q while typing must not quit")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.quitting || cmd == nil {
		t.Error("ctrl+c must always quit")
	}
}

func TestPreviewFromSupersededSelectionIsDropped(t *testing.T) {
	m := newTestModel(t)
	dir := t.TempDir()
	first := writeTestPNG(t, dir, "a.png", 111, 111)
	second := writeTestPNG(t, dir, "b.png", 222, 222)

	m.pathInput.SetValue(first)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != ViewPreviewing {
		t.Fatalf("state = %v, want ViewPreviewing", m.state)
	}
	staleGen := m.gen

	// backing out supersedes the in-flight probe
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.gen == staleGen {
		t.Fatal("esc must bump the generation past the pending probe")
	}
	m.Update(previewMsg{gen: staleGen, preview: submission.Preview{Width: 111, Height: 111, Format: "png"}})
	if m.preview != nil {
		t.Fatalf("probe from the abandoned selection stored preview %+v", *m.preview)
	}

	// so does selecting a different file
	m.pathInput.SetValue(second)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.gen == staleGen {
		t.Fatal("reselecting must bump the generation past the pending probe")
	}
	m.Update(previewMsg{gen: staleGen, preview: submission.Preview{Width: 111, Height: 111, Format: "png"}})
	if m.preview != nil {
		t.Fatalf("stale probe accepted while previewing a different file: %+v", *m.preview)
	}

	m.Update(previewMsg{gen: m.gen, preview: submission.Preview{Width: 222, Height: 222, Format: "png"}})
	if m.preview == nil || m.preview.Width != 222 {
		t.Error("probe for the current selection must land")
	}
}

func TestScrollClampsAtContentEnd(t *testing.T) {
	m := newTestModel(t)
	m.width = 80
	m.height = 10
	armAnalyzing(m)

	result := &api.AnalysisResponse{}
	result.Normalize()
	m.Update(analysisCompleteMsg{gen: m.gen, result: result})
	m.Update(settleMsg{gen: m.gen})

	maxScroll := m.resultsMaxScroll()
	for i := 0; i < maxScroll+25; i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.scroll != maxScroll {
		t.Errorf("scroll = %d, want clamp at %d", m.scroll, maxScroll)
	}

	before := m.scroll
	m.View()
	if m.scroll != before {
		t.Error("rendering must not mutate the scroll offset")
	}
}

func TestNewDisplayID(t *testing.T) {
	id := newDisplayID()
	if len(id) != 8 {
		t.Fatalf("display id length = %d, want 8", len(id))
	}
	for _, r := range id {
		if !strings.ContainsRune("0123456789abcdef", r) {
			t.Errorf("display id contains non-hex rune %q", r)
		}
	}
}
