package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/truthlens/truthlens/internal/emoji"
)

// TickInterval is the fixed cadence of the cosmetic progress narrative. It
// is unrelated to real backend progress; the backend reports none.
const TickInterval = 800 * time.Millisecond

// SettleDelay is observed between the request settling and the results
// view appearing, so the forced step completion is visible.
const SettleDelay = 600 * time.Millisecond

// StepState is the lifecycle of one progress step.
type StepState int

const (
	StepPending StepState = iota
	StepActive
	StepDone
)

// Step is one labeled entry in the progress narrative.
type Step struct {
	ID      string
	Label   string
	Message string
	State   StepState
}

// ImageSteps returns the fixed six-step narrative for the image flow.
func ImageSteps() []Step {
	return []Step{
		{ID: "upload", Label: "Upload", Message: "Uploading image to analysis engine..."},
		{ID: "exif", Label: "EXIF Metadata", Message: "Inspecting EXIF metadata..."},
		{ID: "ela", Label: "Error Level Analysis", Message: "Running error level analysis..."},
		{ID: "tamper", Label: "Tampering Detection", Message: "Scanning for tampering artifacts..."},
		{ID: "ocr_ai", Label: "OCR & AI Detection", Message: "Extracting text and scoring AI generation..."},
		{ID: "verdict", Label: "Verdict", Message: "Generating verdict..."},
	}
}

// TextSteps returns the shorter narrative for the text flow.
func TextSteps() []Step {
	return []Step{
		{ID: "claims", Label: "Claim Extraction", Message: "Extracting verifiable claims..."},
		{ID: "search", Label: "Source Search", Message: "Cross-referencing web sources..."},
		{ID: "verdict", Label: "Verdict", Message: "Weighing the evidence..."},
	}
}

// Simulator drives the fixed-cadence step animation shown while a request
// is in flight. It guarantees: no step is skipped, at most one step is
// Active, and cancellation is an idempotent no-op once stopped.
type Simulator struct {
	steps   []Step
	index   int // -1 before the first tick
	running bool
	status  string
}

// NewSimulator creates a simulator over a fresh copy of the steps.
func NewSimulator(steps []Step) *Simulator {
	s := &Simulator{}
	s.reset(steps)
	return s
}

func (s *Simulator) reset(steps []Step) {
	s.steps = make([]Step, len(steps))
	copy(s.steps, steps)
	for i := range s.steps {
		s.steps[i].State = StepPending
	}
	s.index = -1
	s.running = false
	s.status = "Preparing analysis..."
}

// Start arms the simulator. The first Advance activates the first step.
func (s *Simulator) Start() {
	s.running = true
}

// Running reports whether further ticks should be scheduled.
func (s *Simulator) Running() bool {
	return s.running
}

// Advance performs one tick: the previously active step is marked done and
// the next becomes active. Returns true once all steps have been visited
// and ticking should stop.
func (s *Simulator) Advance() bool {
	if !s.running {
		return true
	}
	if s.index >= 0 && s.index < len(s.steps) {
		s.steps[s.index].State = StepDone
	}
	s.index++
	if s.index >= len(s.steps) {
		s.running = false
		return true
	}
	s.steps[s.index].State = StepActive
	s.status = s.steps[s.index].Message
	return false
}

// Cancel stops ticking immediately. Safe to call repeatedly or when the
// simulator never started.
func (s *Simulator) Cancel() {
	s.running = false
}

// CompleteAll forces every step to done, regardless of how far the ticking
// got. Used when the request settles before the narrative finishes.
func (s *Simulator) CompleteAll() {
	for i := range s.steps {
		s.steps[i].State = StepDone
	}
	s.index = len(s.steps)
	s.running = false
	s.status = "Analysis complete"
}

// Reset restores the initial icons and labels.
func (s *Simulator) Reset() {
	s.reset(s.steps)
}

// Steps returns a snapshot of the current step states.
func (s *Simulator) Steps() []Step {
	out := make([]Step, len(s.steps))
	copy(out, s.steps)
	return out
}

// Status returns the single human-readable status line.
func (s *Simulator) Status() string {
	return s.status
}

// View renders the step list with per-state icons and the status line.
func (s *Simulator) View(styles *Styles) string {
	var b strings.Builder
	for _, step := range s.steps {
		var icon, line string
		switch step.State {
		case StepDone:
			icon = emoji.GetEmoji("done")
			line = styles.Success.Render(icon) + " " + styles.Muted.Render(step.Label)
		case StepActive:
			icon = emoji.GetEmoji("active")
			line = styles.Warning.Render(icon) + " " + styles.Body.Bold(true).Render(step.Label)
		default:
			icon = emoji.GetEmoji("pending")
			line = styles.Muted.Render(icon + " " + step.Label)
		}
		b.WriteString(line + "\n")
	}

	status := lipgloss.NewStyle().Foreground(styles.Theme.Secondary).Italic(true).Render(s.status)
	return b.String() + "\n" + status
}
