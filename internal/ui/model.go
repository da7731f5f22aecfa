package ui

import (
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/truthlens/truthlens/internal/api"
	"github.com/truthlens/truthlens/internal/report"
	"github.com/truthlens/truthlens/internal/submission"
)

// ViewState is the exclusive top-level view. Exactly one is current; the
// visible surfaces are a pure function of state plus the active flow.
type ViewState int

const (
	ViewIdle ViewState = iota
	ViewPreviewing
	ViewAnalyzing
	ViewResults
	ViewError
)

// Flow selects which submission pipeline is active.
type Flow int

const (
	FlowImage Flow = iota
	FlowText
)

// KeyMap holds the key bindings for the app.
type KeyMap struct {
	Submit     key.Binding
	SendClaim  key.Binding
	Reset      key.Binding
	SwitchFlow key.Binding
	Up         key.Binding
	Down       key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		SendClaim:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "verify")),
		Reset:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "new analysis")),
		SwitchFlow: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch mode")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

// barAnim animates one breakdown bar from empty to its raw score.
type barAnim struct {
	label string
	score float64
	level report.RiskLevel
	fill  float64 // 0..1 fraction of score currently shown
}

// Model is the top-level state machine. It is the only writer of ViewState;
// user-input handlers and the reset path are the only writers of the store.
type Model struct {
	client *api.Client
	store  *submission.Store
	styles *Styles
	keys   KeyMap

	state ViewState
	flow  Flow

	width  int
	height int

	pathInput  textinput.Model
	claimInput textarea.Model

	sim     *Simulator
	gauge   *Gauge
	bars    []barAnim
	elapsed time.Duration // time since the results view appeared

	preview     *submission.Preview
	imageResult *api.AnalysisResponse
	textResult  *api.TextVerificationResponse
	errText     string
	displayID   string

	// gen guards every scheduled activity: progress ticks, the settle
	// delay and animation frames from a superseded transition are dropped.
	gen int

	scroll   int
	quitting bool
}

// NewModel creates the app model.
func NewModel(client *api.Client) *Model {
	pathInput := textinput.New()
	pathInput.Placeholder = "path to an image (jpeg, png, webp, ...)"
	pathInput.CharLimit = 1024
	pathInput.Focus()

	claimInput := textarea.New()
	claimInput.Placeholder = "Paste a claim or headline to verify..."
	claimInput.CharLimit = submission.MaxTextLen
	claimInput.ShowLineNumbers = false
	claimInput.SetHeight(5)

	return &Model{
		client:     client,
		store:      submission.NewStore(),
		styles:     GetStyles(),
		keys:       DefaultKeyMap(),
		state:      ViewIdle,
		flow:       FlowImage,
		pathInput:  pathInput,
		claimInput: claimInput,
		sim:        NewSimulator(ImageSteps()),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, textinput.Blink)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.claimInput.SetWidth(min(msg.Width-8, 76))
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case previewMsg:
		if msg.gen == m.gen && msg.preview.Err == nil {
			p := msg.preview
			m.preview = &p
		}
		return m, nil
	case progressTickMsg:
		return m.handleProgressTick(msg)
	case analysisCompleteMsg:
		return m.handleAnalysisComplete(msg)
	case verifyCompleteMsg:
		return m.handleVerifyComplete(msg)
	case analysisErrorMsg:
		return m.handleAnalysisError(msg)
	case settleMsg:
		return m.handleSettle(msg)
	case frameMsg:
		return m.handleFrame(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// plain "q" stays typeable in the input surfaces
	quitKey := msg.String() == "ctrl+c" ||
		(msg.String() == "q" && (m.state == ViewPreviewing || m.state == ViewResults))
	if quitKey {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case ViewIdle:
		return m.handleIdleKey(msg)
	case ViewPreviewing:
		return m.handlePreviewKey(msg)
	case ViewAnalyzing:
		// input is inert while a request is in flight
		return m, nil
	case ViewResults:
		return m.handleResultsKey(msg)
	case ViewError:
		// any key acknowledges the error and recovers to idle
		m.errText = ""
		m.state = ViewIdle
		return m, nil
	}
	return m, nil
}

func (m *Model) handleIdleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.SwitchFlow) {
		m.switchFlow()
		return m, nil
	}

	if m.flow == FlowImage {
		if key.Matches(msg, m.keys.Submit) {
			return m.selectImage()
		}
		var cmd tea.Cmd
		m.pathInput, cmd = m.pathInput.Update(msg)
		return m, cmd
	}

	if key.Matches(msg, m.keys.SendClaim) {
		return m.submitClaim()
	}
	var cmd tea.Cmd
	m.claimInput, cmd = m.claimInput.Update(msg)
	return m, cmd
}

func (m *Model) handlePreviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.startImageAnalysis()
	case key.Matches(msg, m.keys.Back):
		m.gen++
		m.store.Clear()
		m.preview = nil
		m.state = ViewIdle
		return m, nil
	}
	return m, nil
}

func (m *Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Reset), key.Matches(msg, m.keys.Back):
		m.resetToIdle()
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if m.scroll > 0 {
			m.scroll--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.scroll < m.resultsMaxScroll() {
			m.scroll++
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) switchFlow() {
	if m.flow == FlowImage {
		m.flow = FlowText
		m.pathInput.Blur()
		m.claimInput.Focus()
	} else {
		m.flow = FlowImage
		m.claimInput.Blur()
		m.pathInput.Focus()
	}
}

// selectImage validates the typed path and moves to the preview surface.
// No network activity happens here.
func (m *Model) selectImage() (tea.Model, tea.Cmd) {
	path := strings.TrimSpace(m.pathInput.Value())
	if path == "" {
		return m, nil
	}

	_, previews, err := m.store.Select(path)
	if err != nil {
		m.errText = err.Error()
		m.state = ViewError
		return m, nil
	}

	// a probe from a previously selected file must not land here
	m.gen++
	m.preview = nil
	m.state = ViewPreviewing
	return m, waitForPreview(m.gen, previews)
}

func (m *Model) submitClaim() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.claimInput.Value())
	if _, err := m.store.SetText(text); err != nil {
		m.errText = err.Error()
		m.state = ViewError
		return m, nil
	}
	return m.startTextVerification()
}

// startImageAnalysis clears the previous results surface and launches the
// progress simulator and the network call together. The two are
// independently scheduled; neither assumes the other finishes first.
func (m *Model) startImageAnalysis() (tea.Model, tea.Cmd) {
	sub := m.store.Current()
	if sub == nil || sub.Kind != submission.KindImage {
		return m, nil
	}

	m.gen++
	m.imageResult = nil
	m.textResult = nil
	m.gauge = nil
	m.bars = nil
	m.scroll = 0
	m.sim = NewSimulator(ImageSteps())
	m.sim.Start()
	m.state = ViewAnalyzing

	return m, tea.Batch(
		progressTick(m.gen),
		analyzeImage(m.gen, m.client, sub),
	)
}

func (m *Model) startTextVerification() (tea.Model, tea.Cmd) {
	sub := m.store.Current()
	if sub == nil || sub.Kind != submission.KindText {
		return m, nil
	}

	m.gen++
	m.imageResult = nil
	m.textResult = nil
	m.gauge = nil
	m.bars = nil
	m.scroll = 0
	m.sim = NewSimulator(TextSteps())
	m.sim.Start()
	m.state = ViewAnalyzing

	return m, tea.Batch(
		progressTick(m.gen),
		verifyText(m.gen, m.client, sub.Text),
	)
}

func (m *Model) handleProgressTick(msg progressTickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen || m.state != ViewAnalyzing || !m.sim.Running() {
		return m, nil
	}
	if done := m.sim.Advance(); done {
		return m, nil
	}
	return m, progressTick(m.gen)
}

func (m *Model) handleAnalysisComplete(msg analysisCompleteMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen || m.state != ViewAnalyzing {
		return m, nil
	}
	m.sim.CompleteAll()
	m.imageResult = msg.result
	return m, settle(m.gen)
}

func (m *Model) handleVerifyComplete(msg verifyCompleteMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen || m.state != ViewAnalyzing {
		return m, nil
	}
	m.sim.CompleteAll()
	m.textResult = msg.result
	return m, settle(m.gen)
}

func (m *Model) handleAnalysisError(msg analysisErrorMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen || m.state != ViewAnalyzing {
		return m, nil
	}
	m.sim.Cancel()
	m.errText = errorMessage(m.flow, msg.err)
	m.state = ViewError
	return m, nil
}

// handleSettle switches to the results view after the short visual pause
// and arms the render animations.
func (m *Model) handleSettle(msg settleMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen || m.state != ViewAnalyzing {
		return m, nil
	}

	m.state = ViewResults
	m.scroll = 0
	m.elapsed = 0
	m.displayID = newDisplayID()

	if m.imageResult != nil {
		risk := m.imageResult.Risk
		level := report.ParseRiskLevel(risk.RiskLevel)
		m.gauge = NewGauge(risk.OverallScore, level.Color())
		m.bars = make([]barAnim, 0, len(risk.Breakdown))
		for _, entry := range risk.Breakdown {
			m.bars = append(m.bars, barAnim{
				label: entry.Analyzer,
				score: entry.RawScore,
				level: report.ParseRiskLevel(entry.Level),
			})
		}
	}
	return m, frame(m.gen)
}

// handleFrame advances the gauge sweep and the bar fills. Frames stop being
// scheduled once every animation has finished.
func (m *Model) handleFrame(msg frameMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen || m.state != ViewResults {
		return m, nil
	}

	m.elapsed += frameInterval

	active := false
	if m.gauge != nil && !m.gauge.Done() {
		m.gauge.Step()
		active = true
	}
	if m.elapsed >= barFillDelay {
		for i := range m.bars {
			if m.bars[i].fill < 1 {
				m.bars[i].fill += 0.08
				if m.bars[i].fill > 1 {
					m.bars[i].fill = 1
				}
				active = true
			}
		}
	} else if len(m.bars) > 0 {
		active = true
	}

	if !active {
		return m, nil
	}
	return m, frame(m.gen)
}

// resetToIdle is the explicit reset action. It is idempotent: running it
// twice leaves the same idle state as running it once.
func (m *Model) resetToIdle() {
	m.gen++
	m.store.Clear()
	m.sim.Reset()
	m.imageResult = nil
	m.textResult = nil
	m.gauge = nil
	m.bars = nil
	m.preview = nil
	m.errText = ""
	m.scroll = 0
	m.pathInput.SetValue("")
	m.claimInput.Reset()
	m.state = ViewIdle
}

// errorMessage picks the most specific diagnostic available: the server's
// detail message, then the HTTP status, then the raw transport error. The
// text endpoint gets a generic message per its contract.
func errorMessage(flow Flow, err error) string {
	if flow == FlowText {
		return "Verification failed. Please try again."
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return "Analysis failed: " + apiErr.Error()
	}
	return "Analysis failed: " + err.Error()
}

// newDisplayID generates the opaque per-render identifier shown in the
// report footer. Display only; it has no correctness role.
func newDisplayID() string {
	const chars = "0123456789abcdef"
	b := make([]byte, 8)
	for i := range b {
		b[i] = chars[rand.Intn(len(chars))]
	}
	return string(b)
}
