// Package ui provides the Bubbletea terminal interface for live playback:
// a decaying peak meter and keyboard control of the chain parameters.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cwbudde/algo-chaosfx/dsp/param"
)

// RefreshInterval is how often the meter is redrawn.
const RefreshInterval = 33 * time.Millisecond

// normalizedStep is the fraction of a parameter's range one key press moves.
const normalizedStep = 0.02

// Host is what the model reads and controls. plugin.Processor satisfies it.
type Host interface {
	Params() *param.Set
	MeterValue() float32
}

// Model is the Bubbletea model for the live meter.
type Model struct {
	host  Host
	title string

	Selected int
	Level    float32
	Hold     float32
	Err      error
	Quitting bool

	Width  int
	Height int
}

// NewModel creates a model for host. title is shown in the header.
func NewModel(host Host, title string) Model {
	return Model{host: host, title: title}
}

// Init starts the refresh ticker.
func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case TickMsg:
		m.Level = m.host.MeterValue()
		m.Hold = max(m.Hold, m.Level)

		return m, tick()

	case PlaybackErrMsg:
		m.Err = msg.Err
		m.Quitting = true

		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	params := m.host.Params().Params()

	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.Quitting = true
		return m, tea.Quit

	case "up", "k":
		m.Selected = (m.Selected + len(params) - 1) % len(params)

	case "down", "j", "tab":
		m.Selected = (m.Selected + 1) % len(params)

	case "left", "h":
		nudge(params[m.Selected], -normalizedStep)

	case "right", "l":
		nudge(params[m.Selected], normalizedStep)

	case "r":
		m.Hold = 0
	}

	return m, nil
}

func nudge(p *param.Param, delta float64) {
	n := min(max(p.Normalized()+delta, 0), 1)
	p.SetNormalized(n)
}

// View renders the UI.
func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	return renderLiveView(m)
}

func tick() tea.Cmd {
	return tea.Tick(RefreshInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
