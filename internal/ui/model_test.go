package ui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cwbudde/algo-chaosfx/dsp/param"
	"github.com/cwbudde/algo-chaosfx/measure/analysis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHost struct {
	params *param.Set
	level  float32
}

func (h *fakeHost) Params() *param.Set  { return h.params }
func (h *fakeHost) MeterValue() float32 { return h.level }

func newFakeHost() *fakeHost {
	return &fakeHost{params: param.NewSet()}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}

	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)

	return out, cmd
}

func TestSelectionWraps(t *testing.T) {
	m := NewModel(newFakeHost(), "")

	m, _ = update(t, m, key("up"))
	assert.Equal(t, 3, m.Selected)

	m, _ = update(t, m, key("down"))
	m, _ = update(t, m, key("j"))
	assert.Equal(t, 1, m.Selected)
}

func TestAdjustParam(t *testing.T) {
	host := newFakeHost()
	m := NewModel(host, "")

	// Select chaos.
	for range 3 {
		m, _ = update(t, m, key("down"))
	}

	m, _ = update(t, m, key("right"))
	m, _ = update(t, m, key("right"))
	assert.InDelta(t, 0.04, float64(host.params.Chaos.Value()), 1e-6)

	for range 5 {
		m, _ = update(t, m, key("left"))
	}

	assert.Zero(t, host.params.Chaos.Value())
}

func TestTickReadsMeterAndHolds(t *testing.T) {
	host := newFakeHost()
	m := NewModel(host, "")

	host.level = 0.5
	m, cmd := update(t, m, TickMsg(time.Now()))
	assert.NotNil(t, cmd)
	assert.Equal(t, float32(0.5), m.Level)

	host.level = 0.25
	m, _ = update(t, m, TickMsg(time.Now()))
	assert.Equal(t, float32(0.25), m.Level)
	assert.Equal(t, float32(0.5), m.Hold)

	m, _ = update(t, m, key("r"))
	assert.Zero(t, m.Hold)
}

func TestQuit(t *testing.T) {
	m := NewModel(newFakeHost(), "")

	m, cmd := update(t, m, key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.Quitting)
	assert.Empty(t, m.View())
}

func TestPlaybackErrorQuits(t *testing.T) {
	boom := errors.New("device lost")

	m, cmd := update(t, NewModel(newFakeHost(), ""), PlaybackErrMsg{Err: boom})
	require.NotNil(t, cmd)
	assert.ErrorIs(t, m.Err, boom)
}

func TestViewShowsParamsAndMeter(t *testing.T) {
	host := newFakeHost()
	host.params.Drive.Set(11)

	m := NewModel(host, "tone 440 Hz")
	host.level = 1
	m, _ = update(t, m, TickMsg(time.Now()))

	view := m.View()
	assert.Contains(t, view, "tone 440 Hz")
	assert.Contains(t, view, "Drive")
	assert.Contains(t, view, "11.00x")
	assert.Contains(t, view, "0.0 dB")
}

func TestMeterPosition(t *testing.T) {
	assert.Zero(t, meterPosition(-90))
	assert.InDelta(t, 60.0/66.0, meterPosition(0), 1e-12)
	assert.InDelta(t, 1.0, meterPosition(12), 0)
}

func TestRenderReports(t *testing.T) {
	out := RenderReports("take.wav", []analysis.Report{
		{Samples: 100, SampleRate: 48000, PeakDB: -6, RMSDB: -9, Fundamental: 1000, THD: 0.1, THDDB: -20},
		{Samples: 100, SampleRate: 48000, NonFinite: 3},
	})

	assert.Contains(t, out, "take.wav")
	assert.Contains(t, out, "Channel 2")
	assert.Contains(t, out, "10.00%")
	assert.Contains(t, out, "Non-finite")
}
