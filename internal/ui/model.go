// Package ui is the terminal front end: one card per clock, laid out in a row
// or a column depending on the terminal width.
package ui

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/SoarinFerret/kensho/internal/clock"
	"github.com/SoarinFerret/kensho/internal/engine"
	"github.com/SoarinFerret/kensho/internal/export"
	"github.com/SoarinFerret/kensho/internal/layout"
	"github.com/SoarinFerret/kensho/internal/state"
)

const (
	// resizeDelay is how long the terminal size must hold before the layout
	// is recomputed.
	resizeDelay = 300 * time.Millisecond
	frameDelay  = 33 * time.Millisecond

	// cellUnits converts terminal columns to layout units.
	cellUnits = 8
)

// Clocks is the part of the engine the UI drives.
type Clocks interface {
	Snapshot() engine.Update
	Subscribe() (<-chan engine.Update, func())
	CheckIn(ref string) error
	TogglePause(ref string) error
	ToggleExpanded(ref string) error
	ApplySettings(ref string, minutes int, soundID string) error
	SetLabel(ref, label string) error
	CycleHistoryWindow(ref string) error
	Add(label string, minutes int) (engine.View, bool)
	Remove(ref string) error
	History(ref string) (engine.View, []clock.DateCount, error)
}

// WindowStore persists the window preferences.
type WindowStore interface {
	Window() state.Window
	SetWindow(state.Window)
}

type updateMsg engine.Update

type resizeSettledMsg struct {
	seq   int
	width int
}

type frameMsg struct{}

type Model struct {
	clocks    Clocks
	store     WindowStore
	exportDir string

	updates     <-chan engine.Update
	unsubscribe func()

	update   engine.Update
	selected int
	window   state.Window

	width     int
	height    int
	resizeSeq int
	scale     float64
	target    float64
	animating bool

	renaming bool
	input    textinput.Model

	keys     keyMap
	help     help.Model
	showHelp bool
	status   string
}

// NewModel subscribes to clocks and restores the window preferences from
// store. exportDir is where CSV exports are written.
func NewModel(clocks Clocks, store WindowStore, exportDir string) Model {
	updates, unsubscribe := clocks.Subscribe()

	input := textinput.New()
	input.Placeholder = "Clock name"
	input.CharLimit = 64
	input.Prompt = "rename: "

	m := Model{
		clocks:      clocks,
		store:       store,
		exportDir:   exportDir,
		updates:     updates,
		unsubscribe: unsubscribe,
		update:      clocks.Snapshot(),
		window:      state.Window{Mode: state.ModeCards},
		scale:       1,
		target:      1,
		input:       input,
		keys:        defaultKeys(),
		help:        help.New(),
		status:      "ready",
	}
	if store != nil {
		m.window = store.Window()
		m.window.Mode = state.NormalizeMode(m.window.Mode)
	}
	if m.window.Width > 0 {
		m.width = m.window.Width
		m.target = m.computeLayout().Scale
		m.scale = m.target
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return waitForUpdate(m.updates)
}

// Close ends the engine subscription.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

func waitForUpdate(ch <-chan engine.Update) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return nil
		}
		return updateMsg(u)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case updateMsg:
		m.setUpdate(engine.Update(msg))
		cmd := m.relayout()
		return m, tea.Batch(waitForUpdate(m.updates), cmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resizeSeq++
		seq, width := m.resizeSeq, msg.Width
		return m, tea.Tick(resizeDelay, func(time.Time) tea.Msg {
			return resizeSettledMsg{seq: seq, width: width}
		})

	case resizeSettledMsg:
		if msg.seq != m.resizeSeq {
			return m, nil
		}
		if m.window.Width != msg.width {
			m.window.Width = msg.width
			m.saveWindow()
		}
		cmd := m.relayout()
		return m, cmd

	case frameMsg:
		m.scale = layout.Smooth(m.scale, m.target)
		if m.scale == m.target {
			m.animating = false
			return m, nil
		}
		return m, nextFrame()

	case tea.KeyMsg:
		if m.renaming {
			return m.updateRename(msg)
		}
		if m.showHelp {
			if key.Matches(msg, m.keys.Help, m.keys.Cancel) {
				m.showHelp = false
			}
			return m, nil
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Widget):
		if m.window.Mode == state.ModeWidget {
			m.window.Mode = state.ModeCards
		} else {
			m.window.Mode = state.ModeWidget
		}
		m.saveWindow()
		return m, nil
	case key.Matches(msg, m.keys.Add):
		v, ok := m.clocks.Add("", 0)
		if !ok {
			m.status = fmt.Sprintf("All %d clock slots are in use", m.update.Capacity)
			return m, nil
		}
		m.setUpdate(m.clocks.Snapshot())
		m.selectKey(v.Key)
		m.status = "added " + v.Identifier
		cmd := m.relayout()
		return m, cmd
	}

	if len(m.update.Clocks) == 0 {
		return m, nil
	}
	v := m.update.Clocks[m.selected]

	var err error
	switch {
	case key.Matches(msg, m.keys.Prev):
		m.selected = (m.selected + len(m.update.Clocks) - 1) % len(m.update.Clocks)
		return m, nil
	case key.Matches(msg, m.keys.Next):
		m.selected = (m.selected + 1) % len(m.update.Clocks)
		return m, nil
	case key.Matches(msg, m.keys.CheckIn):
		err = m.clocks.CheckIn(v.Key)
		m.status = "checked in on " + v.Label
	case key.Matches(msg, m.keys.Pause):
		err = m.clocks.TogglePause(v.Key)
	case key.Matches(msg, m.keys.Expand):
		err = m.clocks.ToggleExpanded(v.Key)
	case key.Matches(msg, m.keys.Window):
		err = m.clocks.CycleHistoryWindow(v.Key)
	case key.Matches(msg, m.keys.Longer):
		err = m.clocks.ApplySettings(v.Key, v.IntervalMinutes+1, v.SoundID)
	case key.Matches(msg, m.keys.Shorter):
		err = m.clocks.ApplySettings(v.Key, v.IntervalMinutes-1, v.SoundID)
	case key.Matches(msg, m.keys.Sound):
		err = m.clocks.ApplySettings(v.Key, v.IntervalMinutes, nextSound(v.SoundID))
	case key.Matches(msg, m.keys.Delete):
		err = m.clocks.Remove(v.Key)
		m.status = "removed " + v.Label
	case key.Matches(msg, m.keys.Rename):
		m.renaming = true
		m.input.SetValue(v.Label)
		m.input.CursorEnd()
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Export):
		m.status = m.exportHistory(v.Key)
		return m, nil
	default:
		return m, nil
	}

	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.setUpdate(m.clocks.Snapshot())
	cmd := m.relayout()
	return m, cmd
}

func (m Model) updateRename(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.renaming = false
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		m.renaming = false
		m.input.Blur()
		if len(m.update.Clocks) > 0 {
			v := m.update.Clocks[m.selected]
			if err := m.clocks.SetLabel(v.Key, m.input.Value()); err != nil {
				m.status = err.Error()
				return m, nil
			}
			m.setUpdate(m.clocks.Snapshot())
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) exportHistory(ref string) string {
	v, records, err := m.clocks.History(ref)
	if err != nil {
		return err.Error()
	}
	path := filepath.Join(m.exportDir, export.FileName(v.Identifier, v.Label))
	if err := export.SaveFile(path, v.Label, records); err != nil {
		if errors.Is(err, export.ErrNoHistory) {
			return "No check-ins to export for " + v.Label
		}
		return err.Error()
	}
	return "exported " + path
}

// setUpdate replaces the shown clocks and keeps the same clock selected
// when it still exists.
func (m *Model) setUpdate(u engine.Update) {
	var selectedKey string
	if m.selected < len(m.update.Clocks) {
		selectedKey = m.update.Clocks[m.selected].Key
	}
	m.update = u
	m.selectKey(selectedKey)
}

func (m *Model) selectKey(k string) {
	for i, v := range m.update.Clocks {
		if v.Key == k {
			m.selected = i
			return
		}
	}
	m.selected = max(0, min(m.selected, len(m.update.Clocks)-1))
}

func (m Model) computeLayout() layout.Result {
	return layout.Compute(float64(m.width*cellUnits), len(m.update.Clocks), !m.update.Full)
}

// relayout retargets the card scale and starts the easing animation when it
// is not already running.
func (m *Model) relayout() tea.Cmd {
	if m.width <= 0 {
		return nil
	}
	m.target = m.computeLayout().Scale
	if m.scale == m.target || m.animating {
		return nil
	}
	m.animating = true
	return nextFrame()
}

func nextFrame() tea.Cmd {
	return tea.Tick(frameDelay, func(time.Time) tea.Msg { return frameMsg{} })
}

func (m *Model) saveWindow() {
	if m.store != nil {
		m.store.SetWindow(m.window)
	}
}

func nextSound(id string) string {
	if id == clock.SoundChime {
		return clock.SoundMetronome
	}
	return clock.SoundChime
}
