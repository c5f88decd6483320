package state

import (
	"encoding/json"
	"log"

	"github.com/SoarinFerret/kensho/internal/clock"
)

// SetClocks replaces the persisted clocks and schedules a save.
func (m *Manager) SetClocks(records []clock.Record) {
	clocks := make([]json.RawMessage, 0, len(records))
	for _, rec := range records {
		raw, err := json.Marshal(rec)
		if err != nil {
			log.Printf("Skipping clock %s: %v", rec.Identifier, err)
			continue
		}
		clocks = append(clocks, raw)
	}

	m.mu.Lock()
	m.state.Clocks = clocks
	m.mu.Unlock()
	m.SaveLater()
}

// SetWindow records window preferences and schedules a save. Resize events
// arrive in bursts; the debounce collapses them into one write.
func (m *Manager) SetWindow(w Window) {
	w.Mode = NormalizeMode(w.Mode)
	if w.Width < 0 {
		w.Width = 0
	}

	m.mu.Lock()
	changed := m.state.Window != w
	m.state.Window = w
	m.mu.Unlock()

	if changed {
		m.SaveLater()
	}
}

func (m *Manager) Window() Window {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Window
}
