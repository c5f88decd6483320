package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultSaveDelay is how long the manager waits for quiet before writing.
const DefaultSaveDelay = 300 * time.Millisecond

// Manager handles reading and writing app_state.json safely.
type Manager struct {
	path  string
	delay time.Duration

	mu    sync.Mutex
	state State
	timer *time.Timer
	dirty bool
}

// NewManager loads the state at path. A missing or corrupt file yields the
// default state; the corrupt file is left in place until the next save.
func NewManager(path string, delay time.Duration) *Manager {
	if delay <= 0 {
		delay = DefaultSaveDelay
	}
	m := &Manager{path: path, delay: delay}
	m.state = Load(path)
	return m
}

// Load reads the state file. It never fails.
func Load(path string) State {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("Failed to read state %s: %v", path, err)
		}
		return Default()
	}
	s, err := decode(data)
	if err != nil {
		log.Printf("Ignoring corrupt state %s: %v", path, err)
		return Default()
	}
	return s
}

func (m *Manager) Path() string {
	return m.path
}

// State returns a copy of the current in-memory state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.state
	s.Clocks = append([]json.RawMessage(nil), m.state.Clocks...)
	return s
}

// SaveLater schedules a write once no further requests arrive for the save
// delay.
func (m *Manager) SaveLater() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirty = true
	if m.timer != nil {
		m.timer.Stop()
	}
	m.timer = time.AfterFunc(m.delay, func() {
		if err := m.Flush(); err != nil {
			log.Printf("Failed to save state: %v", err)
		}
	})
}

// Flush writes pending changes, if any, and cancels a scheduled save.
func (m *Manager) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	if !m.dirty {
		return nil
	}
	return m.save()
}

// Save writes the state immediately.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	return m.save()
}

// save atomically writes the state file to disk. Callers hold mu.
func (m *Manager) save() error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	m.state.Version = Version
	if m.state.Clocks == nil {
		m.state.Clocks = []json.RawMessage{}
	}
	data, err := json.MarshalIndent(m.state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	tmp := m.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	if err := os.Rename(tmp, m.path); err != nil {
		return fmt.Errorf("replace state: %w", err)
	}
	m.dirty = false
	return nil
}
