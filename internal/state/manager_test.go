package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func tempStateFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "nested", FileName)
}

func TestLoad_MissingFileReturnsDefault(t *testing.T) {
	s := Load(tempStateFile(t))
	if s.Version != Version {
		t.Errorf("expected version %d, got %d", Version, s.Version)
	}
	if len(s.Clocks) != 0 {
		t.Errorf("expected no clocks, got %d", len(s.Clocks))
	}
	if s.Window.Mode != ModeCards {
		t.Errorf("expected cards mode, got %q", s.Window.Mode)
	}
}

func TestLoad_CorruptFileReturnsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := Load(path)
	if len(s.Clocks) != 0 || s.Window.Mode != ModeCards {
		t.Errorf("expected default state, got %+v", s)
	}
}

func TestNewManager_DoesNotCreateFile(t *testing.T) {
	path := tempStateFile(t)
	NewManager(path, 0)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("state file should only appear on save, stat err: %v", err)
	}
}

func TestManager_SaveAndLoad(t *testing.T) {
	path := tempStateFile(t)
	m := NewManager(path, time.Hour)
	m.mu.Lock()
	m.state.Clocks = []json.RawMessage{json.RawMessage(`{"label":"Breath"}`)}
	m.state.Window = Window{Geometry: "420x300+10+10", Mode: ModeWidget, Width: 420}
	m.mu.Unlock()

	if err := m.Save(); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temporary file left behind")
	}

	s := Load(path)
	if len(s.Clocks) != 1 {
		t.Fatalf("expected 1 clock, got %d", len(s.Clocks))
	}
	if s.Window != (Window{Geometry: "420x300+10+10", Mode: ModeWidget, Width: 420}) {
		t.Errorf("window not restored: %+v", s.Window)
	}
}

func TestManager_SaveLaterDebounces(t *testing.T) {
	path := tempStateFile(t)
	m := NewManager(path, 100*time.Millisecond)

	for i := 0; i < 5; i++ {
		m.SetWindow(Window{Width: 400 + i})
		time.Sleep(5 * time.Millisecond)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("state written before the burst settled")
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, err := os.Stat(path); err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("debounced save never happened")
		}
		time.Sleep(10 * time.Millisecond)
	}
	if got := Load(path).Window.Width; got != 404 {
		t.Errorf("expected last width 404, got %d", got)
	}
}

func TestManager_FlushWritesPending(t *testing.T) {
	path := tempStateFile(t)
	m := NewManager(path, time.Hour)

	if err := m.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("flush without changes should not write")
	}

	m.SetWindow(Window{Mode: ModeWidget})
	if err := m.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}
	if Load(path).Window.Mode != ModeWidget {
		t.Errorf("pending window change not flushed")
	}
}

func TestManager_SaveFailsOnUnwritableDir(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	m := NewManager(filepath.Join(blocker, FileName), time.Hour)
	if err := m.Save(); err == nil {
		t.Errorf("expected error saving beneath a regular file")
	}
}
