package state

import (
	"encoding/json"
	"path/filepath"
)

const (
	FileName = "app_state.json"
	Version  = 1
)

// Display modes of the main window.
const (
	ModeCards  = "cards"
	ModeWidget = "widget"
)

// State is the top-level structure stored in app_state.json.
type State struct {
	Version int               `json:"version"`
	Clocks  []json.RawMessage `json:"clocks"`
	Window  Window            `json:"window"`
}

// Window holds the persisted window preferences.
type Window struct {
	Geometry string `json:"geometry"`
	Mode     string `json:"mode"`
	Width    int    `json:"width"`
}

// Path returns the state file location inside dataDir.
func Path(dataDir string) string {
	return filepath.Join(dataDir, FileName)
}

// Default is the state used when nothing usable is on disk.
func Default() State {
	return State{
		Version: Version,
		Clocks:  []json.RawMessage{},
		Window:  Window{Mode: ModeCards},
	}
}

// NormalizeMode maps unknown display modes to ModeCards.
func NormalizeMode(mode string) string {
	if mode == ModeWidget {
		return ModeWidget
	}
	return ModeCards
}

// decode reads a state document field by field. Unusable fields keep their
// defaults so one bad value never discards the clocks.
func decode(data []byte) (State, error) {
	s := Default()

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return s, err
	}

	if raw, ok := fields["version"]; ok {
		var v int
		if json.Unmarshal(raw, &v) == nil && v > 0 {
			s.Version = v
		}
	}

	if raw, ok := fields["clocks"]; ok {
		var clocks []json.RawMessage
		if json.Unmarshal(raw, &clocks) == nil {
			for _, c := range clocks {
				if len(c) > 0 && c[0] == '{' {
					s.Clocks = append(s.Clocks, c)
				}
			}
		}
	}

	if raw, ok := fields["window"]; ok {
		var window map[string]json.RawMessage
		if json.Unmarshal(raw, &window) == nil {
			var geometry, mode string
			var width float64
			if json.Unmarshal(window["geometry"], &geometry) == nil {
				s.Window.Geometry = geometry
			}
			if json.Unmarshal(window["mode"], &mode) == nil {
				s.Window.Mode = NormalizeMode(mode)
			}
			if json.Unmarshal(window["width"], &width) == nil && width > 0 {
				s.Window.Width = int(width)
			}
		}
	}

	return s, nil
}
