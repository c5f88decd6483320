package ipc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/SoarinFerret/kensho/internal/clock"
	"github.com/SoarinFerret/kensho/internal/engine"
	"github.com/SoarinFerret/kensho/internal/export"
)

const (
	ObjectPath    = "/io/github/soarinferret/kensho"
	InterfaceName = "io.github.soarinferret.kensho.Clocks"
	ServiceName   = "io.github.soarinferret.kensho"
)

var ErrFull = errors.New("clock limit reached")

// Controller is the part of the engine exposed on the bus.
type Controller interface {
	Status() engine.Status
	Snapshot() engine.Update
	CheckIn(ref string) error
	TogglePause(ref string) error
	Add(label string, minutes int) (engine.View, bool)
	Remove(ref string) error
	History(ref string) (engine.View, []clock.DateCount, error)
}

// Service is exported on the session bus. Every method takes a clock
// reference: a stable key or a positional identifier such as C1.
type Service struct {
	Engine Controller
}

func (s *Service) GetStatus() (string, *dbus.Error) {
	snap := s.Engine.Snapshot()
	due := 0
	for _, c := range snap.Clocks {
		if c.Due {
			due++
		}
	}
	return fmt.Sprintf("%s, %d/%d clocks, %d due", s.Engine.Status(), len(snap.Clocks), snap.Capacity, due), nil
}

// ListClocks returns the snapshot as JSON.
func (s *Service) ListClocks() (string, *dbus.Error) {
	data, err := json.Marshal(s.Engine.Snapshot())
	if err != nil {
		return "", dbus.MakeFailedError(err)
	}
	return string(data), nil
}

func (s *Service) CheckIn(ref string) *dbus.Error {
	if err := s.Engine.CheckIn(ref); err != nil {
		return dbus.MakeFailedError(err)
	}
	return nil
}

// TogglePause flips the clock and returns whether it is now paused.
func (s *Service) TogglePause(ref string) (bool, *dbus.Error) {
	if err := s.Engine.TogglePause(ref); err != nil {
		return false, dbus.MakeFailedError(err)
	}
	view, _, err := s.Engine.History(ref)
	if err != nil {
		return false, dbus.MakeFailedError(err)
	}
	return view.Paused, nil
}

// AddClock creates a clock and returns its key. Empty labels and
// non-positive minutes use the configured defaults.
func (s *Service) AddClock(label string, minutes int32) (string, *dbus.Error) {
	view, ok := s.Engine.Add(label, int(minutes))
	if !ok {
		return "", dbus.MakeFailedError(ErrFull)
	}
	return view.Key, nil
}

func (s *Service) RemoveClock(ref string) *dbus.Error {
	if err := s.Engine.Remove(ref); err != nil {
		return dbus.MakeFailedError(err)
	}
	return nil
}

// ExportHistory returns the clock's history as CSV text.
func (s *Service) ExportHistory(ref string) (string, *dbus.Error) {
	view, records, err := s.Engine.History(ref)
	if err != nil {
		return "", dbus.MakeFailedError(err)
	}
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, view.Label, records); err != nil {
		return "", dbus.MakeFailedError(err)
	}
	return buf.String(), nil
}
