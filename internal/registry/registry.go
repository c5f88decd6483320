package registry

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/SoarinFerret/kensho/internal/clock"
)

const (
	// DefaultCapacity is the number of clocks a session holds unless the
	// wide profile is configured.
	DefaultCapacity = 4
	// WideCapacity is the limit of the wide profile.
	WideCapacity = 6
)

var ErrNotFound = errors.New("clock not found")

// Defaults are applied to clocks created by the registry itself.
type Defaults struct {
	Label   string
	Minutes int
	SoundID string
}

// Registry is the ordered, bounded set of clocks of one session. It is not
// safe for concurrent use; the engine serialises access.
type Registry struct {
	units    []*clock.Unit
	capacity int
	source   clock.Source
	defaults Defaults
}

// New returns a registry holding one default clock. Capacity is clamped to
// [1, WideCapacity].
func New(capacity int, src clock.Source, defaults Defaults) *Registry {
	r := &Registry{
		capacity: max(1, min(capacity, WideCapacity)),
		source:   src,
		defaults: defaults,
	}
	r.units = append(r.units, r.defaultUnit())
	r.Renumber()
	return r
}

func (r *Registry) defaultUnit() *clock.Unit {
	minutes := r.defaults.Minutes
	if minutes <= 0 {
		minutes = clock.DefaultIntervalMinutes
	}
	u := clock.New("", r.defaults.Label, minutes, r.source)
	if r.defaults.SoundID != "" {
		u.ApplySettings(u.IntervalMinutes, r.defaults.SoundID)
	}
	return u
}

// Add appends u. It is a no-op returning false when the registry is full or
// u is already present.
func (r *Registry) Add(u *clock.Unit) bool {
	if u == nil || r.Full() || r.index(u) >= 0 {
		return false
	}
	if r.source != nil {
		u.SetSource(r.source)
	}
	r.units = append(r.units, u)
	r.Renumber()
	return true
}

// NewUnit creates a clock with the registry defaults and adds it. It
// returns nil at capacity.
func (r *Registry) NewUnit() *clock.Unit {
	if r.Full() {
		return nil
	}
	u := r.defaultUnit()
	r.Add(u)
	return u
}

// Remove drops u by identity. Removing the last clock leaves a fresh default
// clock in its place.
func (r *Registry) Remove(u *clock.Unit) bool {
	i := r.index(u)
	if i < 0 {
		return false
	}
	r.units = append(r.units[:i], r.units[i+1:]...)
	if len(r.units) == 0 {
		r.units = append(r.units, r.defaultUnit())
	}
	r.Renumber()
	return true
}

// Renumber assigns positional identifiers C1, C2, ...
func (r *Registry) Renumber() {
	for i, u := range r.units {
		u.Identifier = fmt.Sprintf("C%d", i+1)
	}
}

// Units returns the clocks in display order. The slice is a copy; the
// units are shared.
func (r *Registry) Units() []*clock.Unit {
	out := make([]*clock.Unit, len(r.units))
	copy(out, r.units)
	return out
}

func (r *Registry) Len() int { return len(r.units) }

func (r *Registry) Cap() int { return r.capacity }

func (r *Registry) Full() bool { return len(r.units) >= r.capacity }

// Find resolves ref as a stable key first and as a positional identifier
// second.
func (r *Registry) Find(ref string) (*clock.Unit, error) {
	for _, u := range r.units {
		if u.Key == ref {
			return u, nil
		}
	}
	for _, u := range r.units {
		if u.Identifier == ref {
			return u, nil
		}
	}
	return nil, fmt.Errorf("%q: %w", ref, ErrNotFound)
}

// Restore replaces the registry contents with decoded records. Records past
// capacity are dropped and an empty list yields one default clock.
func (r *Registry) Restore(records []json.RawMessage) {
	units := make([]*clock.Unit, 0, min(len(records), r.capacity))
	seen := map[string]bool{}
	for _, raw := range records {
		if len(units) >= r.capacity {
			break
		}
		u := clock.Decode(raw, r.source)
		for seen[u.Key] {
			u.Key = uuid.NewString()
		}
		seen[u.Key] = true
		units = append(units, u)
	}
	if len(units) == 0 {
		units = append(units, r.defaultUnit())
	}
	r.units = units
	r.Renumber()
}

// Records snapshots every clock in display order.
func (r *Registry) Records() []clock.Record {
	out := make([]clock.Record, 0, len(r.units))
	for _, u := range r.units {
		out = append(out, u.Record())
	}
	return out
}

func (r *Registry) index(u *clock.Unit) int {
	for i, candidate := range r.units {
		if candidate == u {
			return i
		}
	}
	return -1
}
