package registry

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SoarinFerret/kensho/internal/clock"
)

type fixedSource struct{ now time.Time }

func (f fixedSource) Now() time.Time { return f.now }

var src = fixedSource{now: time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)}

func newRegistry(capacity int) *Registry {
	return New(capacity, src, Defaults{Label: "Mindful Session", Minutes: 10, SoundID: clock.SoundChime})
}

func identifiers(r *Registry) []string {
	var ids []string
	for _, u := range r.Units() {
		ids = append(ids, u.Identifier)
	}
	return ids
}

func TestNew_StartsWithOneDefault(t *testing.T) {
	r := newRegistry(DefaultCapacity)

	require.Equal(t, 1, r.Len())
	u := r.Units()[0]
	assert.Equal(t, "C1", u.Identifier)
	assert.Equal(t, "Mindful Session", u.Label)
	assert.Equal(t, 10, u.IntervalMinutes)
	assert.Equal(t, DefaultCapacity, r.Cap())
}

func TestNew_ClampsCapacity(t *testing.T) {
	assert.Equal(t, 1, newRegistry(0).Cap())
	assert.Equal(t, WideCapacity, newRegistry(20).Cap())
	assert.Equal(t, WideCapacity, newRegistry(WideCapacity).Cap())
}

func TestNew_DefaultSound(t *testing.T) {
	r := New(4, src, Defaults{SoundID: clock.SoundMetronome})
	u := r.Units()[0]
	assert.Equal(t, clock.SoundMetronome, u.SoundID)
	assert.Equal(t, clock.DefaultLabel, u.Label)
	assert.Equal(t, clock.DefaultIntervalMinutes, u.IntervalMinutes)
}

func TestAdd_RespectsCapacity(t *testing.T) {
	r := newRegistry(4)
	for i := 0; i < 3; i++ {
		assert.True(t, r.Add(clock.New("", "extra", 5, src)))
	}
	assert.True(t, r.Full())

	assert.False(t, r.Add(clock.New("", "fifth", 5, src)))
	assert.Equal(t, 4, r.Len())
	assert.Equal(t, []string{"C1", "C2", "C3", "C4"}, identifiers(r))
	assert.Nil(t, r.NewUnit())
}

func TestAdd_RejectsDuplicatesAndNil(t *testing.T) {
	r := newRegistry(4)
	u := r.Units()[0]
	assert.False(t, r.Add(u))
	assert.False(t, r.Add(nil))
	assert.Equal(t, 1, r.Len())
}

func TestNewUnit(t *testing.T) {
	r := newRegistry(2)
	u := r.NewUnit()
	require.NotNil(t, u)
	assert.Equal(t, "C2", u.Identifier)
	assert.Equal(t, 2, r.Len())
}

func TestRemove_Renumbers(t *testing.T) {
	r := newRegistry(4)
	second := r.NewUnit()
	third := r.NewUnit()
	third.SetLabel("third")

	assert.True(t, r.Remove(second))
	assert.Equal(t, []string{"C1", "C2"}, identifiers(r))
	assert.Equal(t, "C2", third.Identifier)

	assert.False(t, r.Remove(second), "already removed")
}

func TestRemove_LastLeavesDefault(t *testing.T) {
	r := newRegistry(4)
	only := r.Units()[0]
	only.SetLabel("custom")

	assert.True(t, r.Remove(only))

	require.Equal(t, 1, r.Len())
	fresh := r.Units()[0]
	assert.NotSame(t, only, fresh)
	assert.Equal(t, "Mindful Session", fresh.Label)
	assert.Equal(t, "C1", fresh.Identifier)
}

func TestRemove_ByIdentityNotValue(t *testing.T) {
	r := newRegistry(4)
	first := r.Units()[0]
	twin := *first
	assert.False(t, r.Remove(&twin))
	assert.Equal(t, 1, r.Len())
}

func TestFind(t *testing.T) {
	r := newRegistry(4)
	second := r.NewUnit()

	got, err := r.Find(second.Key)
	require.NoError(t, err)
	assert.Same(t, second, got)

	got, err = r.Find("C2")
	require.NoError(t, err)
	assert.Same(t, second, got)

	_, err = r.Find("C9")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRestore(t *testing.T) {
	rec := func(label string) json.RawMessage {
		u := clock.New("", label, 3, src)
		raw, err := u.MarshalRecord()
		require.NoError(t, err)
		return raw
	}

	t.Run("drops records beyond capacity", func(t *testing.T) {
		r := newRegistry(2)
		r.Restore([]json.RawMessage{rec("a"), rec("b"), rec("c")})
		require.Equal(t, 2, r.Len())
		assert.Equal(t, "a", r.Units()[0].Label)
		assert.Equal(t, "b", r.Units()[1].Label)
		assert.Equal(t, []string{"C1", "C2"}, identifiers(r))
	})

	t.Run("empty list synthesizes default", func(t *testing.T) {
		r := newRegistry(4)
		r.Restore(nil)
		require.Equal(t, 1, r.Len())
		assert.Equal(t, "Mindful Session", r.Units()[0].Label)
	})

	t.Run("corrupt records decode to defaults", func(t *testing.T) {
		r := newRegistry(4)
		r.Restore([]json.RawMessage{json.RawMessage(`"nope"`), json.RawMessage(`{"label":"ok"}`)})
		require.Equal(t, 2, r.Len())
		assert.Equal(t, clock.DecodedLabel, r.Units()[0].Label)
		assert.Equal(t, "ok", r.Units()[1].Label)
	})

	t.Run("duplicate keys are reassigned", func(t *testing.T) {
		r := newRegistry(4)
		raw := rec("twin")
		r.Restore([]json.RawMessage{raw, raw})
		require.Equal(t, 2, r.Len())
		assert.NotEqual(t, r.Units()[0].Key, r.Units()[1].Key)
	})
}

func TestRecords(t *testing.T) {
	r := newRegistry(4)
	r.NewUnit()
	records := r.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "C1", records[0].Identifier)
	assert.Equal(t, "C2", records[1].Identifier)
}
