package clock

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SchemaVersion tags persisted records. Records written before the tag
// existed decode as version 1.
const SchemaVersion = 1

// Record is the persisted form of a Unit.
type Record struct {
	Schema          int            `json:"schema"`
	Key             string         `json:"key"`
	Identifier      string         `json:"identifier"`
	Label           string         `json:"label"`
	IntervalMinutes int            `json:"interval_minutes"`
	SoundID         string         `json:"sound_id"`
	ElapsedSeconds  float64        `json:"elapsed_seconds"`
	Paused          bool           `json:"paused"`
	CheckInsToday   int            `json:"check_ins_today"`
	LastCheckInDate string         `json:"last_check_in_date"`
	Due             bool           `json:"due"`
	Expanded        bool           `json:"expanded"`
	History         map[string]int `json:"history"`
	HistoryWindow   int            `json:"history_window"`
}

// Record snapshots the unit. Elapsed time is rounded to milliseconds.
func (u *Unit) Record() Record {
	history := make(map[string]int, len(u.History))
	for day, count := range u.History {
		history[day] = count
	}
	return Record{
		Schema:          SchemaVersion,
		Key:             u.Key,
		Identifier:      u.Identifier,
		Label:           u.Label,
		IntervalMinutes: u.IntervalMinutes,
		SoundID:         u.SoundID,
		ElapsedSeconds:  math.Round(u.ElapsedSeconds*1000) / 1000,
		Paused:          u.Paused,
		CheckInsToday:   u.CheckInsToday,
		LastCheckInDate: u.LastCheckInDate,
		Due:             u.Due,
		Expanded:        u.Expanded,
		History:         history,
		HistoryWindow:   u.HistoryWindow,
	}
}

// MarshalRecord encodes the unit's record.
func (u *Unit) MarshalRecord() (json.RawMessage, error) {
	return json.Marshal(u.Record())
}

// Decode builds a unit from a persisted record. It never fails: every field
// that is missing or has the wrong type falls back to its default, and the
// result satisfies the unit invariants.
func Decode(raw []byte, src Source) *Unit {
	if src == nil {
		src = SystemSource{}
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		fields = map[string]json.RawMessage{}
	}

	u := &Unit{source: src}
	today := u.today()

	u.Key = decodeString(fields["key"], "")
	if _, err := uuid.Parse(u.Key); err != nil {
		u.Key = uuid.NewString()
	}
	u.Identifier = decodeString(fields["identifier"], "")
	u.Label = decodeString(fields["label"], DecodedLabel)
	if strings.TrimSpace(u.Label) == "" {
		u.Label = DecodedLabel
	}
	u.IntervalMinutes = max(decodeInt(fields["interval_minutes"], DefaultIntervalMinutes), 1)
	u.SoundID = NormalizeSound(decodeString(fields["sound_id"], SoundChime))

	total := u.IntervalSeconds()
	u.ElapsedSeconds = max(0, min(decodeFloat(fields["elapsed_seconds"], 0), total))
	u.Due = u.ElapsedSeconds >= total
	u.Paused = decodeBool(fields["paused"], false)
	u.Expanded = decodeBool(fields["expanded"], false)

	u.CheckInsToday = max(decodeInt(fields["check_ins_today"], 0), 0)
	u.LastCheckInDate = decodeString(fields["last_check_in_date"], today)
	if _, err := time.Parse(isoDate, u.LastCheckInDate); err != nil {
		u.LastCheckInDate = today
	}
	u.History = decodeHistory(fields["history"])
	u.HistoryWindow = NormalizeHistoryWindow(decodeInt(fields["history_window"], DefaultHistoryWindow))

	if len(u.History) == 0 && u.CheckInsToday > 0 {
		u.History[u.LastCheckInDate] = u.CheckInsToday
	}
	u.EnsureToday()
	return u
}

// missing reports an absent field. An explicit null counts as absent.
func missing(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

func decodeString(raw json.RawMessage, def string) string {
	if missing(raw) {
		return def
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return def
}

func decodeFloat(raw json.RawMessage, def float64) float64 {
	if missing(raw) {
		return def
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f
		}
	}
	return def
}

func decodeInt(raw json.RawMessage, def int) int {
	f := decodeFloat(raw, math.NaN())
	if math.IsNaN(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return def
	}
	return int(f)
}

func decodeBool(raw json.RawMessage, def bool) bool {
	if missing(raw) {
		return def
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f != 0
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return b
		}
	}
	return def
}

// decodeHistory keeps only entries with ISO date keys and numeric counts.
func decodeHistory(raw json.RawMessage) map[string]int {
	history := map[string]int{}
	if missing(raw) {
		return history
	}
	entries := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return history
	}
	for day, value := range entries {
		if _, err := time.Parse(isoDate, day); err != nil {
			continue
		}
		count := decodeInt(value, -1)
		if count < 0 {
			continue
		}
		history[day] = count
	}
	return history
}
