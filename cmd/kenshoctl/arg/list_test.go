package arg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SoarinFerret/kensho/internal/clock"
	"github.com/SoarinFerret/kensho/internal/engine"
)

func TestPrintClocks(t *testing.T) {
	update := engine.Update{
		Capacity: 4,
		Clocks: []engine.View{
			{Record: clock.Record{Identifier: "C1", Label: "Breath", IntervalMinutes: 10, CheckInsToday: 2}, RemainingSeconds: 245.2},
			{Record: clock.Record{Identifier: "C2", Label: "Posture", IntervalMinutes: 20, Paused: true}, RemainingSeconds: 60},
			{Record: clock.Record{Identifier: "C3", Label: "Water", IntervalMinutes: 1, Due: true}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, printClocks(&buf, update))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 6)

	assert.Contains(t, lines[0], "REMAINING")
	assert.Regexp(t, `^C1\s+Breath\s+10m\s+running\s+4:06\s+2$`, lines[1])
	assert.Regexp(t, `^C2\s+Posture\s+20m\s+paused\s+1:00\s+0$`, lines[2])
	assert.Regexp(t, `^C3\s+Water\s+1m\s+due\s+0:00\s+0$`, lines[3])
	assert.Equal(t, "3 of 4 slots used", lines[5])
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"status", "list", "checkin", "pause", "add", "remove", "export"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestArgsValidation(t *testing.T) {
	assert.Error(t, checkinCmd.Args(checkinCmd, nil))
	assert.NoError(t, checkinCmd.Args(checkinCmd, []string{"C1"}))
	assert.Error(t, statusCmd.Args(statusCmd, []string{"extra"}))
}
