package reorglog

import (
	"testing"
	"time"

	"ChainHealth/internal/domain/faults"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)

func logLine(tag, msg string) string {
	return tag + " 12:00:00.000 WARN grin_chain::chain - " + msg + "\n"
}

func reorgLine(tag, depth string) string {
	return logLine(tag, "process_block: REORG detected, fork point 2451023, depth: "+depth)
}

func TestParseLine(t *testing.T) {
	entry, err := ParseLine(reorgLine("20261015", "7"))
	require.NoError(t, err)
	assert.Equal(t, "20261015", entry.DateTag)
	assert.True(t, entry.IsReorg)
	require.NotNil(t, entry.Depth)
	assert.Equal(t, uint(7), *entry.Depth)

	entry, err = ParseLine(logLine("20261015", "accepted block 2451024"))
	require.NoError(t, err)
	assert.False(t, entry.IsReorg)
	assert.Nil(t, entry.Depth)
}

func TestParseLineDropsTerminator(t *testing.T) {
	// The last character is the terminator slot even when it is not a newline.
	entry, err := ParseLine("20261015 REORG depth: 12.")
	require.NoError(t, err)
	assert.Equal(t, uint(12), *entry.Depth)
}

func TestParseLineFaults(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"missing label", logLine("20261015", "REORG detected at height 10")},
		{"non-numeric depth", reorgLine("20261015", "deep")},
		{"negative depth", reorgLine("20261015", "-4")},
		{"empty depth", reorgLine("20261015", "")},
		{"label at end of line", "20261015 REORG depth: "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLine(tt.line)
			require.Error(t, err)
			assert.ErrorIs(t, err, faults.ErrLogParseFault)
		})
	}
}

func TestExtractAcrossDayBoundary(t *testing.T) {
	lines := []string{
		reorgLine("20261013", "50"),
		logLine("20261013", "sync complete"),
		reorgLine("20261014", "2"),
		logLine("20261014", "accepted block"),
		reorgLine("20261014", "9"),
		reorgLine("20261015", "4"),
		logLine("20261015", "accepted block"),
	}

	got, err := Extract(lines, now)
	require.NoError(t, err)
	assert.Equal(t, uint(3), got.Count)
	assert.Equal(t, uint(9), got.Deepest)
	assert.Equal(t, 7, got.Lines)
	assert.Equal(t, 5, got.InWindow)
	assert.Empty(t, got.Warnings)
}

func TestExtractUsesCalendarDays(t *testing.T) {
	// Just after midnight the window still covers all of yesterday.
	justAfterMidnight := time.Date(2026, 10, 15, 0, 5, 0, 0, time.UTC)
	lines := []string{
		reorgLine("20261014", "3"),
		reorgLine("20261013", "40"),
	}

	got, err := Extract(lines, justAfterMidnight)
	require.NoError(t, err)
	assert.Equal(t, uint(1), got.Count)
	assert.Equal(t, uint(3), got.Deepest)
}

func TestExtractUsesReferenceLocation(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	// 2026-10-15 20:00 UTC is already the 16th at UTC+9.
	ref := time.Date(2026, 10, 15, 20, 0, 0, 0, time.UTC).In(loc)
	lines := []string{
		reorgLine("20261014", "8"),
		reorgLine("20261016", "1"),
	}

	got, err := Extract(lines, ref)
	require.NoError(t, err)
	assert.Equal(t, uint(1), got.Count)
	assert.Equal(t, uint(1), got.Deepest)
}

func TestExtractNoReorgs(t *testing.T) {
	lines := []string{
		logLine("20261015", "accepted block"),
		logLine("20261014", "peer connected"),
	}

	got, err := Extract(lines, now)
	require.NoError(t, err)
	assert.Equal(t, uint(0), got.Count)
	assert.Equal(t, uint(0), got.Deepest)
}

func TestExtractEmpty(t *testing.T) {
	got, err := Extract(nil, now)
	require.NoError(t, err)
	assert.Zero(t, got.Count)
	assert.Zero(t, got.Deepest)
}

func TestExtractMalformedDepthInWindow(t *testing.T) {
	lines := []string{
		reorgLine("20261015", "3"),
		reorgLine("20261015", "three"),
	}

	_, err := Extract(lines, now)
	require.Error(t, err)
	assert.ErrorIs(t, err, faults.ErrLogParseFault)

	var perr *faults.LogParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.LineNo)
}

func TestExtractIgnoresMalformedDepthOutsideWindow(t *testing.T) {
	lines := []string{
		reorgLine("20261001", "three"),
		reorgLine("20261015", "3"),
	}

	got, err := Extract(lines, now)
	require.NoError(t, err)
	assert.Equal(t, uint(1), got.Count)
}

func TestExtractSkipsBadDateTags(t *testing.T) {
	lines := []string{
		"stack backtrace:\n",
		reorgLine("2026101X", "30"),
		reorgLine("20261015", "2"),
		"\n",
	}

	got, err := Extract(lines, now)
	require.NoError(t, err)
	assert.Equal(t, uint(1), got.Count)
	assert.Equal(t, uint(2), got.Deepest)
	require.Len(t, got.Warnings, 3)
	assert.Equal(t, 1, got.Warnings[0].LineNo)
	assert.Equal(t, "2026101X", got.Warnings[1].Tag)
	assert.Equal(t, 4, got.Warnings[2].LineNo)
}

func TestExtractIsIdempotent(t *testing.T) {
	lines := []string{reorgLine("20261015", "6"), reorgLine("20261014", "1")}
	first, err := Extract(lines, now)
	require.NoError(t, err)
	second, err := Extract(lines, now)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestTerminate(t *testing.T) {
	in := []string{"20261015 REORG depth: 12", "20261015 REORG depth: 3\n", ""}
	out := Terminate(in)
	assert.Equal(t, []string{"20261015 REORG depth: 12\n", "20261015 REORG depth: 3\n", "\n"}, out)
	assert.Equal(t, "20261015 REORG depth: 12", in[0], "input is not modified")

	s, err := Extract(out, time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.EqualValues(t, 12, s.Deepest)
}
