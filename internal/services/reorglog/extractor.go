// Package reorglog extracts reorg activity of the trailing day from node logs.
package reorglog

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"ChainHealth/internal/domain/faults"
	"ChainHealth/internal/domain/models"
	"ChainHealth/pkg/util"
)

const (
	// Marker tags a log line describing a chain reorganization.
	Marker = "REORG"
	// DepthLabel immediately precedes the reorg depth.
	DepthLabel = "depth: "
)

// ParseLine classifies one raw line. The line's last character is its
// terminator and is not part of the depth field.
func ParseLine(line string) (models.ReorgLogEntry, error) {
	entry := models.ReorgLogEntry{DateTag: dateTag(line)}
	if !strings.Contains(line, Marker) {
		return entry, nil
	}
	entry.IsReorg = true

	depth, reason := parseDepth(line)
	if reason != "" {
		return entry, &faults.LogParseError{Line: line, Reason: reason}
	}
	entry.Depth = &depth
	return entry, nil
}

// Extract summarizes reorg lines tagged with now's calendar day or the day
// before it. Lines with unreadable date tags are skipped with a warning; a
// windowed reorg line without a parseable depth aborts extraction.
func Extract(lines []string, now time.Time) (models.ReorgWindowSummary, error) {
	today, yesterday := util.TrailingDayTags(now)
	summary := models.ReorgWindowSummary{Lines: len(lines)}

	for i, line := range lines {
		lineNo := i + 1
		tag := dateTag(line)
		if _, err := util.ParseDayTag(tag, now.Location()); err != nil {
			summary.Warnings = append(summary.Warnings, faults.DateParseWarning{
				LineNo: lineNo,
				Tag:    tag,
				Reason: err.Error(),
			})
			continue
		}
		if tag != today && tag != yesterday {
			continue
		}
		summary.InWindow++

		entry, err := ParseLine(line)
		if err != nil {
			var perr *faults.LogParseError
			if errors.As(err, &perr) {
				perr.LineNo = lineNo
			}
			return models.ReorgWindowSummary{}, err
		}
		if !entry.IsReorg {
			continue
		}
		summary.Count++
		if *entry.Depth > summary.Deepest {
			summary.Deepest = *entry.Depth
		}
	}

	return summary, nil
}

func dateTag(line string) string {
	n := len(util.DayTagLayout)
	if len(line) < n {
		return line
	}
	return line[:n]
}

func parseDepth(line string) (uint, string) {
	idx := strings.Index(line, DepthLabel)
	if idx < 0 {
		return 0, "missing depth label"
	}
	start := idx + len(DepthLabel)
	end := len(line) - 1
	if end <= start {
		return 0, "empty depth"
	}
	raw := strings.TrimSpace(line[start:end])
	depth, err := strconv.ParseUint(raw, 10, strconv.IntSize)
	if err != nil {
		return 0, "bad depth " + strconv.Quote(raw)
	}
	return uint(depth), ""
}

// Terminate appends "\n" to lines that do not already end with one, so
// lines from sources that strip terminators can be passed to Extract.
func Terminate(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if !strings.HasSuffix(line, "\n") {
			line += "\n"
		}
		out[i] = line
	}
	return out
}
