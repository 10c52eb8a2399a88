package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatOutcomesEmpty(t *testing.T) {
	assert.Equal(t, "no submissions recorded\n", formatOutcomes(nil))
}

func TestFormatOutcomesColumns(t *testing.T) {
	ts := time.Date(2023, 12, 5, 14, 3, 22, 0, time.UTC)
	out := formatOutcomes([]submissionOutcome{
		{Year: 2023, Day: 5, Part: 1, Answer: "42", Verdict: verdictTooLow, Timestamp: ts},
		{Year: 2023, Day: 5, Part: 1, Answer: "43", Verdict: verdictCorrect, Timestamp: ts.Add(2 * time.Minute)},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// Header, divider, two rows.
	require.Len(t, lines, 4)

	assert.Contains(t, lines[0], "PUZZLE")
	assert.Contains(t, lines[0], "VERDICT")
	assert.Contains(t, lines[0], "SUBMITTED")

	assert.Contains(t, lines[2], "2023 day 5 part 1")
	assert.Contains(t, lines[2], "incorrect-too-low")
	assert.Contains(t, lines[2], "2023-12-05 14:03:22")
	assert.Contains(t, lines[3], "correct")
	assert.Contains(t, lines[3], "2023-12-05 14:05:22")
}

func TestFormatOutcomesDeterministic(t *testing.T) {
	outs := []submissionOutcome{
		{Year: 2022, Day: 1, Part: 2, Verdict: verdictAlreadySolved, Timestamp: time.Unix(0, 0).UTC()},
	}
	assert.Equal(t, formatOutcomes(outs), formatOutcomes(outs))
}
