package main

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func testLogger() *logger {
	return &logger{z: zerolog.Nop()}
}

func TestLatestPuzzleDate(t *testing.T) {
	cases := []struct {
		name     string
		now      time.Time
		wantYear int
		wantDay  int
	}{
		{
			name:     "mid-year falls back to previous season",
			now:      time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
			wantYear: 2023,
			wantDay:  25,
		},
		{
			name:     "during december tracks the day",
			now:      time.Date(2024, 12, 5, 10, 0, 0, 0, time.UTC),
			wantYear: 2024,
			wantDay:  5,
		},
		{
			name:     "after day 25 caps at 25",
			now:      time.Date(2024, 12, 28, 10, 0, 0, 0, time.UTC),
			wantYear: 2024,
			wantDay:  25,
		},
		{
			name:     "before midnight eastern it is still november",
			now:      time.Date(2024, 12, 1, 3, 0, 0, 0, time.UTC),
			wantYear: 2023,
			wantDay:  25,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			year, day := latestPuzzleDate(tc.now)
			assert.Equal(t, tc.wantYear, year)
			assert.Equal(t, tc.wantDay, day)
		})
	}
}

func TestCommonFlagsIdentityExplicit(t *testing.T) {
	cf := &commonFlags{year: 2023, day: 5}
	id := cf.identity(1)
	assert.Equal(t, puzzleIdentity{year: 2023, day: 5, part: 1}, id)
}
