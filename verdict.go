package main

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// verdict is the classified outcome of a submitted answer.
type verdict string

const (
	verdictCorrect       verdict = "correct"
	verdictTooLow        verdict = "incorrect-too-low"
	verdictTooHigh       verdict = "incorrect-too-high"
	verdictIncorrect     verdict = "incorrect-other"
	verdictRateLimited   verdict = "rate-limited"
	verdictAlreadySolved verdict = "already-solved"
)

// solved reports whether the verdict means the puzzle part is done.
func (v verdict) solved() bool {
	return v == verdictCorrect || v == verdictAlreadySolved
}

// classifyResponse maps the site's free-text submission response to a
// verdict. Matching is ordered: a correct answer wins over any other phrase,
// and unrecognized text falls back to incorrect-other rather than guessing.
// For rate-limited responses the stated wait time is returned as well.
func classifyResponse(body string) (verdict, time.Duration) {
	lower := strings.ToLower(body)
	switch {
	case strings.Contains(lower, "that's the right answer"):
		return verdictCorrect, 0
	case strings.Contains(lower, "did you already complete it"),
		strings.Contains(lower, "you don't seem to be solving the right level"):
		return verdictAlreadySolved, 0
	case strings.Contains(lower, "you gave an answer too recently"):
		return verdictRateLimited, parseWaitDuration(body)
	case strings.Contains(lower, "too low"):
		return verdictTooLow, 0
	case strings.Contains(lower, "too high"):
		return verdictTooHigh, 0
	}
	return verdictIncorrect, 0
}

// The site states cooldowns in two shapes: "You have 4m 58s left to wait"
// and "please wait one minute before trying again".
var (
	reWaitClock = regexp.MustCompile(`(?i)(?:(\d+)h\s*)?(?:(\d+)m\s*)?(\d+)s\s+left to wait`)
	reWaitWords = regexp.MustCompile(`(?i)wait\s+(\w+)\s+minutes?\s+before`)
)

var wordNumbers = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"fifteen": 15, "thirty": 30, "sixty": 60,
}

// parseWaitDuration extracts a stated wait time, or zero when absent.
func parseWaitDuration(body string) time.Duration {
	if m := reWaitClock.FindStringSubmatch(body); m != nil {
		var d time.Duration
		if m[1] != "" {
			h, _ := strconv.Atoi(m[1])
			d += time.Duration(h) * time.Hour
		}
		if m[2] != "" {
			min, _ := strconv.Atoi(m[2])
			d += time.Duration(min) * time.Minute
		}
		s, _ := strconv.Atoi(m[3])
		return d + time.Duration(s)*time.Second
	}
	if m := reWaitWords.FindStringSubmatch(body); m != nil {
		word := strings.ToLower(m[1])
		if n, ok := wordNumbers[word]; ok {
			return time.Duration(n) * time.Minute
		}
		if n, err := strconv.Atoi(word); err == nil {
			return time.Duration(n) * time.Minute
		}
	}
	return 0
}
