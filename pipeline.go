package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// puzzleIdentity addresses one puzzle unit: year, day and part. Part is
// zero for operations that address the whole day (statement, input).
type puzzleIdentity struct {
	year, day, part int
}

func (id puzzleIdentity) validate() error {
	if id.year < 2015 {
		return fmt.Errorf("invalid year %d: the series starts in 2015", id.year)
	}
	if id.day < 1 || id.day > 25 {
		return fmt.Errorf("invalid day %d: must be 1-25", id.day)
	}
	return nil
}

func (id puzzleIdentity) String() string {
	if id.part == 0 {
		return fmt.Sprintf("%d day %d", id.year, id.day)
	}
	return fmt.Sprintf("%d day %d part %d", id.year, id.day, id.part)
}

func (id puzzleIdentity) pagePath() string {
	return fmt.Sprintf("/%d/day/%d", id.year, id.day)
}

func (id puzzleIdentity) inputPath() string  { return id.pagePath() + "/input" }
func (id puzzleIdentity) answerPath() string { return id.pagePath() + "/answer" }

// submissionOutcome is one recorded answer attempt. WaitSeconds carries a
// server-stated cooldown when the attempt was rate limited.
type submissionOutcome struct {
	Year        int       `json:"year"`
	Day         int       `json:"day"`
	Part        int       `json:"part"`
	Answer      string    `json:"answer"`
	Verdict     verdict   `json:"verdict"`
	WaitSeconds int       `json:"wait_seconds,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// cooldownActiveError reports a submission blocked by the wait interval the
// site enforces between attempts.
type cooldownActiveError struct {
	remaining time.Duration
}

func (e *cooldownActiveError) Error() string {
	return fmt.Sprintf("submission cooldown active: %s remaining", e.remaining.Round(time.Second))
}

// pipeline orchestrates cache-first fetching and cooldown-aware submission.
// It never talks to the network when the cache can answer.
type pipeline struct {
	client   *siteClient
	cache    *puzzleCache
	cooldown time.Duration
	log      *logger
	now      func() time.Time
}

func newPipeline(client *siteClient, cache *puzzleCache, cooldown time.Duration, log *logger) *pipeline {
	return &pipeline{
		client:   client,
		cache:    cache,
		cooldown: cooldown,
		log:      log,
		now:      time.Now,
	}
}

// fetchStatement returns the rendered puzzle statement, from cache when
// possible.
func (p *pipeline) fetchStatement(ctx context.Context, id puzzleIdentity) (string, error) {
	if err := id.validate(); err != nil {
		return "", err
	}
	if text, ok, err := p.cache.get(id, kindStatement); err != nil {
		return "", err
	} else if ok {
		p.log.infof("statement for %s loaded from cache", id)
		return text, nil
	}

	p.log.infof("cache miss, fetching statement for %s", id)
	body, err := p.client.get(ctx, id.pagePath())
	if err != nil {
		return "", err
	}
	text, err := renderHTML(body)
	if err != nil {
		return "", fmt.Errorf("render statement: %w", err)
	}
	if err := p.persist(id, kindStatement, text); err != nil {
		return "", err
	}
	return text, nil
}

// fetchInput returns the raw puzzle input, from cache when possible. The
// input is stored and returned verbatim, trailing newline included, because
// puzzle inputs are sensitive to stray whitespace.
func (p *pipeline) fetchInput(ctx context.Context, id puzzleIdentity) (string, error) {
	if err := id.validate(); err != nil {
		return "", err
	}
	if text, ok, err := p.cache.get(id, kindInput); err != nil {
		return "", err
	} else if ok {
		p.log.infof("input for %s loaded from cache", id)
		return text, nil
	}

	p.log.infof("cache miss, fetching input for %s", id)
	body, err := p.client.get(ctx, id.inputPath())
	if err != nil {
		return "", err
	}
	if err := p.persist(id, kindInput, body); err != nil {
		return "", err
	}
	return body, nil
}

// persist writes a fetched record. A failed write is reported but does not
// discard the fetched content; a content conflict always surfaces.
func (p *pipeline) persist(id puzzleIdentity, kind cacheKind, content string) error {
	err := p.cache.put(id, kind, content)
	if err == nil {
		return nil
	}
	var cw *cacheWriteError
	if errors.As(err, &cw) {
		p.log.warnf("%s fetched but not persisted: %v", kind, err)
		return nil
	}
	return err
}

// submitAnswer posts an answer for the identity, after the solved and
// cooldown checks. The outcome is appended to the cache whatever the
// verdict, so the attempt history stays complete.
func (p *pipeline) submitAnswer(ctx context.Context, id puzzleIdentity, answer string) (submissionOutcome, error) {
	if err := id.validate(); err != nil {
		return submissionOutcome{}, err
	}
	if id.part != 1 && id.part != 2 {
		return submissionOutcome{}, fmt.Errorf("invalid part %d: must be 1 or 2", id.part)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return submissionOutcome{}, errors.New("answer must not be empty")
	}

	last, ok, err := p.cache.latestSubmission(id)
	if err != nil {
		return submissionOutcome{}, err
	}
	if ok {
		if last.Verdict.solved() {
			p.log.okf("%s was already solved at %s, not resubmitting", id,
				last.Timestamp.Format(time.DateTime))
			return last, nil
		}
		if remaining := p.cooldownRemaining(last); remaining > 0 {
			return submissionOutcome{}, &cooldownActiveError{remaining: remaining}
		}
	}

	form := url.Values{
		"level":  {strconv.Itoa(id.part)},
		"answer": {answer},
	}
	body, err := p.client.postForm(ctx, id.answerPath(), form)
	if err != nil {
		var rl *rateLimitedError
		if errors.As(err, &rl) {
			p.record(submissionOutcome{
				Year: id.year, Day: id.day, Part: id.part,
				Answer:      answer,
				Verdict:     verdictRateLimited,
				WaitSeconds: int(rl.wait / time.Second),
				Timestamp:   p.now(),
			})
		}
		return submissionOutcome{}, err
	}

	v, wait := classifyResponse(body)
	out := submissionOutcome{
		Year: id.year, Day: id.day, Part: id.part,
		Answer:      answer,
		Verdict:     v,
		WaitSeconds: int(wait / time.Second),
		Timestamp:   p.now(),
	}
	p.record(out)
	return out, nil
}

func (p *pipeline) record(out submissionOutcome) {
	if err := p.cache.appendSubmission(out); err != nil {
		p.log.warnf("submission outcome was not persisted: %v", err)
	}
}

// cooldownRemaining computes how long the identity must still wait after its
// most recent attempt. A server-stated wait on that attempt overrides the
// configured default.
func (p *pipeline) cooldownRemaining(last submissionOutcome) time.Duration {
	interval := p.cooldown
	if last.WaitSeconds > 0 {
		interval = time.Duration(last.WaitSeconds) * time.Second
	}
	return interval - p.now().Sub(last.Timestamp)
}
