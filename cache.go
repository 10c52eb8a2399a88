package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// cacheKind selects which record of a puzzle day an operation addresses.
type cacheKind string

const (
	kindStatement cacheKind = "statement"
	kindInput     cacheKind = "input"
)

// submissionsFile is the append-only per-day submission history.
const submissionsFile = "submissions.jsonl"

// cacheConflictError reports a put whose content differs from what is
// already cached. Statements and inputs never change upstream, so a
// mismatch signals a bug and must not be silently accepted.
type cacheConflictError struct {
	year, day int
	kind      cacheKind
}

func (e *cacheConflictError) Error() string {
	return fmt.Sprintf("cached %s for %d day %d differs from newly fetched content",
		e.kind, e.year, e.day)
}

// cacheWriteError reports a failed or interrupted cache write. The record on
// disk is left untouched.
type cacheWriteError struct {
	path string
	err  error
}

func (e *cacheWriteError) Error() string {
	return fmt.Sprintf("cache write %s: %v", e.path, e.err)
}

func (e *cacheWriteError) Unwrap() error { return e.err }

// puzzleCache is the on-disk store for fetched statements, inputs and
// submission history, one directory per (year, day). Statements and inputs
// are written once and immutable; submission outcomes are append-only so the
// full attempt history survives for cooldown and dedup checks.
type puzzleCache struct {
	dir string
}

func newPuzzleCache(dir string) *puzzleCache {
	return &puzzleCache{dir: dir}
}

func (c *puzzleCache) dayDir(year, day int) string {
	return filepath.Join(c.dir, strconv.Itoa(year), strconv.Itoa(day))
}

func (c *puzzleCache) recordPath(id puzzleIdentity, kind cacheKind) string {
	return filepath.Join(c.dayDir(id.year, id.day), string(kind)+".txt")
}

// get returns the cached content for the identity and kind, with a hit flag.
func (c *puzzleCache) get(id puzzleIdentity, kind cacheKind) (string, bool, error) {
	b, err := os.ReadFile(c.recordPath(id, kind))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read cache: %w", err)
	}
	return string(b), true, nil
}

// put stores an immutable record. Re-putting identical content is a no-op;
// differing content fails with a cacheConflictError. The write goes through
// a temp file and rename so an interrupted write never leaves a partial
// record behind.
func (c *puzzleCache) put(id puzzleIdentity, kind cacheKind, content string) error {
	path := c.recordPath(id, kind)
	if b, err := os.ReadFile(path); err == nil {
		if string(b) == content {
			return nil
		}
		return &cacheConflictError{year: id.year, day: id.day, kind: kind}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &cacheWriteError{path: path, err: err}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		return &cacheWriteError{path: path, err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &cacheWriteError{path: path, err: err}
	}
	return nil
}

// appendSubmission records one submission outcome. Always allowed; history
// is append-only and never rewritten.
func (c *puzzleCache) appendSubmission(o submissionOutcome) error {
	path := filepath.Join(c.dayDir(o.Year, o.Day), submissionsFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &cacheWriteError{path: path, err: err}
	}
	b, err := json.Marshal(o)
	if err != nil {
		return &cacheWriteError{path: path, err: err}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return &cacheWriteError{path: path, err: err}
	}
	if _, err := f.Write(append(b, '\n')); err != nil {
		_ = f.Close()
		return &cacheWriteError{path: path, err: err}
	}
	if err := f.Close(); err != nil {
		return &cacheWriteError{path: path, err: err}
	}
	return nil
}

// submissions returns every recorded outcome for the given day, all parts,
// in file order.
func (c *puzzleCache) submissions(year, day int) ([]submissionOutcome, error) {
	path := filepath.Join(c.dayDir(year, day), submissionsFile)
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read submissions: %w", err)
	}
	defer func() { _ = f.Close() }()

	var out []submissionOutcome
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var o submissionOutcome
		if err := json.Unmarshal(line, &o); err != nil {
			return nil, fmt.Errorf("corrupt submission record in %s: %w", path, err)
		}
		out = append(out, o)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read submissions: %w", err)
	}
	return out, nil
}

// latestSubmission returns the most recent outcome recorded for the exact
// identity (year, day and part), with a hit flag.
func (c *puzzleCache) latestSubmission(id puzzleIdentity) (submissionOutcome, bool, error) {
	all, err := c.submissions(id.year, id.day)
	if err != nil {
		return submissionOutcome{}, false, err
	}
	var latest submissionOutcome
	found := false
	for _, o := range all {
		if o.Part != id.part {
			continue
		}
		if !found || o.Timestamp.After(latest.Timestamp) {
			latest = o
			found = true
		}
	}
	return latest, found, nil
}

// yearSubmissions returns every recorded outcome for the year, sorted by
// timestamp.
func (c *puzzleCache) yearSubmissions(year int) ([]submissionOutcome, error) {
	entries, err := os.ReadDir(filepath.Join(c.dir, strconv.Itoa(year)))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cache dir: %w", err)
	}

	var out []submissionOutcome
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		day, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		subs, err := c.submissions(year, day)
		if err != nil {
			return nil, err
		}
		out = append(out, subs...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}
