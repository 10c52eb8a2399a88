package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// sessionCookieName is the authentication cookie the site expects.
const sessionCookieName = "session"

// maxResponseSize caps how much of a response body is read.
const maxResponseSize = 10 * 1024 * 1024 // 10MB

// Fatal request errors. Neither is retried: a missing puzzle or a rejected
// token cannot be fixed by trying again.
var (
	errPuzzleNotFound = errors.New(
		"puzzle not found: the day may not be unlocked yet, or the year is wrong")
	errAuthentication = errors.New(
		"authentication rejected: session token is invalid or expired, run `aoc-env setup` again")
)

// rateLimitedError reports a server-enforced rate limit (HTTP 429).
type rateLimitedError struct {
	wait time.Duration
}

func (e *rateLimitedError) Error() string {
	if e.wait > 0 {
		return fmt.Sprintf("rate limited by server: wait %s before retrying", e.wait.Round(time.Second))
	}
	return "rate limited by server"
}

// transientNetworkError reports a network-level fault that persisted through
// every retry attempt.
type transientNetworkError struct {
	attempts int
	last     error
}

func (e *transientNetworkError) Error() string {
	return fmt.Sprintf("request failed after %d attempts: %v", e.attempts, e.last)
}

func (e *transientNetworkError) Unwrap() error { return e.last }

// retryPolicy bounds how transient faults are retried: an attempt budget and
// an exponential backoff schedule. The sleep function is injectable so tests
// run without real delay.
type retryPolicy struct {
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
	sleep       func(time.Duration)
}

func defaultRetryPolicy() retryPolicy {
	return retryPolicy{
		maxAttempts: 4,
		baseDelay:   2 * time.Second,
		maxDelay:    30 * time.Second,
		sleep:       time.Sleep,
	}
}

// backoff returns the delay after the given 1-based attempt.
func (p retryPolicy) backoff(attempt int) time.Duration {
	d := p.baseDelay
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= p.maxDelay {
			return p.maxDelay
		}
	}
	return d
}

// siteClient is the single authenticated connection to the puzzle site and
// the only layer that speaks retry logic. The session token rides in a
// cookie jar seeded once at construction.
type siteClient struct {
	baseURL   string
	userAgent string
	retry     retryPolicy
	http      *http.Client
	log       *logger
}

// newSiteClient creates a client authenticated with the stored session token.
func newSiteClient(cfg appConfig, creds *credentialStore, log *logger) (*siteClient, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base_url: %w", err)
	}
	u.Path = strings.TrimRight(u.Path, "/")

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	jar.SetCookies(u, []*http.Cookie{{
		Name:  sessionCookieName,
		Value: creds.sessionToken(),
		Path:  "/",
	}})

	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUA
	}
	return &siteClient{
		baseURL:   u.String(),
		userAgent: ua,
		retry:     defaultRetryPolicy(),
		http: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		},
		log: log,
	}, nil
}

// get performs an authenticated GET and returns the response body.
func (c *siteClient) get(ctx context.Context, path string) (string, error) {
	return c.do(ctx, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(path), nil)
	})
}

// postForm performs an authenticated form-encoded POST and returns the
// response body.
func (c *siteClient) postForm(ctx context.Context, path string, form url.Values) (string, error) {
	encoded := form.Encode()
	return c.do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.requestURL(path), strings.NewReader(encoded))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	})
}

func (c *siteClient) requestURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// do runs one request through the retry loop. Network faults and 5xx
// responses are retried with backoff; everything else is classified and
// returned immediately.
func (c *siteClient) do(ctx context.Context, build func() (*http.Request, error)) (string, error) {
	var lastErr error
	for attempt := 1; ; attempt++ {
		body, retryable, err := c.doOnce(build)
		if err == nil {
			return body, nil
		}
		if !retryable {
			return "", err
		}
		lastErr = err
		if attempt >= c.retry.maxAttempts {
			break
		}
		wait := c.retry.backoff(attempt)
		c.log.warnf("request failed (%v), retrying in %s", err, wait)
		c.retry.sleep(wait)
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}
	return "", &transientNetworkError{attempts: c.retry.maxAttempts, last: lastErr}
}

// doOnce performs a single attempt. The middle return reports whether the
// failure is worth retrying.
func (c *siteClient) doOnce(build func() (*http.Request, error)) (string, bool, error) {
	req, err := build()
	if err != nil {
		return "", false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", true, err
	}
	defer func() { _ = resp.Body.Close() }()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", true, fmt.Errorf("read response: %w", err)
	}
	body := string(b)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", false, errPuzzleNotFound
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized:
		return "", false, errAuthentication
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", false, &rateLimitedError{wait: parseWaitDuration(body)}
	case resp.StatusCode >= 500:
		return "", true, fmt.Errorf("server error: HTTP %d", resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return "", false, fmt.Errorf("unexpected response: HTTP %d", resp.StatusCode)
	}
	return body, false, nil
}
