package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, baseURL string) *siteClient {
	t.Helper()
	cfg := appConfig{BaseURL: baseURL, UserAgent: "aoc-env-test"}
	creds := &credentialStore{token: "test-token"}
	c, err := newSiteClient(cfg, creds, testLogger())
	require.NoError(t, err)
	c.retry.sleep = func(time.Duration) {}
	return c
}

func TestClientGetSendsAuthAndAgent(t *testing.T) {
	var gotCookie, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ck, err := r.Cookie(sessionCookieName); err == nil {
			gotCookie = ck.Value
		}
		gotAgent = r.UserAgent()
		_, _ = w.Write([]byte("hello"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	body, err := c.get(context.Background(), "/2023/day/5")
	require.NoError(t, err)
	assert.Equal(t, "hello", body)
	assert.Equal(t, "test-token", gotCookie)
	assert.Equal(t, "aoc-env-test", gotAgent)
}

func TestClientPostFormEncoding(t *testing.T) {
	var gotForm url.Values
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm
		gotContentType = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	form := url.Values{"level": {"1"}, "answer": {"42"}}
	_, err := c.postForm(context.Background(), "/2023/day/5/answer", form)
	require.NoError(t, err)
	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	assert.Equal(t, "1", gotForm.Get("level"))
	assert.Equal(t, "42", gotForm.Get("answer"))
}

func TestClientClassifiesNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.get(context.Background(), "/2030/day/1")
	assert.ErrorIs(t, err, errPuzzleNotFound)
}

func TestClientClassifiesAuthFailure(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusUnauthorized} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad credentials", status)
		}))
		c := newTestClient(t, srv.URL)
		_, err := c.get(context.Background(), "/2023/day/5/input")
		assert.ErrorIs(t, err, errAuthentication, "status %d", status)
		srv.Close()
	}
}

func TestClientClassifiesRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("You gave an answer too recently; you have 30s left to wait."))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.postForm(context.Background(), "/2023/day/5/answer", url.Values{})

	var rl *rateLimitedError
	require.ErrorAs(t, err, &rl)
	assert.Equal(t, 30*time.Second, rl.wait)
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("recovered"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	var sleeps []time.Duration
	c.retry.sleep = func(d time.Duration) { sleeps = append(sleeps, d) }

	body, err := c.get(context.Background(), "/2023/day/5")
	require.NoError(t, err)
	assert.Equal(t, "recovered", body)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, sleeps)
}

func TestClientExhaustsRetryBudget(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.retry.maxAttempts = 3

	_, err := c.get(context.Background(), "/2023/day/5")
	var te *transientNetworkError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 3, te.attempts)
	assert.Equal(t, 3, calls)
}

func TestClientConnectionFailureIsTransient(t *testing.T) {
	// Nothing listens here.
	c := newTestClient(t, "http://127.0.0.1:1")
	c.retry.maxAttempts = 2

	_, err := c.get(context.Background(), "/2023/day/5")
	var te *transientNetworkError
	assert.ErrorAs(t, err, &te)
}

func TestClientDoesNotRetryFatalErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.get(context.Background(), "/2023/day/5")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errPuzzleNotFound))
	assert.Equal(t, 1, calls)
}

func TestRetryPolicyBackoffSchedule(t *testing.T) {
	p := defaultRetryPolicy()
	assert.Equal(t, 2*time.Second, p.backoff(1))
	assert.Equal(t, 4*time.Second, p.backoff(2))
	assert.Equal(t, 8*time.Second, p.backoff(3))
	assert.Equal(t, 16*time.Second, p.backoff(4))
	assert.Equal(t, 30*time.Second, p.backoff(5))
	assert.Equal(t, 30*time.Second, p.backoff(10))
}
