package main

import (
	"errors"
	"os"
	"strings"
)

// sessionEnvVar is consulted when the config file carries no session token.
const sessionEnvVar = "AOC_SESSION"

var errMissingCredential = errors.New(
	"no session token configured: run `aoc-env setup --session TOKEN` or set AOC_SESSION")

// credentialStore holds the session token for the one authenticated
// identity. The token is resolved once at construction and read-only
// afterwards; it must never appear in logs or output.
type credentialStore struct {
	token string
}

func newCredentialStore(cfg appConfig) (*credentialStore, error) {
	tok := strings.TrimSpace(cfg.Session)
	if tok == "" {
		tok = strings.TrimSpace(os.Getenv(sessionEnvVar))
	}
	if tok == "" {
		return nil, errMissingCredential
	}
	return &credentialStore{token: tok}, nil
}

func (s *credentialStore) sessionToken() string { return s.token }
