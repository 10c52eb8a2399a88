package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialStoreFromConfig(t *testing.T) {
	t.Setenv(sessionEnvVar, "")
	s, err := newCredentialStore(appConfig{Session: "config-token"})
	require.NoError(t, err)
	assert.Equal(t, "config-token", s.sessionToken())
}

func TestCredentialStoreFromEnv(t *testing.T) {
	t.Setenv(sessionEnvVar, "env-token")
	s, err := newCredentialStore(appConfig{})
	require.NoError(t, err)
	assert.Equal(t, "env-token", s.sessionToken())
}

func TestCredentialStoreConfigWinsOverEnv(t *testing.T) {
	t.Setenv(sessionEnvVar, "env-token")
	s, err := newCredentialStore(appConfig{Session: "config-token"})
	require.NoError(t, err)
	assert.Equal(t, "config-token", s.sessionToken())
}

func TestCredentialStoreMissing(t *testing.T) {
	t.Setenv(sessionEnvVar, "")
	_, err := newCredentialStore(appConfig{Session: "   "})
	assert.ErrorIs(t, err, errMissingCredential)
}
