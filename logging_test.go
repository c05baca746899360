package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log, err := newLogger(&buf, "warn")
	require.NoError(t, err)

	log.Info("quiet")
	log.Warn("skipping unreadable directory", "path", "/x")
	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "path=/x")

	_, err = newLogger(&buf, "verbose")
	require.Error(t, err)
}
