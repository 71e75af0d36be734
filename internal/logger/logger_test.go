package logger

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]log.Level{
		"error":   log.ErrorLevel,
		"warn":    log.WarnLevel,
		"info":    log.InfoLevel,
		"DEBUG":   log.DebugLevel,
		"verbose": log.TraceLevel,
		"bogus":   log.InfoLevel,
		"":        log.InfoLevel,
	}

	for name, want := range cases {
		assert.Equal(t, want, ParseLevel(name), "level %q", name)
	}
}

func TestInitWithConfigWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	require.NoError(t, InitWithConfig("debug", path))
	t.Cleanup(func() {
		Close()
		log.SetOutput(os.Stderr)
		log.SetLevel(log.InfoLevel)
	})

	log.Debug("hello from the test")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from the test")
	assert.Equal(t, log.DebugLevel, log.GetLevel())
}
