package logging

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/op/go-logging.v1"
)

func TestLevelForVerbosity(t *testing.T) {
	t.Setenv("PYLENS_DEBUG", "")

	assert.Equal(t, logging.WARNING, LevelForVerbosity(0))
	assert.Equal(t, logging.INFO, LevelForVerbosity(1))
	assert.Equal(t, logging.DEBUG, LevelForVerbosity(2))
	assert.Equal(t, logging.DEBUG, LevelForVerbosity(5))
}

func TestLevelForVerbosity_DebugEnvWins(t *testing.T) {
	t.Setenv("PYLENS_DEBUG", "1")
	assert.Equal(t, logging.DEBUG, LevelForVerbosity(0))
}

func TestInit_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, logging.WARNING)
	t.Cleanup(func() { Init(os.Stderr, logging.WARNING) })

	Log.Info("hidden")
	Log.Warning("shown %d", 42)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN pylens: shown 42")
}
