// Package logging contains the logger shared across pylens.
// Packages grab it with `var log = logging.Log`.
package logging

import (
	"io"
	"os"

	"gopkg.in/op/go-logging.v1"
)

// Log is the process-wide logger.
var Log = logging.MustGetLogger("pylens")

const logFormat = `%{time:15:04:05.000} %{level:.4s} %{module}: %{message}`

func init() {
	Init(os.Stderr, logging.WARNING)
}

// Init points the logger at w and sets the minimum level.
func Init(w io.Writer, level logging.Level) {
	backend := logging.NewLogBackend(w, "", 0)
	formatted := logging.NewBackendFormatter(backend, logging.MustStringFormatter(logFormat))
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(level, "")
	logging.SetBackend(leveled)
}

// LevelForVerbosity maps a -v count (and the PYLENS_DEBUG override) to a level.
func LevelForVerbosity(verbosity int) logging.Level {
	if os.Getenv("PYLENS_DEBUG") != "" {
		return logging.DEBUG
	}
	switch {
	case verbosity >= 2:
		return logging.DEBUG
	case verbosity == 1:
		return logging.INFO
	default:
		return logging.WARNING
	}
}
