// Package logx wraps go-logging into the leveled logger engine
// internals use for diagnostics, kept separate from the UCI stdout
// stream so a leveled "info string"-free message never collides with
// the protocol wire format.
package logx

import (
	"io"
	"os"

	logging "github.com/op/go-logging"
)

var format = logging.MustStringFormatter(
	`%{time:15:04:05.000} %{level:.4s} %{module}: %{message}`,
)

// Logger is a leveled logger bound to a module name, used the same way
// across search, tt and trainingdata diagnostics.
type Logger = logging.Logger

// New returns a Logger for module, writing to w at the given level.
// level is parsed with go-logging's LogLevel ("debug", "info", "warning",
// "error", "critical"); an unrecognized level falls back to "info".
func New(module string, w io.Writer, level string) *Logger {
	if w == nil {
		w = os.Stderr
	}
	backend := logging.NewLogBackend(w, "", 0)
	formatted := logging.NewBackendFormatter(backend, format)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(parseLevel(level), module)
	logging.SetBackend(leveled)
	return logging.MustGetLogger(module)
}

func parseLevel(level string) logging.Level {
	lvl, err := logging.LogLevel(level)
	if err != nil {
		return logging.INFO
	}
	return lvl
}
