// Package logging configures the leveled logger shared by the server,
// the stores and the migration runner.
package logging

import (
	"fmt"
	"io"
	"os"

	gol "github.com/op/go-logging"
)

// StandardFormat prints time, file, level and sequence number, colored,
// followed by the message.
const StandardFormat = `%{color}[%{time:15:04:05.000} %{shortfile} %{level:.4s} %{id:03x}]%{color:reset} %{message}`

const module = "songlist"

// New returns a logger writing messages of the given level (or above) to
// stderr. level is one of DEBUG, INFO, NOTICE, WARNING, ERROR, CRITICAL.
func New(level string) (*gol.Logger, error) {
	return NewWriter(os.Stderr, level)
}

// NewWriter is New with an explicit destination.
func NewWriter(w io.Writer, level string) (*gol.Logger, error) {
	lvl, err := gol.LogLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	backend := gol.NewBackendFormatter(
		gol.NewLogBackend(w, "", 0),
		gol.MustStringFormatter(StandardFormat),
	)
	leveled := gol.AddModuleLevel(backend)
	leveled.SetLevel(lvl, module)

	l := gol.MustGetLogger(module)
	l.SetBackend(leveled)
	return l, nil
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *gol.Logger {
	l, _ := NewWriter(io.Discard, "CRITICAL")
	return l
}
