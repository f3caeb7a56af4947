// Package logging builds the structured logger shared by the Lambda handlers.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// New returns a JSON logger on stdout filtered at lvl.
func New(lvl string) log.Logger {
	return NewWithWriter(os.Stdout, lvl)
}

// NewWithWriter returns a JSON logger writing to w filtered at lvl. Unknown levels
// fall back to info.
func NewWithWriter(w io.Writer, lvl string) log.Logger {
	logger := log.NewJSONLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
	return level.NewFilter(logger, levelOption(lvl))
}

func levelOption(lvl string) level.Option {
	switch strings.ToLower(lvl) {
	case "debug":
		return level.AllowDebug()
	case "warn", "warning":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}
