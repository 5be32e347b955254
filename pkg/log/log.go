// Package log provides the process logger used by the generator and CLI.
//
// It wraps the standard logger with level-prefixed helpers. Setup can tee the
// output into a size-rotated log file.
package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the process logger.
type Options struct {
	File  string // optional log file, rotated by size
	Debug bool   // enable Debug/Debugf output
}

var debug atomic.Bool

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func init() {
	log.SetFlags(0)
	log.SetPrefix("")
}

// Setup configures output destination and verbosity. The returned closer
// releases the log file, if any.
func Setup(opts Options) io.Closer {
	debug.Store(opts.Debug)

	if opts.File == "" {
		log.SetOutput(os.Stderr)
		log.SetFlags(0)
		return nopCloser{}
	}

	lj := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    10, // MB
		MaxBackups: 2,
		MaxAge:     28, // days
	}
	log.SetOutput(io.MultiWriter(os.Stderr, lj))
	log.SetFlags(log.Ldate | log.Ltime)
	return lj
}

// SetOutput redirects the logger, mostly for tests.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// Printf calls the standard log.Printf()
func Printf(format string, v ...any) {
	log.Output(2, fmt.Sprintf(format, v...))
}

// Warnf logs with a [WARN] prefix.
func Warnf(format string, v ...any) {
	log.Output(2, "[WARN] "+fmt.Sprintf(format, v...))
}

// Errorf logs with an [ERROR] prefix. It does not exit.
func Errorf(format string, v ...any) {
	log.Output(2, "[ERROR] "+fmt.Sprintf(format, v...))
}

// Debug logs with a [DEBUG] prefix when debug output is enabled.
func Debug(v ...any) {
	if !debug.Load() {
		return
	}
	log.Output(2, "[DEBUG] "+fmt.Sprint(v...))
}

// Debugf logs with a [DEBUG] prefix when debug output is enabled.
func Debugf(format string, v ...any) {
	if !debug.Load() {
		return
	}
	log.Output(2, "[DEBUG] "+fmt.Sprintf(format, v...))
}
