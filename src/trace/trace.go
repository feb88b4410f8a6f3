/*
 * javadec - a class file decoder and structural validator
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package trace is the leveled logger used throughout this module, with
// an Init/Trace/Error idiom. No
// third-party structured logger appears anywhere in the retrieved
// example repos, so this stays on the standard library's log package,
// writing to stderr so Trace/Error output never interleaves with a
// class's rendered signature on stdout.
package trace

import (
	"log"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	logger  *log.Logger
	started bool
)

// Init sets up the trace logger. Safe to call more than once.
func Init() {
	mu.Lock()
	defer mu.Unlock()
	logger = log.New(os.Stderr, "", log.LstdFlags)
	started = true
}

func ensure() *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	if !started {
		logger = log.New(os.Stderr, "", log.LstdFlags)
		started = true
	}
	return logger
}

// Trace logs an informational message. Call sites gate this on
// globals.TraceClass, the same gate used elsewhere in this module.
func Trace(msg string) {
	ensure().Print("[TRACE] " + msg)
}

// Error logs an error message unconditionally.
func Error(msg string) {
	ensure().Print("[ERROR] " + msg)
}
