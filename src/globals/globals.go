/*
 * javadec - a class file decoder and structural validator
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package globals holds process-wide state set up once at startup: the
// run mode and the trace gates that decide which subsystems log at Trace
// level, trimmed to what a single-pass CLI decoder needs instead of a
// running JVM.
package globals

import "sync"

// Mode identifies how the program was invoked: "test" or a normal CLI
// run.
type Mode int

const (
	ModeCLI Mode = iota
	ModeTest
)

// Globals is the process-wide state block, reached through GetGlobalRef.
type Globals struct {
	Mode Mode

	// TraceClass gates Trace-level logging in the classfile package.
	TraceClass bool
}

var (
	mu      sync.RWMutex
	globals Globals
	inited  bool
)

// InitGlobals resets process state for the given mode string ("cli" or
// "test"). Safe to call more than once; later calls simply reinitialize.
func InitGlobals(mode string) *Globals {
	mu.Lock()
	defer mu.Unlock()
	g := Globals{}
	switch mode {
	case "test":
		g.Mode = ModeTest
	default:
		g.Mode = ModeCLI
	}
	globals = g
	inited = true
	return &globals
}

// GetGlobalRef returns the process-wide Globals block, initializing it to
// CLI defaults on first use if InitGlobals was never called.
func GetGlobalRef() *Globals {
	mu.RLock()
	if inited {
		defer mu.RUnlock()
		return &globals
	}
	mu.RUnlock()
	return InitGlobals("cli")
}

// TraceClassEnabled reports whether classfile-level tracing is on.
func TraceClassEnabled() bool {
	return GetGlobalRef().TraceClass
}

// SetTraceClass turns classfile-level tracing on or off.
func SetTraceClass(on bool) {
	mu.Lock()
	defer mu.Unlock()
	globals.TraceClass = on
}
