//go:build debug

// Package debug prints diagnostics about buffer management when built with
// the "debug" tag.
package debug

import "log"

// Printf logs to the standard logger.
func Printf(msg string, args ...any) {
	log.Printf("debug: "+msg, args...)
}

const On = true
