//go:build !genesis_debug

package scheduler

import "log"

// hostFault logs a programmer error and lets the caller clamp the
// quantum instead of crashing; see hostfault_debug.go for the
// -tags genesis_debug behavior.
func hostFault(format string, args ...any) {
	log.Printf("scheduler: host fault: "+format, args...)
}
