//go:build genesis_debug

package scheduler

import "fmt"

// hostFault reports a programmer error (scheduler underflow, an
// impossible quantum) that can never be a guest fault. Debug builds
// panic immediately so the failure surfaces at its origin; release
// builds (hostfault_release.go) log and clamp instead.
func hostFault(format string, args ...any) {
	panic(fmt.Sprintf("scheduler: host fault: "+format, args...))
}
