//go:build linux || darwin || freebsd || openbsd || netbsd
// +build linux darwin freebsd openbsd netbsd

package proc

// #include <unistd.h>
import "C"

// DetectHZ attempts to detect system clock ticks per second (CLK_TCK).
// Uses sysconf(_SC_CLK_TCK) via cgo for maximum portability.
// Falls back to 100 if detection fails.
func DetectHZ() int {
	hz := int(C.sysconf(C._SC_CLK_TCK))
	if hz <= 0 {
		return 100 // Safe fallback
	}
	return hz
}
