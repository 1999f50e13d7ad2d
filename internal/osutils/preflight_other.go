//go:build !linux && !darwin && !windows

package osutils

import "runtime"

// Preflight reports that no injection backend exists on this platform.
func Preflight() []Check {
	return []Check{{Name: "platform", Detail: runtime.GOOS + " has no input injection backend"}}
}
