// Package osutils checks the platform permissions the companion needs
// before it starts injecting input.
package osutils

import "log/slog"

// Check is the outcome of one preflight probe.
type Check struct {
	Name   string
	OK     bool
	Detail string
}

// Report logs every check and returns false if any failed.
func Report(checks []Check) bool {
	log := slog.Default().With("component", "preflight")
	ok := true
	for _, c := range checks {
		if c.OK {
			log.Debug("check passed", "check", c.Name)
			continue
		}
		ok = false
		log.Warn("check failed", "check", c.Name, "detail", c.Detail)
	}
	return ok
}
