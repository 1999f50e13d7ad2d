//go:build linux

package osutils

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// UinputPath is the device node the injector opens.
var UinputPath = "/dev/uinput"

// Preflight verifies the uinput device exists and is writable.
func Preflight() []Check {
	return []Check{checkUinput(UinputPath), checkDisplay()}
}

func checkUinput(path string) Check {
	c := Check{Name: "uinput"}
	if _, err := os.Stat(path); err != nil {
		c.Detail = fmt.Sprintf("%s missing; load the module with 'sudo modprobe uinput'", path)
		return c
	}
	if err := unix.Access(path, unix.W_OK); err != nil {
		c.Detail = fmt.Sprintf("%s not writable (%v); add a udev rule granting the input group access or run as root", path, err)
		return c
	}
	c.OK = true
	return c
}

// checkDisplay reports whether a display server is reachable for screen
// and pointer queries.
func checkDisplay() Check {
	c := Check{Name: "display"}
	switch {
	case os.Getenv("DISPLAY") != "":
		c.OK = true
	case os.Getenv("WAYLAND_DISPLAY") != "":
		c.OK = true
		c.Detail = "Wayland session; pointer polling requires XWayland"
	default:
		c.Detail = "neither DISPLAY nor WAYLAND_DISPLAY is set; screen size falls back to configuration"
	}
	return c
}
