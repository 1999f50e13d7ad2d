//go:build linux

package input

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

const toolTimeout = 5 * time.Second

func runTool(timeout time.Duration, name string, args ...string) (string, error) {
	if _, err := exec.LookPath(name); err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return string(out), nil
}

// detectGeometry tries xrandr, then xdpyinfo.
func detectGeometry() (Geometry, string, error) {
	var errs []error
	if out, err := runTool(toolTimeout, "xrandr"); err == nil {
		g, err := parseXrandr(out)
		if err == nil {
			return g, "xrandr", nil
		}
		errs = append(errs, err)
	} else {
		errs = append(errs, err)
	}

	if out, err := runTool(toolTimeout, "xdpyinfo"); err == nil {
		g, err := parseXdpyinfo(out)
		if err == nil {
			return g, "xdpyinfo", nil
		}
		errs = append(errs, err)
	} else {
		errs = append(errs, err)
	}
	return Geometry{}, "", errors.Join(errs...)
}

// SystemPointer samples the X11 pointer through xdotool. Under Wayland this
// only works for XWayland surfaces.
type SystemPointer struct{}

func (SystemPointer) CursorPosition() (int, int, error) {
	out, err := runTool(time.Second, "xdotool", "getmouselocation")
	if err != nil {
		return 0, 0, err
	}
	return parseXdotoolLocation(out)
}
