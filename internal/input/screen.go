package input

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
)

// ResolveGeometry returns override when both dimensions are set, otherwise
// the detected screen size, falling back to DefaultGeometry.
func ResolveGeometry(override Geometry) Geometry {
	log := slog.Default().With("component", "screen")
	if override.Width > 0 && override.Height > 0 {
		log.Info("screen size from configuration", "width", override.Width, "height", override.Height)
		return override
	}

	g, source, err := detectGeometry()
	if err != nil || g.Width <= 0 || g.Height <= 0 {
		log.Warn("could not detect screen resolution, using default",
			"width", DefaultGeometry.Width, "height", DefaultGeometry.Height, "err", err)
		return DefaultGeometry
	}
	log.Info("screen resolution detected", "source", source, "width", g.Width, "height", g.Height)
	return g
}

var (
	xrandrMode    = regexp.MustCompile(`(\d+)x(\d+)\+\d+\+\d+`)
	xdpyinfoDims  = regexp.MustCompile(`dimensions:\s+(\d+)x(\d+)\s+pixels`)
	xdotoolCoords = regexp.MustCompile(`x:(-?\d+)\s+y:(-?\d+)`)
)

// parseXrandr returns the first active mode, e.g. "1920x1080+0+0".
func parseXrandr(out string) (Geometry, error) {
	return parseDims(xrandrMode, out, "xrandr")
}

func parseXdpyinfo(out string) (Geometry, error) {
	return parseDims(xdpyinfoDims, out, "xdpyinfo")
}

// parseXdotoolLocation reads "x:12 y:34 screen:0 window:5".
func parseXdotoolLocation(out string) (int, int, error) {
	m := xdotoolCoords.FindStringSubmatch(out)
	if m == nil {
		return 0, 0, fmt.Errorf("unexpected xdotool output %q", out)
	}
	x, _ := strconv.Atoi(m[1])
	y, _ := strconv.Atoi(m[2])
	return x, y, nil
}

func parseDims(re *regexp.Regexp, out, tool string) (Geometry, error) {
	m := re.FindStringSubmatch(out)
	if m == nil {
		return Geometry{}, fmt.Errorf("%s: no screen dimensions in output", tool)
	}
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	return Geometry{Width: w, Height: h}, nil
}
