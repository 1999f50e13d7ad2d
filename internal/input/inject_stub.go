//go:build !darwin && !windows && !linux

package input

import (
	"errors"
	"runtime"
)

// ErrUnsupported is returned by the stub injector on platforms without an
// injection backend.
var ErrUnsupported = errors.New("input injection not supported on " + runtime.GOOS)

// SystemInjector is a stub for unsupported platforms.
type SystemInjector struct{}

// NewSystemInjector always fails on this platform.
func NewSystemInjector(geom Geometry) (*SystemInjector, error) {
	return nil, ErrUnsupported
}

func (s *SystemInjector) MoveCursorAbsolute(x, y int) error { return ErrUnsupported }
func (s *SystemInjector) SetButton(b Button, down bool) error { return ErrUnsupported }
func (s *SystemInjector) SetKey(code int, down bool) error { return ErrUnsupported }
func (s *SystemInjector) Scroll(dx, dy float64) error { return ErrUnsupported }
func (s *SystemInjector) ReleaseAll() error { return ErrUnsupported }
func (s *SystemInjector) Close() error { return nil }
