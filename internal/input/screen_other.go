//go:build !darwin && !windows && !linux

package input

func detectGeometry() (Geometry, string, error) {
	return Geometry{}, "", ErrUnsupported
}

// SystemPointer is unavailable on this platform.
type SystemPointer struct{}

func (SystemPointer) CursorPosition() (int, int, error) {
	return 0, 0, ErrUnsupported
}
