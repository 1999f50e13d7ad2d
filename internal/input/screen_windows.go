//go:build windows

package input

import (
	"fmt"
	"unsafe"
)

const (
	smCXScreen = 0
	smCYScreen = 1
)

type point struct {
	X, Y int32
}

func detectGeometry() (Geometry, string, error) {
	w, _, _ := procGetSystemMetrics.Call(smCXScreen)
	h, _, _ := procGetSystemMetrics.Call(smCYScreen)
	if w == 0 || h == 0 {
		return Geometry{}, "", fmt.Errorf("GetSystemMetrics returned %dx%d", w, h)
	}
	return Geometry{Width: int(w), Height: int(h)}, "GetSystemMetrics", nil
}

// SystemPointer samples the cursor through GetCursorPos.
type SystemPointer struct{}

func (SystemPointer) CursorPosition() (int, int, error) {
	var p point
	r, _, err := procGetCursorPos.Call(uintptr(unsafe.Pointer(&p)))
	if r == 0 {
		return 0, 0, fmt.Errorf("GetCursorPos: %w", err)
	}
	return int(p.X), int(p.Y), nil
}
