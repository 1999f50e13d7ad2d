//go:build windows

package input

import (
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Windows implementation of input injection using SendInput and SetCursorPos.

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	procSendInput        = user32.NewProc("SendInput")
	procSetCursorPos     = user32.NewProc("SetCursorPos")
	procGetCursorPos     = user32.NewProc("GetCursorPos")
	procGetSystemMetrics = user32.NewProc("GetSystemMetrics")
	procMapVirtualKeyW   = user32.NewProc("MapVirtualKeyW")
)

const (
	inputMouse    = 0
	inputKeyboard = 1

	mouseeventfLeftDown  = 0x0002
	mouseeventfLeftUp    = 0x0004
	mouseeventfRightDown = 0x0008
	mouseeventfRightUp   = 0x0010
	mouseeventfWheel     = 0x0800
	mouseeventfHWheel    = 0x1000

	keyeventfExtendedKey = 0x0001
	keyeventfKeyUp       = 0x0002

	wheelDelta = 120

	mapvkVKToVSC = 0
)

type mouseInput struct {
	Dx        int32
	Dy        int32
	MouseData uint32
	Flags     uint32
	Time      uint32
	ExtraInfo uintptr
}

type keybdInput struct {
	Vk        uint16
	Scan      uint16
	Flags     uint32
	Time      uint32
	ExtraInfo uintptr
}

// mouseINPUT and keybdINPUT mirror the C INPUT union; the keyboard form is
// padded to the size of the larger mouse member.
type mouseINPUT struct {
	Type uint32
	Mi   mouseInput
}

type keybdINPUT struct {
	Type uint32
	Ki   keybdInput
	_    [8]byte
}

// SystemInjector sends synthetic input to the interactive desktop.
type SystemInjector struct {
	mu   sync.Mutex
	geom Geometry
	log  *slog.Logger
}

// NewSystemInjector verifies user32 is loadable.
func NewSystemInjector(geom Geometry) (*SystemInjector, error) {
	if err := procSendInput.Find(); err != nil {
		return nil, fmt.Errorf("SendInput unavailable: %w", err)
	}
	return &SystemInjector{geom: geom, log: slog.Default().With("component", "inject")}, nil
}

func (s *SystemInjector) MoveCursorAbsolute(x, y int) error {
	r, _, err := procSetCursorPos.Call(uintptr(int32(x)), uintptr(int32(y)))
	if r == 0 {
		return fmt.Errorf("SetCursorPos: %w", err)
	}
	return nil
}

func (s *SystemInjector) SetButton(b Button, down bool) error {
	var flags uint32
	switch {
	case b == ButtonLeft && down:
		flags = mouseeventfLeftDown
	case b == ButtonLeft:
		flags = mouseeventfLeftUp
	case down:
		flags = mouseeventfRightDown
	default:
		flags = mouseeventfRightUp
	}
	return s.sendMouse(flags, 0)
}

func (s *SystemInjector) SetKey(code int, down bool) error {
	var flags uint32
	if !down {
		flags |= keyeventfKeyUp
	}
	if extendedKeys[code] {
		flags |= keyeventfExtendedKey
	}
	scan, _, _ := procMapVirtualKeyW.Call(uintptr(code), mapvkVKToVSC)

	in := keybdINPUT{
		Type: inputKeyboard,
		Ki:   keybdInput{Vk: uint16(code), Scan: uint16(scan), Flags: flags},
	}
	return s.send(unsafe.Pointer(&in), unsafe.Sizeof(in))
}

// Scroll scales deltas by WHEEL_DELTA; positive dy scrolls up.
func (s *SystemInjector) Scroll(dx, dy float64) error {
	if dy != 0 {
		if err := s.sendMouse(mouseeventfWheel, int32(dy*wheelDelta)); err != nil {
			return err
		}
	}
	if dx != 0 {
		if err := s.sendMouse(mouseeventfHWheel, int32(dx*wheelDelta)); err != nil {
			return err
		}
	}
	return nil
}

// ReleaseAll lifts both mouse buttons.
func (s *SystemInjector) ReleaseAll() error {
	if err := s.sendMouse(mouseeventfLeftUp, 0); err != nil {
		return err
	}
	return s.sendMouse(mouseeventfRightUp, 0)
}

// Close is a no-op; there is no device to tear down.
func (s *SystemInjector) Close() error { return nil }

func (s *SystemInjector) sendMouse(flags uint32, data int32) error {
	in := mouseINPUT{
		Type: inputMouse,
		Mi:   mouseInput{MouseData: uint32(data), Flags: flags},
	}
	return s.send(unsafe.Pointer(&in), unsafe.Sizeof(in))
}

func (s *SystemInjector) send(in unsafe.Pointer, size uintptr) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, _, err := procSendInput.Call(1, uintptr(in), size)
	if n != 1 {
		return fmt.Errorf("SendInput: %w", err)
	}
	return nil
}
