//go:build linux

package input

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sys/unix"
)

// Linux implementation of input injection through a uinput virtual device.
// The device reports absolute X/Y sized to the screen so a normalized
// coordinate maps to one ABS event pair.

const uinputPath = "/dev/uinput"

// uinput ioctls and event codes (linux/uinput.h, linux/input-event-codes.h)
const (
	uinputMaxNameSize = 80
	uiDevCreate       = 0x5501
	uiDevDestroy      = 0x5502
	uiSetEvBit        = 0x40045564
	uiSetKeyBit       = 0x40045565
	uiSetRelBit       = 0x40045566
	uiSetAbsBit       = 0x40045567
	uiSetPropBit      = 0x4004556E

	busUSB    = 0x03
	absSize   = 64
	keyMax    = 0xff
	evSyn     = 0x00
	evKey     = 0x01
	evRel     = 0x02
	evAbs     = 0x03
	synReport = 0
	absX      = 0x00
	absY      = 0x01
	relHWheel = 0x06
	relWheel  = 0x08
	btnLeft   = 0x110
	btnRight  = 0x111
	btnMiddle = 0x112

	inputPropPointer = 0
)

const deviceName = "MouseShare Virtual Input"

type inputID struct {
	Bustype uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

type uinputUserDev struct {
	Name       [uinputMaxNameSize]byte
	ID         inputID
	EffectsMax uint32
	Absmax     [absSize]int32
	Absmin     [absSize]int32
	Absfuzz    [absSize]int32
	Absflat    [absSize]int32
}

type inputEvent struct {
	Time  unix.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

// SystemInjector drives a uinput virtual keyboard and absolute pointer.
type SystemInjector struct {
	mu     sync.Mutex
	fd     int
	geom   Geometry
	scroll scrollAccumulator
	log    *slog.Logger
}

// NewSystemInjector opens /dev/uinput and registers a virtual device whose
// absolute axes span geom.
func NewSystemInjector(geom Geometry) (*SystemInjector, error) {
	fd, err := unix.Open(uinputPath, unix.O_WRONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", uinputPath, err)
	}

	inj := &SystemInjector{
		fd:   fd,
		geom: geom,
		log:  slog.Default().With("component", "inject"),
	}
	if err := inj.setup(); err != nil {
		unix.Close(fd)
		return nil, err
	}

	inj.log.Info("virtual input device created", "name", deviceName, "width", geom.Width, "height", geom.Height)
	return inj, nil
}

func (s *SystemInjector) setup() error {
	for _, ev := range []int{evSyn, evKey, evRel, evAbs} {
		if err := unix.IoctlSetInt(s.fd, uiSetEvBit, ev); err != nil {
			return fmt.Errorf("UI_SET_EVBIT %d: %w", ev, err)
		}
	}
	for code := 1; code <= keyMax; code++ {
		if err := unix.IoctlSetInt(s.fd, uiSetKeyBit, code); err != nil {
			return fmt.Errorf("UI_SET_KEYBIT %d: %w", code, err)
		}
	}
	for _, code := range []int{btnLeft, btnRight, btnMiddle} {
		if err := unix.IoctlSetInt(s.fd, uiSetKeyBit, code); err != nil {
			return fmt.Errorf("UI_SET_KEYBIT %#x: %w", code, err)
		}
	}
	for _, code := range []int{relWheel, relHWheel} {
		if err := unix.IoctlSetInt(s.fd, uiSetRelBit, code); err != nil {
			return fmt.Errorf("UI_SET_RELBIT %d: %w", code, err)
		}
	}
	for _, code := range []int{absX, absY} {
		if err := unix.IoctlSetInt(s.fd, uiSetAbsBit, code); err != nil {
			return fmt.Errorf("UI_SET_ABSBIT %d: %w", code, err)
		}
	}
	if err := unix.IoctlSetInt(s.fd, uiSetPropBit, inputPropPointer); err != nil {
		return fmt.Errorf("UI_SET_PROPBIT: %w", err)
	}

	dev := uinputUserDev{
		ID: inputID{Bustype: busUSB, Vendor: 0x1209, Product: 0x4d53, Version: 1},
	}
	copy(dev.Name[:], deviceName)
	dev.Absmax[absX] = int32(max(s.geom.Width-1, 1))
	dev.Absmax[absY] = int32(max(s.geom.Height-1, 1))

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.NativeEndian, &dev); err != nil {
		return fmt.Errorf("encode device: %w", err)
	}
	if _, err := unix.Write(s.fd, buf.Bytes()); err != nil {
		return fmt.Errorf("write device: %w", err)
	}
	if err := unix.IoctlSetInt(s.fd, uiDevCreate, 0); err != nil {
		return fmt.Errorf("UI_DEV_CREATE: %w", err)
	}
	return nil
}

// emit writes the events followed by a SYN_REPORT as one write.
func (s *SystemInjector) emit(events ...inputEvent) error {
	var buf bytes.Buffer
	for _, ev := range append(events, inputEvent{Type: evSyn, Code: synReport}) {
		if err := binary.Write(&buf, binary.NativeEndian, &ev); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fd < 0 {
		return fmt.Errorf("uinput device closed")
	}
	_, err := unix.Write(s.fd, buf.Bytes())
	return err
}

func (s *SystemInjector) MoveCursorAbsolute(x, y int) error {
	return s.emit(
		inputEvent{Type: evAbs, Code: absX, Value: int32(x)},
		inputEvent{Type: evAbs, Code: absY, Value: int32(y)},
	)
}

func (s *SystemInjector) SetButton(b Button, down bool) error {
	code := uint16(btnLeft)
	if b == ButtonRight {
		code = btnRight
	}
	return s.emit(inputEvent{Type: evKey, Code: code, Value: boolValue(down)})
}

func (s *SystemInjector) SetKey(code int, down bool) error {
	if code <= 0 || code > keyMax {
		return fmt.Errorf("key code %d outside registered range", code)
	}
	return s.emit(inputEvent{Type: evKey, Code: uint16(code), Value: boolValue(down)})
}

// Scroll emits whole wheel detents; fractional remainders carry over to the
// next call.
func (s *SystemInjector) Scroll(dx, dy float64) error {
	s.mu.Lock()
	wx, wy := s.scroll.add(dx, dy)
	s.mu.Unlock()

	var events []inputEvent
	if wy != 0 {
		events = append(events, inputEvent{Type: evRel, Code: relWheel, Value: int32(wy)})
	}
	if wx != 0 {
		events = append(events, inputEvent{Type: evRel, Code: relHWheel, Value: int32(wx)})
	}
	if len(events) == 0 {
		return nil
	}
	return s.emit(events...)
}

// ReleaseAll lifts both pointer buttons and flushes the device.
func (s *SystemInjector) ReleaseAll() error {
	s.mu.Lock()
	s.scroll = scrollAccumulator{}
	s.mu.Unlock()

	return s.emit(
		inputEvent{Type: evKey, Code: btnLeft, Value: 0},
		inputEvent{Type: evKey, Code: btnRight, Value: 0},
	)
}

// Close destroys the virtual device.
func (s *SystemInjector) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fd < 0 {
		return nil
	}
	unix.IoctlSetInt(s.fd, uiDevDestroy, 0)
	err := unix.Close(s.fd)
	s.fd = -1
	return err
}

func boolValue(down bool) int32 {
	if down {
		return 1
	}
	return 0
}
