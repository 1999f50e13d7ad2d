//go:build darwin

package input

/*
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation -framework ApplicationServices

#include <CoreGraphics/CoreGraphics.h>
#include <CoreFoundation/CoreFoundation.h>
#include <ApplicationServices/ApplicationServices.h>

static void postMouse(CGEventType type, CGMouseButton button, double x, double y) {
    CGEventRef event = CGEventCreateMouseEvent(NULL, type, CGPointMake(x, y), button);
    if (event == NULL) {
        return;
    }
    CGEventPost(kCGHIDEventTap, event);
    CFRelease(event);
}

static CGPoint currentPosition() {
    CGEventRef event = CGEventCreate(NULL);
    CGPoint p = CGEventGetLocation(event);
    CFRelease(event);
    return p;
}

static void postButton(CGEventType type, CGMouseButton button) {
    CGPoint p = currentPosition();
    postMouse(type, button, p.x, p.y);
}

static void postKey(CGKeyCode code, bool down) {
    CGEventRef event = CGEventCreateKeyboardEvent(NULL, code, down);
    if (event == NULL) {
        return;
    }
    CGEventPost(kCGHIDEventTap, event);
    CFRelease(event);
}

static void postScroll(int32_t dy, int32_t dx) {
    CGEventRef event = CGEventCreateScrollWheelEvent(NULL, kCGScrollEventUnitLine, 2, dy, dx);
    if (event == NULL) {
        return;
    }
    CGEventPost(kCGHIDEventTap, event);
    CFRelease(event);
}
*/
import "C"

import (
	"log/slog"
	"sync"
)

// macOS implementation of input injection using CoreGraphics events.

// SystemInjector posts CoreGraphics events at the HID tap.
type SystemInjector struct {
	mu     sync.Mutex
	geom   Geometry
	left   bool
	right  bool
	scroll scrollAccumulator
	log    *slog.Logger
}

// NewSystemInjector returns a CoreGraphics injector. Events are silently
// discarded by the OS until the process is trusted for accessibility.
func NewSystemInjector(geom Geometry) (*SystemInjector, error) {
	return &SystemInjector{geom: geom, log: slog.Default().With("component", "inject")}, nil
}

// MoveCursorAbsolute posts a drag event while a button is held so that
// selections and window drags follow the pointer.
func (s *SystemInjector) MoveCursorAbsolute(x, y int) error {
	s.mu.Lock()
	typ, button := C.CGEventType(C.kCGEventMouseMoved), C.CGMouseButton(C.kCGMouseButtonLeft)
	switch {
	case s.left:
		typ = C.kCGEventLeftMouseDragged
	case s.right:
		typ, button = C.kCGEventRightMouseDragged, C.kCGMouseButtonRight
	}
	s.mu.Unlock()

	C.postMouse(typ, button, C.double(x), C.double(y))
	return nil
}

func (s *SystemInjector) SetButton(b Button, down bool) error {
	s.mu.Lock()
	if b == ButtonLeft {
		s.left = down
	} else {
		s.right = down
	}
	s.mu.Unlock()

	C.postButton(buttonEventType(b, down), cgButton(b))
	return nil
}

func (s *SystemInjector) SetKey(code int, down bool) error {
	C.postKey(C.CGKeyCode(code), C.bool(down))
	return nil
}

func (s *SystemInjector) Scroll(dx, dy float64) error {
	s.mu.Lock()
	wx, wy := s.scroll.add(dx, dy)
	s.mu.Unlock()

	if wx != 0 || wy != 0 {
		C.postScroll(C.int32_t(wy), C.int32_t(wx))
	}
	return nil
}

// ReleaseAll posts button-up for any button still marked down.
func (s *SystemInjector) ReleaseAll() error {
	s.mu.Lock()
	left, right := s.left, s.right
	s.left, s.right = false, false
	s.scroll = scrollAccumulator{}
	s.mu.Unlock()

	if left {
		C.postButton(C.kCGEventLeftMouseUp, C.kCGMouseButtonLeft)
	}
	if right {
		C.postButton(C.kCGEventRightMouseUp, C.kCGMouseButtonRight)
	}
	return nil
}

// Close is a no-op.
func (s *SystemInjector) Close() error { return nil }

func cgButton(b Button) C.CGMouseButton {
	if b == ButtonRight {
		return C.kCGMouseButtonRight
	}
	return C.kCGMouseButtonLeft
}

func buttonEventType(b Button, down bool) C.CGEventType {
	switch {
	case b == ButtonLeft && down:
		return C.kCGEventLeftMouseDown
	case b == ButtonLeft:
		return C.kCGEventLeftMouseUp
	case down:
		return C.kCGEventRightMouseDown
	default:
		return C.kCGEventRightMouseUp
	}
}
