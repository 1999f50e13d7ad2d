//go:build darwin

package input

/*
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation

#include <CoreGraphics/CoreGraphics.h>
#include <CoreFoundation/CoreFoundation.h>

static CGPoint pointerLocation() {
    CGEventRef event = CGEventCreate(NULL);
    CGPoint p = CGEventGetLocation(event);
    CFRelease(event);
    return p;
}
*/
import "C"

import "fmt"

func detectGeometry() (Geometry, string, error) {
	id := C.CGMainDisplayID()
	w := int(C.CGDisplayPixelsWide(id))
	h := int(C.CGDisplayPixelsHigh(id))
	if w == 0 || h == 0 {
		return Geometry{}, "", fmt.Errorf("CGDisplayPixels returned %dx%d", w, h)
	}
	return Geometry{Width: w, Height: h}, "CoreGraphics", nil
}

// SystemPointer samples the cursor through CGEventGetLocation.
type SystemPointer struct{}

func (SystemPointer) CursorPosition() (int, int, error) {
	p := C.pointerLocation()
	return int(p.x), int(p.y), nil
}
