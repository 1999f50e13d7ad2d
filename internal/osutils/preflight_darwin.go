//go:build darwin

package osutils

/*
#cgo LDFLAGS: -framework ApplicationServices -framework CoreFoundation
#include <ApplicationServices/ApplicationServices.h>

static bool accessibilityTrusted(bool prompt) {
    const void *keys[] = { kAXTrustedCheckOptionPrompt };
    const void *values[] = { prompt ? kCFBooleanTrue : kCFBooleanFalse };
    CFDictionaryRef opts = CFDictionaryCreate(NULL, keys, values, 1,
        &kCFTypeDictionaryKeyCallBacks, &kCFTypeDictionaryValueCallBacks);
    bool trusted = AXIsProcessTrustedWithOptions(opts);
    CFRelease(opts);
    return trusted;
}
*/
import "C"

// Preflight checks accessibility trust and asks macOS to show the
// permission prompt when it is missing.
func Preflight() []Check {
	c := Check{Name: "accessibility"}
	if bool(C.accessibilityTrusted(C.bool(true))) {
		c.OK = true
	} else {
		c.Detail = "grant Accessibility access in System Settings > Privacy & Security, then restart"
	}
	return []Check{c}
}
