package input

import (
	"fmt"
	"sync"
)

// recordingInjector captures every call as a short string.
type recordingInjector struct {
	mu       sync.Mutex
	calls    []string
	releases int
	fail     error
}

func (r *recordingInjector) record(format string, args ...any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
	return r.fail
}

func (r *recordingInjector) MoveCursorAbsolute(x, y int) error {
	return r.record("move %d,%d", x, y)
}

func (r *recordingInjector) SetButton(b Button, down bool) error {
	return r.record("button %s %t", b, down)
}

func (r *recordingInjector) SetKey(code int, down bool) error {
	return r.record("key %d %t", code, down)
}

func (r *recordingInjector) Scroll(dx, dy float64) error {
	return r.record("scroll %g,%g", dx, dy)
}

func (r *recordingInjector) ReleaseAll() error {
	r.mu.Lock()
	r.releases++
	r.mu.Unlock()
	return r.record("releaseAll")
}

func (r *recordingInjector) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *recordingInjector) Reset() {
	r.mu.Lock()
	r.calls = nil
	r.releases = 0
	r.mu.Unlock()
}
