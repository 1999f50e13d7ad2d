// Package input turns decoded protocol events into synthetic keyboard and
// mouse input on the local machine.
package input

// Button identifies a mouse button the source can press.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	default:
		return "unknown"
	}
}

// Injector is the platform capability that produces synthetic input.
// Implementations must be cheap enough to call on every pointer move.
type Injector interface {
	// MoveCursorAbsolute warps the pointer to screen pixel (x, y).
	MoveCursorAbsolute(x, y int) error

	// SetButton presses or releases a mouse button.
	SetButton(b Button, down bool) error

	// SetKey presses or releases a key identified by its native code.
	SetKey(code int, down bool) error

	// Scroll emits wheel motion in source units (one unit per notch).
	Scroll(dx, dy float64) error

	// ReleaseAll flushes any input state the platform still holds.
	ReleaseAll() error
}

// Geometry is the local screen size in pixels.
type Geometry struct {
	Width  int
	Height int
}

// DefaultGeometry is used when the screen size cannot be detected.
var DefaultGeometry = Geometry{Width: 1920, Height: 1080}
