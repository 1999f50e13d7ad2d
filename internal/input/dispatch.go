package input

import (
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"mouseshare/internal/edge"
	"mouseshare/internal/protocol"
)

// Stats counts what the dispatcher did with the events it was given.
type Stats struct {
	Applied  uint64 `json:"applied"`
	Dropped  uint64 `json:"dropped"`
	Unmapped uint64 `json:"unmapped"`
	Releases uint64 `json:"releases"`
}

// Dispatcher applies protocol events to an Injector. It owns the
// PressedState so that every key or button it pressed can be released when
// the link drops or control is handed back.
type Dispatcher struct {
	injector Injector
	keymap   *Keymap
	monitor  *edge.Monitor
	geometry Geometry
	log      *slog.Logger
	warn     *rate.Limiter

	mu      sync.Mutex
	pressed *PressedState

	applied  atomic.Uint64
	dropped  atomic.Uint64
	unmapped atomic.Uint64
	releases atomic.Uint64
}

// NewDispatcher wires an injector to a keymap and an edge monitor. monitor
// may be nil, in which case pointer moves never produce a handback.
func NewDispatcher(inj Injector, keymap *Keymap, monitor *edge.Monitor, geom Geometry) *Dispatcher {
	if keymap == nil {
		keymap = NewKeymap(nil)
	}
	return &Dispatcher{
		injector: inj,
		keymap:   keymap,
		monitor:  monitor,
		geometry: geom,
		log:      slog.Default().With("component", "dispatch"),
		warn:     rate.NewLimiter(rate.Every(time.Second), 10),
		pressed:  NewPressedState(),
	}
}

// Geometry returns the screen size the dispatcher converts coordinates for.
func (d *Dispatcher) Geometry() Geometry { return d.geometry }

// Apply injects one event and returns the resulting edge signal. It never
// fails: injector errors are logged and unknown events are dropped.
func (d *Dispatcher) Apply(ev protocol.Event) edge.Signal {
	switch ev.Type {
	case protocol.TypeMouseMove:
		d.applied.Add(1)
		return d.moveCursor(ev.NormalizedX, ev.NormalizedY)

	case protocol.TypeLeftMouseDown:
		d.setButton(ButtonLeft, true)
	case protocol.TypeLeftMouseUp:
		d.setButton(ButtonLeft, false)
	case protocol.TypeRightMouseDown:
		d.setButton(ButtonRight, true)
	case protocol.TypeRightMouseUp:
		d.setButton(ButtonRight, false)

	case protocol.TypeKeyDown, protocol.TypeKeyUp:
		if !ev.HasKeyCode {
			d.drop(ev, "missing keyCode")
			return edge.Signal{}
		}
		d.setKey(ev.KeyCode, ev.Type == protocol.TypeKeyDown)
		return edge.Signal{}

	case protocol.TypeScrollWheel:
		if ev.ScrollDeltaX != 0 || ev.ScrollDeltaY != 0 {
			d.check("scroll", d.injector.Scroll(ev.ScrollDeltaX, ev.ScrollDeltaY))
		}

	case protocol.TypeReturnControl:
		d.log.Info("peer acknowledged handback, releasing input")
		d.ReleaseAll()

	default:
		d.drop(ev, "unknown event type")
		return edge.Signal{}
	}

	d.applied.Add(1)
	return edge.Signal{}
}

func (d *Dispatcher) moveCursor(nx, ny float64) edge.Signal {
	w, h := d.geometry.Width, d.geometry.Height
	x := toPixel(nx, w)
	y := toPixel(ny, h)

	d.check("move", d.injector.MoveCursorAbsolute(x, y))

	if d.monitor == nil {
		return edge.Signal{}
	}
	sig := d.monitor.Observe(x, y, w, h)
	if sig.ShouldReturn {
		d.log.Info("edge reached by injected pointer", "x", x, "y", y, "edge", sig.Edge)
	}
	return sig
}

// toPixel converts a normalized coordinate to a pixel index in [0, size-1].
func toPixel(n float64, size int) int {
	v := int(math.Round(protocol.Clamp01(n) * float64(size)))
	if v > size-1 {
		v = size - 1
	}
	if v < 0 {
		v = 0
	}
	return v
}

func (d *Dispatcher) setButton(b Button, down bool) {
	err := d.injector.SetButton(b, down)
	d.track(buttonSlot(b), down, err)
	d.check("button", err)
}

// track records a press only when the injector accepted it. Releases always
// clear the slot.
func (d *Dispatcher) track(code int, down bool, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !down {
		d.pressed.Release(code)
	} else if err == nil {
		d.pressed.Press(code)
	}
}

func (d *Dispatcher) setKey(source int, down bool) {
	native, ok := d.keymap.Lookup(source)
	if !ok {
		d.unmapped.Add(1)
		if d.warn.Allow() {
			d.log.Warn("unmapped key code, dropping", "keyCode", source, "down", down)
		}
		return
	}

	d.applied.Add(1)
	err := d.injector.SetKey(native, down)
	d.track(native, down, err)
	d.check("key", err)
}

// ReleaseAll lifts every held key and button, clears the PressedState and
// calls the injector's ReleaseAll exactly once.
func (d *Dispatcher) ReleaseAll() {
	d.mu.Lock()
	held := d.pressed.Drain()
	d.mu.Unlock()

	for _, code := range held {
		switch code {
		case SlotLeftButton:
			d.check("release", d.injector.SetButton(ButtonLeft, false))
		case SlotRightButton:
			d.check("release", d.injector.SetButton(ButtonRight, false))
		default:
			d.check("release", d.injector.SetKey(code, false))
		}
	}
	d.check("release", d.injector.ReleaseAll())
	d.releases.Add(1)

	if len(held) > 0 {
		d.log.Info("released stuck input", "count", len(held))
	}
}

// Pressed returns a snapshot of the held codes.
func (d *Dispatcher) Pressed() []int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pressed.Codes()
}

// Stats returns the dispatcher counters.
func (d *Dispatcher) Stats() Stats {
	return Stats{
		Applied:  d.applied.Load(),
		Dropped:  d.dropped.Load(),
		Unmapped: d.unmapped.Load(),
		Releases: d.releases.Load(),
	}
}

func (d *Dispatcher) drop(ev protocol.Event, reason string) {
	d.dropped.Add(1)
	if d.warn.Allow() {
		d.log.Warn("dropping event", "type", string(ev.Type), "reason", reason)
	}
}

func (d *Dispatcher) check(op string, err error) {
	if err != nil && d.warn.Allow() {
		d.log.Warn("injection failed", "op", op, "err", err)
	}
}
