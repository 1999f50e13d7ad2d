package input

import (
	"errors"
	"reflect"
	"testing"

	"mouseshare/internal/edge"
	"mouseshare/internal/protocol"
)

var testGeometry = Geometry{Width: 1920, Height: 1080}

func newTestDispatcher(t *testing.T) (*Dispatcher, *recordingInjector, *edge.Monitor) {
	t.Helper()
	inj := &recordingInjector{}
	keys := NewKeymap(map[int]int{
		0:  30, // A
		56: 42, // Shift
	})
	mon := edge.NewMonitor(edge.DefaultPolicy())
	return NewDispatcher(inj, keys, mon, testGeometry), inj, mon
}

func TestDispatchMouseMove(t *testing.T) {
	d, inj, _ := newTestDispatcher(t)

	sig := d.Apply(protocol.MouseMove(0.5, 0.5))
	if sig.ShouldReturn {
		t.Error("Expected no handback for a centred pointer")
	}
	want := []string{"move 960,540"}
	if got := inj.Calls(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected calls %v, got %v", want, got)
	}
}

func TestDispatchMouseMoveClamps(t *testing.T) {
	tests := []struct {
		nx, ny float64
		want   string
	}{
		{1, 1, "move 1919,1079"},
		{1.5, -0.5, "move 1919,0"},
		{0.9999, 0.0001, "move 1919,0"},
		{0.25, 0.75, "move 480,810"},
	}

	for _, tt := range tests {
		d, inj, _ := newTestDispatcher(t)
		d.Apply(protocol.MouseMove(tt.nx, tt.ny))
		calls := inj.Calls()
		if len(calls) != 1 || calls[0] != tt.want {
			t.Errorf("MouseMove(%g,%g): expected %q, got %v", tt.nx, tt.ny, tt.want, calls)
		}
	}
}

func TestDispatchMouseMoveLeftEdge(t *testing.T) {
	d, _, mon := newTestDispatcher(t)

	sig := d.Apply(protocol.MouseMove(0.001, 0.5))
	if !sig.ShouldReturn {
		t.Fatal("Expected handback at the left edge")
	}
	if sig.Edge != protocol.EdgeLeft {
		t.Errorf("Expected edge left, got %s", sig.Edge)
	}
	if sig.NormalizedY != 0.5 {
		t.Errorf("Expected normalizedY 0.5, got %g", sig.NormalizedY)
	}
	if !mon.Idle() {
		t.Error("Expected monitor to be idle after firing")
	}

	if again := d.Apply(protocol.MouseMove(0, 0.5)); again.ShouldReturn {
		t.Error("Expected a single handback per arm")
	}
}

func TestDispatchZeroGeometry(t *testing.T) {
	inj := &recordingInjector{}
	d := NewDispatcher(inj, NewKeymap(nil), edge.NewMonitor(edge.DefaultPolicy()), Geometry{})

	sig := d.Apply(protocol.MouseMove(0.5, 0.5))
	if got := inj.Calls(); len(got) != 1 || got[0] != "move 0,0" {
		t.Errorf("Expected move to 0,0, got %v", got)
	}
	if sig.ShouldReturn && sig.NormalizedY != 0 {
		t.Errorf("Expected normalizedY 0 with zero height, got %g", sig.NormalizedY)
	}
}

func TestDispatchNilMonitor(t *testing.T) {
	inj := &recordingInjector{}
	d := NewDispatcher(inj, nil, nil, testGeometry)
	if sig := d.Apply(protocol.MouseMove(0, 0)); sig.ShouldReturn {
		t.Error("Expected no handback without a monitor")
	}
}

func TestDispatchButtons(t *testing.T) {
	d, inj, _ := newTestDispatcher(t)

	d.Apply(protocol.Event{Type: protocol.TypeLeftMouseDown})
	d.Apply(protocol.Event{Type: protocol.TypeRightMouseDown})
	if got := d.Pressed(); !reflect.DeepEqual(got, []int{SlotRightButton, SlotLeftButton}) {
		t.Errorf("Expected both button slots held, got %v", got)
	}

	d.Apply(protocol.Event{Type: protocol.TypeLeftMouseUp})
	d.Apply(protocol.Event{Type: protocol.TypeRightMouseUp})
	if got := d.Pressed(); len(got) != 0 {
		t.Errorf("Expected no held buttons, got %v", got)
	}

	want := []string{
		"button left true",
		"button right true",
		"button left false",
		"button right false",
	}
	if got := inj.Calls(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected calls %v, got %v", want, got)
	}
}

func TestDispatchKeys(t *testing.T) {
	d, inj, _ := newTestDispatcher(t)

	d.Apply(protocol.KeyDown(56))
	d.Apply(protocol.KeyDown(0))
	if got := d.Pressed(); !reflect.DeepEqual(got, []int{30, 42}) {
		t.Errorf("Expected native codes 30 and 42 held, got %v", got)
	}
	d.Apply(protocol.KeyUp(0))
	d.Apply(protocol.KeyUp(56))

	want := []string{"key 42 true", "key 30 true", "key 30 false", "key 42 false"}
	if got := inj.Calls(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected calls %v, got %v", want, got)
	}
	if got := d.Pressed(); len(got) != 0 {
		t.Errorf("Expected empty pressed state, got %v", got)
	}
}

func TestDispatchUnmappedKey(t *testing.T) {
	d, inj, _ := newTestDispatcher(t)

	sig := d.Apply(protocol.KeyDown(9999))
	if sig.ShouldReturn {
		t.Error("Expected no signal for an unmapped key")
	}
	if got := inj.Calls(); len(got) != 0 {
		t.Errorf("Expected no injection, got %v", got)
	}
	if got := d.Pressed(); len(got) != 0 {
		t.Errorf("Expected empty pressed state, got %v", got)
	}
	if s := d.Stats(); s.Unmapped != 1 {
		t.Errorf("Expected 1 unmapped key, got %d", s.Unmapped)
	}
}

func TestDispatchKeyWithoutCode(t *testing.T) {
	d, inj, _ := newTestDispatcher(t)

	d.Apply(protocol.Event{Type: protocol.TypeKeyDown})
	if got := inj.Calls(); len(got) != 0 {
		t.Errorf("Expected no injection, got %v", got)
	}
	if s := d.Stats(); s.Dropped != 1 {
		t.Errorf("Expected 1 dropped event, got %d", s.Dropped)
	}
}

func TestDispatchKeymapOverride(t *testing.T) {
	d, inj, _ := newTestDispatcher(t)
	d.keymap.SetOverrides(map[int]int{0: 31, 9999: 100})

	d.Apply(protocol.KeyDown(0))
	d.Apply(protocol.KeyDown(9999))

	want := []string{"key 31 true", "key 100 true"}
	if got := inj.Calls(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected calls %v, got %v", want, got)
	}
}

func TestDispatchScroll(t *testing.T) {
	d, inj, _ := newTestDispatcher(t)

	d.Apply(protocol.ScrollWheel(0, 0))
	if got := inj.Calls(); len(got) != 0 {
		t.Errorf("Expected zero scroll to be ignored, got %v", got)
	}

	d.Apply(protocol.ScrollWheel(0, -3))
	d.Apply(protocol.ScrollWheel(1.5, 0))
	want := []string{"scroll 0,-3", "scroll 1.5,0"}
	if got := inj.Calls(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected calls %v, got %v", want, got)
	}
}

func TestDispatchReturnControlReleases(t *testing.T) {
	d, inj, _ := newTestDispatcher(t)

	d.Apply(protocol.KeyDown(56))
	d.Apply(protocol.Event{Type: protocol.TypeLeftMouseDown})
	inj.Reset()

	d.Apply(protocol.ReturnControl(protocol.EdgeLeft, 0.5))
	if got := d.Pressed(); len(got) != 0 {
		t.Errorf("Expected empty pressed state, got %v", got)
	}
	want := []string{"button left false", "key 42 false", "releaseAll"}
	if got := inj.Calls(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected calls %v, got %v", want, got)
	}

	d.Apply(protocol.ReturnControl(protocol.EdgeLeft, 0.5))
	if inj.releases != 2 {
		t.Errorf("Expected one ReleaseAll per returnControl, got %d", inj.releases)
	}
	if got := d.Pressed(); len(got) != 0 {
		t.Errorf("Expected empty pressed state, got %v", got)
	}
}

func TestDispatchUnknownType(t *testing.T) {
	d, inj, _ := newTestDispatcher(t)

	sig := d.Apply(protocol.Event{Type: "teleport"})
	if sig.ShouldReturn {
		t.Error("Expected no signal for an unknown event")
	}
	if got := inj.Calls(); len(got) != 0 {
		t.Errorf("Expected no injection, got %v", got)
	}
	if s := d.Stats(); s.Dropped != 1 || s.Applied != 0 {
		t.Errorf("Expected 1 dropped and 0 applied, got %+v", s)
	}
}

func TestDispatchInjectorErrorsAreAbsorbed(t *testing.T) {
	d, inj, _ := newTestDispatcher(t)
	inj.fail = errors.New("device gone")

	d.Apply(protocol.KeyDown(0))
	d.ReleaseAll()

	if got := d.Pressed(); len(got) != 0 {
		t.Errorf("Expected pressed state cleared despite errors, got %v", got)
	}
	if inj.releases != 1 {
		t.Errorf("Expected ReleaseAll to reach the injector once, got %d", inj.releases)
	}
}

func TestDispatchFailedPressIsNotTracked(t *testing.T) {
	d, inj, _ := newTestDispatcher(t)
	inj.fail = errors.New("code out of range")

	d.Apply(protocol.KeyDown(0))
	d.Apply(protocol.Event{Type: protocol.TypeLeftMouseDown})
	if got := d.Pressed(); len(got) != 0 {
		t.Errorf("Expected rejected presses to stay untracked, got %v", got)
	}

	inj.fail = nil
	d.Apply(protocol.KeyDown(56))
	if got := d.Pressed(); !reflect.DeepEqual(got, []int{42}) {
		t.Errorf("Expected only 42 held, got %v", got)
	}

	inj.Reset()
	d.ReleaseAll()
	want := []string{"key 42 false", "releaseAll"}
	if got := inj.Calls(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected calls %v, got %v", want, got)
	}
}

func TestReleaseAllWhenIdle(t *testing.T) {
	d, inj, _ := newTestDispatcher(t)

	d.ReleaseAll()
	if got := inj.Calls(); !reflect.DeepEqual(got, []string{"releaseAll"}) {
		t.Errorf("Expected a single platform release, got %v", got)
	}
	if s := d.Stats(); s.Releases != 1 {
		t.Errorf("Expected 1 release, got %d", s.Releases)
	}
}
