// Package protocol implements the companion wire protocol: length-prefixed
// JSON frames carrying input events from the source machine and handback
// events in the opposite direction.
package protocol

import (
	"encoding/json"
	"fmt"
	"math"
)

// EventType is the value of the "type" discriminator.
type EventType string

const (
	TypeMouseMove      EventType = "mouseMove"
	TypeLeftMouseDown  EventType = "leftMouseDown"
	TypeLeftMouseUp    EventType = "leftMouseUp"
	TypeRightMouseDown EventType = "rightMouseDown"
	TypeRightMouseUp   EventType = "rightMouseUp"
	TypeKeyDown        EventType = "keyDown"
	TypeKeyUp          EventType = "keyUp"
	TypeScrollWheel    EventType = "scrollWheel"
	TypeReturnControl  EventType = "returnControl"
)

// Known reports whether t is part of the event taxonomy.
func (t EventType) Known() bool {
	switch t {
	case TypeMouseMove, TypeLeftMouseDown, TypeLeftMouseUp, TypeRightMouseDown,
		TypeRightMouseUp, TypeKeyDown, TypeKeyUp, TypeScrollWheel, TypeReturnControl:
		return true
	}
	return false
}

// Edge names a screen boundary.
type Edge string

const (
	EdgeLeft   Edge = "left"
	EdgeRight  Edge = "right"
	EdgeTop    Edge = "top"
	EdgeBottom Edge = "bottom"
)

// Valid reports whether e is one of the four screen edges.
func (e Edge) Valid() bool {
	switch e {
	case EdgeLeft, EdgeRight, EdgeTop, EdgeBottom:
		return true
	}
	return false
}

// Event is one decoded SharedEvent. Only the fields belonging to Type are
// meaningful; the rest stay zero.
type Event struct {
	Type EventType

	// mouseMove, returnControl
	NormalizedX float64
	NormalizedY float64

	// keyDown, keyUp. HasKeyCode is false when the peer omitted keyCode,
	// which turns the event into a no-op.
	KeyCode    int
	HasKeyCode bool

	// scrollWheel
	ScrollDeltaX float64
	ScrollDeltaY float64

	// returnControl
	Edge Edge
}

// wireEvent mirrors the JSON object. Pointers distinguish absent members
// from explicit zeros.
type wireEvent struct {
	Type         *string  `json:"type"`
	NormalizedX  *float64 `json:"normalizedX"`
	NormalizedY  *float64 `json:"normalizedY"`
	KeyCode      *float64 `json:"keyCode"`
	ScrollDeltaX *float64 `json:"scrollDeltaX"`
	ScrollDeltaY *float64 `json:"scrollDeltaY"`
	Edge         *string  `json:"edge"`
}

// ParseEvent turns a decoded frame payload into an Event.
//
// A missing or unknown type is not an error: the event is returned with
// whatever type string was present and the dispatcher decides to drop it.
// A payload that is not a JSON object yields a *DecodeError.
func ParseEvent(raw json.RawMessage) (Event, error) {
	var ev Event
	if err := json.Unmarshal(raw, &ev); err != nil {
		return Event{}, &DecodeError{Length: len(raw), Err: err}
	}
	return ev, nil
}

// UnmarshalJSON implements json.Unmarshaler with default-zero semantics for
// optional numeric members.
func (e *Event) UnmarshalJSON(data []byte) error {
	if !isObject(data) {
		return fmt.Errorf("event payload is not a JSON object")
	}
	var w wireEvent
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*e = Event{}
	if w.Type != nil {
		e.Type = EventType(*w.Type)
	}
	e.NormalizedX = deref(w.NormalizedX)
	e.NormalizedY = deref(w.NormalizedY)
	e.ScrollDeltaX = deref(w.ScrollDeltaX)
	e.ScrollDeltaY = deref(w.ScrollDeltaY)
	if w.KeyCode != nil && !math.IsNaN(*w.KeyCode) {
		e.KeyCode = int(*w.KeyCode)
		e.HasKeyCode = true
	}
	if w.Edge != nil {
		e.Edge = Edge(*w.Edge)
	}
	return nil
}

// MarshalJSON emits only the members that belong to the event's variant.
func (e Event) MarshalJSON() ([]byte, error) {
	obj := map[string]any{"type": string(e.Type)}
	switch e.Type {
	case TypeMouseMove:
		obj["normalizedX"] = e.NormalizedX
		obj["normalizedY"] = e.NormalizedY
	case TypeKeyDown, TypeKeyUp:
		if e.HasKeyCode {
			obj["keyCode"] = e.KeyCode
		}
	case TypeScrollWheel:
		obj["scrollDeltaX"] = e.ScrollDeltaX
		obj["scrollDeltaY"] = e.ScrollDeltaY
	case TypeReturnControl:
		obj["normalizedX"] = e.NormalizedX
		obj["normalizedY"] = e.NormalizedY
		if e.Edge != "" {
			obj["edge"] = string(e.Edge)
		}
	}
	return json.Marshal(obj)
}

func isObject(data []byte) bool {
	for _, c := range data {
		switch c {
		case ' ', '\t', '\r', '\n':
			continue
		case '{':
			return true
		default:
			return false
		}
	}
	return false
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// Clamp01 limits v to [0,1]. NaN maps to 0.
func Clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// MouseMove builds a mouseMove event with clamped coordinates.
func MouseMove(nx, ny float64) Event {
	return Event{Type: TypeMouseMove, NormalizedX: Clamp01(nx), NormalizedY: Clamp01(ny)}
}

// KeyDown builds a keyDown event.
func KeyDown(code int) Event {
	return Event{Type: TypeKeyDown, KeyCode: code, HasKeyCode: true}
}

// KeyUp builds a keyUp event.
func KeyUp(code int) Event {
	return Event{Type: TypeKeyUp, KeyCode: code, HasKeyCode: true}
}

// ScrollWheel builds a scrollWheel event.
func ScrollWheel(dx, dy float64) Event {
	return Event{Type: TypeScrollWheel, ScrollDeltaX: dx, ScrollDeltaY: dy}
}

// ReturnControl builds the handback event sent to the source. The pointer
// position along the edge is carried in whichever coordinate runs parallel
// to it; the perpendicular one is pinned to that edge.
func ReturnControl(edge Edge, along float64) Event {
	along = Clamp01(along)
	ev := Event{Type: TypeReturnControl, Edge: edge}
	switch edge {
	case EdgeTop, EdgeBottom:
		ev.NormalizedX = along
		if edge == EdgeBottom {
			ev.NormalizedY = 1
		}
	default:
		ev.NormalizedY = along
		if edge == EdgeRight {
			ev.NormalizedX = 1
		}
	}
	return ev
}
