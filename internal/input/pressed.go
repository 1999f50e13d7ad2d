package input

import "sort"

// Synthetic PressedState slots for mouse buttons. Native key codes are
// never negative, so these cannot collide.
const (
	SlotLeftButton  = -1
	SlotRightButton = -2
)

func buttonSlot(b Button) int {
	if b == ButtonRight {
		return SlotRightButton
	}
	return SlotLeftButton
}

// PressedState is the set of native key codes and button slots currently
// held down through the injector.
type PressedState struct {
	codes map[int]struct{}
}

// NewPressedState returns an empty set.
func NewPressedState() *PressedState {
	return &PressedState{codes: make(map[int]struct{})}
}

// Press records code as down.
func (p *PressedState) Press(code int) { p.codes[code] = struct{}{} }

// Release records code as up.
func (p *PressedState) Release(code int) { delete(p.codes, code) }

// Has reports whether code is down.
func (p *PressedState) Has(code int) bool {
	_, ok := p.codes[code]
	return ok
}

// Len returns the number of held codes.
func (p *PressedState) Len() int { return len(p.codes) }

// Codes returns the held codes in ascending order.
func (p *PressedState) Codes() []int {
	out := make([]int, 0, len(p.codes))
	for c := range p.codes {
		out = append(out, c)
	}
	sort.Ints(out)
	return out
}

// Drain empties the set and returns what it held.
func (p *PressedState) Drain() []int {
	out := p.Codes()
	clear(p.codes)
	return out
}
