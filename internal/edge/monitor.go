// Package edge decides when the pointer has reached the screen boundary that
// hands control back to the source machine.
package edge

import (
	"fmt"
	"sync/atomic"

	"mouseshare/internal/protocol"
)

// DefaultThreshold is the distance in pixels from the edge that counts as
// "at the edge".
const DefaultThreshold = 5

// Policy selects the handback edge and its threshold. Only one edge is
// active; the source machine is assumed to sit on that side.
type Policy struct {
	Edge      protocol.Edge
	Threshold int
}

// DefaultPolicy hands back on the left edge with DefaultThreshold.
func DefaultPolicy() Policy {
	return Policy{Edge: protocol.EdgeLeft, Threshold: DefaultThreshold}
}

// Validate checks the policy fields.
func (p Policy) Validate() error {
	if !p.Edge.Valid() {
		return fmt.Errorf("edge: unknown edge %q", p.Edge)
	}
	if p.Threshold < 0 {
		return fmt.Errorf("edge: negative threshold %d", p.Threshold)
	}
	return nil
}

// Hit reports whether the absolute position (x, y) on a width x height
// screen lies within the threshold of the policy's edge. A zero dimension
// never matches the far edges.
func (p Policy) Hit(x, y, width, height int) bool {
	switch p.Edge {
	case protocol.EdgeLeft:
		return x <= p.Threshold
	case protocol.EdgeTop:
		return y <= p.Threshold
	case protocol.EdgeRight:
		return width > 0 && x >= width-1-p.Threshold
	case protocol.EdgeBottom:
		return height > 0 && y >= height-1-p.Threshold
	}
	return false
}

// Signal is the handback decision for one pointer observation.
type Signal struct {
	ShouldReturn bool
	Edge         protocol.Edge
	NormalizedX  float64
	NormalizedY  float64
}

// Event builds the returnControl event that carries this signal upstream.
func (s Signal) Event() protocol.Event {
	along := s.NormalizedY
	if s.Edge == protocol.EdgeTop || s.Edge == protocol.EdgeBottom {
		along = s.NormalizedX
	}
	return protocol.ReturnControl(s.Edge, along)
}

// Monitor applies a Policy to pointer observations and fires at most once
// until rearmed. It is safe for concurrent use: the synchronous dispatch
// path and a Poller share the same arm flag, so only one of them can win.
type Monitor struct {
	policy Policy
	armed  atomic.Bool
}

// NewMonitor returns an armed monitor.
func NewMonitor(policy Policy) *Monitor {
	m := &Monitor{policy: policy}
	m.armed.Store(true)
	return m
}

// Policy returns the monitor's policy.
func (m *Monitor) Policy() Policy { return m.policy }

// Observe evaluates an absolute pointer position. It returns a firing
// Signal only for the first hit after (re)arming; later hits return the
// zero Signal while the monitor is idle.
func (m *Monitor) Observe(x, y, width, height int) Signal {
	if !m.policy.Hit(x, y, width, height) {
		return Signal{}
	}
	if !m.armed.CompareAndSwap(true, false) {
		return Signal{}
	}
	return Signal{
		ShouldReturn: true,
		Edge:         m.policy.Edge,
		NormalizedX:  ratio(x, width),
		NormalizedY:  ratio(y, height),
	}
}

// Rearm leaves the idle state. The session calls it at the start of every
// connection cycle.
func (m *Monitor) Rearm() { m.armed.Store(true) }

// Idle reports whether the monitor has fired and not been rearmed.
func (m *Monitor) Idle() bool { return !m.armed.Load() }

func ratio(v, total int) float64 {
	if total == 0 {
		return 0
	}
	return protocol.Clamp01(float64(v) / float64(total))
}
