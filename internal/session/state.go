package session

import "fmt"

// State is the connection state of a Client.
type State int

const (
	StateConnecting State = iota
	StateConnected
	StateDisconnected
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateDisconnected:
		return "disconnected"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// MarshalText renders the state by name in JSON status documents.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a state name.
func (s *State) UnmarshalText(b []byte) error {
	for _, st := range []State{StateConnecting, StateConnected, StateDisconnected} {
		if st.String() == string(b) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown state %q", b)
}

// Trigger is an input to the state machine.
type Trigger int

const (
	// Dialed means the TCP connection was established.
	Dialed Trigger = iota
	// DialFailed means the dial errored or timed out.
	DialFailed
	// LinkLost means the connected stream ended for any reason.
	LinkLost
	// BackoffElapsed means the retry delay has passed.
	BackoffElapsed
)

func (t Trigger) String() string {
	switch t {
	case Dialed:
		return "dialed"
	case DialFailed:
		return "dial-failed"
	case LinkLost:
		return "link-lost"
	case BackoffElapsed:
		return "backoff-elapsed"
	default:
		return fmt.Sprintf("Trigger(%d)", int(t))
	}
}

// Transition returns the state that follows s on trigger t.
func Transition(s State, t Trigger) (State, error) {
	switch {
	case s == StateConnecting && t == Dialed:
		return StateConnected, nil
	case s == StateConnecting && t == DialFailed:
		return StateDisconnected, nil
	case s == StateConnected && t == LinkLost:
		return StateDisconnected, nil
	case s == StateDisconnected && t == BackoffElapsed:
		return StateConnecting, nil
	}
	return s, fmt.Errorf("invalid transition from %s on %s", s, t)
}
