package session

import "testing"

func TestTransition(t *testing.T) {
	tests := []struct {
		from    State
		trigger Trigger
		want    State
		wantErr bool
	}{
		{StateConnecting, Dialed, StateConnected, false},
		{StateConnecting, DialFailed, StateDisconnected, false},
		{StateConnected, LinkLost, StateDisconnected, false},
		{StateDisconnected, BackoffElapsed, StateConnecting, false},
		{StateConnected, Dialed, StateConnected, true},
		{StateDisconnected, Dialed, StateDisconnected, true},
		{StateConnecting, LinkLost, StateConnecting, true},
	}

	for _, tt := range tests {
		got, err := Transition(tt.from, tt.trigger)
		if (err != nil) != tt.wantErr {
			t.Errorf("Transition(%s, %s): expected error %t, got %v", tt.from, tt.trigger, tt.wantErr, err)
		}
		if got != tt.want {
			t.Errorf("Transition(%s, %s): expected %s, got %s", tt.from, tt.trigger, tt.want, got)
		}
	}
}

func TestStateText(t *testing.T) {
	b, err := StateConnected.MarshalText()
	if err != nil || string(b) != "connected" {
		t.Errorf("Expected 'connected', got %q (%v)", b, err)
	}
	if s := State(9).String(); s != "State(9)" {
		t.Errorf("Expected 'State(9)', got %q", s)
	}
}
