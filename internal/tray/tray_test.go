package tray

import (
	"bytes"
	"encoding/binary"
	"image/png"
	"testing"

	"mouseshare/internal/session"
)

func TestEncodeICO(t *testing.T) {
	ico := encodeICO(dot(Green))

	want := 6 + 16 + 40 + 16*16*4 + 16*4
	if len(ico) != want {
		t.Fatalf("Expected %d bytes, got %d", want, len(ico))
	}
	if binary.LittleEndian.Uint16(ico[2:4]) != 1 || binary.LittleEndian.Uint16(ico[4:6]) != 1 {
		t.Errorf("Expected an icon resource with one image, got header % x", ico[:6])
	}
	if size := binary.LittleEndian.Uint32(ico[14:18]); int(size) != want-22 {
		t.Errorf("Expected image size %d, got %d", want-22, size)
	}
	// Centre pixel row 8 from the bottom, column 8.
	off := 22 + 40 + ((16-1-8)*16+8)*4
	if got := ico[off : off+4]; !bytes.Equal(got, []byte{Green.B, Green.G, Green.R, 0xff}) {
		t.Errorf("Expected green centre pixel, got % x", got)
	}
}

func TestDotIsTransparentAtCorners(t *testing.T) {
	img := dot(Yellow)
	if img.RGBAAt(0, 0).A != 0 {
		t.Error("Expected transparent corner")
	}
	if img.RGBAAt(8, 8) != Yellow {
		t.Errorf("Expected yellow centre, got %v", img.RGBAAt(8, 8))
	}
}

func TestStatusIconDecodes(t *testing.T) {
	icon := StatusIcon(Grey)
	if len(icon) == 0 {
		t.Fatal("Expected icon bytes")
	}
	if bytes.HasPrefix(icon, []byte{0x89, 'P', 'N', 'G'}) {
		if _, err := png.Decode(bytes.NewReader(icon)); err != nil {
			t.Errorf("Expected a valid PNG, got %v", err)
		}
	}
}

func TestStateColor(t *testing.T) {
	tests := []struct {
		state session.State
		want  string
	}{
		{session.StateConnected, "green"},
		{session.StateConnecting, "yellow"},
		{session.StateDisconnected, "grey"},
	}
	names := map[string]any{"green": Green, "yellow": Yellow, "grey": Grey}
	for _, tt := range tests {
		if got := stateColor(tt.state); got != names[tt.want] {
			t.Errorf("%s: expected %s, got %v", tt.state, tt.want, got)
		}
	}
}

func TestStatusMenuBeforeRun(t *testing.T) {
	m := NewStatusMenu("10.0.0.1:9876", 1920, 1080, func() {})
	m.Update(session.Status{State: session.StateConnected})

	if got := m.tray.items[m.statusID].Title; got != "Status: connected" {
		t.Errorf("Expected updated status line, got %q", got)
	}
	if len(m.tray.items) != 5 {
		t.Errorf("Expected 5 menu entries, got %d", len(m.tray.items))
	}
}
