package protocol

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
)

// ---------------------------------------------------------------------------
// Frame round-trip tests
// ---------------------------------------------------------------------------

func TestFrameRoundTripEvents(t *testing.T) {
	events := []Event{
		MouseMove(0.25, 0.75),
		{Type: TypeLeftMouseDown},
		{Type: TypeLeftMouseUp},
		{Type: TypeRightMouseDown},
		{Type: TypeRightMouseUp},
		KeyDown(0),
		KeyUp(126),
		ScrollWheel(-1.5, 3),
		ReturnControl(EdgeLeft, 0.5),
	}

	for _, want := range events {
		var buf bytes.Buffer
		if err := WriteFrame(&buf, want); err != nil {
			t.Fatalf("WriteFrame(%s): %v", want.Type, err)
		}

		raw, err := ReadFrame(&buf)
		if err != nil {
			t.Fatalf("ReadFrame(%s): %v", want.Type, err)
		}
		got, err := ParseEvent(raw)
		if err != nil {
			t.Fatalf("ParseEvent(%s): %v", want.Type, err)
		}
		if got != want {
			t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, want)
		}
		if buf.Len() != 0 {
			t.Errorf("%s: %d bytes left in buffer", want.Type, buf.Len())
		}
	}
}

func TestFrameHeaderIsBigEndianLength(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrame(&buf, Event{Type: TypeLeftMouseDown}); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	data := buf.Bytes()
	length := binary.BigEndian.Uint32(data[:HeaderSize])
	if int(length) != len(data)-HeaderSize {
		t.Errorf("header length = %d, payload is %d bytes", length, len(data)-HeaderSize)
	}
	if got := string(data[HeaderSize:]); got != `{"type":"leftMouseDown"}` {
		t.Errorf("payload = %s", got)
	}
}

func TestFrameLargestPayloadAccepted(t *testing.T) {
	payload := `"` + strings.Repeat("a", int(MaxPayload)-2) + `"`
	frame := make([]byte, HeaderSize, HeaderSize+len(payload))
	binary.BigEndian.PutUint32(frame, uint32(len(payload)))
	frame = append(frame, payload...)

	raw, err := ReadFrame(bytes.NewReader(frame))
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if len(raw) != int(MaxPayload) {
		t.Errorf("payload length = %d, want %d", len(raw), MaxPayload)
	}
}

// ---------------------------------------------------------------------------
// Error paths
// ---------------------------------------------------------------------------

func TestFrameZeroLengthIsViolation(t *testing.T) {
	_, err := ReadFrame(bytes.NewReader([]byte{0, 0, 0, 0}))
	if !errors.Is(err, ErrProtocolViolation) {
		t.Fatalf("err = %v, want ErrProtocolViolation", err)
	}
}

func TestFrameOversizedIsViolation(t *testing.T) {
	for _, length := range []uint32{MaxPayload + 1, 0xFFFFFFFF} {
		var header [HeaderSize]byte
		binary.BigEndian.PutUint32(header[:], length)

		_, err := ReadFrame(bytes.NewReader(header[:]))
		if !errors.Is(err, ErrProtocolViolation) {
			t.Errorf("length %d: err = %v, want ErrProtocolViolation", length, err)
		}
	}
}

func TestFrameShortHeaderIsClosed(t *testing.T) {
	for _, data := range [][]byte{nil, {0}, {0, 0, 1}} {
		_, err := ReadFrame(bytes.NewReader(data))
		if !errors.Is(err, ErrConnectionClosed) {
			t.Errorf("header %v: err = %v, want ErrConnectionClosed", data, err)
		}
	}
}

func TestFrameTruncatedPayloadIsClosed(t *testing.T) {
	data := []byte{0, 0, 0, 10, '{', '"'}
	_, err := ReadFrame(bytes.NewReader(data))
	if !errors.Is(err, ErrConnectionClosed) {
		t.Fatalf("err = %v, want ErrConnectionClosed", err)
	}
}

func TestFrameMalformedJSONIsDecodeError(t *testing.T) {
	payload := []byte(`{"type":`)
	frame := append([]byte{0, 0, 0, byte(len(payload))}, payload...)
	// A valid frame follows the bad one; it must still be readable.
	var good bytes.Buffer
	WriteFrame(&good, KeyDown(4))
	frame = append(frame, good.Bytes()...)

	r := bytes.NewReader(frame)
	_, err := ReadFrame(r)
	if !IsDecodeError(err) {
		t.Fatalf("err = %v, want DecodeError", err)
	}
	if errors.Is(err, ErrConnectionClosed) || errors.Is(err, ErrProtocolViolation) {
		t.Fatalf("decode error must not be connection-fatal: %v", err)
	}

	raw, err := ReadFrame(r)
	if err != nil {
		t.Fatalf("ReadFrame after bad frame: %v", err)
	}
	ev, _ := ParseEvent(raw)
	if ev != KeyDown(4) {
		t.Errorf("event = %+v", ev)
	}
}

func TestFrameReadIOErrorIsWrapped(t *testing.T) {
	boom := errors.New("boom")
	_, err := ReadFrame(io.MultiReader(bytes.NewReader([]byte{0, 0}), errReader{boom}))
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped boom", err)
	}
	if errors.Is(err, ErrConnectionClosed) {
		t.Fatalf("I/O error reported as clean close")
	}
}

// oneByteReader forces ReadFrame to accumulate partial reads.
type oneByteReader struct{ r io.Reader }

func (o oneByteReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	return o.r.Read(p[:1])
}

func TestFramePartialReadsAccumulate(t *testing.T) {
	var buf bytes.Buffer
	want := MouseMove(0.1, 0.9)
	WriteFrame(&buf, want)

	raw, err := ReadFrame(oneByteReader{&buf})
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	got, _ := ParseEvent(raw)
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

type errReader struct{ err error }

func (e errReader) Read([]byte) (int, error) { return 0, e.err }

// ---------------------------------------------------------------------------
// FrameWriter
// ---------------------------------------------------------------------------

// chunkWriter records each Write call separately.
type chunkWriter struct {
	mu     sync.Mutex
	chunks [][]byte
}

func (c *chunkWriter) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.chunks = append(c.chunks, append([]byte(nil), p...))
	return len(p), nil
}

func TestFrameWriterSingleWritePerFrame(t *testing.T) {
	cw := &chunkWriter{}
	fw := NewFrameWriter(cw)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := fw.WriteFrame(ReturnControl(EdgeLeft, float64(i)/50)); err != nil {
				t.Errorf("WriteFrame: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if len(cw.chunks) != 50 {
		t.Fatalf("writes = %d, want 50", len(cw.chunks))
	}
	var stream bytes.Buffer
	for _, c := range cw.chunks {
		stream.Write(c)
	}
	for i := 0; i < 50; i++ {
		raw, err := ReadFrame(&stream)
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		ev, err := ParseEvent(raw)
		if err != nil || ev.Type != TypeReturnControl {
			t.Fatalf("frame %d: %+v, %v", i, ev, err)
		}
	}
}
