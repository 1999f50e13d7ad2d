package protocol

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
)

const (
	// HeaderSize is the size of the big-endian length prefix.
	HeaderSize = 4

	// MaxPayload is the largest payload a peer may announce.
	MaxPayload uint32 = 1_000_000
)

// ReadFrame reads one length-prefixed frame and returns its JSON payload.
//
// Wire format: [length:u32 BE][UTF-8 JSON payload]
//
// A stream that ends anywhere inside a frame yields ErrConnectionClosed.
// A length of zero or above MaxPayload yields ErrProtocolViolation. A payload
// that is not valid JSON yields a *DecodeError; the frame has been fully
// consumed in that case, so the caller may keep reading.
func ReadFrame(r io.Reader) (json.RawMessage, error) {
	var header [HeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, readErr("header", err)
	}

	length := binary.BigEndian.Uint32(header[:])
	if length == 0 || length > MaxPayload {
		return nil, fmt.Errorf("%w: %d bytes", ErrProtocolViolation, length)
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, readErr("payload", err)
	}

	if !json.Valid(payload) {
		return nil, &DecodeError{Length: int(length), Err: errors.New("invalid JSON")}
	}
	return json.RawMessage(payload), nil
}

func readErr(part string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w while reading frame %s", ErrConnectionClosed, part)
	}
	return fmt.Errorf("reading frame %s: %w", part, err)
}

// EncodeFrame marshals v to JSON and prepends the length header.
func EncodeFrame(v any) ([]byte, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding frame: %w", err)
	}
	if len(payload) == 0 || uint64(len(payload)) > uint64(MaxPayload) {
		return nil, fmt.Errorf("%w: %d bytes", ErrProtocolViolation, len(payload))
	}

	buf := make([]byte, HeaderSize+len(payload))
	binary.BigEndian.PutUint32(buf[:HeaderSize], uint32(len(payload)))
	copy(buf[HeaderSize:], payload)
	return buf, nil
}

// WriteFrame encodes v and writes header and payload in a single Write call.
// Concurrent writers on the same stream must go through a FrameWriter.
func WriteFrame(w io.Writer, v any) error {
	buf, err := EncodeFrame(v)
	if err != nil {
		return err
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// FrameWriter serializes outbound frames on a shared stream so that frames
// produced by different goroutines are never interleaved.
type FrameWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewFrameWriter wraps w.
func NewFrameWriter(w io.Writer) *FrameWriter {
	return &FrameWriter{w: w}
}

// WriteFrame writes one complete frame while holding the writer lock.
func (fw *FrameWriter) WriteFrame(v any) error {
	buf, err := EncodeFrame(v)
	if err != nil {
		return err
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()
	if _, err := fw.w.Write(buf); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}
