package protocol

import (
	"errors"
	"fmt"
)

var (
	// ErrConnectionClosed is returned when the stream ends before a full frame
	// has been read. The session reconnects.
	ErrConnectionClosed = errors.New("protocol: connection closed")

	// ErrProtocolViolation is returned for a zero or oversized length header.
	// The stream can no longer be trusted and must be closed.
	ErrProtocolViolation = errors.New("protocol: frame length out of bounds")
)

// DecodeError reports a frame whose payload is not a JSON object.
// Only that frame is lost; the connection stays usable.
type DecodeError struct {
	Length int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("protocol: malformed %d-byte payload: %v", e.Length, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsDecodeError reports whether err carries a *DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}
