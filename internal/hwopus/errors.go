package hwopus

import (
	"errors"
	"fmt"
)

// The decoder surface distinguishes four failure kinds. Callers that
// need to map a failure to a wire status should use errors.As against
// these types rather than matching message text.

// ContractError reports a request field that a well-behaved client never
// sends: an unsupported sample rate or channel count, or a work buffer
// smaller than the decoder requires.
type ContractError struct {
	Reason string
}

func (e *ContractError) Error() string {
	return "contract violation: " + e.Reason
}

// FramingError reports a malformed packet: a truncated header, or a
// declared payload that overruns the input.
type FramingError struct {
	Reason       string
	DeclaredSize uint32
	InputSize    int
}

func (e *FramingError) Error() string {
	return fmt.Sprintf("framing error: %s (declared=%d input=%d)",
		e.Reason, e.DeclaredSize, e.InputSize)
}

// CapacityError reports that the decoded samples would not fit in the
// output capacity the caller declared.
type CapacityError struct {
	RequiredBytes int
	CapacityBytes int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("decoded data does not fit output buffer (required=%d capacity=%d)",
		e.RequiredBytes, e.CapacityBytes)
}

// CodecError reports a failure inside the codec: a rejected payload, a
// failed probe, or an initialization error.
type CodecError struct {
	Op  string
	Err error
}

func (e *CodecError) Error() string {
	return "codec " + e.Op + " failed: " + e.Err.Error()
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

var (
	ErrSessionClosed   = errors.New("decoder session is closed")
	ErrSessionNotFound = errors.New("decoder session not found")
	ErrTooManySessions = errors.New("maximum open decoder sessions reached")
)
