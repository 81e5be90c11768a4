// Package codec wraps an Opus decoder implementation behind a small
// boundary so the decoder service never depends on codec internals.
package codec

import "errors"

// Codec creates decoder instances and reports their memory requirements.
type Codec interface {
	// StateSize returns the number of bytes of decoder state required for
	// the given channel count. It is a pure function of the channel count
	// and panics if channels is not 1 or 2; callers are expected to have
	// validated the value already.
	StateSize(channels int) int

	// Open allocates and initializes decoder state for the given sample
	// rate and channel count.
	Open(sampleRate, channels int) (Decoder, error)
}

// Decoder is a single initialized decoder instance. Instances are not
// safe for concurrent use; callers must serialize access.
type Decoder interface {
	// ExpectedSamples inspects the packet framing only (no full decode)
	// and reports how many samples per channel the payload should
	// produce at the given sample rate.
	ExpectedSamples(payload []byte, sampleRate int) (int, error)

	// DecodeInterleaved decodes payload into pcm, writing at most
	// frameCeiling samples per channel and never past len(pcm). It
	// returns the number of samples per channel actually produced,
	// which may be less than the ExpectedSamples estimate.
	DecodeInterleaved(payload []byte, pcm []int16, frameCeiling int) (int, error)

	// Close releases the decoder state. The decoder is unusable afterwards.
	Close() error
}

var (
	ErrEmptyPayload  = errors.New("codec: empty payload")
	ErrInvalidPacket = errors.New("codec: invalid packet")
	ErrClosed        = errors.New("codec: decoder closed")
)
