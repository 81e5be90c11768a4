package codec

import (
	"fmt"

	"layeh.com/gopus"
)

// Decoder state sizes in bytes per channel count, matching what the
// underlying library reserves for a mono and a stereo decoder. The size
// depends only on the channel count, never on the sample rate.
const (
	monoStateSize   = 18228
	stereoStateSize = 26992
)

// OpusCodec produces Opus decoders backed by layeh.com/gopus.
type OpusCodec struct{}

// NewOpusCodec returns the Opus codec implementation.
func NewOpusCodec() Codec {
	return OpusCodec{}
}

func (OpusCodec) StateSize(channels int) int {
	switch channels {
	case 1:
		return monoStateSize
	case 2:
		return stereoStateSize
	default:
		panic(fmt.Sprintf("codec: invalid channel count %d", channels))
	}
}

func (OpusCodec) Open(sampleRate, channels int) (Decoder, error) {
	dec, err := gopus.NewDecoder(sampleRate, channels)
	if err != nil {
		return nil, fmt.Errorf("failed to create opus decoder: %w", err)
	}

	return &opusDecoder{dec: dec, channels: channels}, nil
}

type opusDecoder struct {
	dec      *gopus.Decoder
	channels int
}

func (d *opusDecoder) ExpectedSamples(payload []byte, sampleRate int) (int, error) {
	return packetSampleCount(payload, sampleRate)
}

func (d *opusDecoder) DecodeInterleaved(payload []byte, pcm []int16, frameCeiling int) (int, error) {
	if d.dec == nil {
		return 0, ErrClosed
	}
	if len(payload) == 0 {
		return 0, ErrEmptyPayload
	}

	decoded, err := d.dec.Decode(payload, frameCeiling, false)
	if err != nil {
		return 0, fmt.Errorf("failed to decode opus data: %w", err)
	}

	copy(pcm, decoded)

	return len(decoded) / d.channels, nil
}

func (d *opusDecoder) Close() error {
	if d.dec == nil {
		return ErrClosed
	}

	// gopus doesn't require explicit cleanup
	d.dec = nil

	return nil
}
