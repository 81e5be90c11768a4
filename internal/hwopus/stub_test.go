package hwopus_test

import (
	"fmt"
	"time"

	"github.com/theiron97/hwopusd/internal/codec"
)

// stubCodec stands in for the real codec so framing and capacity logic
// can be exercised without touching Opus.
type stubCodec struct {
	openErr error
	opened  []*stubDecoder

	// configure applies per-decoder settings right after Open.
	configure func(d *stubDecoder)
}

func (c *stubCodec) StateSize(channels int) int {
	if channels != 1 && channels != 2 {
		panic(fmt.Sprintf("invalid channel count %d", channels))
	}

	return 4096 * channels
}

func (c *stubCodec) Open(sampleRate, channels int) (codec.Decoder, error) {
	if c.openErr != nil {
		return nil, c.openErr
	}

	d := &stubDecoder{
		sampleRate:    sampleRate,
		channels:      channels,
		probeSamples:  480,
		decodeSamples: 480,
		sampleValue:   1,
	}
	if c.configure != nil {
		c.configure(d)
	}

	c.opened = append(c.opened, d)

	return d, nil
}

type stubDecoder struct {
	sampleRate int
	channels   int

	probeSamples int
	probeErr     error

	decodeSamples int
	decodeErr     error
	decodeDelay   time.Duration
	sampleValue   int16

	decodeCalls int
	lastCeiling int
	closeCalls  int
}

func (d *stubDecoder) ExpectedSamples(payload []byte, sampleRate int) (int, error) {
	if d.probeErr != nil {
		return 0, d.probeErr
	}

	return d.probeSamples, nil
}

func (d *stubDecoder) DecodeInterleaved(payload []byte, pcm []int16, frameCeiling int) (int, error) {
	d.decodeCalls++
	d.lastCeiling = frameCeiling

	if d.decodeDelay > 0 {
		time.Sleep(d.decodeDelay)
	}

	if d.decodeErr != nil {
		return 0, d.decodeErr
	}

	n := d.decodeSamples
	if n > frameCeiling {
		n = frameCeiling
	}

	written := n * d.channels
	if written > len(pcm) {
		written = len(pcm)
	}

	for i := 0; i < written; i++ {
		pcm[i] = d.sampleValue
	}

	return n, nil
}

func (d *stubDecoder) Close() error {
	d.closeCalls++

	return nil
}
