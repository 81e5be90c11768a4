package codec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/theiron97/hwopusd/internal/codec"
)

func TestStateSizeDependsOnlyOnChannels(t *testing.T) {
	c := codec.NewOpusCodec()

	mono := c.StateSize(1)
	stereo := c.StateSize(2)

	assert.Greater(t, mono, 0)
	assert.Greater(t, stereo, mono, "stereo state must be larger than mono")

	// Deterministic across calls.
	assert.Equal(t, mono, c.StateSize(1))
	assert.Equal(t, stereo, c.StateSize(2))
}

func TestStateSizePanicsOnInvalidChannels(t *testing.T) {
	c := codec.NewOpusCodec()

	for _, channels := range []int{0, 3, -1} {
		assert.Panics(t, func() { c.StateSize(channels) })
	}
}
