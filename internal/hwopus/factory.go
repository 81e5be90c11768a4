// Package hwopus implements the hardware-style Opus decoder service
// core: work buffer sizing, decoder session creation, packet framing
// validation and interleaved decoding.
package hwopus

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/theiron97/hwopusd/internal/codec"
)

// DecoderConfig is the immutable pair a session is created with.
type DecoderConfig struct {
	SampleRate uint32
	Channels   uint32
}

// validateConfig checks both request fields against the fixed whitelist.
// Both fields are validated before any buffer sizing or codec init.
func validateConfig(sampleRate, channels uint32) error {
	switch sampleRate {
	case 8000, 12000, 16000, 24000, 48000:
	default:
		return &ContractError{Reason: fmt.Sprintf("invalid sample rate %d", sampleRate)}
	}

	if channels != 1 && channels != 2 {
		return &ContractError{Reason: fmt.Sprintf("invalid channel count %d", channels)}
	}

	return nil
}

// Factory validates decoder requests and produces sessions.
type Factory struct {
	logger *zap.Logger
	codec  codec.Codec
}

// NewFactory creates a decoder session factory backed by the given codec.
func NewFactory(logger *zap.Logger, c codec.Codec) *Factory {
	return &Factory{logger: logger, codec: c}
}

// WorkBufferSize returns the exact decoder state size required for the
// requested configuration. The size depends only on the channel count;
// the sample rate is validated but does not affect the result.
func (f *Factory) WorkBufferSize(sampleRate, channels uint32) (uint32, error) {
	if err := validateConfig(sampleRate, channels); err != nil {
		return 0, err
	}

	size := uint32(f.codec.StateSize(int(channels)))

	f.logger.Debug("Work buffer size computed",
		zap.Uint32("sample_rate", sampleRate),
		zap.Uint32("channel_count", channels),
		zap.Uint32("worker_buffer_sz", size))

	return size, nil
}

// OpenDecoder validates the request, checks the caller-supplied work
// buffer size against the codec requirement and initializes a decoder.
// The returned session exclusively owns the decoder state until Close.
func (f *Factory) OpenDecoder(sampleRate, channels, bufferSize uint32) (*Session, error) {
	if err := validateConfig(sampleRate, channels); err != nil {
		return nil, err
	}

	required := uint32(f.codec.StateSize(int(channels)))
	if bufferSize < required {
		return nil, &ContractError{
			Reason: fmt.Sprintf("work buffer too small: %d < %d", bufferSize, required),
		}
	}

	dec, err := f.codec.Open(int(sampleRate), int(channels))
	if err != nil {
		f.logger.Error("Failed to init opus decoder",
			zap.Uint32("sample_rate", sampleRate),
			zap.Uint32("channel_count", channels),
			zap.Error(err))

		return nil, &CodecError{Op: "init", Err: err}
	}

	f.logger.Info("Decoder session opened",
		zap.Uint32("sample_rate", sampleRate),
		zap.Uint32("channel_count", channels),
		zap.Uint32("buffer_size", bufferSize))

	return newSession(f.logger, dec, DecoderConfig{SampleRate: sampleRate, Channels: channels}), nil
}
