package hwopus

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/theiron97/hwopusd/internal/codec"
)

const bytesPerSample = 2 // fixed interleaved 16-bit PCM output

var errSampleCountMismatch = errors.New("sample count exceeds probe estimate")

// DecodeResult is produced fresh on every successful decode call.
type DecodeResult struct {
	// Consumed is always HeaderSize plus the declared payload size,
	// regardless of how many bytes the codec used internally.
	Consumed uint32

	// SampleCount is the samples per channel the codec actually
	// produced. It may be below the probe estimate.
	SampleCount uint32

	// PCM holds SampleCount*channels interleaved 16-bit samples.
	PCM []int16

	// ElapsedMS is the wall-clock duration of the codec call in whole
	// milliseconds. Only set by DecodeInterleavedWithPerformance.
	ElapsedMS uint64
}

// Session owns one initialized decoder and the configuration it was
// opened with. Decode calls are serialized; a session is either Open or
// Closed and each call is independent of the previous one.
type Session struct {
	logger *zap.Logger
	cfg    DecoderConfig

	mu  sync.Mutex
	dec codec.Decoder // nil once closed
}

func newSession(logger *zap.Logger, dec codec.Decoder, cfg DecoderConfig) *Session {
	return &Session{logger: logger, cfg: cfg, dec: dec}
}

// Config returns the immutable configuration the session was opened with.
func (s *Session) Config() DecoderConfig {
	return s.cfg
}

// DecodeInterleaved decodes one framed packet into interleaved 16-bit
// PCM, writing at most outputCapacity bytes worth of samples.
func (s *Session) DecodeInterleaved(input []byte, outputCapacity int) (DecodeResult, error) {
	return s.decode(input, outputCapacity, false)
}

// DecodeInterleavedWithPerformance is DecodeInterleaved plus wall-clock
// timing of the codec call, excluding framing and validation.
func (s *Session) DecodeInterleavedWithPerformance(input []byte, outputCapacity int) (DecodeResult, error) {
	return s.decode(input, outputCapacity, true)
}

func (s *Session) decode(input []byte, outputCapacity int, timed bool) (DecodeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dec == nil {
		return DecodeResult{}, ErrSessionClosed
	}

	hdr, err := ParseHeader(input)
	if err != nil {
		s.logger.Error("Input is smaller than the header size",
			zap.Int("header_sz", HeaderSize),
			zap.Int("input_sz", len(input)))

		return DecodeResult{}, err
	}

	if HeaderSize+int(hdr.PayloadSize) > len(input) {
		s.logger.Error("Payload does not fit in the input",
			zap.Uint32("payload_sz", hdr.PayloadSize),
			zap.Int("input_sz", len(input)))

		return DecodeResult{}, &FramingError{
			Reason:       "payload exceeds input size",
			DeclaredSize: hdr.PayloadSize,
			InputSize:    len(input),
		}
	}

	payload := input[HeaderSize : HeaderSize+int(hdr.PayloadSize)]

	expected, err := s.dec.ExpectedSamples(payload, int(s.cfg.SampleRate))
	if err != nil {
		s.logger.Error("Failed to probe sample count",
			zap.Uint32("payload_sz", hdr.PayloadSize),
			zap.Error(err))

		return DecodeResult{}, &CodecError{Op: "probe", Err: err}
	}

	channels := int(s.cfg.Channels)
	if expected*channels*bytesPerSample > outputCapacity {
		s.logger.Error("Decoded data does not fit into the output buffer",
			zap.Int("decoded_sz", expected*channels*bytesPerSample),
			zap.Int("raw_output_sz", outputCapacity))

		return DecodeResult{}, &CapacityError{
			RequiredBytes: expected * channels * bytesPerSample,
			CapacityBytes: outputCapacity,
		}
	}

	// The codec is handed a hard per-channel ceiling derived from the
	// caller's capacity and must never write past it. The staging
	// buffer is sized from the probe estimate, not the declared
	// capacity, so an inflated capacity cannot force a matching
	// allocation.
	frameCeiling := outputCapacity / bytesPerSample / channels
	pcm := make([]int16, expected*channels)

	start := time.Now()
	sampleCount, err := s.dec.DecodeInterleaved(payload, pcm, frameCeiling)
	elapsed := time.Since(start)

	if err != nil {
		s.logger.Error("Failed to decode opus data",
			zap.Int("frame_size", frameCeiling),
			zap.Uint32("data_sz_from_hdr", hdr.PayloadSize),
			zap.Error(err))

		return DecodeResult{}, &CodecError{Op: "decode", Err: err}
	}

	if sampleCount*channels > len(pcm) {
		s.logger.Error("Codec produced more samples than its own estimate",
			zap.Int("sample_count", sampleCount),
			zap.Int("expected", expected))

		return DecodeResult{}, &CodecError{Op: "decode", Err: errSampleCountMismatch}
	}

	result := DecodeResult{
		Consumed:    uint32(HeaderSize) + hdr.PayloadSize,
		SampleCount: uint32(sampleCount),
		PCM:         pcm[:sampleCount*channels],
	}
	if timed {
		result.ElapsedMS = uint64(elapsed.Milliseconds())
	}

	return result, nil
}

// Close releases the decoder state. The first call wins; subsequent
// calls and decodes return ErrSessionClosed.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dec == nil {
		return ErrSessionClosed
	}

	err := s.dec.Close()
	s.dec = nil

	return err
}
