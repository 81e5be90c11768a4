package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/theiron97/hwopusd/internal/hwopus"
)

// sessionEndpoint exposes one open decoder session as a routable
// endpoint. Context save/restore and the multi-stream variants are
// declared but answer not-implemented.
type sessionEndpoint struct {
	logger    *zap.Logger
	registry  *hwopus.Registry
	handle    string
	session   *hwopus.Session
	functions map[uint32]FunctionInfo
}

func newSessionEndpoint(logger *zap.Logger, registry *hwopus.Registry, handle string, session *hwopus.Session) Endpoint {
	ep := &sessionEndpoint{
		logger:   logger,
		registry: registry,
		handle:   handle,
		session:  session,
	}

	ep.functions = map[uint32]FunctionInfo{
		0: {Name: "DecodeInterleaved", Handler: ep.decodeInterleaved},
		1: {Name: "SetContext"},
		2: {Name: "DecodeInterleavedForMultiStream"},
		3: {Name: "SetContextForMultiStream"},
		4: {Name: "DecodeInterleavedWithPerformance", Handler: ep.decodeInterleavedWithPerformance},
		5: {Name: "Unknown5"},
		6: {Name: "Unknown6"},
		7: {Name: "Unknown7"},
	}

	return ep
}

func (ep *sessionEndpoint) Name() string {
	return "IHardwareOpusDecoderManager"
}

func (ep *sessionEndpoint) Handle(ctx context.Context, method uint32, req Request, rsp Responder) ResultCode {
	return dispatch(ctx, ep.logger, ep.Name(), ep.functions, method, req, rsp)
}

// Close releases the decoder session exactly once via the registry.
func (ep *sessionEndpoint) Close() {
	if err := ep.registry.Close(ep.handle); err != nil {
		ep.logger.Warn("Closing decoder session failed",
			zap.String("handle", ep.handle),
			zap.Error(err))
	}
}

func (ep *sessionEndpoint) decodeInterleaved(_ context.Context, req Request, rsp Responder) ResultCode {
	result, err := ep.session.DecodeInterleaved(req.Input(), req.OutputCapacity())
	if err != nil {
		return resultFromError(err)
	}

	rsp.PushUint32(result.Consumed)
	rsp.PushUint32(result.SampleCount)
	rsp.WriteOutput(pcmBytes(result.PCM))

	return ResultSuccess
}

func (ep *sessionEndpoint) decodeInterleavedWithPerformance(_ context.Context, req Request, rsp Responder) ResultCode {
	result, err := ep.session.DecodeInterleavedWithPerformance(req.Input(), req.OutputCapacity())
	if err != nil {
		return resultFromError(err)
	}

	rsp.PushUint32(result.Consumed)
	rsp.PushUint32(result.SampleCount)
	rsp.PushUint64(result.ElapsedMS)
	rsp.WriteOutput(pcmBytes(result.PCM))

	return ResultSuccess
}

// pcmBytes converts interleaved int16 samples to bytes (little-endian).
func pcmBytes(samples []int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, sample := range samples {
		out[i*2] = byte(sample & 0xFF)
		out[i*2+1] = byte((sample >> 8) & 0xFF)
	}

	return out
}
