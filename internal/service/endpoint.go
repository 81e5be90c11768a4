// Package service exposes the decoder core over a request/response
// dispatch surface: a routable endpoint per open decoder session plus
// the manager endpoint that creates them.
package service

import (
	"context"

	"go.uber.org/zap"
)

// ResultCode is the status word every response starts with. Codes are
// stable; one code per failure kind.
type ResultCode uint32

const (
	ResultSuccess ResultCode = iota
	ResultContractViolation
	ResultMalformedPacket
	ResultOutputTooSmall
	ResultCodecFailure
	ResultNotImplemented
	ResultInternal
)

// Request is one incoming call as presented by the transport: scalar
// arguments popped in declared order, a read-only input buffer and the
// caller's declared output capacity.
type Request interface {
	PopUint32() (uint32, error)
	Input() []byte
	OutputCapacity() int
}

// Responder collects the response for one call: pushed scalars in
// order, output bytes, and newly registered sub-endpoints the caller
// can route subsequent requests to.
type Responder interface {
	PushUint32(v uint32)
	PushUint64(v uint64)
	WriteOutput(p []byte)
	RegisterEndpoint(ep Endpoint) uint32
}

// Endpoint is a routable object with a method table.
type Endpoint interface {
	Name() string
	Handle(ctx context.Context, method uint32, req Request, rsp Responder) ResultCode

	// Close releases whatever the endpoint owns. Called once when the
	// transport drops the endpoint.
	Close()
}

// HandlerFunc handles a single method of an endpoint.
type HandlerFunc func(ctx context.Context, req Request, rsp Responder) ResultCode

// FunctionInfo describes one entry in an endpoint's method table. A nil
// Handler declares the method without implementing it.
type FunctionInfo struct {
	Name    string
	Handler HandlerFunc
}

// dispatch routes a method index through the table, answering declared
// but unimplemented and unknown methods with ResultNotImplemented.
func dispatch(ctx context.Context, logger *zap.Logger, endpoint string, functions map[uint32]FunctionInfo, method uint32, req Request, rsp Responder) ResultCode {
	info, ok := functions[method]
	if !ok {
		logger.Warn("Unknown method called",
			zap.String("endpoint", endpoint),
			zap.Uint32("method", method))

		return ResultNotImplemented
	}

	if info.Handler == nil {
		logger.Warn("Unimplemented method called",
			zap.String("endpoint", endpoint),
			zap.Uint32("method", method),
			zap.String("name", info.Name))

		return ResultNotImplemented
	}

	logger.Debug("Method called",
		zap.String("endpoint", endpoint),
		zap.String("name", info.Name))

	return info.Handler(ctx, req, rsp)
}
