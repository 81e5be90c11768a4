package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/theiron97/hwopusd/internal/hwopus"
)

// Manager is the root decoder service endpoint. Its method table mirrors
// the hardware decoder interface: the multi-stream pair is declared but
// answers not-implemented.
type Manager struct {
	logger    *zap.Logger
	factory   *hwopus.Factory
	registry  *hwopus.Registry
	functions map[uint32]FunctionInfo
}

// NewManager creates the root decoder service endpoint.
func NewManager(logger *zap.Logger, factory *hwopus.Factory, registry *hwopus.Registry) *Manager {
	m := &Manager{
		logger:   logger,
		factory:  factory,
		registry: registry,
	}

	m.functions = map[uint32]FunctionInfo{
		0: {Name: "OpenOpusDecoder", Handler: m.openOpusDecoder},
		1: {Name: "GetWorkBufferSize", Handler: m.getWorkBufferSize},
		2: {Name: "OpenOpusDecoderForMultiStream"},
		3: {Name: "GetWorkBufferSizeForMultiStream"},
	}

	return m
}

func (m *Manager) Name() string {
	return "hwopus"
}

func (m *Manager) Handle(ctx context.Context, method uint32, req Request, rsp Responder) ResultCode {
	return dispatch(ctx, m.logger, m.Name(), m.functions, method, req, rsp)
}

// Close implements Endpoint. The manager owns no per-connection state.
func (m *Manager) Close() {}

func (m *Manager) getWorkBufferSize(_ context.Context, req Request, rsp Responder) ResultCode {
	sampleRate, channels, err := popConfigArgs(req)
	if err != nil {
		return ResultContractViolation
	}

	size, err := m.factory.WorkBufferSize(sampleRate, channels)
	if err != nil {
		return resultFromError(err)
	}

	rsp.PushUint32(size)

	return ResultSuccess
}

func (m *Manager) openOpusDecoder(_ context.Context, req Request, rsp Responder) ResultCode {
	sampleRate, channels, err := popConfigArgs(req)
	if err != nil {
		return ResultContractViolation
	}

	bufferSize, err := req.PopUint32()
	if err != nil {
		return ResultContractViolation
	}

	session, err := m.factory.OpenDecoder(sampleRate, channels, bufferSize)
	if err != nil {
		return resultFromError(err)
	}

	handle, err := m.registry.Add(session)
	if err != nil {
		// The session never became routable; release it here.
		_ = session.Close()

		m.logger.Error("Failed to register decoder session", zap.Error(err))

		return resultFromError(err)
	}

	id := rsp.RegisterEndpoint(newSessionEndpoint(m.logger, m.registry, handle, session))
	rsp.PushUint32(id)

	return ResultSuccess
}

func popConfigArgs(req Request) (sampleRate, channels uint32, err error) {
	sampleRate, err = req.PopUint32()
	if err != nil {
		return 0, 0, err
	}

	channels, err = req.PopUint32()
	if err != nil {
		return 0, 0, err
	}

	return sampleRate, channels, nil
}
