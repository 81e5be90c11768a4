package service

import (
	"errors"

	"github.com/theiron97/hwopusd/internal/hwopus"
)

// resultFromError maps a decoder core failure to its stable result
// code. Misuse of a handle (closed, unknown, over the session limit)
// counts as a contract violation.
func resultFromError(err error) ResultCode {
	var (
		contractErr *hwopus.ContractError
		framingErr  *hwopus.FramingError
		capacityErr *hwopus.CapacityError
		codecErr    *hwopus.CodecError
	)

	switch {
	case errors.As(err, &contractErr):
		return ResultContractViolation
	case errors.As(err, &framingErr):
		return ResultMalformedPacket
	case errors.As(err, &capacityErr):
		return ResultOutputTooSmall
	case errors.As(err, &codecErr):
		return ResultCodecFailure
	case errors.Is(err, hwopus.ErrSessionClosed),
		errors.Is(err, hwopus.ErrSessionNotFound),
		errors.Is(err, hwopus.ErrTooManySessions):
		return ResultContractViolation
	default:
		return ResultInternal
	}
}
