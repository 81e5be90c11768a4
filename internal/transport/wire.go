// Package transport carries decoder service calls over websocket
// connections. Each binary message is one request; responses are sent
// in order on the same connection.
package transport

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/theiron97/hwopusd/internal/service"
)

// Request wire layout (all integers big-endian):
//
//	u32 endpoint id | u32 method | u8 argc | argc x u32 args |
//	u32 input length | input bytes | u32 output capacity
//
// Response wire layout:
//
//	u32 result code | u32 scalar bytes length | scalar bytes |
//	u32 output length | output bytes
type wireRequest struct {
	Endpoint       uint32
	Method         uint32
	Args           []uint32
	Input          []byte
	OutputCapacity uint32
}

var errTruncatedMessage = errors.New("transport: truncated request message")

func decodeRequest(msg []byte) (*wireRequest, error) {
	r := byteReader{buf: msg}

	endpoint, err := r.uint32()
	if err != nil {
		return nil, err
	}

	method, err := r.uint32()
	if err != nil {
		return nil, err
	}

	argc, err := r.byte()
	if err != nil {
		return nil, err
	}

	args := make([]uint32, argc)
	for i := range args {
		args[i], err = r.uint32()
		if err != nil {
			return nil, err
		}
	}

	input, err := r.bytes()
	if err != nil {
		return nil, err
	}

	outputCapacity, err := r.uint32()
	if err != nil {
		return nil, err
	}

	if r.remaining() != 0 {
		return nil, fmt.Errorf("transport: %d trailing bytes in request", r.remaining())
	}

	return &wireRequest{
		Endpoint:       endpoint,
		Method:         method,
		Args:           args,
		Input:          input,
		OutputCapacity: outputCapacity,
	}, nil
}

func encodeResponse(code service.ResultCode, scalars, output []byte) []byte {
	msg := make([]byte, 0, 12+len(scalars)+len(output))
	msg = binary.BigEndian.AppendUint32(msg, uint32(code))
	msg = binary.BigEndian.AppendUint32(msg, uint32(len(scalars)))
	msg = append(msg, scalars...)
	msg = binary.BigEndian.AppendUint32(msg, uint32(len(output)))

	return append(msg, output...)
}

type byteReader struct {
	buf []byte
	off int
}

func (r *byteReader) remaining() int {
	return len(r.buf) - r.off
}

func (r *byteReader) byte() (byte, error) {
	if r.remaining() < 1 {
		return 0, errTruncatedMessage
	}

	b := r.buf[r.off]
	r.off++

	return b, nil
}

func (r *byteReader) uint32() (uint32, error) {
	if r.remaining() < 4 {
		return 0, errTruncatedMessage
	}

	v := binary.BigEndian.Uint32(r.buf[r.off:])
	r.off += 4

	return v, nil
}

func (r *byteReader) bytes() ([]byte, error) {
	n, err := r.uint32()
	if err != nil {
		return nil, err
	}

	if r.remaining() < int(n) {
		return nil, errTruncatedMessage
	}

	b := r.buf[r.off : r.off+int(n)]
	r.off += int(n)

	return b, nil
}
