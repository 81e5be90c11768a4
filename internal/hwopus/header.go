package hwopus

import "encoding/binary"

// HeaderSize is the fixed size of the packet header preceding every
// decode payload: a big-endian uint32 payload length followed by four
// reserved bytes.
const HeaderSize = 8

// Header is the parsed form of the 8-byte packet prefix.
type Header struct {
	PayloadSize uint32
}

// ParseHeader reads the header from the start of input. The byte layout
// is fixed on the wire; the reserved word is ignored.
func ParseHeader(input []byte) (Header, error) {
	if len(input) < HeaderSize {
		return Header{}, &FramingError{
			Reason:    "input smaller than header",
			InputSize: len(input),
		}
	}

	return Header{PayloadSize: binary.BigEndian.Uint32(input[:4])}, nil
}

// AppendHeader appends the wire encoding of h to dst and returns the
// extended slice.
func AppendHeader(dst []byte, h Header) []byte {
	dst = binary.BigEndian.AppendUint32(dst, h.PayloadSize)

	return append(dst, 0, 0, 0, 0)
}
