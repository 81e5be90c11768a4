package hwopus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theiron97/hwopusd/internal/hwopus"
)

func TestParseHeader(t *testing.T) {
	tests := map[string]struct {
		input       []byte
		wantSize    uint32
		expectError bool
	}{
		"big_endian_payload_size": {
			input:    []byte{0x00, 0x00, 0x01, 0x02, 0x00, 0x00, 0x00, 0x00},
			wantSize: 0x102,
		},
		"reserved_bytes_ignored": {
			input:    []byte{0x00, 0x00, 0x00, 0x10, 0xDE, 0xAD, 0xBE, 0xEF},
			wantSize: 16,
		},
		"header_with_trailing_payload": {
			input:    []byte{0x00, 0x00, 0x00, 0x01, 0, 0, 0, 0, 0xAB},
			wantSize: 1,
		},
		"empty_input": {
			input:       nil,
			expectError: true,
		},
		"seven_bytes": {
			input:       []byte{0, 0, 0, 0, 0, 0, 0},
			expectError: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			hdr, err := hwopus.ParseHeader(tt.input)

			if tt.expectError {
				var framingErr *hwopus.FramingError
				assert.ErrorAs(t, err, &framingErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantSize, hdr.PayloadSize)
		})
	}
}

func TestAppendHeaderRoundTrip(t *testing.T) {
	encoded := hwopus.AppendHeader(nil, hwopus.Header{PayloadSize: 0xAABBCCDD})

	require.Len(t, encoded, hwopus.HeaderSize)
	assert.Equal(t, []byte{0xAA, 0xBB, 0xCC, 0xDD, 0, 0, 0, 0}, encoded)

	hdr, err := hwopus.ParseHeader(encoded)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xAABBCCDD), hdr.PayloadSize)
}
