package transport

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theiron97/hwopusd/internal/service"
)

func buildRequest(endpoint, method uint32, args []uint32, input []byte, capacity uint32) []byte {
	msg := binary.BigEndian.AppendUint32(nil, endpoint)
	msg = binary.BigEndian.AppendUint32(msg, method)
	msg = append(msg, byte(len(args)))
	for _, arg := range args {
		msg = binary.BigEndian.AppendUint32(msg, arg)
	}
	msg = binary.BigEndian.AppendUint32(msg, uint32(len(input)))
	msg = append(msg, input...)

	return binary.BigEndian.AppendUint32(msg, capacity)
}

func TestDecodeRequest(t *testing.T) {
	t.Run("full request", func(t *testing.T) {
		msg := buildRequest(3, 4, []uint32{48000, 2, 8192}, []byte{0xAA, 0xBB}, 4096)

		req, err := decodeRequest(msg)
		require.NoError(t, err)

		assert.Equal(t, uint32(3), req.Endpoint)
		assert.Equal(t, uint32(4), req.Method)
		assert.Equal(t, []uint32{48000, 2, 8192}, req.Args)
		assert.Equal(t, []byte{0xAA, 0xBB}, req.Input)
		assert.Equal(t, uint32(4096), req.OutputCapacity)
	})

	t.Run("no args no input", func(t *testing.T) {
		msg := buildRequest(0, 1, nil, nil, 0)

		req, err := decodeRequest(msg)
		require.NoError(t, err)
		assert.Empty(t, req.Args)
		assert.Empty(t, req.Input)
	})

	t.Run("truncated messages", func(t *testing.T) {
		full := buildRequest(0, 0, []uint32{1, 2}, []byte{9, 9, 9}, 64)

		for size := 0; size < len(full); size++ {
			_, err := decodeRequest(full[:size])
			assert.Error(t, err, "prefix of %d bytes must not decode", size)
		}
	})

	t.Run("trailing bytes rejected", func(t *testing.T) {
		msg := append(buildRequest(0, 0, nil, nil, 0), 0xFF)

		_, err := decodeRequest(msg)
		assert.Error(t, err)
	})
}

func TestEncodeResponseLayout(t *testing.T) {
	msg := encodeResponse(service.ResultSuccess, []byte{0x01, 0x02}, []byte{0x03})

	want := []byte{
		0, 0, 0, 0, // result code
		0, 0, 0, 2, // scalar length
		0x01, 0x02,
		0, 0, 0, 1, // output length
		0x03,
	}
	assert.Equal(t, want, msg)
}

func TestCallPopUint32(t *testing.T) {
	c := newCall(&wireRequest{Args: []uint32{10, 20}})

	v, err := c.PopUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(10), v)

	v, err = c.PopUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(20), v)

	_, err = c.PopUint32()
	assert.Error(t, err, "popping past the declared arguments fails")
}

func TestResponseBuilder(t *testing.T) {
	table := newEndpointTable(&fakeEndpoint{})
	rb := newResponseBuilder(table)

	rb.PushUint32(0x01020304)
	rb.PushUint64(0x05060708090A0B0C)
	rb.WriteOutput([]byte{0xEE})

	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 0xA, 0xB, 0xC}, rb.scalars)
	assert.Equal(t, []byte{0xEE}, rb.output)

	id := rb.RegisterEndpoint(&fakeEndpoint{})
	assert.Equal(t, uint32(1), id)
}

func TestEndpointTable(t *testing.T) {
	root := &fakeEndpoint{}
	table := newEndpointTable(root)

	got, ok := table.get(0)
	require.True(t, ok)
	assert.Same(t, root, got.(*fakeEndpoint))

	first := &fakeEndpoint{}
	second := &fakeEndpoint{}
	assert.Equal(t, uint32(1), table.add(first))
	assert.Equal(t, uint32(2), table.add(second))

	_, ok = table.get(3)
	assert.False(t, ok)

	table.closeAll()
	assert.Zero(t, root.closeCalls, "shared root endpoint is never closed")
	assert.Equal(t, 1, first.closeCalls)
	assert.Equal(t, 1, second.closeCalls)
}
