package transport

import (
	"encoding/binary"
	"errors"

	"github.com/theiron97/hwopusd/internal/service"
)

// call adapts one decoded wire request to the service.Request contract.
type call struct {
	args           []uint32
	next           int
	input          []byte
	outputCapacity int
}

func newCall(req *wireRequest) *call {
	return &call{
		args:           req.Args,
		input:          req.Input,
		outputCapacity: int(req.OutputCapacity),
	}
}

func (c *call) PopUint32() (uint32, error) {
	if c.next >= len(c.args) {
		return 0, errors.New("transport: argument list exhausted")
	}

	v := c.args[c.next]
	c.next++

	return v, nil
}

func (c *call) Input() []byte {
	return c.input
}

func (c *call) OutputCapacity() int {
	return c.outputCapacity
}

// responseBuilder collects pushed scalars, output bytes and endpoint
// registrations for one call.
type responseBuilder struct {
	table   *endpointTable
	scalars []byte
	output  []byte
}

func newResponseBuilder(table *endpointTable) *responseBuilder {
	return &responseBuilder{table: table}
}

func (rb *responseBuilder) PushUint32(v uint32) {
	rb.scalars = binary.BigEndian.AppendUint32(rb.scalars, v)
}

func (rb *responseBuilder) PushUint64(v uint64) {
	rb.scalars = binary.BigEndian.AppendUint64(rb.scalars, v)
}

func (rb *responseBuilder) WriteOutput(p []byte) {
	rb.output = append(rb.output, p...)
}

func (rb *responseBuilder) RegisterEndpoint(ep service.Endpoint) uint32 {
	return rb.table.add(ep)
}

// endpointTable maps connection-scoped ids to routable endpoints. Id 0
// is always the root manager endpoint; ids are never reused within a
// connection.
type endpointTable struct {
	next      uint32
	endpoints map[uint32]service.Endpoint
}

func newEndpointTable(root service.Endpoint) *endpointTable {
	return &endpointTable{
		next:      1,
		endpoints: map[uint32]service.Endpoint{0: root},
	}
}

func (t *endpointTable) add(ep service.Endpoint) uint32 {
	id := t.next
	t.next++
	t.endpoints[id] = ep

	return id
}

func (t *endpointTable) get(id uint32) (service.Endpoint, bool) {
	ep, ok := t.endpoints[id]

	return ep, ok
}

// closeAll releases every endpoint registered on the connection. The
// root endpoint is shared between connections and is not closed.
func (t *endpointTable) closeAll() {
	for id, ep := range t.endpoints {
		if id == 0 {
			continue
		}

		ep.Close()
	}

	t.endpoints = nil
}
