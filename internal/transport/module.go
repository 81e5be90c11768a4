package transport

import "go.uber.org/fx"

// Module provides the websocket transport server.
var Module = fx.Module("transport",
	fx.Provide(NewServer),
)
