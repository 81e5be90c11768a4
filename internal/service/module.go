package service

import "go.uber.org/fx"

// Module provides the decoder service endpoints.
var Module = fx.Module("service",
	fx.Provide(NewManager),
)
