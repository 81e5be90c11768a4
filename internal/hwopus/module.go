package hwopus

import "go.uber.org/fx"

// Module provides the decoder core dependencies.
var Module = fx.Module("hwopus",
	fx.Provide(
		NewFactory,
		NewRegistry,
	),
)
