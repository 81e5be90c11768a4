package codec

import "go.uber.org/fx"

// Module provides the Opus codec implementation.
var Module = fx.Module("codec",
	fx.Provide(NewOpusCodec),
)
