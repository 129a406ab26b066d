package reference

import "go.uber.org/fx"

// Module serves lookup tables out of the published quote snapshot.
var Module = fx.Module("quote.reference",
	fx.Provide(NewRepository),
)
