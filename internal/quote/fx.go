package quote

import (
	"github.com/jacobe603/quote-builder/internal/quote/repository"
	"github.com/jacobe603/quote-builder/internal/quote/service"
	"go.uber.org/fx"
)

// Module needs an initial *domain.Snapshot in the graph; see internal/seed.
var Module = fx.Module("quote.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
