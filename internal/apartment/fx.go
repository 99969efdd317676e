package apartment

import (
	"github.com/uns-hr/shataku/internal/apartment/repository"
	"github.com/uns-hr/shataku/internal/apartment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("apartment.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
