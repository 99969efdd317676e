package factory

import (
	"github.com/uns-hr/shataku/internal/factory/repository"
	"github.com/uns-hr/shataku/internal/factory/service"
	"go.uber.org/fx"
)

var Module = fx.Module("factory.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
