package assignment

import (
	"github.com/uns-hr/shataku/internal/assignment/repository"
	"github.com/uns-hr/shataku/internal/assignment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("assignment.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
