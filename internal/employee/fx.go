package employee

import (
	"github.com/uns-hr/shataku/internal/employee/repository"
	"github.com/uns-hr/shataku/internal/employee/service"
	"go.uber.org/fx"
)

var Module = fx.Module("employee.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
