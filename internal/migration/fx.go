package migration

import (
	apartmentdomain "github.com/uns-hr/shataku/internal/apartment/domain"
	assignmentdomain "github.com/uns-hr/shataku/internal/assignment/domain"
	"github.com/uns-hr/shataku/internal/config"
	employeedomain "github.com/uns-hr/shataku/internal/employee/domain"
	factorydomain "github.com/uns-hr/shataku/internal/factory/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		// Versioned SQL migrations are postgres-only. sqlite and mysql
		// fall back to schema sync, which is what local setups use.
		if cfg.DBType != "postgres" {
			return conn.AutoMigrate(
				&factorydomain.Factory{},
				&apartmentdomain.Apartment{},
				&employeedomain.Employee{},
				&assignmentdomain.Assignment{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
