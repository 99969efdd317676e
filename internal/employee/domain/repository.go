package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/uns-hr/shataku/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListEmployeeFilter struct {
	Search           string
	FactoryID        *snowflake.ID
	ApartmentID      *snowflake.ID
	Status           *EmployeeStatus
	WithoutApartment bool
	IsActive         *bool
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, employee *Employee) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Employee, error)
	List(ctx context.Context, db *gorm.DB, filter ListEmployeeFilter, page pagination.Pagination) ([]*Employee, int64, error)
	Save(ctx context.Context, db *gorm.DB, employee *Employee) error
}
