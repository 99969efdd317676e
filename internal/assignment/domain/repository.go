package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/uns-hr/shataku/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListAssignmentFilter struct {
	ApartmentID *snowflake.ID
	EmployeeID  *snowflake.ID
	IsCurrent   *bool
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, assignment *Assignment) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Assignment, error)
	FindCurrentByEmployee(ctx context.Context, db *gorm.DB, employeeID snowflake.ID) (*Assignment, error)
	CountCurrentByApartment(ctx context.Context, db *gorm.DB, apartmentID snowflake.ID) (int64, error)
	List(ctx context.Context, db *gorm.DB, filter ListAssignmentFilter, page pagination.Pagination) ([]*Assignment, int64, error)
	Save(ctx context.Context, db *gorm.DB, assignment *Assignment) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
