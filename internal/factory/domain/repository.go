package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/uns-hr/shataku/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListFactoryFilter struct {
	Search   string
	City     string
	IsActive *bool
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, factory *Factory) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Factory, error)
	List(ctx context.Context, db *gorm.DB, filter ListFactoryFilter, page pagination.Pagination) ([]*Factory, int64, error)
	Save(ctx context.Context, db *gorm.DB, factory *Factory) error
}
