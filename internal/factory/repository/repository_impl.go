package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/uns-hr/shataku/internal/factory/domain"
	"github.com/uns-hr/shataku/pkg/db/option"
	"github.com/uns-hr/shataku/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, factory *domain.Factory) error {
	return db.WithContext(ctx).Create(factory).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Factory, error) {
	var factory domain.Factory
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&factory).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &factory, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFactoryFilter, page pagination.Pagination) ([]*domain.Factory, int64, error) {
	stmt := db.WithContext(ctx).Model(&domain.Factory{})
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		stmt = stmt.Where("factory_code LIKE ? OR name LIKE ? OR name_japanese LIKE ?", like, like, like)
	}
	if filter.City != "" {
		stmt = stmt.Where("city = ?", filter.City)
	}
	if filter.IsActive != nil {
		stmt = stmt.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var factories []*domain.Factory
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("factory_code asc").
		Find(&factories).Error
	if err != nil {
		return nil, 0, err
	}
	return factories, total, nil
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, factory *domain.Factory) error {
	return db.WithContext(ctx).Save(factory).Error
}
