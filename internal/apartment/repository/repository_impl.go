package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/uns-hr/shataku/internal/apartment/domain"
	"github.com/uns-hr/shataku/pkg/db/option"
	"github.com/uns-hr/shataku/pkg/db/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, apartment *domain.Apartment) error {
	return db.WithContext(ctx).Create(apartment).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Apartment, error) {
	return r.findByID(ctx, db, id, false)
}

func (r *repo) FindByIDForUpdate(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Apartment, error) {
	return r.findByID(ctx, db, id, true)
}

func (r *repo) findByID(ctx context.Context, db *gorm.DB, id snowflake.ID, lock bool) (*domain.Apartment, error) {
	stmt := db.WithContext(ctx).Where("id = ?", id)
	// sqlite has no row locks; its single-writer model covers the
	// check-then-increment window there.
	if lock && db.Dialector.Name() != "sqlite" {
		stmt = stmt.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var apartment domain.Apartment
	err := stmt.First(&apartment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &apartment, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListApartmentFilter, page pagination.Pagination) ([]*domain.Apartment, int64, error) {
	stmt := db.WithContext(ctx).Model(&domain.Apartment{})
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		stmt = stmt.Where("apartment_code LIKE ? OR name LIKE ? OR address LIKE ?", like, like, like)
	}
	if filter.City != "" {
		stmt = stmt.Where("city = ?", filter.City)
	}
	if filter.Status != nil {
		stmt = stmt.Where("status = ?", *filter.Status)
	}
	if filter.PricingPolicy != nil {
		stmt = stmt.Where("pricing_policy = ?", *filter.PricingPolicy)
	}
	if filter.HasVacancy != nil {
		if *filter.HasVacancy {
			stmt = stmt.Where("current_occupants < capacity")
		} else {
			stmt = stmt.Where("current_occupants >= capacity")
		}
	}
	if filter.IsActive != nil {
		stmt = stmt.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apartments []*domain.Apartment
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("apartment_code asc").
		Find(&apartments).Error
	if err != nil {
		return nil, 0, err
	}
	return apartments, total, nil
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, apartment *domain.Apartment) error {
	return db.WithContext(ctx).Save(apartment).Error
}
