package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/uns-hr/shataku/internal/employee/domain"
	"github.com/uns-hr/shataku/pkg/db/option"
	"github.com/uns-hr/shataku/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, employee *domain.Employee) error {
	return db.WithContext(ctx).Create(employee).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Employee, error) {
	var employee domain.Employee
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &employee, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListEmployeeFilter, page pagination.Pagination) ([]*domain.Employee, int64, error) {
	stmt := db.WithContext(ctx).Model(&domain.Employee{})
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		stmt = stmt.Where(
			"employee_code LIKE ? OR full_name_roman LIKE ? OR full_name_kanji LIKE ? OR full_name_furigana LIKE ?",
			like, like, like, like,
		)
	}
	if filter.FactoryID != nil {
		stmt = stmt.Where("factory_id = ?", *filter.FactoryID)
	}
	if filter.ApartmentID != nil {
		stmt = stmt.Where("apartment_id = ?", *filter.ApartmentID)
	}
	if filter.Status != nil {
		stmt = stmt.Where("status = ?", *filter.Status)
	}
	if filter.WithoutApartment {
		stmt = stmt.Where("apartment_id IS NULL")
	}
	if filter.IsActive != nil {
		stmt = stmt.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var employees []*domain.Employee
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("employee_code asc").
		Find(&employees).Error
	if err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, employee *domain.Employee) error {
	return db.WithContext(ctx).Save(employee).Error
}
