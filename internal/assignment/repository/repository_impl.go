package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/uns-hr/shataku/internal/assignment/domain"
	"github.com/uns-hr/shataku/pkg/db/option"
	"github.com/uns-hr/shataku/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, assignment *domain.Assignment) error {
	return db.WithContext(ctx).Create(assignment).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Assignment, error) {
	var assignment domain.Assignment
	err := db.WithContext(ctx).Where("id = ?", id).First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &assignment, nil
}

func (r *repo) FindCurrentByEmployee(ctx context.Context, db *gorm.DB, employeeID snowflake.ID) (*domain.Assignment, error) {
	var assignment domain.Assignment
	err := db.WithContext(ctx).
		Where("employee_id = ? AND is_current = ?", employeeID, true).
		Order("move_in_date desc").
		First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &assignment, nil
}

func (r *repo) CountCurrentByApartment(ctx context.Context, db *gorm.DB, apartmentID snowflake.ID) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.Assignment{}).
		Where("apartment_id = ? AND is_current = ?", apartmentID, true).
		Count(&total).Error
	return total, err
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListAssignmentFilter, page pagination.Pagination) ([]*domain.Assignment, int64, error) {
	stmt := db.WithContext(ctx).Model(&domain.Assignment{})
	if filter.ApartmentID != nil {
		stmt = stmt.Where("apartment_id = ?", *filter.ApartmentID)
	}
	if filter.EmployeeID != nil {
		stmt = stmt.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.IsCurrent != nil {
		stmt = stmt.Where("is_current = ?", *filter.IsCurrent)
	}

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var assignments []*domain.Assignment
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("move_in_date desc").
		Find(&assignments).Error
	if err != nil {
		return nil, 0, err
	}
	return assignments, total, nil
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, assignment *domain.Assignment) error {
	return db.WithContext(ctx).Save(assignment).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Assignment{}).Error
}
