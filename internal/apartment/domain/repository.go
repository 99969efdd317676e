package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/uns-hr/shataku/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListApartmentFilter struct {
	Search        string
	City          string
	Status        *ApartmentStatus
	PricingPolicy *string
	HasVacancy    *bool
	IsActive      *bool
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, apartment *Apartment) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Apartment, error)
	// FindByIDForUpdate takes a row lock so a capacity check and the
	// following occupant-count write act on the same snapshot.
	FindByIDForUpdate(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Apartment, error)
	List(ctx context.Context, db *gorm.DB, filter ListApartmentFilter, page pagination.Pagination) ([]*Apartment, int64, error)
	Save(ctx context.Context, db *gorm.DB, apartment *Apartment) error
}
