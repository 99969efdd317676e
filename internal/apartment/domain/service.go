package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/uns-hr/shataku/internal/rentcalc"
	"github.com/uns-hr/shataku/pkg/db/pagination"
)

var (
	ErrInvalidID          = errors.New("invalid_id")
	ErrInvalidCode        = errors.New("invalid_apartment_code")
	ErrInvalidName        = errors.New("invalid_name")
	ErrInvalidAddress     = errors.New("invalid_address")
	ErrInvalidCapacity    = errors.New("invalid_capacity")
	ErrInvalidStatus      = errors.New("invalid_status")
	ErrInvalidPolicy      = errors.New("invalid_pricing_policy")
	ErrNotFound           = errors.New("apartment_not_found")
	ErrDuplicateApartment = errors.New("duplicate_apartment_code")
)

type FinancialTerms struct {
	MonthlyRent       decimal.Decimal
	Deposit           decimal.Decimal
	KeyMoney          decimal.Decimal
	ManagementFee     decimal.Decimal
	ParkingFee        decimal.Decimal
	UtilitiesIncluded bool
	InternetIncluded  bool
	ParkingIncluded   bool
	PricingPolicy     rentcalc.PricingPolicy
}

type CreateApartmentRequest struct {
	ApartmentCode string
	Name          string
	Address       string
	City          string
	Prefecture    string
	PostalCode    string
	BuildingName  string
	RoomNumber    string
	Floor         *int
	NumRooms      int
	Terms         FinancialTerms
	Capacity      int
	Status        ApartmentStatus
	Notes         string
}

type UpdateApartmentRequest struct {
	ID            string
	Name          *string
	Address       *string
	City          *string
	Prefecture    *string
	PostalCode    *string
	BuildingName  *string
	RoomNumber    *string
	MonthlyRent   *decimal.Decimal
	Deposit       *decimal.Decimal
	KeyMoney      *decimal.Decimal
	ManagementFee *decimal.Decimal
	ParkingFee    *decimal.Decimal

	UtilitiesIncluded *bool
	InternetIncluded  *bool
	ParkingIncluded   *bool
	PricingPolicy     *rentcalc.PricingPolicy

	Status   *ApartmentStatus
	Capacity *int
	Notes    *string
	IsActive *bool
}

type ListApartmentRequest struct {
	pagination.Pagination
	Search        string
	City          string
	Status        *ApartmentStatus
	PricingPolicy *rentcalc.PricingPolicy
	HasVacancy    *bool
	IsActive      *bool
}

type ListApartmentResponse struct {
	pagination.PageInfo
	Apartments []*Apartment `json:"apartments"`
}

// ApartmentStats summarizes the housing stock by status and occupancy.
type ApartmentStats struct {
	Total          int64           `json:"total"`
	Available      int64           `json:"available"`
	Occupied       int64           `json:"occupied"`
	Maintenance    int64           `json:"maintenance"`
	Reserved       int64           `json:"reserved"`
	TotalCapacity  int64           `json:"total_capacity"`
	TotalOccupants int64           `json:"total_occupants"`
	OccupancyRate  decimal.Decimal `json:"occupancy_rate"`
}

type Service interface {
	Create(ctx context.Context, req CreateApartmentRequest) (Apartment, error)
	GetByID(ctx context.Context, id string) (Apartment, error)
	List(ctx context.Context, req ListApartmentRequest) (ListApartmentResponse, error)
	Update(ctx context.Context, req UpdateApartmentRequest) (Apartment, error)
	Deactivate(ctx context.Context, id string) error
	Stats(ctx context.Context) (ApartmentStats, error)
}
