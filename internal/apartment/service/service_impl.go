package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/uns-hr/shataku/internal/apartment/domain"
	"github.com/uns-hr/shataku/internal/clock"
	"github.com/uns-hr/shataku/internal/rentcalc"
	pkgdb "github.com/uns-hr/shataku/pkg/db"
	"github.com/uns-hr/shataku/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("apartment.service"),

		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateApartmentRequest) (domain.Apartment, error) {
	code := strings.TrimSpace(req.ApartmentCode)
	if code == "" {
		return domain.Apartment{}, domain.ErrInvalidCode
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Apartment{}, domain.ErrInvalidName
	}
	address := strings.TrimSpace(req.Address)
	if address == "" {
		return domain.Apartment{}, domain.ErrInvalidAddress
	}

	capacity := req.Capacity
	if capacity <= 0 {
		return domain.Apartment{}, domain.ErrInvalidCapacity
	}

	policy := req.Terms.PricingPolicy
	if policy == "" {
		policy = rentcalc.PolicyShared
	}
	if !policy.Valid() {
		return domain.Apartment{}, domain.ErrInvalidPolicy
	}

	status := req.Status
	if status == "" {
		status = domain.StatusAvailable
	}
	if !status.Valid() {
		return domain.Apartment{}, domain.ErrInvalidStatus
	}

	numRooms := req.NumRooms
	if numRooms <= 0 {
		numRooms = 1
	}

	now := s.clock.Now()
	apartment := domain.Apartment{
		ID:                s.genID.Generate(),
		ApartmentCode:     code,
		Name:              name,
		Address:           address,
		City:              strings.TrimSpace(req.City),
		Prefecture:        strings.TrimSpace(req.Prefecture),
		PostalCode:        strings.TrimSpace(req.PostalCode),
		BuildingName:      strings.TrimSpace(req.BuildingName),
		RoomNumber:        strings.TrimSpace(req.RoomNumber),
		Floor:             req.Floor,
		NumRooms:          numRooms,
		MonthlyRent:       req.Terms.MonthlyRent,
		Deposit:           req.Terms.Deposit,
		KeyMoney:          req.Terms.KeyMoney,
		ManagementFee:     req.Terms.ManagementFee,
		ParkingFee:        req.Terms.ParkingFee,
		UtilitiesIncluded: req.Terms.UtilitiesIncluded,
		InternetIncluded:  req.Terms.InternetIncluded,
		ParkingIncluded:   req.Terms.ParkingIncluded,
		PricingPolicy:     policy,
		Status:            status,
		Capacity:          capacity,
		CurrentOccupants:  0,
		Notes:             req.Notes,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Insert(ctx, s.db, &apartment); err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			return domain.Apartment{}, domain.ErrDuplicateApartment
		}
		return domain.Apartment{}, err
	}
	return apartment, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Apartment, error) {
	apartmentID, err := parseID(id)
	if err != nil {
		return domain.Apartment{}, domain.ErrInvalidID
	}

	apartment, err := s.repo.FindByID(ctx, s.db, apartmentID)
	if err != nil {
		return domain.Apartment{}, err
	}
	if apartment == nil {
		return domain.Apartment{}, domain.ErrNotFound
	}
	return *apartment, nil
}

func (s *Service) List(ctx context.Context, req domain.ListApartmentRequest) (domain.ListApartmentResponse, error) {
	filter := domain.ListApartmentFilter{
		Search:     strings.TrimSpace(req.Search),
		City:       strings.TrimSpace(req.City),
		Status:     req.Status,
		HasVacancy: req.HasVacancy,
		IsActive:   req.IsActive,
	}
	if req.PricingPolicy != nil {
		policy := string(*req.PricingPolicy)
		filter.PricingPolicy = &policy
	}

	apartments, total, err := s.repo.List(ctx, s.db, filter, req.Pagination)
	if err != nil {
		return domain.ListApartmentResponse{}, err
	}

	return domain.ListApartmentResponse{
		PageInfo:   pagination.BuildPageInfo(total, req.Pagination),
		Apartments: apartments,
	}, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateApartmentRequest) (domain.Apartment, error) {
	apartmentID, err := parseID(req.ID)
	if err != nil {
		return domain.Apartment{}, domain.ErrInvalidID
	}

	apartment, err := s.repo.FindByID(ctx, s.db, apartmentID)
	if err != nil {
		return domain.Apartment{}, err
	}
	if apartment == nil {
		return domain.Apartment{}, domain.ErrNotFound
	}

	applyString(&apartment.Name, req.Name)
	applyString(&apartment.Address, req.Address)
	applyString(&apartment.City, req.City)
	applyString(&apartment.Prefecture, req.Prefecture)
	applyString(&apartment.PostalCode, req.PostalCode)
	applyString(&apartment.BuildingName, req.BuildingName)
	applyString(&apartment.RoomNumber, req.RoomNumber)
	applyDecimal(&apartment.MonthlyRent, req.MonthlyRent)
	applyDecimal(&apartment.Deposit, req.Deposit)
	applyDecimal(&apartment.KeyMoney, req.KeyMoney)
	applyDecimal(&apartment.ManagementFee, req.ManagementFee)
	applyDecimal(&apartment.ParkingFee, req.ParkingFee)
	if req.UtilitiesIncluded != nil {
		apartment.UtilitiesIncluded = *req.UtilitiesIncluded
	}
	if req.InternetIncluded != nil {
		apartment.InternetIncluded = *req.InternetIncluded
	}
	if req.ParkingIncluded != nil {
		apartment.ParkingIncluded = *req.ParkingIncluded
	}
	if req.PricingPolicy != nil {
		if !req.PricingPolicy.Valid() {
			return domain.Apartment{}, domain.ErrInvalidPolicy
		}
		apartment.PricingPolicy = *req.PricingPolicy
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return domain.Apartment{}, domain.ErrInvalidStatus
		}
		apartment.Status = *req.Status
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return domain.Apartment{}, domain.ErrInvalidCapacity
		}
		apartment.Capacity = *req.Capacity
	}
	applyString(&apartment.Notes, req.Notes)
	if req.IsActive != nil {
		apartment.IsActive = *req.IsActive
	}
	apartment.UpdatedAt = s.clock.Now()

	if err := s.repo.Save(ctx, s.db, apartment); err != nil {
		return domain.Apartment{}, err
	}
	return *apartment, nil
}

func (s *Service) Deactivate(ctx context.Context, id string) error {
	apartmentID, err := parseID(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	apartment, err := s.repo.FindByID(ctx, s.db, apartmentID)
	if err != nil {
		return err
	}
	if apartment == nil {
		return domain.ErrNotFound
	}

	apartment.IsActive = false
	apartment.UpdatedAt = s.clock.Now()
	return s.repo.Save(ctx, s.db, apartment)
}

func (s *Service) Stats(ctx context.Context) (domain.ApartmentStats, error) {
	var row struct {
		Total          int64
		Available      int64
		Occupied       int64
		Maintenance    int64
		Reserved       int64
		TotalCapacity  int64
		TotalOccupants int64
	}
	err := s.db.WithContext(ctx).Raw(
		`SELECT COUNT(*) AS total,
		        COALESCE(SUM(CASE WHEN status = 'available' THEN 1 ELSE 0 END), 0) AS available,
		        COALESCE(SUM(CASE WHEN status = 'occupied' THEN 1 ELSE 0 END), 0) AS occupied,
		        COALESCE(SUM(CASE WHEN status = 'maintenance' THEN 1 ELSE 0 END), 0) AS maintenance,
		        COALESCE(SUM(CASE WHEN status = 'reserved' THEN 1 ELSE 0 END), 0) AS reserved,
		        COALESCE(SUM(capacity), 0) AS total_capacity,
		        COALESCE(SUM(current_occupants), 0) AS total_occupants
		 FROM apartments
		 WHERE is_active = ?`,
		true,
	).Scan(&row).Error
	if err != nil {
		return domain.ApartmentStats{}, err
	}

	stats := domain.ApartmentStats{
		Total:          row.Total,
		Available:      row.Available,
		Occupied:       row.Occupied,
		Maintenance:    row.Maintenance,
		Reserved:       row.Reserved,
		TotalCapacity:  row.TotalCapacity,
		TotalOccupants: row.TotalOccupants,
		OccupancyRate:  decimal.Zero,
	}
	if row.TotalCapacity > 0 {
		stats.OccupancyRate = decimal.NewFromInt(row.TotalOccupants).
			Div(decimal.NewFromInt(row.TotalCapacity)).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}
	return stats, nil
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func applyDecimal(dst *decimal.Decimal, src *decimal.Decimal) {
	if src != nil {
		*dst = *src
	}
}

func parseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(value))
}
