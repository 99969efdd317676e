package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/uns-hr/shataku/internal/clock"
	"github.com/uns-hr/shataku/internal/employee/domain"
	factorydomain "github.com/uns-hr/shataku/internal/factory/domain"
	pkgdb "github.com/uns-hr/shataku/pkg/db"
	"github.com/uns-hr/shataku/pkg/db/pagination"
	"github.com/uns-hr/shataku/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID       *snowflake.Node
	clock       clock.Clock
	repo        domain.Repository
	factoryRepo repository.Repository[factorydomain.Factory]
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
		log: p.Log.Named("employee.service"),

		genID:       p.GenID,
		clock:       p.Clock,
		repo:        p.Repo,
		factoryRepo: repository.ProvideStore[factorydomain.Factory](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateEmployeeRequest) (domain.Employee, error) {
	code := strings.TrimSpace(req.EmployeeCode)
	if code == "" {
		return domain.Employee{}, domain.ErrInvalidCode
	}
	name := strings.TrimSpace(req.FullNameRoman)
	if name == "" {
		return domain.Employee{}, domain.ErrInvalidName
	}

	contract := req.ContractType
	if contract == "" {
		contract = domain.ContractDispatch
	}
	if !contract.Valid() {
		return domain.Employee{}, domain.ErrInvalidContract
	}

	status := req.Status
	if status == "" {
		status = domain.StatusActive
	}
	if !status.Valid() {
		return domain.Employee{}, domain.ErrInvalidStatus
	}

	var factoryID *snowflake.ID
	if strings.TrimSpace(req.FactoryID) != "" {
		id, err := parseID(req.FactoryID)
		if err != nil {
			return domain.Employee{}, domain.ErrInvalidFactory
		}
		factory, err := s.factoryRepo.FindOne(ctx, &factorydomain.Factory{ID: id})
		if err != nil {
			return domain.Employee{}, err
		}
		if factory == nil {
			return domain.Employee{}, domain.ErrInvalidFactory
		}
		factoryID = &id
	}

	now := s.clock.Now()
	employee := domain.Employee{
		ID:               s.genID.Generate(),
		EmployeeCode:     code,
		FullNameRoman:    name,
		FullNameKanji:    strings.TrimSpace(req.FullNameKanji),
		FullNameFurigana: strings.TrimSpace(req.FullNameFurigana),
		Nationality:      strings.TrimSpace(req.Nationality),
		DateOfBirth:      req.DateOfBirth,
		Phone:            strings.TrimSpace(req.Phone),
		Email:            strings.TrimSpace(req.Email),
		Address:          strings.TrimSpace(req.Address),
		EmploymentStart:  req.EmploymentStart,
		EmploymentEnd:    req.EmploymentEnd,
		ContractType:     contract,
		FactoryID:        factoryID,
		Status:           status,
		Notes:            req.Notes,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Insert(ctx, s.db, &employee); err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			return domain.Employee{}, domain.ErrDuplicateEmployee
		}
		return domain.Employee{}, err
	}
	return employee, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Employee, error) {
	employeeID, err := parseID(id)
	if err != nil {
		return domain.Employee{}, domain.ErrInvalidID
	}

	employee, err := s.repo.FindByID(ctx, s.db, employeeID)
	if err != nil {
		return domain.Employee{}, err
	}
	if employee == nil {
		return domain.Employee{}, domain.ErrNotFound
	}
	return *employee, nil
}

func (s *Service) List(ctx context.Context, req domain.ListEmployeeRequest) (domain.ListEmployeeResponse, error) {
	filter := domain.ListEmployeeFilter{
		Search:           strings.TrimSpace(req.Search),
		Status:           req.Status,
		WithoutApartment: req.WithoutApartment,
		IsActive:         req.IsActive,
	}
	if strings.TrimSpace(req.FactoryID) != "" {
		id, err := parseID(req.FactoryID)
		if err != nil {
			return domain.ListEmployeeResponse{}, domain.ErrInvalidFactory
		}
		filter.FactoryID = &id
	}
	if strings.TrimSpace(req.ApartmentID) != "" {
		id, err := parseID(req.ApartmentID)
		if err != nil {
			return domain.ListEmployeeResponse{}, domain.ErrInvalidID
		}
		filter.ApartmentID = &id
	}

	employees, total, err := s.repo.List(ctx, s.db, filter, req.Pagination)
	if err != nil {
		return domain.ListEmployeeResponse{}, err
	}

	return domain.ListEmployeeResponse{
		PageInfo:  pagination.BuildPageInfo(total, req.Pagination),
		Employees: employees,
	}, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateEmployeeRequest) (domain.Employee, error) {
	employeeID, err := parseID(req.ID)
	if err != nil {
		return domain.Employee{}, domain.ErrInvalidID
	}

	employee, err := s.repo.FindByID(ctx, s.db, employeeID)
	if err != nil {
		return domain.Employee{}, err
	}
	if employee == nil {
		return domain.Employee{}, domain.ErrNotFound
	}

	applyString(&employee.FullNameRoman, req.FullNameRoman)
	applyString(&employee.FullNameKanji, req.FullNameKanji)
	applyString(&employee.FullNameFurigana, req.FullNameFurigana)
	applyString(&employee.Nationality, req.Nationality)
	if req.DateOfBirth != nil {
		employee.DateOfBirth = req.DateOfBirth
	}
	applyString(&employee.Phone, req.Phone)
	applyString(&employee.Email, req.Email)
	applyString(&employee.Address, req.Address)
	if req.EmploymentStart != nil {
		employee.EmploymentStart = req.EmploymentStart
	}
	if req.EmploymentEnd != nil {
		employee.EmploymentEnd = req.EmploymentEnd
	}
	if req.ContractType != nil {
		if !req.ContractType.Valid() {
			return domain.Employee{}, domain.ErrInvalidContract
		}
		employee.ContractType = *req.ContractType
	}
	if req.FactoryID != nil {
		if strings.TrimSpace(*req.FactoryID) == "" {
			employee.FactoryID = nil
		} else {
			id, err := parseID(*req.FactoryID)
			if err != nil {
				return domain.Employee{}, domain.ErrInvalidFactory
			}
			factory, err := s.factoryRepo.FindOne(ctx, &factorydomain.Factory{ID: id})
			if err != nil {
				return domain.Employee{}, err
			}
			if factory == nil {
				return domain.Employee{}, domain.ErrInvalidFactory
			}
			employee.FactoryID = &id
		}
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return domain.Employee{}, domain.ErrInvalidStatus
		}
		employee.Status = *req.Status
	}
	applyString(&employee.Notes, req.Notes)
	if req.IsActive != nil {
		employee.IsActive = *req.IsActive
	}
	employee.UpdatedAt = s.clock.Now()

	if err := s.repo.Save(ctx, s.db, employee); err != nil {
		return domain.Employee{}, err
	}
	return *employee, nil
}

func (s *Service) Deactivate(ctx context.Context, id string) error {
	employeeID, err := parseID(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	employee, err := s.repo.FindByID(ctx, s.db, employeeID)
	if err != nil {
		return err
	}
	if employee == nil {
		return domain.ErrNotFound
	}

	employee.IsActive = false
	employee.UpdatedAt = s.clock.Now()
	return s.repo.Save(ctx, s.db, employee)
}

func (s *Service) Stats(ctx context.Context) (domain.EmployeeStats, error) {
	var stats domain.EmployeeStats
	err := s.db.WithContext(ctx).Raw(
		`SELECT COUNT(*) AS total,
		        COALESCE(SUM(CASE WHEN status = 'active' THEN 1 ELSE 0 END), 0) AS active,
		        COALESCE(SUM(CASE WHEN status = 'on_leave' THEN 1 ELSE 0 END), 0) AS on_leave,
		        COALESCE(SUM(CASE WHEN status = 'terminated' THEN 1 ELSE 0 END), 0) AS terminated,
		        COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0) AS pending,
		        COALESCE(SUM(CASE WHEN apartment_id IS NOT NULL THEN 1 ELSE 0 END), 0) AS housed,
		        COALESCE(SUM(CASE WHEN apartment_id IS NULL THEN 1 ELSE 0 END), 0) AS without_apartment
		 FROM employees
		 WHERE is_active = ?`,
		true,
	).Scan(&stats).Error
	if err != nil {
		return domain.EmployeeStats{}, err
	}
	return stats, nil
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func parseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(value))
}
