package domain

import (
	"context"
	"errors"
	"time"

	"github.com/uns-hr/shataku/pkg/db/pagination"
)

var (
	ErrInvalidID         = errors.New("invalid_id")
	ErrInvalidCode       = errors.New("invalid_employee_code")
	ErrInvalidName       = errors.New("invalid_name")
	ErrInvalidStatus     = errors.New("invalid_status")
	ErrInvalidContract   = errors.New("invalid_contract_type")
	ErrInvalidFactory    = errors.New("invalid_factory")
	ErrNotFound          = errors.New("employee_not_found")
	ErrDuplicateEmployee = errors.New("duplicate_employee_code")
)

type CreateEmployeeRequest struct {
	EmployeeCode     string
	FullNameRoman    string
	FullNameKanji    string
	FullNameFurigana string
	Nationality      string
	DateOfBirth      *time.Time
	Phone            string
	Email            string
	Address          string
	EmploymentStart  *time.Time
	EmploymentEnd    *time.Time
	ContractType     ContractType
	FactoryID        string
	Status           EmployeeStatus
	Notes            string
}

type UpdateEmployeeRequest struct {
	ID               string
	FullNameRoman    *string
	FullNameKanji    *string
	FullNameFurigana *string
	Nationality      *string
	DateOfBirth      *time.Time
	Phone            *string
	Email            *string
	Address          *string
	EmploymentStart  *time.Time
	EmploymentEnd    *time.Time
	ContractType     *ContractType
	FactoryID        *string
	Status           *EmployeeStatus
	Notes            *string
	IsActive         *bool
}

type ListEmployeeRequest struct {
	pagination.Pagination
	Search           string
	FactoryID        string
	ApartmentID      string
	Status           *EmployeeStatus
	WithoutApartment bool
	IsActive         *bool
}

type ListEmployeeResponse struct {
	pagination.PageInfo
	Employees []*Employee `json:"employees"`
}

// EmployeeStats summarizes the workforce by status and housing state.
type EmployeeStats struct {
	Total            int64 `json:"total"`
	Active           int64 `json:"active"`
	OnLeave          int64 `json:"on_leave"`
	Terminated       int64 `json:"terminated"`
	Pending          int64 `json:"pending"`
	Housed           int64 `json:"housed"`
	WithoutApartment int64 `json:"without_apartment"`
}

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context, req ListEmployeeRequest) (ListEmployeeResponse, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (Employee, error)
	Deactivate(ctx context.Context, id string) error
	Stats(ctx context.Context) (EmployeeStats, error)
}
