package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/uns-hr/shataku/internal/rentcalc"
	"github.com/uns-hr/shataku/pkg/db/pagination"
)

var (
	ErrInvalidID               = errors.New("invalid_id")
	ErrInvalidMoveInDate       = errors.New("invalid_move_in_date")
	ErrInvalidDateRange        = errors.New("invalid_date_range")
	ErrApartmentNotFound       = errors.New("apartment_not_found")
	ErrEmployeeNotFound        = errors.New("employee_not_found")
	ErrAssignmentNotFound      = errors.New("assignment_not_found")
	ErrApartmentAtCapacity     = errors.New("apartment_at_capacity")
	ErrAssignmentAlreadyClosed = errors.New("assignment_already_closed")
	ErrEmployeeNotInApartment  = errors.New("employee_not_in_apartment")
)

type AssignRequest struct {
	ApartmentID       string
	EmployeeID        string
	MoveInDate        time.Time
	CustomMonthlyRate *decimal.Decimal
	DepositPaid       *decimal.Decimal
	Notes             string
}

type RepriceRequest struct {
	AssignmentID string
	NewRate      decimal.Decimal
}

type TerminateRequest struct {
	AssignmentID string
	MoveOutDate  time.Time
}

type UpdateNotesRequest struct {
	AssignmentID string
	Notes        string
}

type UnassignRequest struct {
	ApartmentID string
	EmployeeID  string
}

type PreviewCostRequest struct {
	ApartmentID       string
	EmployeeID        string
	MoveInDate        time.Time
	CustomMonthlyRate *decimal.Decimal
}

type ListAssignmentRequest struct {
	pagination.Pagination
	ApartmentID string `form:"apartment_id"`
	EmployeeID  string `form:"employee_id"`
	IsCurrent   *bool  `form:"is_current"`
}

type ListAssignmentResponse struct {
	pagination.PageInfo
	Assignments []*Assignment `json:"assignments"`
}

// ApartmentSummary is the slice of apartment state a cost preview reports.
type ApartmentSummary struct {
	ID               snowflake.ID           `json:"id"`
	Name             string                 `json:"name"`
	PricingPolicy    rentcalc.PricingPolicy `json:"pricing_policy"`
	Capacity         int                    `json:"capacity"`
	CurrentOccupants int                    `json:"current_occupants"`
	FutureOccupants  int                    `json:"future_occupants"`
}

type EmployeeSummary struct {
	ID           snowflake.ID `json:"id"`
	EmployeeCode string       `json:"employee_code"`
	FullName     string       `json:"full_name"`
}

type CostPreview struct {
	Apartment  ApartmentSummary              `json:"apartment"`
	Employee   EmployeeSummary               `json:"employee"`
	MoveInDate string                        `json:"move_in_date"`
	Costs      rentcalc.AssignmentCostResult `json:"costs"`
}

type Service interface {
	Assign(ctx context.Context, req AssignRequest) (Assignment, error)
	Reprice(ctx context.Context, req RepriceRequest) (Assignment, error)
	Terminate(ctx context.Context, req TerminateRequest) (Assignment, error)
	UpdateNotes(ctx context.Context, req UpdateNotesRequest) (Assignment, error)
	Delete(ctx context.Context, assignmentID string) error
	Unassign(ctx context.Context, req UnassignRequest) error
	PreviewCost(ctx context.Context, req PreviewCostRequest) (CostPreview, error)
	Get(ctx context.Context, assignmentID string) (Assignment, error)
	List(ctx context.Context, req ListAssignmentRequest) (ListAssignmentResponse, error)
}
