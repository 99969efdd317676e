package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	aptdomain "github.com/uns-hr/shataku/internal/apartment/domain"
	"github.com/uns-hr/shataku/internal/assignment/domain"
	"github.com/uns-hr/shataku/internal/clock"
	"github.com/uns-hr/shataku/internal/config"
	empdomain "github.com/uns-hr/shataku/internal/employee/domain"
	"github.com/uns-hr/shataku/internal/rentcalc"
	"github.com/uns-hr/shataku/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service owns every occupancy mutation. Apartment occupant counts,
// status flips and the employee's apartment link are only ever written
// here, inside one transaction per operation, so the counter and the set
// of current assignment rows cannot drift apart.
type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID *snowflake.Node
	clock clock.Clock

	estimatedUtilities decimal.Decimal

	repo          domain.Repository
	apartmentRepo aptdomain.Repository
	employeeRepo  empdomain.Repository
}

type ServiceParam struct {
	fx.In

	Config config.Config
	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Clock  clock.Clock

	Repo          domain.Repository
	ApartmentRepo aptdomain.Repository
	EmployeeRepo  empdomain.Repository
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("assignment.service"),

		genID: p.GenID,
		clock: p.Clock,

		estimatedUtilities: p.Config.EstimatedUtilities,

		repo:          p.Repo,
		apartmentRepo: p.ApartmentRepo,
		employeeRepo:  p.EmployeeRepo,
	}
}

func (s *Service) Assign(ctx context.Context, req domain.AssignRequest) (domain.Assignment, error) {
	apartmentID, err := parseID(req.ApartmentID)
	if err != nil {
		return domain.Assignment{}, domain.ErrInvalidID
	}
	employeeID, err := parseID(req.EmployeeID)
	if err != nil {
		return domain.Assignment{}, domain.ErrInvalidID
	}
	if req.MoveInDate.IsZero() {
		return domain.Assignment{}, domain.ErrInvalidMoveInDate
	}
	moveIn := dateOnly(req.MoveInDate)

	var created domain.Assignment
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		apartment, err := s.apartmentRepo.FindByIDForUpdate(ctx, tx, apartmentID)
		if err != nil {
			return err
		}
		if apartment == nil {
			return domain.ErrApartmentNotFound
		}
		if apartment.CurrentOccupants >= apartment.Capacity {
			return domain.ErrApartmentAtCapacity
		}

		employee, err := s.employeeRepo.FindByID(ctx, tx, employeeID)
		if err != nil {
			return err
		}
		if employee == nil {
			return domain.ErrEmployeeNotFound
		}

		now := s.clock.Now()
		if err := s.closeCurrentHousing(ctx, tx, employee, apartment, moveIn, now); err != nil {
			return err
		}

		futureOccupants := apartment.CurrentOccupants + 1
		assignment := domain.Assignment{
			ID:          s.genID.Generate(),
			ApartmentID: apartment.ID,
			EmployeeID:  employee.ID,
			MoveInDate:  moveIn,
			IsCurrent:   true,
			Notes:       strings.TrimSpace(req.Notes),
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if req.CustomMonthlyRate != nil {
			assignment.CustomMonthlyRate = req.CustomMonthlyRate
			assignment.MonthlyCharge = *req.CustomMonthlyRate
			if req.DepositPaid != nil {
				assignment.DepositPaid = *req.DepositPaid
			}
		} else {
			costs, err := s.costs(apartment, futureOccupants, moveIn, nil)
			if err != nil {
				return err
			}
			assignment.MonthlyCharge = costs.MonthlyCost.Total
			if req.DepositPaid != nil {
				assignment.DepositPaid = *req.DepositPaid
			} else {
				assignment.DepositPaid = costs.InitialCosts.Deposit
			}
		}

		if err := s.repo.Insert(ctx, tx, &assignment); err != nil {
			return err
		}

		apartment.CurrentOccupants = futureOccupants
		if apartment.CurrentOccupants >= apartment.Capacity {
			apartment.Status = aptdomain.StatusOccupied
		}
		apartment.UpdatedAt = now
		if err := s.apartmentRepo.Save(ctx, tx, apartment); err != nil {
			return err
		}

		employee.ApartmentID = &apartment.ID
		employee.UpdatedAt = now
		if err := s.employeeRepo.Save(ctx, tx, employee); err != nil {
			return err
		}

		created = assignment
		return nil
	})
	if err != nil {
		return domain.Assignment{}, err
	}

	s.log.Info("employee assigned",
		zap.String("assignment_id", created.ID.String()),
		zap.String("apartment_id", created.ApartmentID.String()),
		zap.String("employee_id", created.EmployeeID.String()),
	)
	return created, nil
}

// closeCurrentHousing ends the employee's existing stay, if any, dated at
// the new move-in. The previous apartment's count floors at zero and its
// status reverts to available whenever the count is back under capacity.
func (s *Service) closeCurrentHousing(
	ctx context.Context,
	tx *gorm.DB,
	employee *empdomain.Employee,
	target *aptdomain.Apartment,
	moveIn time.Time,
	now time.Time,
) error {
	if employee.ApartmentID == nil {
		return nil
	}

	prior, err := s.repo.FindCurrentByEmployee(ctx, tx, employee.ID)
	if err != nil {
		return err
	}
	if prior != nil {
		moveOut := moveIn
		prior.MoveOutDate = &moveOut
		prior.IsCurrent = false
		prior.UpdatedAt = now
		if err := s.repo.Save(ctx, tx, prior); err != nil {
			return err
		}
	}

	if *employee.ApartmentID == target.ID {
		releaseOccupant(target)
		return nil
	}

	previous, err := s.apartmentRepo.FindByIDForUpdate(ctx, tx, *employee.ApartmentID)
	if err != nil {
		return err
	}
	if previous == nil {
		return nil
	}
	releaseOccupant(previous)
	previous.UpdatedAt = now
	return s.apartmentRepo.Save(ctx, tx, previous)
}

func (s *Service) Reprice(ctx context.Context, req domain.RepriceRequest) (domain.Assignment, error) {
	assignmentID, err := parseID(req.AssignmentID)
	if err != nil {
		return domain.Assignment{}, domain.ErrInvalidID
	}

	var updated domain.Assignment
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assignment, err := s.repo.FindByID(ctx, tx, assignmentID)
		if err != nil {
			return err
		}
		if assignment == nil {
			return domain.ErrAssignmentNotFound
		}

		apartment, err := s.apartmentRepo.FindByID(ctx, tx, assignment.ApartmentID)
		if err != nil {
			return err
		}
		if apartment == nil {
			return domain.ErrApartmentNotFound
		}

		rate := req.NewRate
		costs, err := s.costs(apartment, apartment.CurrentOccupants, assignment.MoveInDate, &rate)
		if err != nil {
			return err
		}

		assignment.CustomMonthlyRate = &rate
		assignment.MonthlyCharge = costs.MonthlyCost.Total
		assignment.UpdatedAt = s.clock.Now()
		if err := s.repo.Save(ctx, tx, assignment); err != nil {
			return err
		}
		updated = *assignment
		return nil
	})
	if err != nil {
		return domain.Assignment{}, err
	}
	return updated, nil
}

func (s *Service) Terminate(ctx context.Context, req domain.TerminateRequest) (domain.Assignment, error) {
	assignmentID, err := parseID(req.AssignmentID)
	if err != nil {
		return domain.Assignment{}, domain.ErrInvalidID
	}
	if req.MoveOutDate.IsZero() {
		return domain.Assignment{}, domain.ErrInvalidDateRange
	}
	moveOut := dateOnly(req.MoveOutDate)

	var closed domain.Assignment
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assignment, err := s.repo.FindByID(ctx, tx, assignmentID)
		if err != nil {
			return err
		}
		if assignment == nil {
			return domain.ErrAssignmentNotFound
		}
		if !assignment.IsCurrent {
			return domain.ErrAssignmentAlreadyClosed
		}
		if moveOut.Before(assignment.MoveInDate) {
			return domain.ErrInvalidDateRange
		}

		now := s.clock.Now()
		assignment.MoveOutDate = &moveOut
		assignment.IsCurrent = false
		assignment.UpdatedAt = now
		if err := s.repo.Save(ctx, tx, assignment); err != nil {
			return err
		}

		if err := s.detach(ctx, tx, assignment, now); err != nil {
			return err
		}
		closed = *assignment
		return nil
	})
	if err != nil {
		return domain.Assignment{}, err
	}

	s.log.Info("assignment terminated",
		zap.String("assignment_id", closed.ID.String()),
		zap.String("apartment_id", closed.ApartmentID.String()),
	)
	return closed, nil
}

func (s *Service) UpdateNotes(ctx context.Context, req domain.UpdateNotesRequest) (domain.Assignment, error) {
	assignmentID, err := parseID(req.AssignmentID)
	if err != nil {
		return domain.Assignment{}, domain.ErrInvalidID
	}

	assignment, err := s.repo.FindByID(ctx, s.db, assignmentID)
	if err != nil {
		return domain.Assignment{}, err
	}
	if assignment == nil {
		return domain.Assignment{}, domain.ErrAssignmentNotFound
	}

	assignment.Notes = strings.TrimSpace(req.Notes)
	assignment.UpdatedAt = s.clock.Now()
	if err := s.repo.Save(ctx, s.db, assignment); err != nil {
		return domain.Assignment{}, err
	}
	return *assignment, nil
}

// Delete removes the history row outright. A still-current record is
// unwound first so the occupant count stays honest.
func (s *Service) Delete(ctx context.Context, id string) error {
	assignmentID, err := parseID(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assignment, err := s.repo.FindByID(ctx, tx, assignmentID)
		if err != nil {
			return err
		}
		if assignment == nil {
			return domain.ErrAssignmentNotFound
		}

		if assignment.IsCurrent {
			if err := s.detach(ctx, tx, assignment, s.clock.Now()); err != nil {
				return err
			}
		}
		return s.repo.Delete(ctx, tx, assignment.ID)
	})
}

// detach releases the assignment's seat: apartment count down, status
// reverted when under capacity, employee link cleared if it still points
// at this apartment.
func (s *Service) detach(ctx context.Context, tx *gorm.DB, assignment *domain.Assignment, now time.Time) error {
	apartment, err := s.apartmentRepo.FindByIDForUpdate(ctx, tx, assignment.ApartmentID)
	if err != nil {
		return err
	}
	if apartment != nil {
		releaseOccupant(apartment)
		apartment.UpdatedAt = now
		if err := s.apartmentRepo.Save(ctx, tx, apartment); err != nil {
			return err
		}
	}

	employee, err := s.employeeRepo.FindByID(ctx, tx, assignment.EmployeeID)
	if err != nil {
		return err
	}
	if employee != nil && employee.ApartmentID != nil && *employee.ApartmentID == assignment.ApartmentID {
		employee.ApartmentID = nil
		employee.UpdatedAt = now
		if err := s.employeeRepo.Save(ctx, tx, employee); err != nil {
			return err
		}
	}
	return nil
}

// Unassign is the link-level removal: it verifies the pair, closes the
// employee's current record dated today and releases the seat. Unlike the
// record-level paths the status only reverts once the apartment is empty.
func (s *Service) Unassign(ctx context.Context, req domain.UnassignRequest) error {
	apartmentID, err := parseID(req.ApartmentID)
	if err != nil {
		return domain.ErrInvalidID
	}
	employeeID, err := parseID(req.EmployeeID)
	if err != nil {
		return domain.ErrInvalidID
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		apartment, err := s.apartmentRepo.FindByIDForUpdate(ctx, tx, apartmentID)
		if err != nil {
			return err
		}
		if apartment == nil {
			return domain.ErrApartmentNotFound
		}

		employee, err := s.employeeRepo.FindByID(ctx, tx, employeeID)
		if err != nil {
			return err
		}
		if employee == nil {
			return domain.ErrEmployeeNotFound
		}
		if employee.ApartmentID == nil || *employee.ApartmentID != apartment.ID {
			return domain.ErrEmployeeNotInApartment
		}

		now := s.clock.Now()
		if prior, err := s.repo.FindCurrentByEmployee(ctx, tx, employee.ID); err != nil {
			return err
		} else if prior != nil && prior.ApartmentID == apartment.ID {
			moveOut := dateOnly(now)
			prior.MoveOutDate = &moveOut
			prior.IsCurrent = false
			prior.UpdatedAt = now
			if err := s.repo.Save(ctx, tx, prior); err != nil {
				return err
			}
		}

		if apartment.CurrentOccupants > 0 {
			apartment.CurrentOccupants--
		}
		if apartment.CurrentOccupants == 0 {
			apartment.Status = aptdomain.StatusAvailable
		}
		apartment.UpdatedAt = now
		if err := s.apartmentRepo.Save(ctx, tx, apartment); err != nil {
			return err
		}

		employee.ApartmentID = nil
		employee.UpdatedAt = now
		return s.employeeRepo.Save(ctx, tx, employee)
	})
}

// PreviewCost quotes a prospective move without touching any row. The
// quote uses the occupant count as it would be after the move, so a
// preview and the Assign that follows agree.
func (s *Service) PreviewCost(ctx context.Context, req domain.PreviewCostRequest) (domain.CostPreview, error) {
	apartmentID, err := parseID(req.ApartmentID)
	if err != nil {
		return domain.CostPreview{}, domain.ErrInvalidID
	}
	employeeID, err := parseID(req.EmployeeID)
	if err != nil {
		return domain.CostPreview{}, domain.ErrInvalidID
	}
	if req.MoveInDate.IsZero() {
		return domain.CostPreview{}, domain.ErrInvalidMoveInDate
	}
	moveIn := dateOnly(req.MoveInDate)

	apartment, err := s.apartmentRepo.FindByID(ctx, s.db, apartmentID)
	if err != nil {
		return domain.CostPreview{}, err
	}
	if apartment == nil {
		return domain.CostPreview{}, domain.ErrApartmentNotFound
	}

	employee, err := s.employeeRepo.FindByID(ctx, s.db, employeeID)
	if err != nil {
		return domain.CostPreview{}, err
	}
	if employee == nil {
		return domain.CostPreview{}, domain.ErrEmployeeNotFound
	}

	futureOccupants := apartment.CurrentOccupants
	if employee.ApartmentID == nil || *employee.ApartmentID != apartment.ID {
		futureOccupants++
	}

	costs, err := s.costs(apartment, futureOccupants, moveIn, req.CustomMonthlyRate)
	if err != nil {
		return domain.CostPreview{}, err
	}

	return domain.CostPreview{
		Apartment: domain.ApartmentSummary{
			ID:               apartment.ID,
			Name:             apartment.Name,
			PricingPolicy:    apartment.PricingPolicy,
			Capacity:         apartment.Capacity,
			CurrentOccupants: apartment.CurrentOccupants,
			FutureOccupants:  futureOccupants,
		},
		Employee: domain.EmployeeSummary{
			ID:           employee.ID,
			EmployeeCode: employee.EmployeeCode,
			FullName:     employee.FullNameRoman,
		},
		MoveInDate: moveIn.Format("2006-01-02"),
		Costs:      costs,
	}, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Assignment, error) {
	assignmentID, err := parseID(id)
	if err != nil {
		return domain.Assignment{}, domain.ErrInvalidID
	}

	assignment, err := s.repo.FindByID(ctx, s.db, assignmentID)
	if err != nil {
		return domain.Assignment{}, err
	}
	if assignment == nil {
		return domain.Assignment{}, domain.ErrAssignmentNotFound
	}
	return *assignment, nil
}

func (s *Service) List(ctx context.Context, req domain.ListAssignmentRequest) (domain.ListAssignmentResponse, error) {
	var filter domain.ListAssignmentFilter
	if req.ApartmentID != "" {
		id, err := parseID(req.ApartmentID)
		if err != nil {
			return domain.ListAssignmentResponse{}, domain.ErrInvalidID
		}
		filter.ApartmentID = &id
	}
	if req.EmployeeID != "" {
		id, err := parseID(req.EmployeeID)
		if err != nil {
			return domain.ListAssignmentResponse{}, domain.ErrInvalidID
		}
		filter.EmployeeID = &id
	}
	filter.IsCurrent = req.IsCurrent

	assignments, total, err := s.repo.List(ctx, s.db, filter, req.Pagination)
	if err != nil {
		return domain.ListAssignmentResponse{}, err
	}

	return domain.ListAssignmentResponse{
		PageInfo:    pagination.BuildPageInfo(total, req.Pagination),
		Assignments: assignments,
	}, nil
}

func (s *Service) costs(
	apartment *aptdomain.Apartment,
	occupants int,
	moveIn time.Time,
	customRate *decimal.Decimal,
) (rentcalc.AssignmentCostResult, error) {
	return rentcalc.AssignmentCosts(rentcalc.AssignmentCostInput{
		MonthlyRent:        apartment.MonthlyRent,
		Deposit:            apartment.Deposit,
		KeyMoney:           apartment.KeyMoney,
		ManagementFee:      apartment.ManagementFee,
		ParkingFee:         apartment.ParkingFee,
		UtilitiesIncluded:  apartment.UtilitiesIncluded,
		ParkingIncluded:    apartment.ParkingIncluded,
		EstimatedUtilities: s.estimatedUtilities,
		PricingPolicy:      apartment.PricingPolicy,
		OccupantCount:      occupants,
		MoveInDate:         moveIn,
		CustomMonthlyRate:  customRate,
	})
}

func releaseOccupant(apartment *aptdomain.Apartment) {
	if apartment.CurrentOccupants > 0 {
		apartment.CurrentOccupants--
	}
	if apartment.CurrentOccupants < apartment.Capacity {
		apartment.Status = aptdomain.StatusAvailable
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func parseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(value))
}
