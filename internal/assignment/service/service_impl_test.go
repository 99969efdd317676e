package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	aptdomain "github.com/uns-hr/shataku/internal/apartment/domain"
	aptrepo "github.com/uns-hr/shataku/internal/apartment/repository"
	"github.com/uns-hr/shataku/internal/assignment/domain"
	"github.com/uns-hr/shataku/internal/assignment/repository"
	"github.com/uns-hr/shataku/internal/clock"
	"github.com/uns-hr/shataku/internal/config"
	empdomain "github.com/uns-hr/shataku/internal/employee/domain"
	emprepo "github.com/uns-hr/shataku/internal/employee/repository"
	"github.com/uns-hr/shataku/internal/rentcalc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db    *gorm.DB
	svc   domain.Service
	clock *clock.FakeClock
	genID *snowflake.Node
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&aptdomain.Apartment{},
		&empdomain.Employee{},
		&domain.Assignment{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2024, 4, 10, 9, 0, 0, 0, time.UTC))
	svc := NewService(ServiceParam{
		Config: config.Config{EstimatedUtilities: decimal.NewFromInt(8000)},
		DB:     db,
		Log:    zap.NewNop(),
		GenID:  node,
		Clock:  fake,

		Repo:          repository.Provide(),
		ApartmentRepo: aptrepo.Provide(),
		EmployeeRepo:  emprepo.Provide(),
	})

	return &fixture{db: db, svc: svc, clock: fake, genID: node}
}

func (f *fixture) createApartment(t *testing.T, capacity int, mutate func(*aptdomain.Apartment)) *aptdomain.Apartment {
	t.Helper()
	apartment := &aptdomain.Apartment{
		ID:            f.genID.Generate(),
		ApartmentCode: "AP-" + f.genID.Generate().String(),
		Name:          "Sakura Heights 201",
		Address:       "1-2-3 Minami, Toyota",
		MonthlyRent:   decimal.NewFromInt(60000),
		Deposit:       decimal.NewFromInt(60000),
		KeyMoney:      decimal.NewFromInt(30000),
		ManagementFee: decimal.NewFromInt(5000),
		ParkingFee:    decimal.NewFromInt(5000),
		PricingPolicy: rentcalc.PolicyShared,
		Status:        aptdomain.StatusAvailable,
		Capacity:      capacity,
		IsActive:      true,
	}
	if mutate != nil {
		mutate(apartment)
	}
	require.NoError(t, f.db.Create(apartment).Error)
	return apartment
}

func (f *fixture) createEmployee(t *testing.T) *empdomain.Employee {
	t.Helper()
	id := f.genID.Generate()
	employee := &empdomain.Employee{
		ID:            id,
		EmployeeCode:  "EMP-" + id.String(),
		FullNameRoman: "Nguyen Van A",
		ContractType:  empdomain.ContractDispatch,
		Status:        empdomain.StatusActive,
		IsActive:      true,
	}
	require.NoError(t, f.db.Create(employee).Error)
	return employee
}

func (f *fixture) reloadApartment(t *testing.T, id snowflake.ID) aptdomain.Apartment {
	t.Helper()
	var apartment aptdomain.Apartment
	require.NoError(t, f.db.Where("id = ?", id).First(&apartment).Error)
	return apartment
}

func (f *fixture) reloadEmployee(t *testing.T, id snowflake.ID) empdomain.Employee {
	t.Helper()
	var employee empdomain.Employee
	require.NoError(t, f.db.Where("id = ?", id).First(&employee).Error)
	return employee
}

func (f *fixture) currentAssignments(t *testing.T, apartmentID snowflake.ID) int64 {
	t.Helper()
	var total int64
	require.NoError(t, f.db.Model(&domain.Assignment{}).
		Where("apartment_id = ? AND is_current = ?", apartmentID, true).
		Count(&total).Error)
	return total
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAssignComputesChargeAndDeposit(t *testing.T) {
	f := newFixture(t)
	apartment := f.createApartment(t, 2, nil)
	employee := f.createEmployee(t)

	created, err := f.svc.Assign(context.Background(), domain.AssignRequest{
		ApartmentID: apartment.ID.String(),
		EmployeeID:  employee.ID.String(),
		MoveInDate:  day(2024, 4, 1),
	})
	require.NoError(t, err)

	// Sole occupant: 60000 + 5000 + 8000 + 5000.
	assert.True(t, created.MonthlyCharge.Equal(decimal.NewFromInt(78000)),
		"monthly charge %s", created.MonthlyCharge)
	assert.True(t, created.DepositPaid.Equal(decimal.NewFromInt(60000)),
		"deposit %s", created.DepositPaid)
	assert.True(t, created.IsCurrent)
	assert.Nil(t, created.MoveOutDate)

	got := f.reloadApartment(t, apartment.ID)
	assert.Equal(t, 1, got.CurrentOccupants)
	assert.Equal(t, aptdomain.StatusAvailable, got.Status)

	housed := f.reloadEmployee(t, employee.ID)
	require.NotNil(t, housed.ApartmentID)
	assert.Equal(t, apartment.ID, *housed.ApartmentID)
}

func TestAssignSecondOccupantSplitsCosts(t *testing.T) {
	f := newFixture(t)
	apartment := f.createApartment(t, 2, nil)
	first := f.createEmployee(t)
	second := f.createEmployee(t)

	_, err := f.svc.Assign(context.Background(), domain.AssignRequest{
		ApartmentID: apartment.ID.String(),
		EmployeeID:  first.ID.String(),
		MoveInDate:  day(2024, 4, 1),
	})
	require.NoError(t, err)

	created, err := f.svc.Assign(context.Background(), domain.AssignRequest{
		ApartmentID: apartment.ID.String(),
		EmployeeID:  second.ID.String(),
		MoveInDate:  day(2024, 4, 1),
	})
	require.NoError(t, err)

	// Two sharers: 30000 + 2500 + 8000 + 2500.
	assert.True(t, created.MonthlyCharge.Equal(decimal.NewFromInt(43000)),
		"monthly charge %s", created.MonthlyCharge)
	assert.True(t, created.DepositPaid.Equal(decimal.NewFromInt(30000)),
		"deposit %s", created.DepositPaid)

	got := f.reloadApartment(t, apartment.ID)
	assert.Equal(t, 2, got.CurrentOccupants)
	assert.Equal(t, aptdomain.StatusOccupied, got.Status)
}

func TestAssignAtCapacityFails(t *testing.T) {
	f := newFixture(t)
	apartment := f.createApartment(t, 4, nil)

	for i := 0; i < 4; i++ {
		employee := f.createEmployee(t)
		_, err := f.svc.Assign(context.Background(), domain.AssignRequest{
			ApartmentID: apartment.ID.String(),
			EmployeeID:  employee.ID.String(),
			MoveInDate:  day(2024, 4, 1),
		})
		require.NoError(t, err)
	}

	fifth := f.createEmployee(t)
	_, err := f.svc.Assign(context.Background(), domain.AssignRequest{
		ApartmentID: apartment.ID.String(),
		EmployeeID:  fifth.ID.String(),
		MoveInDate:  day(2024, 4, 1),
	})
	require.ErrorIs(t, err, domain.ErrApartmentAtCapacity)

	got := f.reloadApartment(t, apartment.ID)
	assert.Equal(t, 4, got.CurrentOccupants)
	assert.EqualValues(t, 4, f.currentAssignments(t, apartment.ID))

	unhoused := f.reloadEmployee(t, fifth.ID)
	assert.Nil(t, unhoused.ApartmentID)
}

func TestAssignTransferMovesOccupant(t *testing.T) {
	f := newFixture(t)
	from := f.createApartment(t, 2, nil)
	to := f.createApartment(t, 2, nil)
	employee := f.createEmployee(t)

	first, err := f.svc.Assign(context.Background(), domain.AssignRequest{
		ApartmentID: from.ID.String(),
		EmployeeID:  employee.ID.String(),
		MoveInDate:  day(2024, 4, 1),
	})
	require.NoError(t, err)

	moved, err := f.svc.Assign(context.Background(), domain.AssignRequest{
		ApartmentID: to.ID.String(),
		EmployeeID:  employee.ID.String(),
		MoveInDate:  day(2024, 6, 1),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, f.reloadApartment(t, from.ID).CurrentOccupants)
	assert.Equal(t, 1, f.reloadApartment(t, to.ID).CurrentOccupants)
	assert.EqualValues(t, 0, f.currentAssignments(t, from.ID))
	assert.EqualValues(t, 1, f.currentAssignments(t, to.ID))

	var prior domain.Assignment
	require.NoError(t, f.db.Where("id = ?", first.ID).First(&prior).Error)
	assert.False(t, prior.IsCurrent)
	require.NotNil(t, prior.MoveOutDate)
	assert.True(t, prior.MoveOutDate.Equal(moved.MoveInDate))

	housed := f.reloadEmployee(t, employee.ID)
	require.NotNil(t, housed.ApartmentID)
	assert.Equal(t, to.ID, *housed.ApartmentID)
}

func TestAssignSameApartmentKeepsCount(t *testing.T) {
	f := newFixture(t)
	apartment := f.createApartment(t, 2, nil)
	employee := f.createEmployee(t)

	_, err := f.svc.Assign(context.Background(), domain.AssignRequest{
		ApartmentID: apartment.ID.String(),
		EmployeeID:  employee.ID.String(),
		MoveInDate:  day(2024, 4, 1),
	})
	require.NoError(t, err)

	_, err = f.svc.Assign(context.Background(), domain.AssignRequest{
		ApartmentID: apartment.ID.String(),
		EmployeeID:  employee.ID.String(),
		MoveInDate:  day(2024, 7, 1),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, f.reloadApartment(t, apartment.ID).CurrentOccupants)
	assert.EqualValues(t, 1, f.currentAssignments(t, apartment.ID))
}

func TestAssignCustomRateSkipsCalculator(t *testing.T) {
	f := newFixture(t)
	apartment := f.createApartment(t, 2, nil)
	employee := f.createEmployee(t)

	rate := decimal.NewFromInt(50000)
	created, err := f.svc.Assign(context.Background(), domain.AssignRequest{
		ApartmentID:       apartment.ID.String(),
		EmployeeID:        employee.ID.String(),
		MoveInDate:        day(2024, 4, 1),
		CustomMonthlyRate: &rate,
	})
	require.NoError(t, err)

	assert.True(t, created.MonthlyCharge.Equal(rate))
	require.NotNil(t, created.CustomMonthlyRate)
	assert.True(t, created.CustomMonthlyRate.Equal(rate))
	assert.True(t, created.DepositPaid.IsZero())
}

func TestAssignUnknownTargetsFail(t *testing.T) {
	f := newFixture(t)
	apartment := f.createApartment(t, 2, nil)
	employee := f.createEmployee(t)

	_, err := f.svc.Assign(context.Background(), domain.AssignRequest{
		ApartmentID: f.genID.Generate().String(),
		EmployeeID:  employee.ID.String(),
		MoveInDate:  day(2024, 4, 1),
	})
	require.ErrorIs(t, err, domain.ErrApartmentNotFound)

	_, err = f.svc.Assign(context.Background(), domain.AssignRequest{
		ApartmentID: apartment.ID.String(),
		EmployeeID:  f.genID.Generate().String(),
		MoveInDate:  day(2024, 4, 1),
	})
	require.ErrorIs(t, err, domain.ErrEmployeeNotFound)

	_, err = f.svc.Assign(context.Background(), domain.AssignRequest{
		ApartmentID: "not-a-number",
		EmployeeID:  employee.ID.String(),
		MoveInDate:  day(2024, 4, 1),
	})
	require.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestTerminateReleasesSeat(t *testing.T) {
	f := newFixture(t)
	apartment := f.createApartment(t, 1, nil)
	employee := f.createEmployee(t)

	created, err := f.svc.Assign(context.Background(), domain.AssignRequest{
		ApartmentID: apartment.ID.String(),
		EmployeeID:  employee.ID.String(),
		MoveInDate:  day(2024, 4, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, aptdomain.StatusOccupied, f.reloadApartment(t, apartment.ID).Status)

	closed, err := f.svc.Terminate(context.Background(), domain.TerminateRequest{
		AssignmentID: created.ID.String(),
		MoveOutDate:  day(2024, 9, 30),
	})
	require.NoError(t, err)
	assert.False(t, closed.IsCurrent)
	require.NotNil(t, closed.MoveOutDate)
	assert.True(t, closed.MoveOutDate.Equal(day(2024, 9, 30)))

	got := f.reloadApartment(t, apartment.ID)
	assert.Equal(t, 0, got.CurrentOccupants)
	assert.Equal(t, aptdomain.StatusAvailable, got.Status)
	assert.Nil(t, f.reloadEmployee(t, employee.ID).ApartmentID)
}

func TestTerminateTwiceFails(t *testing.T) {
	f := newFixture(t)
	apartment := f.createApartment(t, 1, nil)
	employee := f.createEmployee(t)

	created, err := f.svc.Assign(context.Background(), domain.AssignRequest{
		ApartmentID: apartment.ID.String(),
		EmployeeID:  employee.ID.String(),
		MoveInDate:  day(2024, 4, 1),
	})
	require.NoError(t, err)

	_, err = f.svc.Terminate(context.Background(), domain.TerminateRequest{
		AssignmentID: created.ID.String(),
		MoveOutDate:  day(2024, 9, 30),
	})
	require.NoError(t, err)

	_, err = f.svc.Terminate(context.Background(), domain.TerminateRequest{
		AssignmentID: created.ID.String(),
		MoveOutDate:  day(2024, 10, 31),
	})
	require.ErrorIs(t, err, domain.ErrAssignmentAlreadyClosed)

	// The count must not double-decrement.
	assert.Equal(t, 0, f.reloadApartment(t, apartment.ID).CurrentOccupants)
}

func TestTerminateBeforeMoveInFails(t *testing.T) {
	f := newFixture(t)
	apartment := f.createApartment(t, 1, nil)
	employee := f.createEmployee(t)

	created, err := f.svc.Assign(context.Background(), domain.AssignRequest{
		ApartmentID: apartment.ID.String(),
		EmployeeID:  employee.ID.String(),
		MoveInDate:  day(2024, 4, 15),
	})
	require.NoError(t, err)

	_, err = f.svc.Terminate(context.Background(), domain.TerminateRequest{
		AssignmentID: created.ID.String(),
		MoveOutDate:  day(2024, 4, 1),
	})
	require.ErrorIs(t, err, domain.ErrInvalidDateRange)
	assert.Equal(t, 1, f.reloadApartment(t, apartment.ID).CurrentOccupants)
}

func TestRepriceRecomputesCharge(t *testing.T) {
	f := newFixture(t)
	apartment := f.createApartment(t, 2, nil)
	employee := f.createEmployee(t)

	created, err := f.svc.Assign(context.Background(), domain.AssignRequest{
		ApartmentID: apartment.ID.String(),
		EmployeeID:  employee.ID.String(),
		MoveInDate:  day(2024, 4, 1),
	})
	require.NoError(t, err)

	updated, err := f.svc.Reprice(context.Background(), domain.RepriceRequest{
		AssignmentID: created.ID.String(),
		NewRate:      decimal.NewFromInt(50000),
	})
	require.NoError(t, err)

	// Override replaces the base rent only: 50000 + 5000 + 8000 + 5000.
	assert.True(t, updated.MonthlyCharge.Equal(decimal.NewFromInt(68000)),
		"monthly charge %s", updated.MonthlyCharge)
	require.NotNil(t, updated.CustomMonthlyRate)
	assert.True(t, updated.CustomMonthlyRate.Equal(decimal.NewFromInt(50000)))
}

func TestDeleteCurrentUnwindsOccupancy(t *testing.T) {
	f := newFixture(t)
	apartment := f.createApartment(t, 1, nil)
	employee := f.createEmployee(t)

	created, err := f.svc.Assign(context.Background(), domain.AssignRequest{
		ApartmentID: apartment.ID.String(),
		EmployeeID:  employee.ID.String(),
		MoveInDate:  day(2024, 4, 1),
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(context.Background(), created.ID.String()))

	got := f.reloadApartment(t, apartment.ID)
	assert.Equal(t, 0, got.CurrentOccupants)
	assert.Equal(t, aptdomain.StatusAvailable, got.Status)
	assert.Nil(t, f.reloadEmployee(t, employee.ID).ApartmentID)

	var total int64
	require.NoError(t, f.db.Model(&domain.Assignment{}).Count(&total).Error)
	assert.EqualValues(t, 0, total)
}

func TestDeleteClosedLeavesOccupancyAlone(t *testing.T) {
	f := newFixture(t)
	apartment := f.createApartment(t, 2, nil)
	first := f.createEmployee(t)
	second := f.createEmployee(t)

	closedOne, err := f.svc.Assign(context.Background(), domain.AssignRequest{
		ApartmentID: apartment.ID.String(),
		EmployeeID:  first.ID.String(),
		MoveInDate:  day(2024, 1, 1),
	})
	require.NoError(t, err)
	_, err = f.svc.Terminate(context.Background(), domain.TerminateRequest{
		AssignmentID: closedOne.ID.String(),
		MoveOutDate:  day(2024, 3, 31),
	})
	require.NoError(t, err)

	_, err = f.svc.Assign(context.Background(), domain.AssignRequest{
		ApartmentID: apartment.ID.String(),
		EmployeeID:  second.ID.String(),
		MoveInDate:  day(2024, 4, 1),
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(context.Background(), closedOne.ID.String()))
	assert.Equal(t, 1, f.reloadApartment(t, apartment.ID).CurrentOccupants)
	assert.EqualValues(t, 1, f.currentAssignments(t, apartment.ID))
}

func TestUnassignRequiresMatchingPair(t *testing.T) {
	f := newFixture(t)
	home := f.createApartment(t, 2, nil)
	other := f.createApartment(t, 2, nil)
	employee := f.createEmployee(t)

	_, err := f.svc.Assign(context.Background(), domain.AssignRequest{
		ApartmentID: home.ID.String(),
		EmployeeID:  employee.ID.String(),
		MoveInDate:  day(2024, 4, 1),
	})
	require.NoError(t, err)

	err = f.svc.Unassign(context.Background(), domain.UnassignRequest{
		ApartmentID: other.ID.String(),
		EmployeeID:  employee.ID.String(),
	})
	require.ErrorIs(t, err, domain.ErrEmployeeNotInApartment)

	err = f.svc.Unassign(context.Background(), domain.UnassignRequest{
		ApartmentID: home.ID.String(),
		EmployeeID:  employee.ID.String(),
	})
	require.NoError(t, err)

	got := f.reloadApartment(t, home.ID)
	assert.Equal(t, 0, got.CurrentOccupants)
	assert.Equal(t, aptdomain.StatusAvailable, got.Status)
	assert.Nil(t, f.reloadEmployee(t, employee.ID).ApartmentID)
	assert.EqualValues(t, 0, f.currentAssignments(t, home.ID))
}

func TestPreviewCostMatchesAssignAndMutatesNothing(t *testing.T) {
	f := newFixture(t)
	apartment := f.createApartment(t, 2, nil)
	sitting := f.createEmployee(t)
	candidate := f.createEmployee(t)

	_, err := f.svc.Assign(context.Background(), domain.AssignRequest{
		ApartmentID: apartment.ID.String(),
		EmployeeID:  sitting.ID.String(),
		MoveInDate:  day(2024, 4, 1),
	})
	require.NoError(t, err)

	preview, err := f.svc.PreviewCost(context.Background(), domain.PreviewCostRequest{
		ApartmentID: apartment.ID.String(),
		EmployeeID:  candidate.ID.String(),
		MoveInDate:  day(2024, 5, 16),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, preview.Apartment.CurrentOccupants)
	assert.Equal(t, 2, preview.Apartment.FutureOccupants)
	assert.Equal(t, "2024-05-16", preview.MoveInDate)

	again, err := f.svc.PreviewCost(context.Background(), domain.PreviewCostRequest{
		ApartmentID: apartment.ID.String(),
		EmployeeID:  candidate.ID.String(),
		MoveInDate:  day(2024, 5, 16),
	})
	require.NoError(t, err)
	assert.True(t, preview.Costs.MonthlyCost.Total.Equal(again.Costs.MonthlyCost.Total))
	assert.True(t, preview.Costs.AnnualCostFirstYear.Equal(again.Costs.AnnualCostFirstYear))

	// Preview must not touch any row.
	assert.Equal(t, 1, f.reloadApartment(t, apartment.ID).CurrentOccupants)
	assert.Nil(t, f.reloadEmployee(t, candidate.ID).ApartmentID)
	assert.EqualValues(t, 1, f.currentAssignments(t, apartment.ID))

	created, err := f.svc.Assign(context.Background(), domain.AssignRequest{
		ApartmentID: apartment.ID.String(),
		EmployeeID:  candidate.ID.String(),
		MoveInDate:  day(2024, 5, 16),
	})
	require.NoError(t, err)
	assert.True(t, created.MonthlyCharge.Equal(preview.Costs.MonthlyCost.Total),
		"assign charge %s, preview %s", created.MonthlyCharge, preview.Costs.MonthlyCost.Total)
}

func TestPreviewCostForSittingOccupantKeepsCount(t *testing.T) {
	f := newFixture(t)
	apartment := f.createApartment(t, 2, nil)
	employee := f.createEmployee(t)

	_, err := f.svc.Assign(context.Background(), domain.AssignRequest{
		ApartmentID: apartment.ID.String(),
		EmployeeID:  employee.ID.String(),
		MoveInDate:  day(2024, 4, 1),
	})
	require.NoError(t, err)

	preview, err := f.svc.PreviewCost(context.Background(), domain.PreviewCostRequest{
		ApartmentID: apartment.ID.String(),
		EmployeeID:  employee.ID.String(),
		MoveInDate:  day(2024, 6, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, preview.Apartment.FutureOccupants)
}

func TestOccupantCountTracksCurrentAssignments(t *testing.T) {
	f := newFixture(t)
	apartment := f.createApartment(t, 3, nil)
	var employees []*empdomain.Employee
	for i := 0; i < 3; i++ {
		employees = append(employees, f.createEmployee(t))
	}

	check := func() {
		t.Helper()
		got := f.reloadApartment(t, apartment.ID)
		assert.EqualValues(t, got.CurrentOccupants, f.currentAssignments(t, apartment.ID))
	}

	var ids []snowflake.ID
	for _, employee := range employees {
		created, err := f.svc.Assign(context.Background(), domain.AssignRequest{
			ApartmentID: apartment.ID.String(),
			EmployeeID:  employee.ID.String(),
			MoveInDate:  day(2024, 4, 1),
		})
		require.NoError(t, err)
		ids = append(ids, created.ID)
		check()
	}

	_, err := f.svc.Terminate(context.Background(), domain.TerminateRequest{
		AssignmentID: ids[0].String(),
		MoveOutDate:  day(2024, 8, 31),
	})
	require.NoError(t, err)
	check()

	require.NoError(t, f.svc.Delete(context.Background(), ids[1].String()))
	check()

	err = f.svc.Unassign(context.Background(), domain.UnassignRequest{
		ApartmentID: apartment.ID.String(),
		EmployeeID:  employees[2].ID.String(),
	})
	require.NoError(t, err)
	check()
}

func TestListFiltersByEmployeeAndCurrency(t *testing.T) {
	f := newFixture(t)
	apartment := f.createApartment(t, 2, nil)
	employee := f.createEmployee(t)

	first, err := f.svc.Assign(context.Background(), domain.AssignRequest{
		ApartmentID: apartment.ID.String(),
		EmployeeID:  employee.ID.String(),
		MoveInDate:  day(2024, 1, 1),
	})
	require.NoError(t, err)
	_, err = f.svc.Terminate(context.Background(), domain.TerminateRequest{
		AssignmentID: first.ID.String(),
		MoveOutDate:  day(2024, 3, 31),
	})
	require.NoError(t, err)

	_, err = f.svc.Assign(context.Background(), domain.AssignRequest{
		ApartmentID: apartment.ID.String(),
		EmployeeID:  employee.ID.String(),
		MoveInDate:  day(2024, 4, 1),
	})
	require.NoError(t, err)

	all, err := f.svc.List(context.Background(), domain.ListAssignmentRequest{
		EmployeeID: employee.ID.String(),
	})
	require.NoError(t, err)
	assert.Len(t, all.Assignments, 2)
	assert.EqualValues(t, 2, all.Total)

	current := true
	onlyCurrent, err := f.svc.List(context.Background(), domain.ListAssignmentRequest{
		EmployeeID: employee.ID.String(),
		IsCurrent:  &current,
	})
	require.NoError(t, err)
	require.Len(t, onlyCurrent.Assignments, 1)
	assert.True(t, onlyCurrent.Assignments[0].IsCurrent)
}

func TestAtMostOneCurrentPerEmployee(t *testing.T) {
	f := newFixture(t)
	a := f.createApartment(t, 2, nil)
	b := f.createApartment(t, 2, nil)
	c := f.createApartment(t, 2, nil)
	employee := f.createEmployee(t)

	for i, apartment := range []*aptdomain.Apartment{a, b, c, a} {
		_, err := f.svc.Assign(context.Background(), domain.AssignRequest{
			ApartmentID: apartment.ID.String(),
			EmployeeID:  employee.ID.String(),
			MoveInDate:  day(2024, time.Month(i+1), 1),
		})
		require.NoError(t, err)

		var total int64
		require.NoError(t, f.db.Model(&domain.Assignment{}).
			Where("employee_id = ? AND is_current = ?", employee.ID, true).
			Count(&total).Error)
		assert.EqualValues(t, 1, total)
	}
}
