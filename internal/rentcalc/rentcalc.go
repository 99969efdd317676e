// Package rentcalc computes assignment pricing: day-level proration for
// partial first months, per-person splits under shared or fixed pricing,
// monthly cost breakdowns and move-in costs. All functions are pure;
// amounts are quantized to two decimal places half-up at the end of each
// sub-computation, never on intermediate daily rates.
package rentcalc

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidDateRange = errors.New("invalid_date_range")
	ErrZeroOccupants    = errors.New("zero_occupants")
)

// PricingPolicy selects how apartment charges are split across occupants.
type PricingPolicy string

const (
	// PolicyShared divides the apartment totals evenly across occupants.
	PolicyShared PricingPolicy = "shared"
	// PolicyFixed charges the configured amounts per person regardless of
	// occupancy.
	PolicyFixed PricingPolicy = "fixed"
)

func (p PricingPolicy) Valid() bool {
	return p == PolicyShared || p == PolicyFixed
}

// DefaultEstimatedUtilities is the fallback monthly utilities estimate
// applied when utilities are not included in the rent.
var DefaultEstimatedUtilities = decimal.NewFromInt(8000)

var eleven = decimal.NewFromInt(11)

// ProrationResult itemizes a first-month (or partial-stay) charge.
type ProrationResult struct {
	FullMonthRent    decimal.Decimal `json:"full_month_rent"`
	ProratedRent     decimal.Decimal `json:"prorated_rent"`
	DaysOccupied     int             `json:"days_occupied"`
	TotalDaysInMonth int             `json:"total_days_in_month"`
	IsFullMonth      bool            `json:"is_full_month"`
	DailyRate        decimal.Decimal `json:"daily_rate"`
}

// Proration computes the charge for the calendar month containing moveIn.
// Days are counted inclusive of both the move-in and move-out day. The
// returned daily rate is quantized for display only; the prorated amount
// is computed from the unrounded rate.
func Proration(monthlyAmount decimal.Decimal, moveIn time.Time, moveOut *time.Time) (ProrationResult, error) {
	if moveOut != nil && moveOut.Before(moveIn) {
		return ProrationResult{}, ErrInvalidDateRange
	}

	totalDays := daysInMonth(moveIn)
	dailyRate := monthlyAmount.Div(decimal.NewFromInt(int64(totalDays)))

	if moveIn.Day() == 1 && (moveOut == nil || moveOut.Day() == totalDays) {
		return ProrationResult{
			FullMonthRent:    monthlyAmount,
			ProratedRent:     monthlyAmount,
			DaysOccupied:     totalDays,
			TotalDaysInMonth: totalDays,
			IsFullMonth:      true,
			DailyRate:        dailyRate.Round(2),
		}, nil
	}

	var daysOccupied int
	if moveOut != nil && moveOut.Year() == moveIn.Year() && moveOut.Month() == moveIn.Month() {
		daysOccupied = moveOut.Day() - moveIn.Day() + 1
	} else {
		daysOccupied = totalDays - moveIn.Day() + 1
	}

	prorated := dailyRate.Mul(decimal.NewFromInt(int64(daysOccupied))).Round(2)

	return ProrationResult{
		FullMonthRent:    monthlyAmount,
		ProratedRent:     prorated,
		DaysOccupied:     daysOccupied,
		TotalDaysInMonth: totalDays,
		IsFullMonth:      false,
		DailyRate:        dailyRate.Round(2),
	}, nil
}

// PerPersonRent splits a total under the given policy. Under shared
// pricing a non-positive occupant count returns the amount undivided; this
// is a defensive fallback for display paths, not a billing rule. Fixed
// pricing treats the amount as already per-person.
func PerPersonRent(totalAmount decimal.Decimal, occupants int, policy PricingPolicy) decimal.Decimal {
	if policy != PolicyShared {
		return totalAmount
	}
	if occupants <= 0 {
		return totalAmount
	}
	return totalAmount.Div(decimal.NewFromInt(int64(occupants))).Round(2)
}

// MonthlyCost is the per-person recurring cost breakdown.
type MonthlyCost struct {
	BaseRent      decimal.Decimal `json:"base_rent"`
	ManagementFee decimal.Decimal `json:"management_fee"`
	Utilities     decimal.Decimal `json:"utilities"`
	Parking       decimal.Decimal `json:"parking"`
	Total         decimal.Decimal `json:"total_monthly"`
}

// MonthlyCostBreakdown assembles the recurring monthly total. Each
// reported field is quantized independently, but the total is summed from
// the unquantized components and quantized once so rounding error does
// not compound.
func MonthlyCostBreakdown(
	baseRent decimal.Decimal,
	managementFee decimal.Decimal,
	utilitiesIncluded bool,
	parkingIncluded bool,
	parkingFee decimal.Decimal,
	estimatedUtilities decimal.Decimal,
) MonthlyCost {
	utilities := decimal.Zero
	if !utilitiesIncluded {
		utilities = estimatedUtilities
	}

	parking := decimal.Zero
	if !parkingIncluded {
		parking = parkingFee
	}

	total := baseRent.Add(managementFee).Add(utilities).Add(parking)

	return MonthlyCost{
		BaseRent:      baseRent.Round(2),
		ManagementFee: managementFee.Round(2),
		Utilities:     utilities.Round(2),
		Parking:       parking.Round(2),
		Total:         total.Round(2),
	}
}

// InitialCosts is the one-time move-in cost breakdown.
type InitialCosts struct {
	Deposit        decimal.Decimal `json:"deposit"`
	KeyMoney       decimal.Decimal `json:"key_money"`
	FirstMonthRent decimal.Decimal `json:"first_month_rent"`
	Total          decimal.Decimal `json:"total_initial"`
}

// InitialCostBreakdown sums deposit, key money and the (possibly
// prorated) first month.
func InitialCostBreakdown(deposit, keyMoney, firstMonthRent decimal.Decimal) InitialCosts {
	total := deposit.Add(keyMoney).Add(firstMonthRent)

	return InitialCosts{
		Deposit:        deposit.Round(2),
		KeyMoney:       keyMoney.Round(2),
		FirstMonthRent: firstMonthRent.Round(2),
		Total:          total.Round(2),
	}
}

// AssignmentCostInput carries the apartment financials and move-in terms
// for a full cost computation.
type AssignmentCostInput struct {
	MonthlyRent        decimal.Decimal
	Deposit            decimal.Decimal
	KeyMoney           decimal.Decimal
	ManagementFee      decimal.Decimal
	ParkingFee         decimal.Decimal
	UtilitiesIncluded  bool
	ParkingIncluded    bool
	EstimatedUtilities decimal.Decimal
	PricingPolicy      PricingPolicy
	// OccupantCount is the count after the new occupant is added.
	OccupantCount     int
	MoveInDate        time.Time
	CustomMonthlyRate *decimal.Decimal
}

// AssignmentCostResult is the fully itemized quote for one assignment.
type AssignmentCostResult struct {
	PricingPolicy       PricingPolicy   `json:"pricing_policy"`
	IsCustomRate        bool            `json:"is_custom_rate"`
	BaseRentPerPerson   decimal.Decimal `json:"base_rent_per_person"`
	MonthlyCost         MonthlyCost     `json:"monthly_costs"`
	ProratedFirstMonth  ProrationResult `json:"prorated_first_month"`
	InitialCosts        InitialCosts    `json:"initial_costs"`
	AnnualCostFirstYear decimal.Decimal `json:"annual_cost_first_year"`
	OccupantCount       int             `json:"occupants"`
}

// AssignmentCosts combines the calculators into one quote: per-person base
// rent, monthly breakdown, prorated first month, initial costs and a
// first-year estimate. The first year counts the prorated first month
// plus eleven full months, a fixed convention rather than a calendar
// walk.
//
// A custom rate replaces the per-person base rent only; management fee,
// parking, deposit and key money are still divided per policy. Because
// those divisions are applied directly, a non-positive occupant count
// under shared pricing fails with ErrZeroOccupants instead of falling
// back the way PerPersonRent does.
func AssignmentCosts(in AssignmentCostInput) (AssignmentCostResult, error) {
	if in.PricingPolicy == PolicyShared && in.OccupantCount <= 0 {
		return AssignmentCostResult{}, ErrZeroOccupants
	}

	baseRent := PerPersonRent(in.MonthlyRent, in.OccupantCount, in.PricingPolicy)
	if in.CustomMonthlyRate != nil {
		baseRent = *in.CustomMonthlyRate
	}

	monthly := MonthlyCostBreakdown(
		baseRent,
		in.splitShared(in.ManagementFee),
		in.UtilitiesIncluded,
		in.ParkingIncluded,
		in.splitShared(in.ParkingFee),
		in.EstimatedUtilities,
	)

	prorated, err := Proration(monthly.Total, in.MoveInDate, nil)
	if err != nil {
		return AssignmentCostResult{}, err
	}

	initial := InitialCostBreakdown(
		in.splitShared(in.Deposit),
		in.splitShared(in.KeyMoney),
		prorated.ProratedRent,
	)

	annual := initial.Total.Add(monthly.Total.Mul(eleven)).Round(2)

	return AssignmentCostResult{
		PricingPolicy:       in.PricingPolicy,
		IsCustomRate:        in.CustomMonthlyRate != nil,
		BaseRentPerPerson:   baseRent.Round(2),
		MonthlyCost:         monthly,
		ProratedFirstMonth:  prorated,
		InitialCosts:        initial,
		AnnualCostFirstYear: annual,
		OccupantCount:       in.OccupantCount,
	}, nil
}

// splitShared divides an apartment-level amount across occupants under
// shared pricing, leaving it unrounded for downstream quantization.
func (in AssignmentCostInput) splitShared(amount decimal.Decimal) decimal.Decimal {
	if in.PricingPolicy != PolicyShared {
		return amount
	}
	return amount.Div(decimal.NewFromInt(int64(in.OccupantCount)))
}

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
