// Package domain contains persistence models for company housing units.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/uns-hr/shataku/internal/rentcalc"
	"gorm.io/datatypes"
)

// ApartmentStatus represents lifecycle states for an apartment.
type ApartmentStatus string

const (
	StatusAvailable   ApartmentStatus = "available"
	StatusOccupied    ApartmentStatus = "occupied"
	StatusMaintenance ApartmentStatus = "maintenance"
	StatusReserved    ApartmentStatus = "reserved"
)

func (s ApartmentStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusMaintenance, StatusReserved:
		return true
	}
	return false
}

// Apartment is a leased housing unit. Occupancy fields (CurrentOccupants,
// occupancy-driven Status flips) are mutated only by the assignment
// service, inside its transaction.
type Apartment struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	ApartmentCode string       `gorm:"type:text;not null;uniqueIndex" json:"apartment_code"`
	Name          string       `gorm:"type:text;not null" json:"name"`
	Address       string       `gorm:"type:text;not null" json:"address"`
	City          string       `gorm:"type:text" json:"city"`
	Prefecture    string       `gorm:"type:text" json:"prefecture"`
	PostalCode    string       `gorm:"type:text" json:"postal_code"`
	BuildingName  string       `gorm:"type:text" json:"building_name"`
	RoomNumber    string       `gorm:"type:text" json:"room_number"`
	Floor         *int         `gorm:"" json:"floor"`
	NumRooms      int          `gorm:"not null;default:1" json:"num_rooms"`

	MonthlyRent       decimal.Decimal       `gorm:"type:numeric(10,2)" json:"monthly_rent"`
	Deposit           decimal.Decimal       `gorm:"type:numeric(10,2)" json:"deposit"`
	KeyMoney          decimal.Decimal       `gorm:"type:numeric(10,2)" json:"key_money"`
	ManagementFee     decimal.Decimal       `gorm:"type:numeric(10,2)" json:"management_fee"`
	ParkingFee        decimal.Decimal       `gorm:"type:numeric(10,2)" json:"parking_fee"`
	UtilitiesIncluded bool                  `gorm:"not null;default:false" json:"utilities_included"`
	InternetIncluded  bool                  `gorm:"not null;default:false" json:"internet_included"`
	ParkingIncluded   bool                  `gorm:"not null;default:false" json:"parking_included"`
	PricingPolicy     rentcalc.PricingPolicy `gorm:"type:text;not null;default:shared" json:"pricing_policy"`

	NearestStation string     `gorm:"type:text" json:"nearest_station"`
	WalkingMinutes *int       `gorm:"" json:"walking_minutes"`
	ContractStart  *time.Time `gorm:"type:date" json:"contract_start_date"`
	ContractEnd    *time.Time `gorm:"type:date" json:"contract_end_date"`
	LandlordName   string     `gorm:"type:text" json:"landlord_name"`
	LandlordPhone  string     `gorm:"type:text" json:"landlord_phone"`

	Status           ApartmentStatus `gorm:"type:text;not null;default:available" json:"status"`
	Capacity         int             `gorm:"not null;default:1" json:"capacity"`
	CurrentOccupants int             `gorm:"not null;default:0" json:"current_occupants"`

	Notes     string         `gorm:"type:text" json:"notes"`
	Photos    datatypes.JSON `gorm:"type:jsonb" json:"photos"`
	Amenities datatypes.JSON `gorm:"type:jsonb" json:"amenities"`
	IsActive  bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Apartment) TableName() string { return "apartments" }
