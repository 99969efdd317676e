// Package domain contains the assignment history model and the lifecycle
// service contract.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Assignment is one employee's stay in one apartment. Records are
// append-mostly: a move-out closes the record (MoveOutDate set, IsCurrent
// flipped) rather than deleting it. At most one record per employee is
// current at any time.
type Assignment struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	ApartmentID snowflake.ID `gorm:"not null;index" json:"apartment_id"`
	EmployeeID  snowflake.ID `gorm:"not null;index" json:"employee_id"`

	MoveInDate  time.Time  `gorm:"type:date;not null" json:"move_in_date"`
	MoveOutDate *time.Time `gorm:"type:date" json:"move_out_date"`

	MonthlyCharge     decimal.Decimal  `gorm:"type:numeric(10,2)" json:"monthly_charge"`
	CustomMonthlyRate *decimal.Decimal `gorm:"type:numeric(10,2)" json:"custom_monthly_rate"`
	DepositPaid       decimal.Decimal  `gorm:"type:numeric(10,2)" json:"deposit_paid"`

	IsCurrent bool      `gorm:"not null;index" json:"is_current"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Assignment) TableName() string { return "apartment_assignments" }
