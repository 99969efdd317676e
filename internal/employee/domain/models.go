// Package domain contains persistence models for dispatch employees.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// EmployeeStatus represents employment lifecycle states.
type EmployeeStatus string

const (
	StatusActive     EmployeeStatus = "active"
	StatusOnLeave    EmployeeStatus = "on_leave"
	StatusTerminated EmployeeStatus = "terminated"
	StatusPending    EmployeeStatus = "pending"
)

func (s EmployeeStatus) Valid() bool {
	switch s {
	case StatusActive, StatusOnLeave, StatusTerminated, StatusPending:
		return true
	}
	return false
}

// ContractType classifies the employment contract.
type ContractType string

const (
	ContractDispatch  ContractType = "dispatch"
	ContractContract  ContractType = "contract"
	ContractPermanent ContractType = "permanent"
	ContractPartTime  ContractType = "part_time"
)

func (c ContractType) Valid() bool {
	switch c {
	case ContractDispatch, ContractContract, ContractPermanent, ContractPartTime:
		return true
	}
	return false
}

// Employee is a housed worker. ApartmentID mirrors the apartment of the
// employee's current assignment and is kept in sync by the assignment
// service.
type Employee struct {
	ID               snowflake.ID `gorm:"primaryKey" json:"id"`
	EmployeeCode     string       `gorm:"type:text;not null;uniqueIndex" json:"employee_code"`
	FullNameRoman    string       `gorm:"type:text;not null" json:"full_name_roman"`
	FullNameKanji    string       `gorm:"type:text" json:"full_name_kanji"`
	FullNameFurigana string       `gorm:"type:text" json:"full_name_furigana"`
	Nationality      string       `gorm:"type:text" json:"nationality"`
	DateOfBirth      *time.Time   `gorm:"type:date" json:"date_of_birth"`
	Phone            string       `gorm:"type:text" json:"phone"`
	Email            string       `gorm:"type:text" json:"email"`
	Address          string       `gorm:"type:text" json:"address"`

	EmploymentStart *time.Time   `gorm:"type:date" json:"employment_start_date"`
	EmploymentEnd   *time.Time   `gorm:"type:date" json:"employment_end_date"`
	ContractType    ContractType `gorm:"type:text;not null;default:dispatch" json:"contract_type"`

	FactoryID   *snowflake.ID `gorm:"index" json:"factory_id"`
	ApartmentID *snowflake.ID `gorm:"index" json:"apartment_id"`

	Status    EmployeeStatus    `gorm:"type:text;not null;default:active" json:"status"`
	Notes     string            `gorm:"type:text" json:"notes"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb" json:"metadata"`
	IsActive  bool              `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Employee) TableName() string { return "employees" }
