// Package domain contains persistence models for dispatch-destination factories.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Factory is a dispatch destination employing housed workers.
type Factory struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	FactoryCode   string       `gorm:"type:text;not null;uniqueIndex" json:"factory_code"`
	Name          string       `gorm:"type:text;not null" json:"name"`
	NameJapanese  string       `gorm:"type:text" json:"name_japanese"`
	Address       string       `gorm:"type:text" json:"address"`
	City          string       `gorm:"type:text" json:"city"`
	Prefecture    string       `gorm:"type:text" json:"prefecture"`
	PostalCode    string       `gorm:"type:text" json:"postal_code"`
	Phone         string       `gorm:"type:text" json:"phone"`
	ContactPerson string       `gorm:"type:text" json:"contact_person"`
	ContactEmail  string       `gorm:"type:text" json:"contact_email"`
	Notes         string       `gorm:"type:text" json:"notes"`
	IsActive      bool         `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Factory) TableName() string { return "factories" }
