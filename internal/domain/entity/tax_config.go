package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ndthang/storepos-api/internal/domain/enum"
)

// TaxConfig is the per-store tax configuration. Rate validation is owned by
// the checkout flow; this record is stored as submitted.
type TaxConfig struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	StoreID   uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null" json:"storeId"`
	TaxRate   float64        `gorm:"default:0" json:"taxRate"`
	TaxType   enum.TaxType   `gorm:"default:0" json:"taxType"`
	TaxLabel  string         `gorm:"size:50;default:'VAT'" json:"taxLabel"`
	Enabled   bool           `gorm:"default:true" json:"enabled"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new tax config
func (c *TaxConfig) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TaxConfig model
func (TaxConfig) TableName() string {
	return "tax_configs"
}
