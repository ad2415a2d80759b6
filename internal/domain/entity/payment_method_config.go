package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentMethodConfig toggles the payment methods offered at a store's
// checkout. DefaultMethod falls back to cash downstream when it names a
// disabled or unknown method.
type PaymentMethodConfig struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	StoreID             uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null" json:"storeId"`
	CashEnabled         bool           `gorm:"default:true" json:"cashEnabled"`
	CardEnabled         bool           `gorm:"default:false" json:"cardEnabled"`
	QREnabled           bool           `gorm:"default:false" json:"qrEnabled"`
	EWalletEnabled      bool           `gorm:"default:false" json:"ewalletEnabled"`
	BankTransferEnabled bool           `gorm:"default:false" json:"bankTransferEnabled"`
	DefaultMethod       string         `gorm:"size:20;default:'cash'" json:"defaultMethod"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new payment method config
func (c *PaymentMethodConfig) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PaymentMethodConfig model
func (PaymentMethodConfig) TableName() string {
	return "payment_method_configs"
}
