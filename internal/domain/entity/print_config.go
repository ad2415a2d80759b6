package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ndthang/storepos-api/internal/domain/enum"
	"github.com/ndthang/storepos-api/pkg/receipt"
)

// PrintConfig is the per-store printing configuration. PaperProfile is the
// structured field new configs should set; PrinterName substring matching is
// kept only for configs saved before the field existed.
type PrintConfig struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	StoreID      uuid.UUID         `gorm:"type:uuid;uniqueIndex;not null" json:"storeId"`
	PrinterName  string            `gorm:"size:150" json:"printerName"`
	PaperProfile enum.PaperProfile `gorm:"default:0" json:"paperProfile"`
	PaperSize    string            `gorm:"size:20" json:"paperSize,omitempty"`
	CopyCount    int               `gorm:"default:1" json:"copyCount"`
	AutoPrint    bool              `gorm:"default:false" json:"autoPrint"`
	PrintBarcode bool              `gorm:"default:false" json:"printBarcode"`
	PrintLogo    bool              `gorm:"default:false" json:"printLogo"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt    `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new print config
func (c *PrintConfig) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PrintConfig model
func (PrintConfig) TableName() string {
	return "print_configs"
}

// IsThermalPrinterName is the legacy heuristic: a printer name containing
// "POS" or "80" (case-sensitive) is treated as a thermal device. Used only
// when PaperProfile is unspecified.
func IsThermalPrinterName(name string) bool {
	return strings.Contains(name, "POS") || strings.Contains(name, "80")
}

// IsThermal reports whether the config targets a thermal printer. An absent
// config means "no profile configured" and resolves to non-thermal.
func (c *PrintConfig) IsThermal() bool {
	if c == nil {
		return false
	}
	if c.PaperProfile != enum.PaperProfileUnspecified {
		return c.PaperProfile.IsThermal()
	}
	return IsThermalPrinterName(c.PrinterName)
}

// Layout resolves the receipt layout once; callers thread the result rather
// than re-deriving it per section.
func (c *PrintConfig) Layout() receipt.Layout {
	if c.IsThermal() {
		return receipt.LayoutThermal
	}
	return receipt.LayoutStandard
}
