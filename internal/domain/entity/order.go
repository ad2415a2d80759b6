package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ndthang/storepos-api/internal/domain/enum"
)

// Order is a sales order. Amounts are stored in whole đồng (the VND minor
// unit); the invariants total = subtotal + tax - discount and
// line total = quantity * unit price are produced by the checkout flow and
// not re-validated here.
//
// JSON tags are camelCase: the field names are part of the API contract
// consumed by the storefront clients.
type Order struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	OrderNumber   string           `gorm:"size:50;index" json:"orderNumber,omitempty"`
	StoreID       *uuid.UUID       `gorm:"type:uuid;index" json:"storeId,omitempty"`
	StaffID       *uuid.UUID       `gorm:"type:uuid;index" json:"staffId,omitempty"`
	Status        enum.OrderStatus `gorm:"default:0" json:"status"`
	PaymentMethod string           `gorm:"size:20" json:"paymentMethod"`
	CustomerName  string           `gorm:"size:100" json:"customerName,omitempty"`
	CustomerPhone string           `gorm:"size:20" json:"customerPhone,omitempty"`

	SubTotal       int64 `gorm:"default:0" json:"subTotal"`
	TaxAmount      int64 `gorm:"default:0" json:"taxAmount"`
	DiscountAmount int64 `gorm:"default:0" json:"discountAmount"`
	TotalAmount    int64 `gorm:"default:0" json:"totalAmount"`

	// Cancellation accounting, populated when the order transitions to
	// Cancelled. The cancelled-orders report aggregates over these.
	CancelledAt       *time.Time `json:"cancelledAt,omitempty"`
	CancelReason      string     `gorm:"size:255" json:"cancelReason,omitempty"`
	LossAmount        int64      `gorm:"default:0" json:"lossAmount,omitempty"`
	CancelledQuantity int        `gorm:"default:0" json:"cancelledQuantity,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Store *Store      `gorm:"foreignKey:StoreID" json:"-"`
	Staff *Staff      `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a line item in an order. UnitPrice may be zero on rows
// imported from legacy terminals that only recorded the line total.
type OrderItem struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	OrderID     uint           `gorm:"not null;index" json:"orderId"`
	ProductID   uint           `gorm:"index" json:"productId"`
	ProductName string         `gorm:"size:150;not null" json:"productName"`
	Quantity    int            `gorm:"not null" json:"quantity"`
	UnitPrice   int64          `gorm:"default:0" json:"unitPrice,omitempty"`
	TotalPrice  int64          `gorm:"not null" json:"totalPrice"`
	LossAmount  int64          `gorm:"default:0" json:"lossAmount,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Order Order `gorm:"foreignKey:OrderID" json:"-"`
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
