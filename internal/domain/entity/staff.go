package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Staff is a POS operator account. The password hash never leaves the
// server; clients persist only the staff id between sessions.
type Staff struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Username string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	FullName string    `gorm:"size:150" json:"fullName"`
	Password string    `gorm:"size:255;not null" json:"-"`
	Role     string    `gorm:"size:50;default:'cashier'" json:"role"`
	Active   bool      `gorm:"default:true" json:"active"`

	// CurrentStoreID is the store the staff member last switched to. Nil
	// until the first set-current call.
	CurrentStoreID *uuid.UUID `gorm:"type:uuid" json:"currentStoreId,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	CurrentStore *Store  `gorm:"foreignKey:CurrentStoreID" json:"-"`
	Stores       []Store `gorm:"many2many:staff_stores" json:"stores,omitempty"`
}

// BeforeCreate generates a UUID before creating a new staff account
func (s *Staff) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Staff model
func (Staff) TableName() string {
	return "staff"
}

// AssignedTo reports whether the staff member is assigned to the store.
func (s *Staff) AssignedTo(storeID uuid.UUID) bool {
	for _, st := range s.Stores {
		if st.ID == storeID {
			return true
		}
	}
	return false
}
