package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store is a physical retail location. Staff may be assigned to several
// stores and switch the active one after login.
type Store struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:150;not null" json:"name"`
	Address   string         `gorm:"size:255" json:"address,omitempty"`
	Phone     string         `gorm:"size:20" json:"phone,omitempty"`
	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new store
func (s *Store) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Store model
func (Store) TableName() string {
	return "stores"
}
