package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ndthang/storepos-api/internal/domain/entity"
)

// StaffRepository defines the interface for staff account data access
type StaffRepository interface {
	Create(ctx context.Context, staff *entity.Staff) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Staff, error)
	GetByUsername(ctx context.Context, username string) (*entity.Staff, error)
	GetWithStores(ctx context.Context, id uuid.UUID) (*entity.Staff, error)
	Update(ctx context.Context, staff *entity.Staff) error
}

// StoreRepository defines the interface for store data access
type StoreRepository interface {
	Create(ctx context.Context, store *entity.Store) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Store, error)
	List(ctx context.Context) ([]entity.Store, error)
}
