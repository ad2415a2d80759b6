package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey string

// StoreIDKey is the context key for the active store ID
const StoreIDKey ctxKey = "store_id"

// StoreScope returns a GORM scope that filters rows by the active store.
// Requests issued before a store has been selected (right after login) carry
// no store in context and see all stores the caller can reach.
func StoreScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		storeID, ok := ctx.Value(StoreIDKey).(uuid.UUID)
		if !ok || storeID == uuid.Nil {
			return db
		}
		return db.Where("store_id = ?", storeID)
	}
}

// WithStore adds the active store ID to context
func WithStore(ctx context.Context, storeID uuid.UUID) context.Context {
	return context.WithValue(ctx, StoreIDKey, storeID)
}

// GetStoreID extracts the active store ID from context
func GetStoreID(ctx context.Context) (uuid.UUID, bool) {
	storeID, ok := ctx.Value(StoreIDKey).(uuid.UUID)
	return storeID, ok
}
