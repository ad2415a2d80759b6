package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ndthang/storepos-api/internal/domain/entity"
)

// ConfigRepository defines the interface for the per-store configuration
// records. Getters return (nil, nil) when no record exists: "not configured"
// is a valid state, not an error. Saves are replace-style upserts keyed by
// store.
type ConfigRepository interface {
	GetTaxConfig(ctx context.Context, storeID uuid.UUID) (*entity.TaxConfig, error)
	SaveTaxConfig(ctx context.Context, cfg *entity.TaxConfig) error

	GetPaymentMethodConfig(ctx context.Context, storeID uuid.UUID) (*entity.PaymentMethodConfig, error)
	SavePaymentMethodConfig(ctx context.Context, cfg *entity.PaymentMethodConfig) error

	GetPrintConfig(ctx context.Context, storeID uuid.UUID) (*entity.PrintConfig, error)
	SavePrintConfig(ctx context.Context, cfg *entity.PrintConfig) error
}
