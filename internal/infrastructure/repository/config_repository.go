package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ndthang/storepos-api/internal/domain/entity"
	domainRepo "github.com/ndthang/storepos-api/internal/domain/repository"
)

type configRepository struct {
	db *gorm.DB
}

// NewConfigRepository creates a new configuration repository
func NewConfigRepository(db *gorm.DB) domainRepo.ConfigRepository {
	return &configRepository{db: db}
}

// getByStore loads a single config record for a store into dest.
// Returns (false, nil) when the store has no record yet.
func (r *configRepository) getByStore(ctx context.Context, storeID uuid.UUID, dest interface{}) (bool, error) {
	err := r.db.WithContext(ctx).Where("store_id = ?", storeID).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// save upserts a config record; the store_id unique index drives the
// conflict resolution so a save is always a full replace.
func (r *configRepository) save(ctx context.Context, record interface{}) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "store_id"}},
			UpdateAll: true,
		}).
		Create(record).Error
}

func (r *configRepository) GetTaxConfig(ctx context.Context, storeID uuid.UUID) (*entity.TaxConfig, error) {
	var cfg entity.TaxConfig
	found, err := r.getByStore(ctx, storeID, &cfg)
	if err != nil || !found {
		return nil, err
	}
	return &cfg, nil
}

func (r *configRepository) SaveTaxConfig(ctx context.Context, cfg *entity.TaxConfig) error {
	return r.save(ctx, cfg)
}

func (r *configRepository) GetPaymentMethodConfig(ctx context.Context, storeID uuid.UUID) (*entity.PaymentMethodConfig, error) {
	var cfg entity.PaymentMethodConfig
	found, err := r.getByStore(ctx, storeID, &cfg)
	if err != nil || !found {
		return nil, err
	}
	return &cfg, nil
}

func (r *configRepository) SavePaymentMethodConfig(ctx context.Context, cfg *entity.PaymentMethodConfig) error {
	return r.save(ctx, cfg)
}

func (r *configRepository) GetPrintConfig(ctx context.Context, storeID uuid.UUID) (*entity.PrintConfig, error) {
	var cfg entity.PrintConfig
	found, err := r.getByStore(ctx, storeID, &cfg)
	if err != nil || !found {
		return nil, err
	}
	return &cfg, nil
}

func (r *configRepository) SavePrintConfig(ctx context.Context, cfg *entity.PrintConfig) error {
	return r.save(ctx, cfg)
}
