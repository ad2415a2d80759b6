package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/ndthang/storepos-api/internal/domain/entity"
	"github.com/ndthang/storepos-api/internal/domain/repository"
	"github.com/ndthang/storepos-api/internal/infrastructure/cache"
)

// ConfigService handles the per-store configuration records. Reads go
// through the cache; saves write the database first, then invalidate.
// A nil result from any getter means "not configured yet", which callers
// surface as 404 rather than an error.
type ConfigService struct {
	configRepo repository.ConfigRepository
	cache      cache.Cache
}

// NewConfigService creates a new config service
func NewConfigService(configRepo repository.ConfigRepository, c cache.Cache) *ConfigService {
	return &ConfigService{
		configRepo: configRepo,
		cache:      c,
	}
}

// GetTaxConfig retrieves the tax configuration for a store
func (s *ConfigService) GetTaxConfig(ctx context.Context, storeID uuid.UUID) (*entity.TaxConfig, error) {
	key := fmt.Sprintf(cache.KeyTaxConfig, storeID)

	var cached entity.TaxConfig
	if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
		log.Printf("Warning: cache read failed for %s: %v", key, err)
	} else if hit {
		return &cached, nil
	}

	cfg, err := s.configRepo.GetTaxConfig(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, nil
	}

	if err := s.cache.Set(ctx, key, cfg, cache.TTLConfig); err != nil {
		log.Printf("Warning: cache write failed for %s: %v", key, err)
	}
	return cfg, nil
}

// SaveTaxConfig upserts the tax configuration for a store and drops the
// cached copy.
func (s *ConfigService) SaveTaxConfig(ctx context.Context, cfg *entity.TaxConfig) error {
	if err := s.configRepo.SaveTaxConfig(ctx, cfg); err != nil {
		return err
	}
	return s.invalidate(ctx, fmt.Sprintf(cache.KeyTaxConfig, cfg.StoreID))
}

// GetPaymentMethodConfig retrieves the payment method configuration for a store
func (s *ConfigService) GetPaymentMethodConfig(ctx context.Context, storeID uuid.UUID) (*entity.PaymentMethodConfig, error) {
	key := fmt.Sprintf(cache.KeyPaymentConfig, storeID)

	var cached entity.PaymentMethodConfig
	if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
		log.Printf("Warning: cache read failed for %s: %v", key, err)
	} else if hit {
		return &cached, nil
	}

	cfg, err := s.configRepo.GetPaymentMethodConfig(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, nil
	}

	if err := s.cache.Set(ctx, key, cfg, cache.TTLConfig); err != nil {
		log.Printf("Warning: cache write failed for %s: %v", key, err)
	}
	return cfg, nil
}

// SavePaymentMethodConfig upserts the payment method configuration for a
// store and drops the cached copy.
func (s *ConfigService) SavePaymentMethodConfig(ctx context.Context, cfg *entity.PaymentMethodConfig) error {
	if err := s.configRepo.SavePaymentMethodConfig(ctx, cfg); err != nil {
		return err
	}
	return s.invalidate(ctx, fmt.Sprintf(cache.KeyPaymentConfig, cfg.StoreID))
}

// GetPrintConfig retrieves the print configuration for a store
func (s *ConfigService) GetPrintConfig(ctx context.Context, storeID uuid.UUID) (*entity.PrintConfig, error) {
	key := fmt.Sprintf(cache.KeyPrintConfig, storeID)

	var cached entity.PrintConfig
	if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
		log.Printf("Warning: cache read failed for %s: %v", key, err)
	} else if hit {
		return &cached, nil
	}

	cfg, err := s.configRepo.GetPrintConfig(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, nil
	}

	if err := s.cache.Set(ctx, key, cfg, cache.TTLConfig); err != nil {
		log.Printf("Warning: cache write failed for %s: %v", key, err)
	}
	return cfg, nil
}

// SavePrintConfig upserts the print configuration for a store and drops the
// cached copy.
func (s *ConfigService) SavePrintConfig(ctx context.Context, cfg *entity.PrintConfig) error {
	if err := s.configRepo.SavePrintConfig(ctx, cfg); err != nil {
		return err
	}
	return s.invalidate(ctx, fmt.Sprintf(cache.KeyPrintConfig, cfg.StoreID))
}

func (s *ConfigService) invalidate(ctx context.Context, keys ...string) error {
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		// The database write already succeeded; a stale cache entry expires
		// on its own, so log and move on.
		log.Printf("Warning: cache invalidation failed for %v: %v", keys, err)
	}
	return nil
}
