package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ndthang/storepos-api/internal/domain/entity"
	"github.com/ndthang/storepos-api/internal/domain/repository"
	"github.com/ndthang/storepos-api/internal/infrastructure/cache"
)

// reportWindow is the default lookback when the caller gives no dates.
const reportWindow = 30 * 24 * time.Hour

// ReportService handles report aggregation. Results are cached per store
// and filter for a short TTL, so a cancellation shows up in the report
// within a minute without any cross-key invalidation bookkeeping.
type ReportService struct {
	reportRepo repository.ReportRepository
	cache      cache.Cache
}

// NewReportService creates a new report service
func NewReportService(reportRepo repository.ReportRepository, c cache.Cache) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		cache:      c,
	}
}

// CancelledOrdersReport is the cancelled-orders report payload
type CancelledOrdersReport struct {
	StartDate              string         `json:"startDate"`
	EndDate                string         `json:"endDate"`
	OrderCount             int64          `json:"orderCount"`
	TotalCancelledQuantity int64          `json:"totalCancelledQuantity"`
	TotalLossAmount        int64          `json:"totalLossAmount"`
	AverageLossAmount      int64          `json:"averageLossAmount"`
	Orders                 []entity.Order `json:"orders"`
}

// CancelledOrders builds the cancelled-orders report for the window. Zero
// dates default to the trailing thirty days, computed at call time. With no
// cancelled orders in the window every aggregate is zero, including the
// average.
func (s *ReportService) CancelledOrders(ctx context.Context, storeID uuid.UUID, filter *repository.CancelledOrdersFilter) (*CancelledOrdersReport, error) {
	if filter == nil {
		filter = &repository.CancelledOrdersFilter{}
	}
	now := time.Now()
	if filter.EndDate.IsZero() {
		filter.EndDate = now
	}
	if filter.StartDate.IsZero() {
		filter.StartDate = filter.EndDate.Add(-reportWindow)
	}

	key := reportCacheKey(storeID, filter)
	var cached CancelledOrdersReport
	if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
		log.Printf("Warning: cache read failed for %s: %v", key, err)
	} else if hit {
		return &cached, nil
	}

	summary, err := s.reportRepo.SummarizeCancelledOrders(ctx, filter)
	if err != nil {
		return nil, err
	}

	orders, err := s.reportRepo.CancelledOrders(ctx, filter)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []entity.Order{}
	}

	report := &CancelledOrdersReport{
		StartDate:              filter.StartDate.Format("2006-01-02"),
		EndDate:                filter.EndDate.Format("2006-01-02"),
		OrderCount:             summary.OrderCount,
		TotalCancelledQuantity: summary.TotalCancelledQuantity,
		TotalLossAmount:        summary.TotalLossAmount,
		Orders:                 orders,
	}
	if summary.OrderCount > 0 {
		report.AverageLossAmount = summary.TotalLossAmount / summary.OrderCount
	}

	if err := s.cache.Set(ctx, key, report, cache.TTLReport); err != nil {
		log.Printf("Warning: cache write failed for %s: %v", key, err)
	}
	return report, nil
}

func reportCacheKey(storeID uuid.UUID, filter *repository.CancelledOrdersFilter) string {
	orderPart := "-"
	if filter.OrderID != nil {
		orderPart = fmt.Sprintf("%d", *filter.OrderID)
	}
	return fmt.Sprintf(cache.KeyCancelledReport,
		storeID,
		filter.StartDate.Format("2006-01-02"),
		filter.EndDate.Format("2006-01-02"),
		orderPart,
	)
}
