package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ndthang/storepos-api/internal/domain/entity"
	"github.com/ndthang/storepos-api/internal/domain/enum"
	domainRepo "github.com/ndthang/storepos-api/internal/domain/repository"
)

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) domainRepo.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) SummarizeCancelledOrders(ctx context.Context, filter *domainRepo.CancelledOrdersFilter) (*domainRepo.CancelledOrdersSummary, error) {
	var summary domainRepo.CancelledOrdersSummary

	query := `
		SELECT
			COUNT(*) AS order_count,
			COALESCE(SUM(cancelled_quantity), 0) AS total_cancelled_quantity,
			COALESCE(SUM(loss_amount), 0) AS total_loss_amount
		FROM orders
		WHERE status = ?
		  AND cancelled_at >= ? AND cancelled_at <= ?
		  AND deleted_at IS NULL`
	args := []interface{}{enum.OrderStatusCancelled, filter.StartDate, filter.EndDate}

	if filter.OrderID != nil {
		query += " AND id = ?"
		args = append(args, *filter.OrderID)
	}
	if storeID, ok := GetStoreID(ctx); ok {
		query += " AND store_id = ?"
		args = append(args, storeID)
	}

	err := r.db.WithContext(ctx).Raw(query, args...).Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *reportRepository) CancelledOrders(ctx context.Context, filter *domainRepo.CancelledOrdersFilter) ([]entity.Order, error) {
	var orders []entity.Order

	query := r.db.WithContext(ctx).
		Scopes(StoreScope(ctx)).
		Preload("Items").
		Where("status = ?", enum.OrderStatusCancelled).
		Where("cancelled_at >= ? AND cancelled_at <= ?", filter.StartDate, filter.EndDate)

	if filter.OrderID != nil {
		query = query.Where("id = ?", *filter.OrderID)
	}

	err := query.Order("cancelled_at DESC").Find(&orders).Error
	return orders, err
}
