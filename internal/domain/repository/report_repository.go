package repository

import (
	"context"
	"time"

	"github.com/ndthang/storepos-api/internal/domain/entity"
)

// CancelledOrdersFilter bounds the cancelled-orders report. Dates are
// inclusive; OrderID narrows the report to a single order when set.
type CancelledOrdersFilter struct {
	StartDate time.Time
	EndDate   time.Time
	OrderID   *uint
}

// CancelledOrdersSummary holds the aggregates over cancelled orders in the
// filter window. The average is derived by the service so a zero count can
// never divide.
type CancelledOrdersSummary struct {
	OrderCount             int64 `json:"orderCount"`
	TotalCancelledQuantity int64 `json:"totalCancelledQuantity"`
	TotalLossAmount        int64 `json:"totalLossAmount"`
}

// ReportRepository defines the interface for report aggregation queries
type ReportRepository interface {
	// SummarizeCancelledOrders aggregates count, cancelled quantity and loss
	// over cancelled orders in the window.
	SummarizeCancelledOrders(ctx context.Context, filter *CancelledOrdersFilter) (*CancelledOrdersSummary, error)

	// CancelledOrders returns the cancelled orders in the window with their
	// items preloaded, newest cancellation first.
	CancelledOrders(ctx context.Context, filter *CancelledOrdersFilter) ([]entity.Order, error)
}
