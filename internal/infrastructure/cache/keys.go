package cache

import "time"

// Cache keys are store-scoped; report keys additionally encode the filter.
const (
	// Tax config: config:tax:{store_id}
	KeyTaxConfig = "config:tax:%s"

	// Payment method config: config:payment:{store_id}
	KeyPaymentConfig = "config:payment:%s"

	// Print config: config:print:{store_id}
	KeyPrintConfig = "config:print:%s"

	// Cancelled-orders report: report:cancelled:{store_id}:{start}:{end}:{order_id}
	KeyCancelledReport = "report:cancelled:%s:%s:%s:%s"
)

var (
	TTLConfig = 10 * time.Minute
	TTLReport = time.Minute
)
