package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ndthang/storepos-api/internal/application/service"
	"github.com/ndthang/storepos-api/internal/domain/repository"
	"github.com/ndthang/storepos-api/internal/presentation/http/dto/response"
)

// ReportHandler handles report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// CancelledOrders builds the cancelled-orders report
// @Summary Cancelled orders report
// @Description Aggregates and lists cancelled orders; omitted dates default to the trailing 30 days
// @Tags reports
// @Produce json
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Param orderId query int false "Narrow to a single order"
// @Success 200 {object} response.APIResponse
// @Router /reports/cancelled-orders [get]
func (h *ReportHandler) CancelledOrders(c *gin.Context) {
	storeID := GetStoreID(c)
	if storeID == nil {
		response.Forbidden(c, "Vui lòng chọn cửa hàng trước")
		return
	}

	filter := &repository.CancelledOrdersFilter{}
	if start, ok := parseDateQuery(c, "startDate"); ok {
		filter.StartDate = start
	}
	if end, ok := parseDateQuery(c, "endDate"); ok {
		// End of day so the whole end date is included.
		filter.EndDate = end.AddDate(0, 0, 1).Add(-1)
	}
	if orderIDStr := c.Query("orderId"); orderIDStr != "" {
		orderID, err := strconv.ParseUint(orderIDStr, 10, 32)
		if err != nil {
			response.BadRequest(c, "Invalid order ID")
			return
		}
		id := uint(orderID)
		filter.OrderID = &id
	}

	report, err := h.reportService.CancelledOrders(c.Request.Context(), *storeID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report generated", report)
}
