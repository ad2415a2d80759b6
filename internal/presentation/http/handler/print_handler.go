package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ndthang/storepos-api/internal/application/service"
	"github.com/ndthang/storepos-api/internal/presentation/http/dto/response"
)

// PrintHandler handles print job HTTP requests
type PrintHandler struct {
	printService *service.PrintService
}

// NewPrintHandler creates a new print handler
func NewPrintHandler(printService *service.PrintService) *PrintHandler {
	return &PrintHandler{printService: printService}
}

// PrintOrder queues an order's receipt for printing
// @Summary Print order
// @Description Queue the receipt; the returned job starts InProgress
// @Tags print
// @Produce json
// @Param id path int true "Order ID"
// @Success 202 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /print/orders/{id} [post]
func (h *PrintHandler) PrintOrder(c *gin.Context) {
	id, err := parseOrderID(c)
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	storeID := GetStoreID(c)
	if storeID == nil {
		response.Forbidden(c, "Vui lòng chọn cửa hàng trước")
		return
	}

	job, err := h.printService.PrintOrder(c.Request.Context(), id, *storeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Accepted(c, "Đang in hóa đơn", job)
}

// TestPrint sends a test page to the configured printer
// @Summary Test print
// @Tags print
// @Produce json
// @Success 202 {object} response.APIResponse
// @Router /print/test [post]
func (h *PrintHandler) TestPrint(c *gin.Context) {
	storeID := GetStoreID(c)
	if storeID == nil {
		response.Forbidden(c, "Vui lòng chọn cửa hàng trước")
		return
	}

	job, err := h.printService.TestPrint(c.Request.Context(), *storeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Accepted(c, "Đang in trang thử", job)
}

// GetJob returns the state of a print job
// @Summary Get print job
// @Tags print
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /print/jobs/{id} [get]
func (h *PrintHandler) GetJob(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid job ID")
		return
	}

	job, err := h.printService.GetJob(c.Request.Context(), jobID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Print job retrieved", job)
}

// Status reports the overall printing state
// @Summary Print status
// @Tags print
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /print/status [get]
func (h *PrintHandler) Status(c *gin.Context) {
	response.OK(c, "Print status", gin.H{
		"status": h.printService.Status(c.Request.Context()),
	})
}
