package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ndthang/storepos-api/internal/application/service"
	"github.com/ndthang/storepos-api/internal/domain/enum"
	"github.com/ndthang/storepos-api/internal/domain/repository"
	"github.com/ndthang/storepos-api/internal/presentation/http/dto/request"
	"github.com/ndthang/storepos-api/internal/presentation/http/dto/response"
	"github.com/ndthang/storepos-api/pkg/pagination"
	"github.com/ndthang/storepos-api/pkg/receipt"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
	printService *service.PrintService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, printService *service.PrintService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		printService: printService,
	}
}

// Create handles order creation
// @Summary Create order
// @Tags orders
// @Accept json
// @Produce json
// @Param request body request.CreateOrderRequest true "Order data"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreateOrderInput{
		StoreID:        GetStoreID(c),
		StaffID:        GetStaffID(c),
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		PaymentMethod:  req.PaymentMethod,
		SubTotal:       req.SubTotal,
		TaxAmount:      req.TaxAmount,
		DiscountAmount: req.DiscountAmount,
		TotalAmount:    req.TotalAmount,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.CreateOrderItemInput{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		})
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Đơn hàng đã được tạo", order)
}

// Get retrieves a single order with its items
// @Summary Get order
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := parseOrderID(c)
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved", order)
}

// List retrieves orders with filtering and pagination
// @Summary List orders
// @Tags orders
// @Produce json
// @Param page query int false "Page number"
// @Param perPage query int false "Items per page"
// @Param search query string false "Search by order number or customer"
// @Param status query int false "Order status"
// @Success 200 {object} response.APIResponse
// @Router /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	params := &repository.OrderFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    parseIntQuery(c, "page", 1),
			PerPage: parseIntQuery(c, "perPage", 20),
		},
		Search: c.Query("search"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		if statusInt, err := strconv.Atoi(statusStr); err == nil {
			status := enum.OrderStatus(statusInt)
			params.Status = &status
		}
	}
	if start, ok := parseDateQuery(c, "startDate"); ok {
		params.StartDate = &start
	}
	if end, ok := parseDateQuery(c, "endDate"); ok {
		params.EndDate = &end
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Orders retrieved", result)
}

// Cancel cancels an order
// @Summary Cancel order
// @Tags orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body request.CancelOrderRequest false "Cancellation reason"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, err := parseOrderID(c)
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	// The body is optional; cancelling without a reason is allowed.
	var req request.CancelOrderRequest
	_ = c.ShouldBindJSON(&req)

	order, err := h.orderService.CancelOrder(c.Request.Context(), id, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Đơn hàng đã được hủy", order)
}

// Document renders the order's sales document for on-screen preview
// @Summary Order document
// @Description Render the receipt; layout=thermal or layout=standard overrides the store's print configuration
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Param layout query string false "Layout override"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /orders/{id}/document [get]
func (h *OrderHandler) Document(c *gin.Context) {
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

	var layout *receipt.Layout
	if layoutStr := c.Query("layout"); layoutStr != "" {
		var l receipt.Layout
		if err := l.UnmarshalText([]byte(layoutStr)); err != nil {
			response.BadRequest(c, "Invalid layout")
			return
		}
		layout = &l
	}

	doc, err := h.printService.BuildDocument(c.Request.Context(), id, *storeID, layout)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Document rendered", gin.H{
		"document": doc,
		"text":     doc.Text(),
	})
}

func parseOrderID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}

func parseIntQuery(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return fallback
	}
	return v
}

func parseDateQuery(c *gin.Context, key string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", c.Query(key))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
