package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ndthang/storepos-api/internal/application/service"
	"github.com/ndthang/storepos-api/internal/domain/entity"
	"github.com/ndthang/storepos-api/internal/presentation/http/dto/request"
	"github.com/ndthang/storepos-api/internal/presentation/http/dto/response"
)

// ConfigHandler handles the per-store configuration endpoints. A GET on an
// unconfigured store answers 404: "not configured yet" is an expected state
// the client treats as "use your defaults", not a failure.
type ConfigHandler struct {
	configService *service.ConfigService
}

// NewConfigHandler creates a new config handler
func NewConfigHandler(configService *service.ConfigService) *ConfigHandler {
	return &ConfigHandler{configService: configService}
}

func requireStoreID(c *gin.Context) (uuid.UUID, bool) {
	storeID := GetStoreID(c)
	if storeID == nil {
		response.Forbidden(c, "Vui lòng chọn cửa hàng trước")
		return uuid.Nil, false
	}
	return *storeID, true
}

// GetTaxConfig retrieves the store's tax configuration
// @Summary Get tax config
// @Tags config
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /TaxConfig [get]
func (h *ConfigHandler) GetTaxConfig(c *gin.Context) {
	storeID, ok := requireStoreID(c)
	if !ok {
		return
	}

	cfg, err := h.configService.GetTaxConfig(c.Request.Context(), storeID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if cfg == nil {
		response.NotFound(c, "Chưa cấu hình thuế")
		return
	}

	response.OK(c, "Tax config retrieved", cfg)
}

// SaveTaxConfig upserts the store's tax configuration
// @Summary Save tax config
// @Tags config
// @Accept json
// @Produce json
// @Param request body request.TaxConfigRequest true "Tax config"
// @Success 200 {object} response.APIResponse
// @Router /TaxConfig [post]
func (h *ConfigHandler) SaveTaxConfig(c *gin.Context) {
	storeID, ok := requireStoreID(c)
	if !ok {
		return
	}

	var req request.TaxConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	cfg := &entity.TaxConfig{
		StoreID:  storeID,
		TaxRate:  req.TaxRate,
		TaxType:  req.TaxType,
		TaxLabel: req.TaxLabel,
		Enabled:  req.Enabled,
	}
	if cfg.TaxLabel == "" {
		cfg.TaxLabel = "VAT"
	}

	if err := h.configService.SaveTaxConfig(c.Request.Context(), cfg); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Đã lưu cấu hình thuế", cfg)
}

// GetPaymentMethodConfig retrieves the store's payment method configuration
// @Summary Get payment method config
// @Tags config
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /PaymentMethodConfig [get]
func (h *ConfigHandler) GetPaymentMethodConfig(c *gin.Context) {
	storeID, ok := requireStoreID(c)
	if !ok {
		return
	}

	cfg, err := h.configService.GetPaymentMethodConfig(c.Request.Context(), storeID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if cfg == nil {
		response.NotFound(c, "Chưa cấu hình phương thức thanh toán")
		return
	}

	response.OK(c, "Payment method config retrieved", cfg)
}

// SavePaymentMethodConfig upserts the store's payment method configuration
// @Summary Save payment method config
// @Tags config
// @Accept json
// @Produce json
// @Param request body request.PaymentMethodConfigRequest true "Payment method config"
// @Success 200 {object} response.APIResponse
// @Router /PaymentMethodConfig [post]
func (h *ConfigHandler) SavePaymentMethodConfig(c *gin.Context) {
	storeID, ok := requireStoreID(c)
	if !ok {
		return
	}

	var req request.PaymentMethodConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	cfg := &entity.PaymentMethodConfig{
		StoreID:             storeID,
		CashEnabled:         req.CashEnabled,
		CardEnabled:         req.CardEnabled,
		QREnabled:           req.QREnabled,
		EWalletEnabled:      req.EWalletEnabled,
		BankTransferEnabled: req.BankTransferEnabled,
		DefaultMethod:       req.DefaultMethod,
	}
	if cfg.DefaultMethod == "" {
		cfg.DefaultMethod = "cash"
	}

	if err := h.configService.SavePaymentMethodConfig(c.Request.Context(), cfg); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Đã lưu phương thức thanh toán", cfg)
}

// GetPrintConfig retrieves the store's print configuration
// @Summary Get print config
// @Tags config
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /printconfig [get]
func (h *ConfigHandler) GetPrintConfig(c *gin.Context) {
	storeID, ok := requireStoreID(c)
	if !ok {
		return
	}

	cfg, err := h.configService.GetPrintConfig(c.Request.Context(), storeID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if cfg == nil {
		response.NotFound(c, "Chưa cấu hình máy in")
		return
	}

	response.OK(c, "Print config retrieved", cfg)
}

// SavePrintConfig upserts the store's print configuration
// @Summary Save print config
// @Tags config
// @Accept json
// @Produce json
// @Param request body request.PrintConfigRequest true "Print config"
// @Success 200 {object} response.APIResponse
// @Router /printconfig [post]
func (h *ConfigHandler) SavePrintConfig(c *gin.Context) {
	storeID, ok := requireStoreID(c)
	if !ok {
		return
	}

	var req request.PrintConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	cfg := &entity.PrintConfig{
		StoreID:      storeID,
		PrinterName:  req.PrinterName,
		PaperProfile: req.PaperProfile,
		PaperSize:    req.PaperSize,
		CopyCount:    req.CopyCount,
		AutoPrint:    req.AutoPrint,
		PrintBarcode: req.PrintBarcode,
		PrintLogo:    req.PrintLogo,
	}
	if cfg.CopyCount < 1 {
		cfg.CopyCount = 1
	}

	if err := h.configService.SavePrintConfig(c.Request.Context(), cfg); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Đã lưu cấu hình máy in", cfg)
}
