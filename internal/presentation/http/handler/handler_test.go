package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ndthang/storepos-api/internal/application/service"
	"github.com/ndthang/storepos-api/internal/config"
	"github.com/ndthang/storepos-api/internal/domain/entity"
	"github.com/ndthang/storepos-api/internal/infrastructure/cache"
	"github.com/ndthang/storepos-api/internal/infrastructure/repository"
	"github.com/ndthang/storepos-api/internal/presentation/http/handler"
	"github.com/ndthang/storepos-api/internal/presentation/http/routes"
	"github.com/ndthang/storepos-api/pkg/printer"
	"github.com/ndthang/storepos-api/pkg/utils"
)

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	stores []entity.Store
	staff  *entity.Staff
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// unique in-memory DB per test name to avoid leakage via shared cache
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&entity.Store{},
		&entity.Staff{},
		&entity.Order{},
		&entity.OrderItem{},
		&entity.TaxConfig{},
		&entity.PaymentMethodConfig{},
		&entity.PrintConfig{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	storeA := entity.Store{Name: "Cửa hàng A", Address: "1 Lê Lợi", Phone: "0901111111", Active: true}
	storeB := entity.Store{Name: "Cửa hàng B", Active: true}
	if err := db.Create(&storeA).Error; err != nil {
		t.Fatalf("create store: %v", err)
	}
	if err := db.Create(&storeB).Error; err != nil {
		t.Fatalf("create store: %v", err)
	}

	hash, err := utils.HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	staff := entity.Staff{
		Username:       "thungan1",
		FullName:       "Trần Thị Thu",
		Password:       hash,
		Role:           "cashier",
		Active:         true,
		CurrentStoreID: &storeA.ID,
		Stores:         []entity.Store{storeA, storeB},
	}
	if err := db.Create(&staff).Error; err != nil {
		t.Fatalf("create staff: %v", err)
	}

	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	appCache := cache.NewMemory()

	staffRepo := repository.NewStaffRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reportRepo := repository.NewReportRepository(db)
	configRepo := repository.NewConfigRepository(db)

	authService := service.NewAuthService(staffRepo, storeRepo, jwtManager)
	orderService := service.NewOrderService(orderRepo, storeRepo)
	configService := service.NewConfigService(configRepo, appCache)
	reportService := service.NewReportService(reportRepo, appCache)
	printService := service.NewPrintService(orderRepo, storeRepo, configService, printer.NewNullPrinter())

	handlers := &routes.Handlers{
		Auth:   handler.NewAuthHandler(authService),
		Order:  handler.NewOrderHandler(orderService, printService),
		Config: handler.NewConfigHandler(configService),
		Report: handler.NewReportHandler(reportService),
		Print:  handler.NewPrintHandler(printService),
	}

	cfg := &config.Config{}
	cfg.App.Name = "storepos-test"
	cfg.RateLimit.Requests = 1000
	cfg.RateLimit.Duration = 1

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	return &testEnv{router: router, db: db, stores: []entity.Store{storeA, storeB}, staff: &staff}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, *envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var env envelope
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode envelope from %q: %v", w.Body.String(), err)
		}
	}
	return w, &env
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	w, env := e.do(t, http.MethodPost, "/api/staff/login", "", gin.H{
		"username": "thungan1",
		"password": "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: %d %s", w.Code, w.Body.String())
	}
	var data struct {
		AccessToken string         `json:"accessToken"`
		Stores      []entity.Store `json:"stores"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode login data: %v", err)
	}
	if data.AccessToken == "" {
		t.Fatal("login returned no access token")
	}
	return data.AccessToken
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := setupEnv(t)

	w, _ := env.do(t, http.MethodPost, "/api/staff/login", "", gin.H{
		"username": "thungan1",
		"password": "wrong-password",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong password: %d, want 401", w.Code)
	}

	w, _ = env.do(t, http.MethodPost, "/api/staff/login", "", gin.H{
		"username": "nobody99",
		"password": "secret123",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unknown user: %d, want 401", w.Code)
	}
}

func TestLoginReturnsAssignedStores(t *testing.T) {
	env := setupEnv(t)

	w, resp := env.do(t, http.MethodPost, "/api/staff/login", "", gin.H{
		"username": "thungan1",
		"password": "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: %d %s", w.Code, w.Body.String())
	}

	var data struct {
		Stores []entity.Store `json:"stores"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(data.Stores) != 2 {
		t.Errorf("stores = %d, want 2", len(data.Stores))
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := setupEnv(t)

	w, _ := env.do(t, http.MethodGet, "/api/orders", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token: %d, want 401", w.Code)
	}

	w, _ = env.do(t, http.MethodGet, "/api/orders", "not-a-jwt", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: %d, want 401", w.Code)
	}
}

func TestStoreSwitch(t *testing.T) {
	env := setupEnv(t)
	token := env.login(t)

	// Switching to an assigned store succeeds and returns a rescoped token.
	w, resp := env.do(t, http.MethodPost, "/api/storeswitch/set-current", token, gin.H{
		"storeId": env.stores[1].ID.String(),
	})
	if w.Code != http.StatusOK {
		t.Fatalf("switch: %d %s", w.Code, w.Body.String())
	}
	var data struct {
		AccessToken string       `json:"accessToken"`
		Store       entity.Store `json:"store"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if data.Store.ID != env.stores[1].ID {
		t.Errorf("switched to %s, want %s", data.Store.ID, env.stores[1].ID)
	}
	if data.AccessToken == "" {
		t.Error("switch must issue a new token")
	}

	// Switching to a store the staff member is not assigned to is forbidden.
	w, _ = env.do(t, http.MethodPost, "/api/storeswitch/set-current", token, gin.H{
		"storeId": "a2b02c3d-0000-0000-0000-000000000001",
	})
	if w.Code != http.StatusForbidden {
		t.Errorf("unassigned store: %d, want 403", w.Code)
	}
}

func TestTaxConfigNotConfiguredIs404(t *testing.T) {
	env := setupEnv(t)
	token := env.login(t)

	w, _ := env.do(t, http.MethodGet, "/api/TaxConfig", token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unconfigured store: %d, want 404", w.Code)
	}
}

func TestTaxConfigRoundTrip(t *testing.T) {
	env := setupEnv(t)
	token := env.login(t)

	w, _ := env.do(t, http.MethodPost, "/api/TaxConfig", token, gin.H{
		"taxRate": 10.0,
		"enabled": true,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("save: %d %s", w.Code, w.Body.String())
	}

	w, resp := env.do(t, http.MethodGet, "/api/TaxConfig", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get: %d %s", w.Code, w.Body.String())
	}
	var cfg entity.TaxConfig
	if err := json.Unmarshal(resp.Data, &cfg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.TaxRate != 10 || !cfg.Enabled || cfg.TaxLabel != "VAT" {
		t.Errorf("round trip lost data: %+v", cfg)
	}

	// Saving again replaces, it does not duplicate, and the cached copy is
	// dropped so the next read sees the new rate.
	w, _ = env.do(t, http.MethodPost, "/api/TaxConfig", token, gin.H{
		"taxRate": 8.0,
		"enabled": true,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("second save: %d %s", w.Code, w.Body.String())
	}

	w, resp = env.do(t, http.MethodGet, "/api/TaxConfig", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get after update: %d", w.Code)
	}
	if err := json.Unmarshal(resp.Data, &cfg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.TaxRate != 8 {
		t.Errorf("stale rate %v after update, want 8", cfg.TaxRate)
	}

	var count int64
	env.db.Model(&entity.TaxConfig{}).Count(&count)
	if count != 1 {
		t.Errorf("tax config rows = %d, want 1 (upsert)", count)
	}
}

func TestPrintConfigRoundTrip(t *testing.T) {
	env := setupEnv(t)
	token := env.login(t)

	w, _ := env.do(t, http.MethodGet, "/api/printconfig", token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unconfigured: %d, want 404", w.Code)
	}

	w, _ = env.do(t, http.MethodPost, "/api/printconfig", token, gin.H{
		"printerName":  "XPrinter 80mm",
		"paperProfile": "Thermal80",
		"copyCount":    2,
		"autoPrint":    true,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("save: %d %s", w.Code, w.Body.String())
	}

	w, resp := env.do(t, http.MethodGet, "/api/printconfig", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get: %d %s", w.Code, w.Body.String())
	}
	var cfg entity.PrintConfig
	if err := json.Unmarshal(resp.Data, &cfg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.PrinterName != "XPrinter 80mm" || cfg.CopyCount != 2 || !cfg.AutoPrint {
		t.Errorf("round trip lost data: %+v", cfg)
	}
	if !cfg.IsThermal() {
		t.Error("Thermal80 profile must resolve thermal")
	}
}

func createOrder(t *testing.T, env *testEnv, token string) uint {
	t.Helper()
	w, resp := env.do(t, http.MethodPost, "/api/orders", token, gin.H{
		"paymentMethod":  "cash",
		"customerName":   "Nguyễn Văn A",
		"subTotal":       100000,
		"taxAmount":      10000,
		"discountAmount": 5000,
		"totalAmount":    105000,
		"items": []gin.H{
			{"productName": "Cà phê sữa", "quantity": 2, "unitPrice": 20000, "totalPrice": 40000},
			{"productName": "Trà đào", "quantity": 3, "unitPrice": 20000, "totalPrice": 60000},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create order: %d %s", w.Code, w.Body.String())
	}
	var order entity.Order
	if err := json.Unmarshal(resp.Data, &order); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	return order.ID
}

func TestOrderDocumentLayouts(t *testing.T) {
	env := setupEnv(t)
	token := env.login(t)
	orderID := createOrder(t, env, token)

	w, resp := env.do(t, http.MethodGet, fmt.Sprintf("/api/orders/%d/document?layout=thermal", orderID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("document: %d %s", w.Code, w.Body.String())
	}
	var data struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, want := range []string{"KHACH HANG:", "2x20000 = 40000", "TOTAL: 105000"} {
		if !bytes.Contains([]byte(data.Text), []byte(want)) {
			t.Errorf("thermal document missing %q:\n%s", want, data.Text)
		}
	}

	w, resp = env.do(t, http.MethodGet, fmt.Sprintf("/api/orders/%d/document?layout=standard", orderID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("standard document: %d", w.Code)
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Contains([]byte(data.Text), []byte("TỔNG CỘNG: 105.000 ₫")) {
		t.Errorf("standard document missing grouped total:\n%s", data.Text)
	}
}

func TestCancelOrder(t *testing.T) {
	env := setupEnv(t)
	token := env.login(t)
	orderID := createOrder(t, env, token)

	w, resp := env.do(t, http.MethodPost, fmt.Sprintf("/api/orders/%d/cancel", orderID), token, gin.H{
		"reason": "Khách đổi ý",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("cancel: %d %s", w.Code, w.Body.String())
	}

	var order entity.Order
	if err := json.Unmarshal(resp.Data, &order); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if order.CancelledAt == nil {
		t.Error("cancelled order must carry CancelledAt")
	}
	if order.LossAmount != 105000 {
		t.Errorf("loss = %d, want the order total", order.LossAmount)
	}
	if order.CancelledQuantity != 5 {
		t.Errorf("cancelled quantity = %d, want 5", order.CancelledQuantity)
	}

	// Cancelling twice conflicts.
	w, _ = env.do(t, http.MethodPost, fmt.Sprintf("/api/orders/%d/cancel", orderID), token, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("second cancel: %d, want 409", w.Code)
	}
}

func TestCancelUnknownOrderIs404(t *testing.T) {
	env := setupEnv(t)
	token := env.login(t)

	w, _ := env.do(t, http.MethodPost, "/api/orders/9999/cancel", token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown order: %d, want 404", w.Code)
	}
}

func TestCancelledOrdersReport(t *testing.T) {
	env := setupEnv(t)
	token := env.login(t)
	orderID := createOrder(t, env, token)

	w, _ := env.do(t, http.MethodPost, fmt.Sprintf("/api/orders/%d/cancel", orderID), token, gin.H{
		"reason": "Hết hàng",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("cancel: %d %s", w.Code, w.Body.String())
	}

	w, resp := env.do(t, http.MethodGet, "/api/reports/cancelled-orders", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("report: %d %s", w.Code, w.Body.String())
	}

	var report service.CancelledOrdersReport
	if err := json.Unmarshal(resp.Data, &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.OrderCount != 1 {
		t.Errorf("order count = %d, want 1", report.OrderCount)
	}
	if report.TotalCancelledQuantity != 5 {
		t.Errorf("cancelled quantity = %d, want 5", report.TotalCancelledQuantity)
	}
	if report.TotalLossAmount != 105000 {
		t.Errorf("loss = %d, want 105000", report.TotalLossAmount)
	}
	if report.AverageLossAmount != 105000 {
		t.Errorf("average = %d, want 105000", report.AverageLossAmount)
	}
	if len(report.Orders) != 1 {
		t.Errorf("orders = %d, want 1", len(report.Orders))
	}
}

func TestCancelledOrdersReportEmptyWindow(t *testing.T) {
	env := setupEnv(t)
	token := env.login(t)

	w, resp := env.do(t, http.MethodGet, "/api/reports/cancelled-orders?startDate=2023-01-01&endDate=2023-01-31", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("report: %d %s", w.Code, w.Body.String())
	}

	var report service.CancelledOrdersReport
	if err := json.Unmarshal(resp.Data, &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.OrderCount != 0 || report.TotalLossAmount != 0 || report.AverageLossAmount != 0 {
		t.Errorf("empty window must aggregate to zero: %+v", report)
	}
}

func TestPrintOrderJobLifecycle(t *testing.T) {
	env := setupEnv(t)
	token := env.login(t)
	orderID := createOrder(t, env, token)

	w, resp := env.do(t, http.MethodPost, fmt.Sprintf("/api/print/orders/%d", orderID), token, nil)
	if w.Code != http.StatusAccepted {
		t.Fatalf("print: %d %s", w.Code, w.Body.String())
	}

	var job service.PrintJob
	if err := json.Unmarshal(resp.Data, &job); err != nil {
		t.Fatalf("decode job: %v", err)
	}

	// The null printer settles the job on its own after a short delay.
	deadline := time.Now().Add(3 * time.Second)
	for {
		w, resp = env.do(t, http.MethodGet, "/api/print/jobs/"+job.ID.String(), token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("get job: %d", w.Code)
		}
		var polled struct {
			Status string `json:"status"`
		}
		if err := json.Unmarshal(resp.Data, &polled); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if polled.Status == "Completed" {
			break
		}
		if polled.Status == "Failed" {
			t.Fatal("job failed")
		}
		if time.Now().After(deadline) {
			t.Fatalf("job stuck in %s", polled.Status)
		}
		time.Sleep(50 * time.Millisecond)
	}
}
