package service

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ndthang/storepos-api/internal/domain/entity"
	"github.com/ndthang/storepos-api/internal/domain/enum"
	"github.com/ndthang/storepos-api/internal/domain/repository"
	"github.com/ndthang/storepos-api/internal/infrastructure/cache"
	"github.com/ndthang/storepos-api/pkg/receipt"
)

type fakeOrderRepo struct {
	orders map[uint]*entity.Order
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	f.orders[order.ID] = order
	return nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id uint) (*entity.Order, error) {
	return f.orders[id], nil
}

func (f *fakeOrderRepo) GetWithItems(ctx context.Context, id uint) (*entity.Order, error) {
	return f.orders[id], nil
}

func (f *fakeOrderRepo) Update(ctx context.Context, order *entity.Order) error {
	f.orders[order.ID] = order
	return nil
}

func (f *fakeOrderRepo) List(ctx context.Context, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	return nil, 0, nil
}

type fakeStoreRepo struct {
	stores map[uuid.UUID]*entity.Store
}

func (f *fakeStoreRepo) Create(ctx context.Context, store *entity.Store) error {
	f.stores[store.ID] = store
	return nil
}

func (f *fakeStoreRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	return f.stores[id], nil
}

func (f *fakeStoreRepo) List(ctx context.Context) ([]entity.Store, error) {
	return nil, nil
}

type fakeConfigRepo struct {
	print *entity.PrintConfig
}

func (f *fakeConfigRepo) GetTaxConfig(ctx context.Context, storeID uuid.UUID) (*entity.TaxConfig, error) {
	return nil, nil
}

func (f *fakeConfigRepo) SaveTaxConfig(ctx context.Context, cfg *entity.TaxConfig) error {
	return nil
}

func (f *fakeConfigRepo) GetPaymentMethodConfig(ctx context.Context, storeID uuid.UUID) (*entity.PaymentMethodConfig, error) {
	return nil, nil
}

func (f *fakeConfigRepo) SavePaymentMethodConfig(ctx context.Context, cfg *entity.PaymentMethodConfig) error {
	return nil
}

func (f *fakeConfigRepo) GetPrintConfig(ctx context.Context, storeID uuid.UUID) (*entity.PrintConfig, error) {
	return f.print, nil
}

func (f *fakeConfigRepo) SavePrintConfig(ctx context.Context, cfg *entity.PrintConfig) error {
	f.print = cfg
	return nil
}

// fakePrinter captures what would have gone to the device.
type fakePrinter struct {
	mu        sync.Mutex
	written   []byte
	err       error
	connected bool
}

func (p *fakePrinter) Print(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.written = append(p.written, data...)
	return nil
}

func (p *fakePrinter) Close() error { return nil }

func (p *fakePrinter) IsConnected() bool { return p.connected }

func (p *fakePrinter) bytes() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]byte(nil), p.written...)
}

func newPrintFixture(p *fakePrinter, printCfg *entity.PrintConfig) (*PrintService, uuid.UUID, uint) {
	storeID := uuid.New()
	store := &entity.Store{ID: storeID, Name: "Cửa hàng 1", Phone: "0901234567"}
	order := &entity.Order{
		ID:            42,
		PaymentMethod: "cash",
		CustomerName:  "Nguyễn Văn A",
		SubTotal:      40000,
		TotalAmount:   40000,
		CreatedAt:     time.Date(2024, 1, 15, 14, 30, 5, 0, time.Local),
		Items: []entity.OrderItem{
			{ProductName: "Cà phê sữa", Quantity: 2, UnitPrice: 20000, TotalPrice: 40000},
		},
	}

	orderRepo := &fakeOrderRepo{orders: map[uint]*entity.Order{42: order}}
	storeRepo := &fakeStoreRepo{stores: map[uuid.UUID]*entity.Store{storeID: store}}
	configSvc := NewConfigService(&fakeConfigRepo{print: printCfg}, cache.NewMemory())
	return NewPrintService(orderRepo, storeRepo, configSvc, p), storeID, 42
}

func waitForJob(t *testing.T, svc *PrintService, id uuid.UUID) *PrintJob {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		job, err := svc.GetJob(context.Background(), id)
		if err != nil {
			t.Fatalf("get job: %v", err)
		}
		if job.Status != enum.PrintJobInProgress {
			return job
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("job never settled")
	return nil
}

func TestPrintOrderCompletesAndEncodesReceipt(t *testing.T) {
	p := &fakePrinter{connected: true}
	svc, storeID, orderID := newPrintFixture(p, nil)

	job, err := svc.PrintOrder(context.Background(), orderID, storeID)
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if job.Status != enum.PrintJobInProgress {
		t.Errorf("new job status = %v, want InProgress", job.Status)
	}

	done := waitForJob(t, svc, job.ID)
	if done.Status != enum.PrintJobCompleted {
		t.Fatalf("job status = %v (%s)", done.Status, done.Error)
	}
	if done.CompletedAt == nil {
		t.Error("completed job must carry CompletedAt")
	}

	data := p.bytes()
	for _, want := range []string{"CA PHE SUA", "2x20000 = 40000", "KHACH HANG:", "TOTAL:"} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("encoded stream missing %q", want)
		}
	}
	// The stream must be ASCII-safe for the device.
	for _, b := range data {
		if b >= 0x80 {
			t.Fatalf("non-ASCII byte 0x%x in ESC/POS stream", b)
		}
	}
}

func TestPrintOrderFailedJobKeepsError(t *testing.T) {
	p := &fakePrinter{connected: true, err: errors.New("paper jam")}
	svc, storeID, orderID := newPrintFixture(p, nil)

	job, err := svc.PrintOrder(context.Background(), orderID, storeID)
	if err != nil {
		t.Fatalf("print: %v", err)
	}

	done := waitForJob(t, svc, job.ID)
	if done.Status != enum.PrintJobFailed {
		t.Fatalf("job status = %v, want Failed", done.Status)
	}
	if done.Error != "paper jam" {
		t.Errorf("job error = %q", done.Error)
	}
}

func TestPrintOrderWithoutHardwareSettlesItself(t *testing.T) {
	p := &fakePrinter{connected: false}
	svc, storeID, orderID := newPrintFixture(p, nil)

	job, err := svc.PrintOrder(context.Background(), orderID, storeID)
	if err != nil {
		t.Fatalf("print: %v", err)
	}

	done := waitForJob(t, svc, job.ID)
	if done.Status != enum.PrintJobCompleted {
		t.Fatalf("job status = %v, want Completed", done.Status)
	}
}

func TestPrintOrderHonorsCopyCountAndWidth(t *testing.T) {
	p := &fakePrinter{connected: true}
	cfg := &entity.PrintConfig{
		PaperProfile: enum.PaperProfileThermal80,
		CopyCount:    2,
	}
	svc, storeID, orderID := newPrintFixture(p, cfg)

	job, err := svc.PrintOrder(context.Background(), orderID, storeID)
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	waitForJob(t, svc, job.ID)

	data := p.bytes()
	if got := bytes.Count(data, []byte{0x1D, 'V', 0x01}); got != 2 {
		t.Errorf("partial cuts = %d, want one per copy", got)
	}
	if !bytes.Contains(data, bytes.Repeat([]byte{'-'}, 48)) {
		t.Error("80mm profile must print 48-column separators")
	}
}

func TestBuildDocumentLayoutResolution(t *testing.T) {
	svc, storeID, orderID := newPrintFixture(&fakePrinter{connected: true}, &entity.PrintConfig{
		PrinterName: "POS-58",
	})

	// No override: the config's heuristic resolves thermal.
	doc, err := svc.BuildDocument(context.Background(), orderID, storeID, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if doc.Layout != receipt.LayoutThermal {
		t.Errorf("resolved layout = %v, want thermal", doc.Layout)
	}

	// Explicit override wins over the config.
	standard := receipt.LayoutStandard
	doc, err = svc.BuildDocument(context.Background(), orderID, storeID, &standard)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if doc.Layout != receipt.LayoutStandard {
		t.Errorf("override layout = %v, want standard", doc.Layout)
	}
}

func TestBuildDocumentUnknownOrder(t *testing.T) {
	svc, storeID, _ := newPrintFixture(&fakePrinter{connected: true}, nil)

	if _, err := svc.BuildDocument(context.Background(), 999, storeID, nil); err == nil {
		t.Fatal("expected not-found error")
	}
}

func TestStatusTransitions(t *testing.T) {
	p := &fakePrinter{connected: true}
	svc, storeID, orderID := newPrintFixture(p, nil)

	if got := svc.Status(context.Background()); got != enum.PrintJobIdle {
		t.Errorf("status with no jobs = %v, want Idle", got)
	}

	job, err := svc.PrintOrder(context.Background(), orderID, storeID)
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	waitForJob(t, svc, job.ID)

	if got := svc.Status(context.Background()); got != enum.PrintJobCompleted {
		t.Errorf("status after completion = %v, want Completed", got)
	}
}
