package service

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ndthang/storepos-api/internal/domain/entity"
	"github.com/ndthang/storepos-api/internal/domain/enum"
	"github.com/ndthang/storepos-api/internal/domain/repository"
	"github.com/ndthang/storepos-api/pkg/apperror"
	"github.com/ndthang/storepos-api/pkg/format"
	"github.com/ndthang/storepos-api/pkg/printer"
	"github.com/ndthang/storepos-api/pkg/receipt"
)

// printFallbackDelay is how long a job stays InProgress when no printer
// hardware is reachable. Printing is fire-and-forget at the device level,
// so the job settles itself instead of hanging forever.
const printFallbackDelay = time.Second

// PrintJob tracks one asynchronous print request.
type PrintJob struct {
	ID          uuid.UUID           `json:"id"`
	OrderID     uint                `json:"orderId"`
	Status      enum.PrintJobStatus `json:"status"`
	Error       string              `json:"error,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	CompletedAt *time.Time          `json:"completedAt,omitempty"`
}

// PrintService builds sales documents and drives the receipt printer.
// Jobs are kept in memory: a POS terminal owns its own print queue and
// does not survive restarts, matching how the cashier experiences it.
type PrintService struct {
	orderRepo     repository.OrderRepository
	storeRepo     repository.StoreRepository
	configService *ConfigService
	printer       printer.Printer

	mu   sync.RWMutex
	jobs map[uuid.UUID]*PrintJob
}

// NewPrintService creates a new print service
func NewPrintService(
	orderRepo repository.OrderRepository,
	storeRepo repository.StoreRepository,
	configService *ConfigService,
	p printer.Printer,
) *PrintService {
	return &PrintService{
		orderRepo:     orderRepo,
		storeRepo:     storeRepo,
		configService: configService,
		printer:       p,
		jobs:          make(map[uuid.UUID]*PrintJob),
	}
}

// BuildDocument renders the sales document for an order. When layout is nil
// the store's print configuration decides between the thermal and standard
// variants; an explicit layout always wins.
func (s *PrintService) BuildDocument(ctx context.Context, orderID uint, storeID uuid.UUID, layout *receipt.Layout) (*receipt.Document, error) {
	order, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}

	resolved := receipt.LayoutStandard
	if layout != nil {
		resolved = *layout
	} else {
		cfg, err := s.configService.GetPrintConfig(ctx, storeID)
		if err != nil {
			return nil, err
		}
		resolved = cfg.Layout()
	}

	doc, err := receipt.Render(toReceiptOrder(order), toReceiptStore(store), resolved)
	if err != nil {
		// Malformed order data blocks the document; 422 so the frontend can
		// tell it apart from a bad request it could retry differently.
		return nil, apperror.NewAppError(http.StatusUnprocessableEntity, err.Error())
	}
	return doc, nil
}

// PrintOrder renders the order's receipt and queues it for printing. The
// returned job starts InProgress; poll GetJob for the outcome.
func (s *PrintService) PrintOrder(ctx context.Context, orderID uint, storeID uuid.UUID) (*PrintJob, error) {
	// The physical device is thermal, so the printed variant is always the
	// thermal one regardless of what the on-screen preview showed.
	layout := receipt.LayoutThermal
	doc, err := s.BuildDocument(ctx, orderID, storeID, &layout)
	if err != nil {
		return nil, err
	}

	cfg, err := s.configService.GetPrintConfig(ctx, storeID)
	if err != nil {
		return nil, err
	}
	width := receipt.ThermalWidth58
	copies := 1
	if cfg != nil {
		if w := cfg.PaperProfile.Width(); w > 0 {
			width = w
		}
		if cfg.CopyCount > 1 {
			copies = cfg.CopyCount
		}
	}

	data := encodeThermal(doc, width, copies)

	job := &PrintJob{
		ID:        uuid.New(),
		OrderID:   orderID,
		Status:    enum.PrintJobInProgress,
		CreatedAt: time.Now(),
	}
	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	go s.runJob(job.ID, data)

	return s.snapshot(job.ID), nil
}

// TestPrint sends a short test page so the cashier can verify the device
// and paper width without creating an order.
func (s *PrintService) TestPrint(ctx context.Context, storeID uuid.UUID) (*PrintJob, error) {
	cfg, err := s.configService.GetPrintConfig(ctx, storeID)
	if err != nil {
		return nil, err
	}
	width := receipt.ThermalWidth58
	if cfg != nil {
		if w := cfg.PaperProfile.Width(); w > 0 {
			width = w
		}
	}

	b := printer.NewBuilder(width)
	b.SetAlign(printer.AlignCenter).
		SetBold(true).
		Text("TEST PRINT").
		SetBold(false).
		Text(format.DateTime(time.Now())).
		SetAlign(printer.AlignLeft).
		Separator('-').
		TextF("WIDTH: %d", width).
		FeedLines(3).
		PartialCut()

	job := &PrintJob{
		ID:        uuid.New(),
		Status:    enum.PrintJobInProgress,
		CreatedAt: time.Now(),
	}
	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	go s.runJob(job.ID, b.Bytes())

	return s.snapshot(job.ID), nil
}

// GetJob returns the current state of a print job.
func (s *PrintService) GetJob(ctx context.Context, id uuid.UUID) (*PrintJob, error) {
	job := s.snapshot(id)
	if job == nil {
		return nil, apperror.NewNotFoundError("Print job")
	}
	return job, nil
}

// Status reports the overall printing state: InProgress while any job is
// running, otherwise the state of the most recent job, Idle with no jobs.
func (s *PrintService) Status(ctx context.Context) enum.PrintJobStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *PrintJob
	for _, job := range s.jobs {
		if job.Status == enum.PrintJobInProgress {
			return enum.PrintJobInProgress
		}
		if latest == nil || job.CreatedAt.After(latest.CreatedAt) {
			latest = job
		}
	}
	if latest == nil {
		return enum.PrintJobIdle
	}
	return latest.Status
}

func (s *PrintService) runJob(jobID uuid.UUID, data []byte) {
	if !s.printer.IsConnected() {
		// No reachable device. The write went nowhere, so settle the job
		// after a grace period instead of leaving it InProgress.
		time.AfterFunc(printFallbackDelay, func() {
			s.finishJob(jobID, enum.PrintJobCompleted, "")
		})
		return
	}

	if err := s.printer.Print(data); err != nil {
		s.finishJob(jobID, enum.PrintJobFailed, err.Error())
		return
	}
	s.finishJob(jobID, enum.PrintJobCompleted, "")
}

func (s *PrintService) finishJob(jobID uuid.UUID, status enum.PrintJobStatus, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return
	}
	now := time.Now()
	job.Status = status
	job.Error = errMsg
	job.CompletedAt = &now
}

func (s *PrintService) snapshot(jobID uuid.UUID) *PrintJob {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return nil
	}
	copied := *job
	return &copied
}

func toReceiptStore(store *entity.Store) receipt.Store {
	if store == nil {
		return receipt.Store{}
	}
	return receipt.Store{
		Name:    store.Name,
		Address: store.Address,
		Phone:   store.Phone,
	}
}

func toReceiptOrder(order *entity.Order) receipt.Order {
	o := receipt.Order{
		ID:             order.ID,
		Number:         order.OrderNumber,
		CreatedAt:      order.CreatedAt,
		CustomerName:   order.CustomerName,
		PaymentMethod:  order.PaymentMethod,
		SubTotal:       float64(order.SubTotal),
		TaxAmount:      float64(order.TaxAmount),
		DiscountAmount: float64(order.DiscountAmount),
		TotalAmount:    float64(order.TotalAmount),
	}
	if order.Staff != nil {
		o.CashierName = order.Staff.FullName
	}
	for _, item := range order.Items {
		o.Items = append(o.Items, receipt.OrderItem{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   float64(item.UnitPrice),
			LineTotal:   float64(item.TotalPrice),
		})
	}
	return o
}

// encodeThermal turns a rendered document into an ESC/POS byte stream. The
// document must already be the thermal variant: its strings are transliterated
// to ASCII and truncated to the paper width.
func encodeThermal(doc *receipt.Document, width, copies int) []byte {
	b := printer.NewBuilder(width)

	for i := 0; i < copies; i++ {
		b.SetAlign(printer.AlignCenter).
			SetBold(true).
			SetFontSize(printer.FontDouble).
			Text(doc.Store.Name).
			SetFontSize(printer.FontNormal).
			SetBold(false)
		if doc.Store.Address != "" {
			b.Text(doc.Store.Address)
		}
		if doc.Store.Phone != "" {
			b.Text(doc.Store.Phone)
		}

		b.SetAlign(printer.AlignLeft).
			Separator('-').
			SetBold(true).
			Text("#" + doc.OrderNo).
			SetBold(false).
			Separator('-')

		b.Text("KHACH HANG: " + doc.Customer).
			Text("NGAY: " + doc.Date).
			Text("GIO: " + doc.Time).
			Text("THANH TOAN: " + doc.Payment)
		if doc.Cashier != "" {
			b.Text("THU NGAN: " + doc.Cashier)
		}
		b.Separator('-')

		for _, item := range doc.Items {
			b.Text(item.Name).
				TextF("%dx%s = %s", item.Quantity, format.Amount(item.UnitPrice), format.Amount(item.LineTotal))
		}
		b.Separator('-')

		b.KeyValue("SUBTOTAL:", format.Amount(doc.Totals.SubTotal))
		if doc.Totals.ShowTax {
			b.KeyValue("VAT:", format.Amount(doc.Totals.Tax))
		}
		if doc.Totals.ShowDiscount {
			b.KeyValue("DISCOUNT:", "-"+format.Amount(doc.Totals.Discount))
		}
		b.Separator('=').
			SetBold(true).
			KeyValue("TOTAL:", format.Amount(doc.Totals.GrandTotal)).
			SetBold(false).
			Separator('-')

		b.SetAlign(printer.AlignCenter).
			Text(doc.Footer).
			SetAlign(printer.AlignLeft).
			FeedLines(3).
			PartialCut()
	}

	return b.Bytes()
}
