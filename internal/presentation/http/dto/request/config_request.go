package request

import "github.com/ndthang/storepos-api/internal/domain/enum"

// TaxConfigRequest upserts the store's tax configuration
type TaxConfigRequest struct {
	TaxRate  float64      `json:"taxRate" binding:"min=0,max=100"`
	TaxType  enum.TaxType `json:"taxType"`
	TaxLabel string       `json:"taxLabel" binding:"max=50"`
	Enabled  bool         `json:"enabled"`
}

// PaymentMethodConfigRequest upserts the store's payment method toggles
type PaymentMethodConfigRequest struct {
	CashEnabled         bool   `json:"cashEnabled"`
	CardEnabled         bool   `json:"cardEnabled"`
	QREnabled           bool   `json:"qrEnabled"`
	EWalletEnabled      bool   `json:"ewalletEnabled"`
	BankTransferEnabled bool   `json:"bankTransferEnabled"`
	DefaultMethod       string `json:"defaultMethod" binding:"max=20"`
}

// PrintConfigRequest upserts the store's print configuration. PaperProfile
// is optional; configs that omit it fall back to printer-name matching.
type PrintConfigRequest struct {
	PrinterName  string            `json:"printerName" binding:"max=150"`
	PaperProfile enum.PaperProfile `json:"paperProfile"`
	PaperSize    string            `json:"paperSize" binding:"max=20"`
	CopyCount    int               `json:"copyCount" binding:"min=0,max=5"`
	AutoPrint    bool              `json:"autoPrint"`
	PrintBarcode bool              `json:"printBarcode"`
	PrintLogo    bool              `json:"printLogo"`
}
