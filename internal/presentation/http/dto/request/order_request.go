package request

// CreateOrderRequest represents a new order from a POS terminal. Amounts
// are whole đồng; the terminal computes the totals and the server stores
// them as submitted.
type CreateOrderRequest struct {
	CustomerName   string                   `json:"customerName" binding:"max=100"`
	CustomerPhone  string                   `json:"customerPhone" binding:"max=20"`
	PaymentMethod  string                   `json:"paymentMethod" binding:"required"`
	SubTotal       int64                    `json:"subTotal" binding:"min=0"`
	TaxAmount      int64                    `json:"taxAmount" binding:"min=0"`
	DiscountAmount int64                    `json:"discountAmount" binding:"min=0"`
	TotalAmount    int64                    `json:"totalAmount" binding:"min=0"`
	Items          []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreateOrderItemRequest represents a line item in a new order
type CreateOrderItemRequest struct {
	ProductID   uint   `json:"productId"`
	ProductName string `json:"productName" binding:"required,max=150"`
	Quantity    int    `json:"quantity" binding:"required,min=1"`
	UnitPrice   int64  `json:"unitPrice" binding:"min=0"`
	TotalPrice  int64  `json:"totalPrice" binding:"min=0"`
}

// CancelOrderRequest represents an order cancellation
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"max=255"`
}
