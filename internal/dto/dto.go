package dto

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type AddToCartRequest struct {
	CourseID uint `json:"course_id"`
	Quantity int  `json:"quantity"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type ModerateItemRequest struct {
	Status string `json:"status"`
}

type SubmitPaymentRequest struct {
	OrderID      uint   `json:"order_id"`
	ReceiptImage string `json:"receipt_image"`
	InstructorID uint   `json:"instructor_id"`
}

type ReasonRequest struct {
	Reason string `json:"reason"`
}

// CheckoutRequest carries one receipt reference per instructor group,
// keyed by instructor id.
type CheckoutRequest struct {
	Receipts map[uint]string `json:"receipts"`
}

type CheckoutResponse struct {
	OrderID    uint   `json:"order_id"`
	PaymentIDs []uint `json:"payment_ids"`
	InvoiceID  uint   `json:"invoice_id,omitempty"`
}

type FinancialReport struct {
	TotalPending  string `json:"total_pending"`
	TotalVerified string `json:"total_verified"`
	TotalRejected string `json:"total_rejected"`
	TotalRefunded string `json:"total_refunded"`
	PaymentCount  int    `json:"payment_count"`
}
