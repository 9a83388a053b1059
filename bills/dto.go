package bills

import (
	"github.com/shopspring/decimal"

	"github.com/user/pagamentos-go/models"
)

// CreateBillRequest is the payload for a new bill. Any status or payment date sent
// by the caller is ignored.
type CreateBillRequest struct {
	Name        string             `json:"name" validate:"required" example:"Internet"`
	Description string             `json:"description" validate:"required" example:"Fibra 500MB"`
	Note        *string            `json:"note,omitempty" example:"debito automatico"`
	Amount      *decimal.Decimal   `json:"amount" validate:"required" swaggertype:"string" example:"100.00"`
	DueDate     *models.Date       `json:"due_date" validate:"required" swaggertype:"string" example:"2024-05-10"`
	UserID      *int64             `json:"user_id" validate:"required" example:"1"`
	Status      *models.BillStatus `json:"status,omitempty" swaggerignore:"true"`
	PaymentDate *models.Date       `json:"payment_date,omitempty" swaggerignore:"true"`
}

// UpdateBillRequest replaces a bill. When Status is omitted the stored status is
// kept; every other field is overwritten, payment_date included.
type UpdateBillRequest struct {
	Name        string             `json:"name" validate:"required" example:"Internet"`
	Description string             `json:"description" validate:"required" example:"Fibra 500MB"`
	Note        *string            `json:"note,omitempty"`
	Amount      *decimal.Decimal   `json:"amount" validate:"required" swaggertype:"string" example:"120.00"`
	DueDate     *models.Date       `json:"due_date" validate:"required" swaggertype:"string" example:"2024-06-10"`
	UserID      *int64             `json:"user_id" validate:"required" example:"1"`
	Status      *models.BillStatus `json:"status,omitempty" example:"PENDENTE"`
	PaymentDate *models.Date       `json:"payment_date,omitempty" swaggertype:"string"`
}

// BillPage is a page of bills.
type BillPage = models.Page[models.Bill]

// TotalPaidResponse reports what a user paid within a date range.
type TotalPaidResponse struct {
	UserID    int64        `json:"user_id" example:"1"`
	UserName  string       `json:"user_name" example:"Maria Silva"`
	TotalPaid models.Money `json:"total_paid" swaggertype:"string" example:"250.00"`
	Message   string       `json:"message" example:"total paid between 2024-05-01 and 2024-05-31"`
}

// PayResponse is returned after a successful payment.
type PayResponse struct {
	Message string       `json:"message" example:"payment registered successfully"`
	Balance models.Money `json:"balance" swaggertype:"string" example:"100.00"`
}
