package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BillStatus is the settlement state of a bill.
type BillStatus string

const (
	// StatusPending marks a bill that has not been paid yet.
	StatusPending BillStatus = "PENDENTE"
	// StatusPaid marks a bill settled by the payment flow.
	StatusPaid BillStatus = "PAGO"
)

// Valid reports whether s is one of the known statuses.
func (s BillStatus) Valid() bool {
	return s == StatusPending || s == StatusPaid
}

// ParseBillStatus converts a raw string into a BillStatus.
func ParseBillStatus(raw string) (BillStatus, error) {
	s := BillStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown bill status %q", raw)
	}
	return s, nil
}

// Bill is a payable obligation owned by exactly one user.
type Bill struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Note        *string         `json:"note,omitempty"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string" example:"100.00"`
	DueDate     Date            `json:"due_date" swaggertype:"string" example:"2024-05-10"`
	PaymentDate *Date           `json:"payment_date" swaggertype:"string" example:"2024-05-09"`
	Status      BillStatus      `json:"status" example:"PENDENTE"`
	UserID      int64           `json:"user_id"`
	Version     int64           `json:"-"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// IsPaid reports whether the bill has been settled.
func (b *Bill) IsPaid() bool {
	return b.Status == StatusPaid
}

// ResetSettlement clears any settlement state so the bill starts out pending.
func (b *Bill) ResetSettlement() {
	b.Status = StatusPending
	b.PaymentDate = nil
}

// MarkPaid records a settlement on the given day.
func (b *Bill) MarkPaid(on Date) {
	b.Status = StatusPaid
	b.PaymentDate = &on
}

// MarshalJSON writes the amount with its currency scale (see FormatMoney).
func (b Bill) MarshalJSON() ([]byte, error) {
	type plain Bill
	return json.Marshal(struct {
		plain
		Amount Money `json:"amount"`
	}{plain: plain(b), Amount: NewMoney(b.Amount)})
}
