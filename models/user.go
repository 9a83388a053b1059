package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is an account holder with a cash balance used to settle bills.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	// PasswordHash is the bcrypt hash. It never leaves the process.
	PasswordHash string          `json:"-"`
	Balance      decimal.Decimal `json:"balance" swaggertype:"string" example:"200.00"`
	// Version is bumped on every write and checked on update (optimistic locking).
	Version   int64     `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
