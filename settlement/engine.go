// Package settlement pays bills: it checks that the payer owns the bill, can
// afford it and has not paid it already, then debits the balance and marks the
// bill paid in a single transaction.
package settlement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/user/pagamentos-go/apperror"
	"github.com/user/pagamentos-go/models"
	"github.com/user/pagamentos-go/store"
)

var (
	// ErrWrongPayer means the paying user does not own the bill.
	ErrWrongPayer = errors.New("payer does not own the bill")
	// ErrInsufficientFunds means the bill amount exceeds the payer's balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrAlreadyPaid means the bill has been settled before.
	ErrAlreadyPaid = errors.New("bill already paid")
)

// Engine executes payments against the Account Store.
type Engine struct {
	store  store.Store
	now    func() time.Time
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock that decides the payment date.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an Engine.
func NewEngine(st store.Store, logger *slog.Logger, opts ...Option) *Engine {
	e := &Engine{store: st, now: time.Now, logger: logger}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Pay settles billID on behalf of payingUserID and returns the payer's new balance.
//
// Checks run in this order and the first failure wins: the bill exists, the user
// exists, the user owns the bill, the balance covers the amount (equality is
// enough), the bill is still pending. Nothing is written unless every check passes.
func (e *Engine) Pay(ctx context.Context, billID, payingUserID int64) (decimal.Decimal, error) {
	var (
		newBalance decimal.Decimal
		paidOn     models.Date
	)

	err := e.store.WithinTx(ctx, func(tx store.Store) error {
		bill, err := tx.GetBill(ctx, billID)
		if err != nil {
			return err
		}
		user, err := tx.GetUser(ctx, payingUserID)
		if err != nil {
			return err
		}

		// Ownership is decided by id, never by which struct instance was loaded.
		if bill.UserID != user.ID {
			return apperror.NewUnauthorizedError(
				fmt.Sprintf("%s is not allowed to pay this bill", user.Name), ErrWrongPayer)
		}
		if bill.Amount.GreaterThan(user.Balance) {
			return apperror.NewInsufficientFundsError("the user does not have enough balance", ErrInsufficientFunds)
		}
		if bill.IsPaid() {
			return apperror.NewAlreadyPaidError("this bill has already been paid", ErrAlreadyPaid)
		}

		paidOn = models.DateOf(e.now())
		user.Balance = user.Balance.Sub(bill.Amount)
		bill.MarkPaid(paidOn)

		if err := tx.UpdateBill(ctx, bill); err != nil {
			return err
		}
		if err := tx.UpdateUser(ctx, user); err != nil {
			return err
		}
		newBalance = user.Balance
		return nil
	})
	if err != nil {
		return decimal.Zero, e.translate(ctx, err, billID, payingUserID)
	}

	e.logger.InfoContext(ctx, "bill paid",
		"bill_id", billID,
		"user_id", payingUserID,
		"payment_date", paidOn.String(),
		"balance", newBalance.String(),
	)
	return newBalance, nil
}

func (e *Engine) translate(ctx context.Context, err error, billID, userID int64) error {
	if _, ok := apperror.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, store.ErrBillNotFound):
		return apperror.NewNotFoundError(fmt.Sprintf("bill with ID %d not found", billID), err)
	case errors.Is(err, store.ErrUserNotFound):
		return apperror.NewNotFoundError(fmt.Sprintf("user with ID %d not found", userID), err)
	case errors.Is(err, store.ErrConflict):
		return apperror.NewConflictError("bill or balance changed during payment, retry the request", err)
	default:
		e.logger.ErrorContext(ctx, "payment failed", "bill_id", billID, "user_id", userID, "error", err)
		return apperror.NewDatabaseError("failed to register payment", err)
	}
}

// RejectionReason labels a Pay error for metrics.
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, store.ErrBillNotFound), errors.Is(err, store.ErrUserNotFound):
		return "not_found"
	case errors.Is(err, ErrWrongPayer):
		return "wrong_payer"
	case errors.Is(err, ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ErrAlreadyPaid):
		return "already_paid"
	case errors.Is(err, store.ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}
