// Package bills manages the bill lifecycle and the reporting queries over bills.
package bills

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/user/pagamentos-go/apperror"
	"github.com/user/pagamentos-go/models"
	"github.com/user/pagamentos-go/store"
)

// Service provides bill lifecycle and query operations.
type Service struct {
	store  store.Store
	logger *slog.Logger
}

// NewService creates a new Service.
func NewService(st store.Store, logger *slog.Logger) *Service {
	return &Service{store: st, logger: logger}
}

func translate(err error, billID, userID int64, action string) error {
	if _, ok := apperror.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, store.ErrBillNotFound):
		return apperror.NewNotFoundError(fmt.Sprintf("bill with ID %d not found", billID), err)
	case errors.Is(err, store.ErrUserNotFound):
		return apperror.NewNotFoundError(fmt.Sprintf("user with ID %d not found", userID), err)
	case errors.Is(err, store.ErrConflict):
		return apperror.NewConflictError("bill was modified concurrently, retry the request", err)
	default:
		return apperror.NewDatabaseError("failed to "+action, err)
	}
}

func checkRange(start, end models.Date) error {
	if start.After(end) {
		return apperror.NewValidationError("start must not be after end", nil)
	}
	return nil
}

func checkAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return apperror.NewValidationError("amount must not be negative", nil)
	}
	return nil
}

// Create stores a new pending bill for an existing user.
func (s *Service) Create(ctx context.Context, req CreateBillRequest) (*models.Bill, error) {
	if err := checkAmount(*req.Amount); err != nil {
		return nil, err
	}
	bill := &models.Bill{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Note:        req.Note,
		Amount:      *req.Amount,
		DueDate:     *req.DueDate,
		UserID:      *req.UserID,
	}
	bill.ResetSettlement()

	err := s.store.WithinTx(ctx, func(tx store.Store) error {
		if _, err := tx.GetUser(ctx, bill.UserID); err != nil {
			return err
		}
		return tx.CreateBill(ctx, bill)
	})
	if err != nil {
		return nil, translate(err, 0, bill.UserID, "create bill")
	}

	s.logger.InfoContext(ctx, "bill created", "bill_id", bill.ID, "user_id", bill.UserID)
	return bill, nil
}

// Update overwrites a bill. The status is kept when the request carries none.
// Payment date is taken from the request as is, so a caller can set a status
// without a matching payment date.
func (s *Service) Update(ctx context.Context, id int64, req UpdateBillRequest) (*models.Bill, error) {
	if err := checkAmount(*req.Amount); err != nil {
		return nil, err
	}
	if req.Status != nil && !req.Status.Valid() {
		return nil, apperror.NewValidationError(
			fmt.Sprintf("status must be one of [%s %s]", models.StatusPending, models.StatusPaid), nil)
	}

	var bill *models.Bill
	err := s.store.WithinTx(ctx, func(tx store.Store) error {
		var err error
		bill, err = tx.GetBill(ctx, id)
		if err != nil {
			return err
		}
		if _, err := tx.GetUser(ctx, *req.UserID); err != nil {
			return err
		}

		bill.Name = strings.TrimSpace(req.Name)
		bill.Description = req.Description
		bill.Note = req.Note
		bill.Amount = *req.Amount
		bill.DueDate = *req.DueDate
		bill.UserID = *req.UserID
		bill.PaymentDate = req.PaymentDate
		if req.Status != nil {
			bill.Status = *req.Status
		}
		return tx.UpdateBill(ctx, bill)
	})
	if err != nil {
		return nil, translate(err, id, *req.UserID, "update bill")
	}
	return bill, nil
}

// Delete removes a bill.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteBill(ctx, id); err != nil {
		return translate(err, id, 0, "delete bill")
	}
	s.logger.InfoContext(ctx, "bill deleted", "bill_id", id)
	return nil
}

// FindByID returns one bill.
func (s *Service) FindByID(ctx context.Context, id int64) (*models.Bill, error) {
	bill, err := s.store.GetBill(ctx, id)
	if err != nil {
		return nil, translate(err, id, 0, "get bill")
	}
	return bill, nil
}

// List returns a page of bills ordered by id.
func (s *Service) List(ctx context.Context, page models.PageRequest) (*BillPage, error) {
	result, err := s.store.ListBills(ctx, page)
	if err != nil {
		return nil, translate(err, 0, 0, "list bills")
	}
	return &result, nil
}

// ListByUser returns every bill of an existing user.
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]models.Bill, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, translate(err, 0, userID, "get user")
	}
	bills, err := s.store.ListBillsByUser(ctx, userID)
	if err != nil {
		return nil, translate(err, 0, userID, "list bills")
	}
	return nonNil(bills), nil
}

// TotalPaid sums the bills userID paid within [start, end].
func (s *Service) TotalPaid(ctx context.Context, start, end models.Date, userID int64) (*TotalPaidResponse, error) {
	if err := checkRange(start, end); err != nil {
		return nil, err
	}
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, translate(err, 0, userID, "get user")
	}
	total, err := s.store.SumPaid(ctx, userID, start, end)
	if err != nil {
		return nil, translate(err, 0, userID, "sum paid bills")
	}
	return &TotalPaidResponse{
		UserID:    user.ID,
		UserName:  user.Name,
		TotalPaid: models.NewMoney(total),
		Message:   fmt.Sprintf("total paid between %s and %s", start, end),
	}, nil
}

// PendingBetween lists the pending bills of every user due within [start, end].
func (s *Service) PendingBetween(ctx context.Context, start, end models.Date) ([]models.Bill, error) {
	if err := checkRange(start, end); err != nil {
		return nil, err
	}
	bills, err := s.store.ListPending(ctx, store.PendingQuery{Start: start, End: end})
	if err != nil {
		return nil, translate(err, 0, 0, "list pending bills")
	}
	return nonNil(bills), nil
}

// PendingForUser is PendingBetween scoped to one existing user.
func (s *Service) PendingForUser(ctx context.Context, start, end models.Date, userID int64) ([]models.Bill, error) {
	if err := checkRange(start, end); err != nil {
		return nil, err
	}
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, translate(err, 0, userID, "get user")
	}
	bills, err := s.store.ListPending(ctx, store.PendingQuery{Start: start, End: end, UserID: &userID})
	if err != nil {
		return nil, translate(err, 0, userID, "list pending bills")
	}
	return nonNil(bills), nil
}

// Filter returns a page of bills matching the optional due date and name substring.
func (s *Service) Filter(ctx context.Context, dueDate *models.Date, name string, page models.PageRequest) (*BillPage, error) {
	result, err := s.store.FilterBills(ctx, store.BillFilter{DueDate: dueDate, Name: name}, page)
	if err != nil {
		return nil, translate(err, 0, 0, "filter bills")
	}
	return &result, nil
}

func nonNil(bills []models.Bill) []models.Bill {
	if bills == nil {
		return []models.Bill{}
	}
	return bills
}
