package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/user/pagamentos-go/models"
	"github.com/user/pagamentos-go/store"
)

// CreateBill stores a new bill owned by an existing user.
func (s *Store) CreateBill(ctx context.Context, bill *models.Bill) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.insertBill(bill)
}

// CreateBills validates every owner before inserting anything.
func (s *Store) CreateBills(ctx context.Context, bills []*models.Bill) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range bills {
		if _, ok := s.state.users[b.UserID]; !ok {
			return store.ErrUserNotFound
		}
	}
	for _, b := range bills {
		if err := s.insertBill(b); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) insertBill(bill *models.Bill) error {
	if _, ok := s.state.users[bill.UserID]; !ok {
		return store.ErrUserNotFound
	}
	s.state.nextBillID++
	now := s.now()
	bill.ID = s.state.nextBillID
	bill.Version = 1
	bill.CreatedAt = now
	bill.UpdatedAt = now
	s.state.bills[bill.ID] = cloneBill(*bill)
	return nil
}

// UpdateBill replaces the stored bill when the versions match.
func (s *Store) UpdateBill(ctx context.Context, bill *models.Bill) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.state.bills[bill.ID]
	if !ok {
		return store.ErrBillNotFound
	}
	if current.Version != bill.Version {
		return store.ErrConflict
	}
	if _, ok := s.state.users[bill.UserID]; !ok {
		return store.ErrUserNotFound
	}
	bill.Version++
	bill.CreatedAt = current.CreatedAt
	bill.UpdatedAt = s.now()
	s.state.bills[bill.ID] = cloneBill(*bill)
	return nil
}

// GetBill returns a copy of the bill with the given id.
func (s *Store) GetBill(ctx context.Context, id int64) (*models.Bill, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.state.bills[id]
	if !ok {
		return nil, store.ErrBillNotFound
	}
	b = cloneBill(b)
	return &b, nil
}

// DeleteBill removes the bill with the given id.
func (s *Store) DeleteBill(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.bills[id]; !ok {
		return store.ErrBillNotFound
	}
	delete(s.state.bills, id)
	return nil
}

// ListBills pages through bills ordered by id.
func (s *Store) ListBills(ctx context.Context, page models.PageRequest) (models.Page[models.Bill], error) {
	return s.FilterBills(ctx, store.BillFilter{}, page)
}

// ListBillsByUser returns every bill owned by userID, ordered by id.
func (s *Store) ListBillsByUser(ctx context.Context, userID int64) ([]models.Bill, error) {
	return s.selectBills(ctx, func(b models.Bill) bool { return b.UserID == userID }, byID)
}

// SumPaid totals paid bills of userID settled within [start, end].
func (s *Store) SumPaid(ctx context.Context, userID int64, start, end models.Date) (decimal.Decimal, error) {
	paid, err := s.selectBills(ctx, func(b models.Bill) bool {
		return b.UserID == userID &&
			b.Status == models.StatusPaid &&
			b.PaymentDate != nil &&
			b.PaymentDate.Between(start, end)
	}, byID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, b := range paid {
		total = total.Add(b.Amount)
	}
	return total, nil
}

// ListPending returns unpaid bills due within the range.
func (s *Store) ListPending(ctx context.Context, q store.PendingQuery) ([]models.Bill, error) {
	return s.selectBills(ctx, func(b models.Bill) bool {
		if q.UserID != nil && b.UserID != *q.UserID {
			return false
		}
		return b.Status == models.StatusPending &&
			b.PaymentDate == nil &&
			b.DueDate.Between(q.Start, q.End)
	}, byDueDate)
}

// FilterBills applies the due date and name filters, then pages the result.
func (s *Store) FilterBills(ctx context.Context, f store.BillFilter, page models.PageRequest) (models.Page[models.Bill], error) {
	matched, err := s.selectBills(ctx, func(b models.Bill) bool {
		if f.DueDate != nil && !b.DueDate.Equal(*f.DueDate) {
			return false
		}
		return f.Name == "" || strings.Contains(b.Name, f.Name)
	}, byID)
	if err != nil {
		return models.Page[models.Bill]{}, err
	}
	return models.NewPage(slicePage(matched, page), page, int64(len(matched))), nil
}

func byID(a, b models.Bill) bool { return a.ID < b.ID }

func byDueDate(a, b models.Bill) bool {
	if a.DueDate.Equal(b.DueDate) {
		return a.ID < b.ID
	}
	return a.DueDate.Before(b.DueDate)
}

func (s *Store) selectBills(ctx context.Context, keep func(models.Bill) bool, less func(a, b models.Bill) bool) ([]models.Bill, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Bill{}
	for _, b := range s.state.bills {
		if keep(b) {
			out = append(out, cloneBill(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out, nil
}
