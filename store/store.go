// Package store defines the Account Store: the persistence contract for users and
// bills shared by the postgres and in-memory backends.
package store

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/user/pagamentos-go/models"
)

var (
	// ErrUserNotFound is returned when no user has the requested id or email.
	ErrUserNotFound = errors.New("user not found")
	// ErrBillNotFound is returned when no bill has the requested id.
	ErrBillNotFound = errors.New("bill not found")
	// ErrEmailTaken is returned when another user already uses the email.
	ErrEmailTaken = errors.New("email already in use")
	// ErrUserHasBills is returned when deleting a user that still owns bills.
	ErrUserHasBills = errors.New("user still owns bills")
	// ErrConflict is returned when a row changed since it was read (version mismatch).
	ErrConflict = errors.New("record was modified concurrently")
)

// PendingQuery selects pending bills due within [Start, End].
// A nil UserID means every user.
type PendingQuery struct {
	Start  models.Date
	End    models.Date
	UserID *int64
}

// BillFilter narrows a bill listing. Zero values are no-ops.
type BillFilter struct {
	DueDate *models.Date
	Name    string
}

// UserRepository persists users.
type UserRepository interface {
	// CreateUser inserts the user and fills in ID, Version and timestamps.
	CreateUser(ctx context.Context, user *models.User) error
	// UpdateUser writes every mutable field if user.Version still matches the stored row,
	// then bumps user.Version. Returns ErrConflict on mismatch.
	UpdateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context, page models.PageRequest) (models.Page[models.User], error)
	DeleteUser(ctx context.Context, id int64) error
}

// BillRepository persists bills and answers the reporting queries.
type BillRepository interface {
	CreateBill(ctx context.Context, bill *models.Bill) error
	// CreateBills inserts every bill or none of them.
	CreateBills(ctx context.Context, bills []*models.Bill) error
	// UpdateBill has the same version semantics as UpdateUser.
	UpdateBill(ctx context.Context, bill *models.Bill) error
	GetBill(ctx context.Context, id int64) (*models.Bill, error)
	DeleteBill(ctx context.Context, id int64) error
	ListBills(ctx context.Context, page models.PageRequest) (models.Page[models.Bill], error)
	ListBillsByUser(ctx context.Context, userID int64) ([]models.Bill, error)
	// SumPaid totals the paid bills of userID whose payment date is within [start, end].
	SumPaid(ctx context.Context, userID int64, start, end models.Date) (decimal.Decimal, error)
	// ListPending returns pending, unpaid bills due within the query range, ordered by due date.
	ListPending(ctx context.Context, q PendingQuery) ([]models.Bill, error)
	FilterBills(ctx context.Context, f BillFilter, page models.PageRequest) (models.Page[models.Bill], error)
}

// Store is the full Account Store.
type Store interface {
	UserRepository
	BillRepository

	// WithinTx runs fn against a transactional view of the store. The changes made
	// through that view are committed if fn returns nil and discarded otherwise.
	// Nested calls join the outer transaction.
	WithinTx(ctx context.Context, fn func(tx Store) error) error

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close()
}
