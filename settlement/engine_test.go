package settlement

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/pagamentos-go/apperror"
	"github.com/user/pagamentos-go/logging"
	"github.com/user/pagamentos-go/models"
	"github.com/user/pagamentos-go/store"
	"github.com/user/pagamentos-go/store/memory"
)

var today = time.Date(2024, time.May, 9, 15, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return today }

type fixture struct {
	store  *memory.Store
	engine *Engine
	owner  *models.User
	other  *models.User
	bill   *models.Bill
}

// newFixture creates the owner with the given balance, a second user with plenty
// of money, and one pending bill of amount owned by the owner.
func newFixture(t *testing.T, balance, amount string) *fixture {
	t.Helper()
	ctx := context.Background()
	st := memory.New()

	owner := &models.User{Name: "Maria", Email: "maria@example.com", PasswordHash: "x", Balance: decimal.RequireFromString(balance)}
	require.NoError(t, st.CreateUser(ctx, owner))
	other := &models.User{Name: "João", Email: "joao@example.com", PasswordHash: "x", Balance: decimal.RequireFromString("1000")}
	require.NoError(t, st.CreateUser(ctx, other))

	bill := &models.Bill{
		Name: "Internet", Description: "Fibra 500MB", Amount: decimal.RequireFromString(amount),
		DueDate: models.NewDate(2024, 5, 10), Status: models.StatusPending, UserID: owner.ID,
	}
	require.NoError(t, st.CreateBill(ctx, bill))

	return &fixture{
		store:  st,
		engine: NewEngine(st, logging.Discard(), WithClock(fixedClock)),
		owner:  owner,
		other:  other,
		bill:   bill,
	}
}

func (f *fixture) reload(t *testing.T) (*models.User, *models.Bill) {
	t.Helper()
	ctx := context.Background()
	u, err := f.store.GetUser(ctx, f.owner.ID)
	require.NoError(t, err)
	b, err := f.store.GetBill(ctx, f.bill.ID)
	require.NoError(t, err)
	return u, b
}

func TestPaySettlesBill(t *testing.T) {
	f := newFixture(t, "200.00", "100.00")

	balance, err := f.engine.Pay(context.Background(), f.bill.ID, f.owner.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("100.00").Equal(balance), "got %s", balance)

	user, bill := f.reload(t)
	assert.True(t, balance.Equal(user.Balance))
	assert.Equal(t, models.StatusPaid, bill.Status)
	require.NotNil(t, bill.PaymentDate)
	assert.Equal(t, models.NewDate(2024, 5, 9), *bill.PaymentDate)
}

func TestPayExactBalanceLeavesZero(t *testing.T) {
	f := newFixture(t, "99.99", "99.99")

	balance, err := f.engine.Pay(context.Background(), f.bill.ID, f.owner.ID)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())

	user, _ := f.reload(t)
	assert.True(t, user.Balance.IsZero())
}

func TestPayKeepsArbitraryPrecision(t *testing.T) {
	f := newFixture(t, "0.3", "0.1")

	balance, err := f.engine.Pay(context.Background(), f.bill.ID, f.owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "0.2", balance.String())
}

func TestPayRejections(t *testing.T) {
	tests := []struct {
		name       string
		balance    string
		amount     string
		prepare    func(t *testing.T, f *fixture)
		billID     func(f *fixture) int64
		payerID    func(f *fixture) int64
		wantErr    error
		wantStatus int
		wantReason string
	}{
		{
			name:       "unknown bill",
			balance:    "200", amount: "100",
			billID:     func(*fixture) int64 { return 999 },
			payerID:    func(f *fixture) int64 { return f.owner.ID },
			wantErr:    store.ErrBillNotFound,
			wantStatus: http.StatusNotFound,
			wantReason: "not_found",
		},
		{
			name:       "unknown user",
			balance:    "200", amount: "100",
			billID:     func(f *fixture) int64 { return f.bill.ID },
			payerID:    func(*fixture) int64 { return 999 },
			wantErr:    store.ErrUserNotFound,
			wantStatus: http.StatusNotFound,
			wantReason: "not_found",
		},
		{
			name:       "wrong payer",
			balance:    "200", amount: "100",
			billID:     func(f *fixture) int64 { return f.bill.ID },
			payerID:    func(f *fixture) int64 { return f.other.ID },
			wantErr:    ErrWrongPayer,
			wantStatus: http.StatusForbidden,
			wantReason: "wrong_payer",
		},
		{
			name:       "insufficient funds",
			balance:    "50.00", amount: "100.00",
			billID:     func(f *fixture) int64 { return f.bill.ID },
			payerID:    func(f *fixture) int64 { return f.owner.ID },
			wantErr:    ErrInsufficientFunds,
			wantStatus: http.StatusBadRequest,
			wantReason: "insufficient_funds",
		},
		{
			name:    "insufficient funds is reported before already paid",
			balance: "50.00", amount: "100.00",
			prepare: func(t *testing.T, f *fixture) {
				b, err := f.store.GetBill(context.Background(), f.bill.ID)
				require.NoError(t, err)
				b.MarkPaid(models.NewDate(2024, 5, 1))
				require.NoError(t, f.store.UpdateBill(context.Background(), b))
			},
			billID:     func(f *fixture) int64 { return f.bill.ID },
			payerID:    func(f *fixture) int64 { return f.owner.ID },
			wantErr:    ErrInsufficientFunds,
			wantStatus: http.StatusBadRequest,
			wantReason: "insufficient_funds",
		},
		{
			name:    "wrong payer is reported before insufficient funds",
			balance: "200", amount: "5000",
			billID:     func(f *fixture) int64 { return f.bill.ID },
			payerID:    func(f *fixture) int64 { return f.other.ID },
			wantErr:    ErrWrongPayer,
			wantStatus: http.StatusForbidden,
			wantReason: "wrong_payer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.balance, tt.amount)
			if tt.prepare != nil {
				tt.prepare(t, f)
			}
			userBefore, billBefore := f.reload(t)

			_, err := f.engine.Pay(context.Background(), tt.billID(f), tt.payerID(f))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			appErr, ok := apperror.FromError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantStatus, appErr.StatusCode())
			assert.Equal(t, tt.wantReason, RejectionReason(err))

			userAfter, billAfter := f.reload(t)
			assert.True(t, userBefore.Balance.Equal(userAfter.Balance))
			assert.Equal(t, billBefore.Status, billAfter.Status)
			assert.Equal(t, billBefore.PaymentDate, billAfter.PaymentDate)

			other, err := f.store.GetUser(context.Background(), f.other.ID)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString("1000").Equal(other.Balance))
		})
	}
}

func TestPayTwiceFailsWithAlreadyPaid(t *testing.T) {
	f := newFixture(t, "300", "100")
	ctx := context.Background()

	first, err := f.engine.Pay(ctx, f.bill.ID, f.owner.ID)
	require.NoError(t, err)

	_, err = f.engine.Pay(ctx, f.bill.ID, f.owner.ID)
	require.ErrorIs(t, err, ErrAlreadyPaid)
	appErr, _ := apperror.FromError(err)
	assert.Equal(t, http.StatusForbidden, appErr.StatusCode())

	user, _ := f.reload(t)
	assert.True(t, first.Equal(user.Balance), "second attempt must not touch the balance")
}

func TestPayErrorMessagesNameThePayer(t *testing.T) {
	f := newFixture(t, "200", "100")
	_, err := f.engine.Pay(context.Background(), f.bill.ID, f.other.ID)
	require.Error(t, err)
	appErr, _ := apperror.FromError(err)
	assert.Equal(t, "João is not allowed to pay this bill", appErr.Message)
}

// failingStore injects an error into the second write of a payment.
type failingStore struct {
	store.Store
	err error
}

func (s *failingStore) WithinTx(ctx context.Context, fn func(tx store.Store) error) error {
	return s.Store.WithinTx(ctx, func(tx store.Store) error {
		return fn(&failingStore{Store: tx, err: s.err})
	})
}

func (s *failingStore) UpdateUser(context.Context, *models.User) error {
	return s.err
}

func TestPayRollsBackWhenSecondWriteFails(t *testing.T) {
	f := newFixture(t, "200", "100")
	boom := errors.New("connection reset")
	engine := NewEngine(&failingStore{Store: f.store, err: boom}, logging.Discard(), WithClock(fixedClock))

	_, err := engine.Pay(context.Background(), f.bill.ID, f.owner.ID)
	require.ErrorIs(t, err, boom)
	appErr, _ := apperror.FromError(err)
	assert.Equal(t, http.StatusInternalServerError, appErr.StatusCode())

	user, bill := f.reload(t)
	assert.True(t, decimal.RequireFromString("200").Equal(user.Balance))
	assert.Equal(t, models.StatusPending, bill.Status)
	assert.Nil(t, bill.PaymentDate)
}

// staleStore hands out bills with an outdated version, as if another payment
// committed between our read and our write.
type staleStore struct {
	store.Store
}

func (s *staleStore) WithinTx(ctx context.Context, fn func(tx store.Store) error) error {
	return s.Store.WithinTx(ctx, func(tx store.Store) error {
		return fn(&staleStore{Store: tx})
	})
}

func (s *staleStore) GetBill(ctx context.Context, id int64) (*models.Bill, error) {
	b, err := s.Store.GetBill(ctx, id)
	if err != nil {
		return nil, err
	}
	b.Version--
	return b, nil
}

func TestPayDetectsConcurrentModification(t *testing.T) {
	f := newFixture(t, "200", "100")
	engine := NewEngine(&staleStore{Store: f.store}, logging.Discard(), WithClock(fixedClock))

	_, err := engine.Pay(context.Background(), f.bill.ID, f.owner.ID)
	require.ErrorIs(t, err, store.ErrConflict)
	assert.True(t, apperror.IsConflictError(err))
	assert.Equal(t, "conflict", RejectionReason(err))

	user, bill := f.reload(t)
	assert.True(t, decimal.RequireFromString("200").Equal(user.Balance))
	assert.Equal(t, models.StatusPending, bill.Status)
}

func TestConcurrentPaymentsOfSameBillDebitOnce(t *testing.T) {
	f := newFixture(t, "1000", "100")
	const attempts = 8

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.engine.Pay(context.Background(), f.bill.ID, f.owner.ID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrAlreadyPaid)
	}
	assert.Equal(t, 1, succeeded)

	user, _ := f.reload(t)
	assert.True(t, decimal.RequireFromString("900").Equal(user.Balance), "got %s", user.Balance)
}
