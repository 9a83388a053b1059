// Package storetest holds the behaviour every store.Store backend must share.
// Backends call Run from their own tests with a factory returning an empty store.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/pagamentos-go/models"
	"github.com/user/pagamentos-go/store"
)

// Factory returns an empty store. Cleanup is registered on t.
type Factory func(t *testing.T) store.Store

// Run executes the whole suite against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("bills", func(t *testing.T) { testBills(t, newStore(t)) })
	t.Run("optimistic locking", func(t *testing.T) { testVersions(t, newStore(t)) })
	t.Run("transactions", func(t *testing.T) { testTransactions(t, newStore(t)) })
	t.Run("queries", func(t *testing.T) { testQueries(t, newStore(t)) })
}

func newUser(t *testing.T, st store.Store, email string) *models.User {
	t.Helper()
	u := &models.User{Name: email, Email: email, PasswordHash: "hash", Balance: decimal.RequireFromString("100.50")}
	require.NoError(t, st.CreateUser(context.Background(), u))
	return u
}

func newBill(t *testing.T, st store.Store, userID int64, name string, due models.Date) *models.Bill {
	t.Helper()
	b := &models.Bill{
		Name: name, Description: "desc", Amount: decimal.RequireFromString("10.25"),
		DueDate: due, Status: models.StatusPending, UserID: userID,
	}
	require.NoError(t, st.CreateBill(context.Background(), b))
	return b
}

func testUsers(t *testing.T, st store.Store) {
	ctx := context.Background()

	maria := newUser(t, st, "maria@example.com")
	assert.NotZero(t, maria.ID)
	assert.NotZero(t, maria.Version)

	got, err := st.GetUser(ctx, maria.ID)
	require.NoError(t, err)
	assert.Equal(t, "maria@example.com", got.Email)
	assert.True(t, maria.Balance.Equal(got.Balance))

	byEmail, err := st.GetUserByEmail(ctx, "MARIA@example.com")
	require.NoError(t, err)
	assert.Equal(t, maria.ID, byEmail.ID)

	err = st.CreateUser(ctx, &models.User{Name: "dup", Email: "maria@example.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, store.ErrEmailTaken)

	_, err = st.GetUser(ctx, maria.ID+1000)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	_, err = st.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	joao := newUser(t, st, "joao@example.com")
	joao.Email = "maria@example.com"
	assert.ErrorIs(t, st.UpdateUser(ctx, joao), store.ErrEmailTaken)

	page, err := st.ListUsers(ctx, models.PageRequest{Page: 0, Size: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Content, 1)
	assert.Equal(t, maria.ID, page.Content[0].ID)

	newBill(t, st, maria.ID, "Internet", models.NewDate(2024, 5, 10))
	assert.ErrorIs(t, st.DeleteUser(ctx, maria.ID), store.ErrUserHasBills)

	require.NoError(t, st.DeleteUser(ctx, joao.ID))
	assert.ErrorIs(t, st.DeleteUser(ctx, joao.ID), store.ErrUserNotFound)
}

func testBills(t *testing.T, st store.Store) {
	ctx := context.Background()
	maria := newUser(t, st, "maria@example.com")

	note := "debito automatico"
	b := &models.Bill{
		Name: "Internet", Description: "Fibra", Note: &note, Amount: decimal.RequireFromString("99.99"),
		DueDate: models.NewDate(2024, 5, 10), Status: models.StatusPending, UserID: maria.ID,
	}
	require.NoError(t, st.CreateBill(ctx, b))

	got, err := st.GetBill(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Internet", got.Name)
	require.NotNil(t, got.Note)
	assert.Equal(t, note, *got.Note)
	assert.Equal(t, "99.99", got.Amount.String())
	assert.Equal(t, models.NewDate(2024, 5, 10), got.DueDate)
	assert.Nil(t, got.PaymentDate)

	got.MarkPaid(models.NewDate(2024, 5, 9))
	require.NoError(t, st.UpdateBill(ctx, got))
	paid, err := st.GetBill(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, paid.Status)
	require.NotNil(t, paid.PaymentDate)
	assert.Equal(t, models.NewDate(2024, 5, 9), *paid.PaymentDate)

	orphan := &models.Bill{Name: "x", Description: "x", DueDate: models.NewDate(2024, 5, 10), Status: models.StatusPending, UserID: maria.ID + 1000}
	assert.ErrorIs(t, st.CreateBill(ctx, orphan), store.ErrUserNotFound)

	mine, err := st.ListBillsByUser(ctx, maria.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	require.NoError(t, st.DeleteBill(ctx, b.ID))
	assert.ErrorIs(t, st.DeleteBill(ctx, b.ID), store.ErrBillNotFound)
	_, err = st.GetBill(ctx, b.ID)
	assert.ErrorIs(t, err, store.ErrBillNotFound)
}

func testVersions(t *testing.T, st store.Store) {
	ctx := context.Background()
	maria := newUser(t, st, "maria@example.com")

	first, err := st.GetUser(ctx, maria.ID)
	require.NoError(t, err)
	second, err := st.GetUser(ctx, maria.ID)
	require.NoError(t, err)

	first.Balance = decimal.NewFromInt(1)
	require.NoError(t, st.UpdateUser(ctx, first))

	second.Balance = decimal.NewFromInt(2)
	assert.ErrorIs(t, st.UpdateUser(ctx, second), store.ErrConflict)

	stored, err := st.GetUser(ctx, maria.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1).Equal(stored.Balance))

	bill := newBill(t, st, maria.ID, "Luz", models.NewDate(2024, 5, 10))
	stale := *bill
	bill.Name = "Luz nova"
	require.NoError(t, st.UpdateBill(ctx, bill))
	assert.ErrorIs(t, st.UpdateBill(ctx, &stale), store.ErrConflict)

	missing := *bill
	missing.ID += 1000
	assert.ErrorIs(t, st.UpdateBill(ctx, &missing), store.ErrBillNotFound)
}

func testTransactions(t *testing.T, st store.Store) {
	ctx := context.Background()
	maria := newUser(t, st, "maria@example.com")
	boom := errors.New("boom")

	err := st.WithinTx(ctx, func(tx store.Store) error {
		u, err := tx.GetUser(ctx, maria.ID)
		if err != nil {
			return err
		}
		u.Balance = decimal.Zero
		if err := tx.UpdateUser(ctx, u); err != nil {
			return err
		}
		newBill(t, tx, maria.ID, "rolled back", models.NewDate(2024, 5, 10))
		return boom
	})
	require.ErrorIs(t, err, boom)

	stored, err := st.GetUser(ctx, maria.ID)
	require.NoError(t, err)
	assert.True(t, maria.Balance.Equal(stored.Balance))
	bills, err := st.ListBillsByUser(ctx, maria.ID)
	require.NoError(t, err)
	assert.Empty(t, bills)

	err = st.WithinTx(ctx, func(tx store.Store) error {
		return tx.WithinTx(ctx, func(inner store.Store) error {
			return inner.CreateBills(ctx, []*models.Bill{
				{Name: "a", Description: "a", Amount: decimal.NewFromInt(1), DueDate: models.NewDate(2024, 5, 1), Status: models.StatusPending, UserID: maria.ID},
				{Name: "b", Description: "b", Amount: decimal.NewFromInt(2), DueDate: models.NewDate(2024, 5, 2), Status: models.StatusPending, UserID: maria.ID},
			})
		})
	})
	require.NoError(t, err)
	bills, err = st.ListBillsByUser(ctx, maria.ID)
	require.NoError(t, err)
	require.Len(t, bills, 2)
	assert.NotZero(t, bills[0].ID)

	err = st.CreateBills(ctx, []*models.Bill{
		{Name: "c", Description: "c", Amount: decimal.NewFromInt(1), DueDate: models.NewDate(2024, 5, 1), Status: models.StatusPending, UserID: maria.ID},
		{Name: "d", Description: "d", Amount: decimal.NewFromInt(1), DueDate: models.NewDate(2024, 5, 1), Status: models.StatusPending, UserID: maria.ID + 1000},
	})
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	bills, err = st.ListBillsByUser(ctx, maria.ID)
	require.NoError(t, err)
	assert.Len(t, bills, 2, "a failed bulk insert must not leave partial rows")
}

func testQueries(t *testing.T, st store.Store) {
	ctx := context.Background()
	maria := newUser(t, st, "maria@example.com")
	joao := newUser(t, st, "joao@example.com")

	pay := func(b *models.Bill, on models.Date) {
		b.MarkPaid(on)
		require.NoError(t, st.UpdateBill(ctx, b))
	}

	pay(newBill(t, st, maria.ID, "Agua", models.NewDate(2024, 5, 1)), models.NewDate(2024, 4, 30))
	pay(newBill(t, st, maria.ID, "Luz", models.NewDate(2024, 5, 1)), models.NewDate(2024, 5, 1))
	pay(newBill(t, st, maria.ID, "Gas", models.NewDate(2024, 5, 1)), models.NewDate(2024, 5, 31))
	pay(newBill(t, st, joao.ID, "Joao paga", models.NewDate(2024, 5, 1)), models.NewDate(2024, 5, 15))
	newBill(t, st, maria.ID, "Internet casa", models.NewDate(2024, 5, 20))
	newBill(t, st, maria.ID, "Internet praia", models.NewDate(2024, 5, 10))
	newBill(t, st, joao.ID, "Internet joao", models.NewDate(2024, 5, 15))
	newBill(t, st, joao.ID, "Fora", models.NewDate(2024, 6, 1))

	total, err := st.SumPaid(ctx, maria.ID, models.NewDate(2024, 5, 1), models.NewDate(2024, 5, 31))
	require.NoError(t, err)
	assert.Equal(t, "20.5", total.String())

	none, err := st.SumPaid(ctx, maria.ID, models.NewDate(2020, 1, 1), models.NewDate(2020, 1, 31))
	require.NoError(t, err)
	assert.True(t, none.IsZero())

	pending, err := st.ListPending(ctx, store.PendingQuery{Start: models.NewDate(2024, 5, 1), End: models.NewDate(2024, 5, 31)})
	require.NoError(t, err)
	assert.Equal(t, []string{"Internet praia", "Internet joao", "Internet casa"}, names(pending))

	mariaID := maria.ID
	mine, err := st.ListPending(ctx, store.PendingQuery{Start: models.NewDate(2024, 5, 1), End: models.NewDate(2024, 5, 20), UserID: &mariaID})
	require.NoError(t, err)
	assert.Equal(t, []string{"Internet praia", "Internet casa"}, names(mine))

	page := models.PageRequest{Page: 0, Size: 10}
	due := models.NewDate(2024, 5, 10)
	filtered, err := st.FilterBills(ctx, store.BillFilter{DueDate: &due}, page)
	require.NoError(t, err)
	assert.Equal(t, []string{"Internet praia"}, names(filtered.Content))

	filtered, err = st.FilterBills(ctx, store.BillFilter{Name: "Internet"}, models.PageRequest{Page: 1, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), filtered.TotalElements)
	assert.Equal(t, 2, filtered.TotalPages)
	assert.Equal(t, []string{"Internet joao"}, names(filtered.Content))

	filtered, err = st.FilterBills(ctx, store.BillFilter{Name: "nada"}, page)
	require.NoError(t, err)
	assert.NotNil(t, filtered.Content)
	assert.Empty(t, filtered.Content)
	assert.Zero(t, filtered.TotalElements)

	all, err := st.ListBills(ctx, models.PageRequest{Page: 0, Size: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(8), all.TotalElements)
}

func names(bills []models.Bill) []string {
	out := make([]string, 0, len(bills))
	for _, b := range bills {
		out = append(out, b.Name)
	}
	return out
}
