package bills

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/pagamentos-go/apperror"
	"github.com/user/pagamentos-go/logging"
	"github.com/user/pagamentos-go/models"
	"github.com/user/pagamentos-go/store/memory"
)

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func date(y, m, d int) *models.Date {
	v := models.NewDate(y, time.Month(m), d)
	return &v
}

func id(v int64) *int64 { return &v }

func newService(t *testing.T) (*Service, *memory.Store, *models.User) {
	t.Helper()
	st := memory.New()
	user := &models.User{Name: "Maria", Email: "maria@example.com", PasswordHash: "x", Balance: decimal.NewFromInt(500)}
	require.NoError(t, st.CreateUser(context.Background(), user))
	return NewService(st, logging.Discard()), st, user
}

func createRequest(userID int64, name string, due *models.Date) CreateBillRequest {
	return CreateBillRequest{
		Name: name, Description: "mensal", Amount: amount("100.00"), DueDate: due, UserID: id(userID),
	}
}

func TestCreateForcesPendingState(t *testing.T) {
	svc, _, user := newService(t)
	ctx := context.Background()

	paid := models.StatusPaid
	req := createRequest(user.ID, "Internet", date(2024, 5, 10))
	req.Status = &paid
	req.PaymentDate = date(2024, 5, 1)

	bill, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, bill.Status)
	assert.Nil(t, bill.PaymentDate)
	assert.NotZero(t, bill.ID)

	_, err = svc.Create(ctx, createRequest(99, "Luz", date(2024, 5, 10)))
	assert.True(t, apperror.IsNotFound(err))

	req = createRequest(user.ID, "Agua", date(2024, 5, 10))
	req.Amount = amount("-1")
	_, err = svc.Create(ctx, req)
	assert.True(t, apperror.IsValidationError(err))
}

func TestUpdate(t *testing.T) {
	svc, st, user := newService(t)
	ctx := context.Background()

	bill, err := svc.Create(ctx, createRequest(user.ID, "Internet", date(2024, 5, 10)))
	require.NoError(t, err)

	t.Run("missing status keeps the stored one", func(t *testing.T) {
		stored, err := st.GetBill(ctx, bill.ID)
		require.NoError(t, err)
		stored.MarkPaid(models.NewDate(2024, 5, 9))
		require.NoError(t, st.UpdateBill(ctx, stored))

		updated, err := svc.Update(ctx, bill.ID, UpdateBillRequest{
			Name: "Internet 2", Description: "fibra", Amount: amount("120"), DueDate: date(2024, 6, 10),
			UserID: id(user.ID), PaymentDate: date(2024, 5, 9),
		})
		require.NoError(t, err)
		assert.Equal(t, models.StatusPaid, updated.Status)
		assert.Equal(t, "Internet 2", updated.Name)
		assert.True(t, decimal.NewFromInt(120).Equal(updated.Amount))
	})

	t.Run("explicit status wins", func(t *testing.T) {
		pending := models.StatusPending
		updated, err := svc.Update(ctx, bill.ID, UpdateBillRequest{
			Name: "Internet", Description: "fibra", Amount: amount("120"), DueDate: date(2024, 6, 10),
			UserID: id(user.ID), Status: &pending,
		})
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, updated.Status)
		assert.Nil(t, updated.PaymentDate)
	})

	t.Run("unknown status", func(t *testing.T) {
		bogus := models.BillStatus("CANCELADO")
		_, err := svc.Update(ctx, bill.ID, UpdateBillRequest{
			Name: "Internet", Description: "fibra", Amount: amount("1"), DueDate: date(2024, 6, 10),
			UserID: id(user.ID), Status: &bogus,
		})
		assert.True(t, apperror.IsValidationError(err))
	})

	t.Run("unknown bill or user", func(t *testing.T) {
		req := UpdateBillRequest{Name: "x", Description: "x", Amount: amount("1"), DueDate: date(2024, 6, 10), UserID: id(user.ID)}
		_, err := svc.Update(ctx, 404, req)
		assert.True(t, apperror.IsNotFound(err))

		req.UserID = id(404)
		_, err = svc.Update(ctx, bill.ID, req)
		assert.True(t, apperror.IsNotFound(err))
	})
}

func TestDeleteAndFind(t *testing.T) {
	svc, _, user := newService(t)
	ctx := context.Background()

	bill, err := svc.Create(ctx, createRequest(user.ID, "Internet", date(2024, 5, 10)))
	require.NoError(t, err)

	found, err := svc.FindByID(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, bill.ID, found.ID)

	require.NoError(t, svc.Delete(ctx, bill.ID))
	assert.True(t, apperror.IsNotFound(svc.Delete(ctx, bill.ID)))

	_, err = svc.FindByID(ctx, bill.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestTotalPaidRespectsRangeBoundaries(t *testing.T) {
	svc, st, user := newService(t)
	ctx := context.Background()

	payOn := func(name string, on models.Date, value string) {
		b, err := svc.Create(ctx, CreateBillRequest{
			Name: name, Description: "d", Amount: amount(value), DueDate: date(2024, 5, 1), UserID: id(user.ID),
		})
		require.NoError(t, err)
		stored, err := st.GetBill(ctx, b.ID)
		require.NoError(t, err)
		stored.MarkPaid(on)
		require.NoError(t, st.UpdateBill(ctx, stored))
	}
	payOn("before", models.NewDate(2024, 4, 30), "1000")
	payOn("first day", models.NewDate(2024, 5, 1), "10.10")
	payOn("last day", models.NewDate(2024, 5, 31), "20.20")
	payOn("after", models.NewDate(2024, 6, 1), "1000")
	_, err := svc.Create(ctx, createRequest(user.ID, "unpaid", date(2024, 5, 15)))
	require.NoError(t, err)

	total, err := svc.TotalPaid(ctx, *date(2024, 5, 1), *date(2024, 5, 31), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "30.3", total.TotalPaid.String())
	assert.Equal(t, "Maria", total.UserName)
	assert.Equal(t, user.ID, total.UserID)

	empty, err := svc.TotalPaid(ctx, *date(2023, 1, 1), *date(2023, 12, 31), user.ID)
	require.NoError(t, err)
	assert.True(t, empty.TotalPaid.IsZero())

	_, err = svc.TotalPaid(ctx, *date(2024, 5, 1), *date(2024, 5, 31), 404)
	assert.True(t, apperror.IsNotFound(err))

	_, err = svc.TotalPaid(ctx, *date(2024, 6, 1), *date(2024, 5, 1), user.ID)
	assert.True(t, apperror.IsValidationError(err))
}

func TestPendingQueries(t *testing.T) {
	svc, st, user := newService(t)
	ctx := context.Background()

	other := &models.User{Name: "Joao", Email: "joao@example.com", PasswordHash: "x"}
	require.NoError(t, st.CreateUser(ctx, other))

	_, err := svc.Create(ctx, createRequest(user.ID, "late", date(2024, 5, 20)))
	require.NoError(t, err)
	_, err = svc.Create(ctx, createRequest(user.ID, "early", date(2024, 5, 1)))
	require.NoError(t, err)
	_, err = svc.Create(ctx, createRequest(other.ID, "other", date(2024, 5, 10)))
	require.NoError(t, err)
	_, err = svc.Create(ctx, createRequest(user.ID, "outside", date(2024, 7, 1)))
	require.NoError(t, err)
	paid, err := svc.Create(ctx, createRequest(user.ID, "paid", date(2024, 5, 5)))
	require.NoError(t, err)
	stored, err := st.GetBill(ctx, paid.ID)
	require.NoError(t, err)
	stored.MarkPaid(models.NewDate(2024, 5, 5))
	require.NoError(t, st.UpdateBill(ctx, stored))

	all, err := svc.PendingBetween(ctx, *date(2024, 5, 1), *date(2024, 5, 31))
	require.NoError(t, err)
	assert.Equal(t, []string{"early", "other", "late"}, names(all))

	mine, err := svc.PendingForUser(ctx, *date(2024, 5, 1), *date(2024, 5, 31), user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"early", "late"}, names(mine))

	_, err = svc.PendingForUser(ctx, *date(2024, 5, 1), *date(2024, 5, 31), 404)
	assert.True(t, apperror.IsNotFound(err))

	none, err := svc.PendingBetween(ctx, *date(2020, 1, 1), *date(2020, 1, 2))
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestFilterAndListings(t *testing.T) {
	svc, _, user := newService(t)
	ctx := context.Background()

	for _, n := range []string{"Internet casa", "Internet escritorio", "Luz"} {
		_, err := svc.Create(ctx, createRequest(user.ID, n, date(2024, 5, 10)))
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, createRequest(user.ID, "Internet praia", date(2024, 6, 10)))
	require.NoError(t, err)

	page := models.PageRequest{Page: 0, Size: 20}

	byName, err := svc.Filter(ctx, nil, "Internet", page)
	require.NoError(t, err)
	assert.Equal(t, int64(3), byName.TotalElements)

	both, err := svc.Filter(ctx, date(2024, 5, 10), "Internet", page)
	require.NoError(t, err)
	assert.Equal(t, []string{"Internet casa", "Internet escritorio"}, names(both.Content))

	lower, err := svc.Filter(ctx, nil, "internet", page)
	require.NoError(t, err)
	assert.Empty(t, lower.Content)

	unfiltered, err := svc.Filter(ctx, nil, "", models.PageRequest{Page: 1, Size: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(4), unfiltered.TotalElements)
	assert.Equal(t, []string{"Internet praia"}, names(unfiltered.Content))

	listed, err := svc.List(ctx, models.PageRequest{Page: 0, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, listed.TotalPages)

	owned, err := svc.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, owned, 4)

	_, err = svc.ListByUser(ctx, 404)
	assert.True(t, apperror.IsNotFound(err))
}

func names(bills []models.Bill) []string {
	out := make([]string, 0, len(bills))
	for _, b := range bills {
		out = append(out, b.Name)
	}
	return out
}
