package users

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/pagamentos-go/apperror"
	"github.com/user/pagamentos-go/auth"
	"github.com/user/pagamentos-go/logging"
	"github.com/user/pagamentos-go/models"
	"github.com/user/pagamentos-go/store/memory"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func newService() (*UserService, *memory.Store) {
	st := memory.New()
	return NewUserService(st, logging.Discard()), st
}

func TestCreateUser(t *testing.T) {
	svc, st := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateUserRequest{
		Name: " Maria ", Email: "Maria@Example.com", Password: "s3cret", Balance: dec("200.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Maria", created.Name)
	assert.Equal(t, "maria@example.com", created.Email)
	assert.True(t, decimal.RequireFromString("200").Equal(created.Balance.Decimal))

	stored, err := st.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", stored.PasswordHash)
	ok, err := auth.CheckPassword(stored.PasswordHash, "s3cret")
	require.NoError(t, err)
	assert.True(t, ok)

	t.Run("balance defaults to zero", func(t *testing.T) {
		u, err := svc.Create(ctx, CreateUserRequest{Name: "Ana", Email: "ana@example.com", Password: "x"})
		require.NoError(t, err)
		assert.True(t, u.Balance.IsZero())
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateUserRequest{Name: "Other", Email: "maria@example.com", Password: "x"})
		assert.True(t, apperror.IsConflictError(err))
	})

	t.Run("negative balance", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateUserRequest{Name: "Neg", Email: "neg@example.com", Password: "x", Balance: dec("-1")})
		assert.True(t, apperror.IsValidationError(err))
	})
}

func TestUpdateUserRehashesPassword(t *testing.T) {
	svc, st := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateUserRequest{Name: "Maria", Email: "maria@example.com", Password: "same"})
	require.NoError(t, err)
	before, err := st.GetUser(ctx, created.ID)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, UpdateUserRequest{
		Name: "Maria S.", Email: "maria.s@example.com", Password: "same", Balance: dec("50.5"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Maria S.", updated.Name)
	assert.True(t, decimal.RequireFromString("50.5").Equal(updated.Balance.Decimal))

	after, err := st.GetUser(ctx, created.ID)
	require.NoError(t, err)
	// bcrypt salts every hash, so an unchanged password still gets a new hash.
	assert.NotEqual(t, before.PasswordHash, after.PasswordHash)

	_, err = svc.Update(ctx, 999, UpdateUserRequest{Name: "x", Email: "x@example.com", Password: "x", Balance: dec("0")})
	assert.True(t, apperror.IsNotFound(err))
}

func TestGetListDelete(t *testing.T) {
	svc, st := newService()
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		_, err := svc.Create(ctx, CreateUserRequest{Name: email, Email: email, Password: "x"})
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, models.PageRequest{Page: 1, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "c@example.com", page.Content[0].Email)

	_, err = svc.Get(ctx, 42)
	assert.True(t, apperror.IsNotFound(err))

	require.NoError(t, svc.Delete(ctx, 1))
	assert.True(t, apperror.IsNotFound(svc.Delete(ctx, 1)))

	// A user that owns bills cannot be removed.
	require.NoError(t, st.CreateBill(ctx, &models.Bill{
		Name: "Luz", Description: "Conta de luz", Amount: decimal.NewFromInt(10),
		DueDate: models.NewDate(2024, 5, 10), Status: models.StatusPending, UserID: 2,
	}))
	assert.True(t, apperror.IsConflictError(svc.Delete(ctx, 2)))
}
