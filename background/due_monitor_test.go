package background

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/pagamentos-go/config"
	"github.com/user/pagamentos-go/logging"
	"github.com/user/pagamentos-go/metrics"
	"github.com/user/pagamentos-go/models"
	"github.com/user/pagamentos-go/store"
	"github.com/user/pagamentos-go/store/memory"
)

var today = time.Date(2024, 5, 9, 15, 0, 0, 0, time.UTC)

func seed(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	st := memory.New()
	u := &models.User{Name: "Maria", Email: "maria@example.com", PasswordHash: "x"}
	require.NoError(t, st.CreateUser(ctx, u))

	add := func(due models.Date, paid bool) {
		b := &models.Bill{Name: "b", Description: "d", Amount: decimal.NewFromInt(1), DueDate: due, Status: models.StatusPending, UserID: u.ID}
		if paid {
			b.MarkPaid(due)
		}
		require.NoError(t, st.CreateBill(ctx, b))
	}
	add(models.NewDate(2024, 4, 1), false)
	add(models.NewDate(2024, 5, 8), false)
	add(models.NewDate(2024, 5, 8), true)
	add(models.NewDate(2024, 5, 9), false)
	add(models.NewDate(2024, 5, 16), false)
	add(models.NewDate(2024, 5, 17), false)
	return st
}

func TestCheckCountsDueWindows(t *testing.T) {
	m := metrics.New()
	mon := NewDueMonitor(seed(t), m, logging.Discard(), config.MonitorConfig{Interval: time.Minute, HorizonDays: 7},
		func() time.Time { return today })

	report, err := mon.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DueReport{Overdue: 2, DueSoon: 2}, report)

	want := `
# HELP pagamentos_pending_bills Pending bills by due window, refreshed by the due-date monitor.
# TYPE pagamentos_pending_bills gauge
pagamentos_pending_bills{window="due_soon"} 2
pagamentos_pending_bills{window="overdue"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(want), "pagamentos_pending_bills"))
}

type failingLister struct{}

func (failingLister) ListPending(context.Context, store.PendingQuery) ([]models.Bill, error) {
	return nil, errors.New("database down")
}

func TestCheckReportsStoreErrors(t *testing.T) {
	mon := NewDueMonitor(failingLister{}, nil, logging.Discard(), config.MonitorConfig{Interval: time.Minute}, nil)
	_, err := mon.Check(context.Background())
	assert.ErrorContains(t, err, "database down")
}

func TestStartStopsOnCancel(t *testing.T) {
	m := metrics.New()
	mon := NewDueMonitor(seed(t), m, logging.Discard(), config.MonitorConfig{Interval: time.Hour, HorizonDays: 7},
		func() time.Time { return today })

	ctx, cancel := context.WithCancel(context.Background())
	done := mon.Start(ctx)

	assert.Eventually(t, func() bool {
		n, err := testutil.GatherAndCount(m.Registry(), "pagamentos_pending_bills")
		return err == nil && n == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop")
	}
}

func TestStartDisabled(t *testing.T) {
	mon := NewDueMonitor(failingLister{}, nil, logging.Discard(), config.MonitorConfig{}, nil)
	select {
	case <-mon.Start(context.Background()):
	default:
		t.Fatal("disabled monitor should report done immediately")
	}
}
