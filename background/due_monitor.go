// Package background contains services that run independently of the HTTP
// request cycle. The due-date monitor periodically counts pending bills that are
// overdue or about to fall due and publishes the counts as Prometheus gauges.
package background

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/user/pagamentos-go/config"
	"github.com/user/pagamentos-go/metrics"
	"github.com/user/pagamentos-go/models"
	"github.com/user/pagamentos-go/store"
)

// earliestDue bounds the overdue query from below.
var earliestDue = models.NewDate(1900, time.January, 1)

// PendingLister is the slice of the Account Store the monitor reads.
type PendingLister interface {
	ListPending(ctx context.Context, q store.PendingQuery) ([]models.Bill, error)
}

// DueReport is the outcome of one monitor pass.
type DueReport struct {
	Overdue int
	DueSoon int
}

// DueMonitor refreshes the pending-bill gauges on a ticker.
type DueMonitor struct {
	bills    PendingLister
	metrics  *metrics.Metrics
	logger   *slog.Logger
	interval time.Duration
	horizon  int
	now      func() time.Time
}

// NewDueMonitor builds a monitor from cfg. now defaults to time.Now.
func NewDueMonitor(bills PendingLister, m *metrics.Metrics, logger *slog.Logger, cfg config.MonitorConfig, now func() time.Time) *DueMonitor {
	if now == nil {
		now = time.Now
	}
	return &DueMonitor{
		bills:    bills,
		metrics:  m,
		logger:   logger,
		interval: cfg.Interval,
		horizon:  cfg.HorizonDays,
		now:      now,
	}
}

// Check runs a single pass: overdue bills are pending bills due before today,
// due-soon bills are due between today and today plus the horizon, inclusive.
func (d *DueMonitor) Check(ctx context.Context) (DueReport, error) {
	today := models.DateOf(d.now())
	yesterday := models.DateOf(today.AddDate(0, 0, -1))
	until := models.DateOf(today.AddDate(0, 0, d.horizon))

	overdue, err := d.bills.ListPending(ctx, store.PendingQuery{Start: earliestDue, End: yesterday})
	if err != nil {
		return DueReport{}, fmt.Errorf("list overdue bills: %w", err)
	}
	dueSoon, err := d.bills.ListPending(ctx, store.PendingQuery{Start: today, End: until})
	if err != nil {
		return DueReport{}, fmt.Errorf("list bills due soon: %w", err)
	}

	report := DueReport{Overdue: len(overdue), DueSoon: len(dueSoon)}
	d.metrics.PendingBills(report.Overdue, report.DueSoon)
	return report, nil
}

// Start launches the monitor loop and returns a channel closed once the loop has
// exited after ctx is cancelled. A non-positive interval disables the monitor.
func (d *DueMonitor) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	if d.interval <= 0 {
		d.logger.Info("due-date monitor disabled")
		close(done)
		return done
	}

	go func() {
		defer close(done)
		defer d.logger.Info("due-date monitor stopped")

		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()

		d.tick(ctx)
		for {
			select {
			case <-ticker.C:
				d.tick(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
	d.logger.Info("due-date monitor started", "interval", d.interval, "horizon_days", d.horizon)
	return done
}

func (d *DueMonitor) tick(ctx context.Context) {
	report, err := d.Check(ctx)
	if err != nil {
		if ctx.Err() == nil {
			d.logger.Error("due-date monitor pass failed", "error", err)
		}
		return
	}
	if report.Overdue > 0 {
		d.logger.Warn("overdue bills pending", "count", report.Overdue)
	}
	d.logger.Debug("due-date monitor pass", "overdue", report.Overdue, "due_soon", report.DueSoon)
}
