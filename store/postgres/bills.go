package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/user/pagamentos-go/models"
	"github.com/user/pagamentos-go/store"
)

const billColumns = `id, name, description, note, amount::text, due_date, payment_date, status, user_id, version, created_at, updated_at`

func scanBill(row scanner) (*models.Bill, error) {
	var (
		b           models.Bill
		amount      string
		dueDate     pgtype.Date
		paymentDate pgtype.Date
		status      string
	)
	err := row.Scan(&b.ID, &b.Name, &b.Description, &b.Note, &amount, &dueDate, &paymentDate,
		&status, &b.UserID, &b.Version, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if b.Amount, err = parseDecimal(amount); err != nil {
		return nil, err
	}
	if b.Status, err = models.ParseBillStatus(status); err != nil {
		return nil, err
	}
	if due := fromPgDate(dueDate); due != nil {
		b.DueDate = *due
	}
	b.PaymentDate = fromPgDate(paymentDate)
	return &b, nil
}

func collectBills(rows pgx.Rows) ([]models.Bill, error) {
	defer rows.Close()
	bills := []models.Bill{}
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		bills = append(bills, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bills: %w", err)
	}
	return bills, nil
}

func mapBillWriteError(err error) error {
	if _, ok := isPgError(err, pgForeignKeyViolation); ok {
		return store.ErrUserNotFound
	}
	return err
}

const insertBillSQL = `INSERT INTO bills (name, description, note, amount, due_date, payment_date, status, user_id)
                       VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8)
                       RETURNING id, version, created_at, updated_at`

func insertBillArgs(b *models.Bill) []any {
	return []any{b.Name, b.Description, b.Note, b.Amount.String(), b.DueDate.Time, dateParam(b.PaymentDate), string(b.Status), b.UserID}
}

// CreateBill inserts one bill row.
func (s *Store) CreateBill(ctx context.Context, bill *models.Bill) error {
	err := s.q.QueryRow(ctx, insertBillSQL, insertBillArgs(bill)...).
		Scan(&bill.ID, &bill.Version, &bill.CreatedAt, &bill.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert bill: %w", mapBillWriteError(err))
	}
	return nil
}

// CreateBills sends every insert in one batch inside a transaction.
func (s *Store) CreateBills(ctx context.Context, bills []*models.Bill) error {
	if len(bills) == 0 {
		return nil
	}
	if s.tx == nil {
		return s.WithinTx(ctx, func(tx store.Store) error {
			return tx.CreateBills(ctx, bills)
		})
	}

	batch := &pgx.Batch{}
	for _, b := range bills {
		batch.Queue(insertBillSQL, insertBillArgs(b)...)
	}
	results := s.q.SendBatch(ctx, batch)
	for i, b := range bills {
		if err := results.QueryRow().Scan(&b.ID, &b.Version, &b.CreatedAt, &b.UpdatedAt); err != nil {
			_ = results.Close()
			return fmt.Errorf("insert bill %d of %d: %w", i+1, len(bills), mapBillWriteError(err))
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("close insert batch: %w", err)
	}
	return nil
}

// UpdateBill overwrites the row when its version still matches.
func (s *Store) UpdateBill(ctx context.Context, bill *models.Bill) error {
	query := `UPDATE bills
              SET name = $2, description = $3, note = $4, amount = $5::numeric, due_date = $6,
                  payment_date = $7, status = $8, user_id = $9,
                  version = version + 1, updated_at = now()
              WHERE id = $1 AND version = $10
              RETURNING version, created_at, updated_at`
	err := s.q.QueryRow(ctx, query,
		bill.ID, bill.Name, bill.Description, bill.Note, bill.Amount.String(), bill.DueDate.Time,
		dateParam(bill.PaymentDate), string(bill.Status), bill.UserID, bill.Version,
	).Scan(&bill.Version, &bill.CreatedAt, &bill.UpdatedAt)
	if isNoRows(err) {
		return s.missingOrStale(ctx, "bills", bill.ID, store.ErrBillNotFound)
	}
	if err != nil {
		return fmt.Errorf("update bill %d: %w", bill.ID, mapBillWriteError(err))
	}
	return nil
}

// GetBill loads one bill by id.
func (s *Store) GetBill(ctx context.Context, id int64) (*models.Bill, error) {
	b, err := scanBill(s.q.QueryRow(ctx, `SELECT `+billColumns+` FROM bills WHERE id = $1`, id))
	if isNoRows(err) {
		return nil, store.ErrBillNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get bill %d: %w", id, err)
	}
	return b, nil
}

// DeleteBill removes one bill.
func (s *Store) DeleteBill(ctx context.Context, id int64) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM bills WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete bill %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrBillNotFound
	}
	return nil
}

// ListBills returns one page of bills ordered by id.
func (s *Store) ListBills(ctx context.Context, page models.PageRequest) (models.Page[models.Bill], error) {
	return s.FilterBills(ctx, store.BillFilter{}, page)
}

// ListBillsByUser returns every bill owned by userID.
func (s *Store) ListBillsByUser(ctx context.Context, userID int64) ([]models.Bill, error) {
	rows, err := s.q.Query(ctx, `SELECT `+billColumns+` FROM bills WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list bills of user %d: %w", userID, err)
	}
	return collectBills(rows)
}

// SumPaid totals the paid bills of userID settled within [start, end].
func (s *Store) SumPaid(ctx context.Context, userID int64, start, end models.Date) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0)::text
              FROM bills
              WHERE user_id = $1 AND status = $2
                AND payment_date IS NOT NULL
                AND payment_date BETWEEN $3 AND $4`
	var raw string
	if err := s.q.QueryRow(ctx, query, userID, string(models.StatusPaid), start.Time, end.Time).Scan(&raw); err != nil {
		return decimal.Zero, fmt.Errorf("sum paid bills of user %d: %w", userID, err)
	}
	return parseDecimal(raw)
}

// ListPending returns pending bills due within the range, oldest due date first.
func (s *Store) ListPending(ctx context.Context, q store.PendingQuery) ([]models.Bill, error) {
	query := `SELECT ` + billColumns + `
              FROM bills
              WHERE status = $1 AND payment_date IS NULL AND due_date BETWEEN $2 AND $3`
	args := []any{string(models.StatusPending), q.Start.Time, q.End.Time}
	if q.UserID != nil {
		query += ` AND user_id = $4`
		args = append(args, *q.UserID)
	}
	query += ` ORDER BY due_date, id`

	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pending bills: %w", err)
	}
	return collectBills(rows)
}

// FilterBills builds the WHERE clause from the non-empty filters.
func (s *Store) FilterBills(ctx context.Context, f store.BillFilter, page models.PageRequest) (models.Page[models.Bill], error) {
	var conditions []string
	var args []any
	argID := 1

	if f.DueDate != nil {
		conditions = append(conditions, fmt.Sprintf("due_date = $%d", argID))
		args = append(args, f.DueDate.Time)
		argID++
	}
	if f.Name != "" {
		// strpos keeps % and _ in the pattern literal.
		conditions = append(conditions, fmt.Sprintf("strpos(name, $%d) > 0", argID))
		args = append(args, f.Name)
		argID++
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	total, err := countRows(ctx, s.q, `SELECT count(*) FROM bills`+where, args...)
	if err != nil {
		return models.Page[models.Bill]{}, fmt.Errorf("count bills: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM bills%s ORDER BY id LIMIT $%d OFFSET $%d`, billColumns, where, argID, argID+1)
	rows, err := s.q.Query(ctx, query, append(args, page.Size, page.Offset())...)
	if err != nil {
		return models.Page[models.Bill]{}, fmt.Errorf("filter bills: %w", err)
	}
	bills, err := collectBills(rows)
	if err != nil {
		return models.Page[models.Bill]{}, err
	}
	return models.NewPage(bills, page, total), nil
}
