// Package csvimport creates bills in bulk from CSV files.
//
// The first record is the header. Columns are matched by name, ignoring case and
// surrounding spaces, and may come in any order:
//
//	UsuarioId,Nome,Descricao,Valor,DataVencimento
//	1,Internet,Fibra 500MB,100.00,10/05/2024
//
// Every row must resolve to an existing user and parse cleanly, otherwise nothing
// is written.
package csvimport

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/user/pagamentos-go/models"
	"github.com/user/pagamentos-go/store"
)

// ErrImport is wrapped by every error returned from Import.
var ErrImport = errors.New("import failed")

type column int

const (
	colUserID column = iota
	colName
	colDescription
	colAmount
	colDueDate
	columnCount
)

var columnNames = [columnCount]string{"UsuarioId", "Nome", "Descricao", "Valor", "DataVencimento"}

// aliases maps a lower-cased header to its column.
var aliases = map[string]column{
	"usuarioid":      colUserID,
	"user-id":        colUserID,
	"user_id":        colUserID,
	"userid":         colUserID,
	"nome":           colName,
	"name":           colName,
	"descricao":      colDescription,
	"description":    colDescription,
	"valor":          colAmount,
	"amount":         colAmount,
	"datavencimento": colDueDate,
	"due-date":       colDueDate,
	"due_date":       colDueDate,
	"duedate":        colDueDate,
}

// Importer reads CSV files into bills and stores them in one transaction.
type Importer struct {
	store  store.Store
	logger *slog.Logger
}

// NewImporter creates an Importer.
func NewImporter(st store.Store, logger *slog.Logger) *Importer {
	return &Importer{store: st, logger: logger}
}

// Import parses r and creates one pending bill per data row. It returns the
// number of bills created; on error nothing is created.
func (i *Importer) Import(ctx context.Context, filename string, r io.Reader) (int, error) {
	var bills []*models.Bill

	err := i.store.WithinTx(ctx, func(tx store.Store) error {
		var err error
		bills, err = parse(ctx, tx, r)
		if err != nil {
			return err
		}
		if len(bills) == 0 {
			return nil
		}
		if err := tx.CreateBills(ctx, bills); err != nil {
			return fmt.Errorf("store bills: %w", err)
		}
		return nil
	})
	if err != nil {
		i.logger.WarnContext(ctx, "csv import rejected", "file", filename, "error", err)
		return 0, fmt.Errorf("%w: %s: %w", ErrImport, filename, err)
	}

	i.logger.InfoContext(ctx, "csv import committed", "file", filename, "bills", len(bills))
	return len(bills), nil
}

func parse(ctx context.Context, users store.UserRepository, r io.Reader) ([]*models.Bill, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("missing header row")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	index, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	// Rows of the same user hit the store once.
	known := make(map[int64]bool)
	var bills []*models.Bill
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		line, _ := reader.FieldPos(0)

		bill, err := parseRecord(record, index)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if !known[bill.UserID] {
			if _, err := users.GetUser(ctx, bill.UserID); err != nil {
				return nil, fmt.Errorf("line %d: user %d: %w", line, bill.UserID, err)
			}
			known[bill.UserID] = true
		}
		bills = append(bills, bill)
	}
	return bills, nil
}

func mapHeader(header []string) ([columnCount]int, error) {
	var index [columnCount]int
	for c := range index {
		index[c] = -1
	}
	for pos, raw := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(raw, "\ufeff")))
		c, ok := aliases[name]
		if !ok {
			continue
		}
		if index[c] >= 0 {
			return index, fmt.Errorf("duplicate column %s: %q and %q", columnNames[c], strings.TrimSpace(header[index[c]]), strings.TrimSpace(raw))
		}
		index[c] = pos
	}
	var missing []string
	for c, pos := range index {
		if pos < 0 {
			missing = append(missing, columnNames[c])
		}
	}
	if len(missing) > 0 {
		return index, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return index, nil
}

func parseRecord(record []string, index [columnCount]int) (*models.Bill, error) {
	field := func(c column) (string, error) {
		pos := index[c]
		if pos >= len(record) {
			return "", fmt.Errorf("missing value for %s", columnNames[c])
		}
		return strings.TrimSpace(record[pos]), nil
	}

	raw, err := field(colUserID)
	if err != nil {
		return nil, err
	}
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q", raw)
	}

	name, err := field(colName)
	if err != nil {
		return nil, err
	}
	description, err := field(colDescription)
	if err != nil {
		return nil, err
	}

	raw, err = field(colAmount)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(raw)
	if err != nil {
		return nil, err
	}

	raw, err = field(colDueDate)
	if err != nil {
		return nil, err
	}
	dueDate, err := models.ParseDayMonthYear(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid due date %q, use dd/MM/yyyy", raw)
	}

	bill := &models.Bill{
		Name:        name,
		Description: description,
		Amount:      amount,
		DueDate:     dueDate,
		UserID:      userID,
	}
	bill.ResetSettlement()
	return bill, nil
}

// parseAmount accepts "1234.56" and, when no dot is present, "1234,56".
func parseAmount(raw string) (decimal.Decimal, error) {
	normalized := raw
	if !strings.Contains(raw, ".") {
		normalized = strings.Replace(raw, ",", ".", 1)
	}
	amount, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", raw)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative amount %q", raw)
	}
	return amount, nil
}
