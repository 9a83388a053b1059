package csvimport

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/pagamentos-go/logging"
	"github.com/user/pagamentos-go/models"
	"github.com/user/pagamentos-go/store"
	"github.com/user/pagamentos-go/store/memory"
)

func newImporter(t *testing.T) (*Importer, *memory.Store) {
	t.Helper()
	st := memory.New()
	ctx := context.Background()
	for _, email := range []string{"maria@example.com", "joao@example.com"} {
		require.NoError(t, st.CreateUser(ctx, &models.User{Name: email, Email: email, PasswordHash: "x"}))
	}
	return NewImporter(st, logging.Discard()), st
}

func allBills(t *testing.T, st store.Store) []models.Bill {
	t.Helper()
	page, err := st.ListBills(context.Background(), models.PageRequest{Page: 0, Size: 100})
	require.NoError(t, err)
	return page.Content
}

func TestImport(t *testing.T) {
	imp, st := newImporter(t)

	csv := "UsuarioId,Nome,Descricao,Valor,DataVencimento\n" +
		"1,Conta 1,Descricao 1,100.00,01/01/2023\n" +
		"2,Conta 2,Descricao 2,\"200,50\",02/02/2023\n"

	n, err := imp.Import(context.Background(), "contas.csv", strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	bills := allBills(t, st)
	require.Len(t, bills, 2)
	assert.Equal(t, "Conta 1", bills[0].Name)
	assert.Equal(t, int64(1), bills[0].UserID)
	assert.Equal(t, models.NewDate(2023, 1, 1), bills[0].DueDate)
	assert.Equal(t, models.StatusPending, bills[0].Status)
	assert.Nil(t, bills[0].PaymentDate)
	assert.True(t, decimal.RequireFromString("200.50").Equal(bills[1].Amount))
	assert.Equal(t, models.NewDate(2023, 2, 2), bills[1].DueDate)
}

func TestImportHeaderSpellings(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"portuguese", "UsuarioId,Nome,Descricao,Valor,DataVencimento"},
		{"lower case", "usuarioid,nome,descricao,valor,datavencimento"},
		{"english kebab", "user-id,name,description,amount,due-date"},
		{"english snake with spaces", " user_id , name , description , amount , due_date "},
		{"camel case reordered", "name,userId,dueDate,amount,description"},
	}
	rows := map[string]string{
		"camel case reordered": "Agua,1,10/05/2024,35.90,Sabesp",
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			imp, st := newImporter(t)
			row, ok := rows[tt.name]
			if !ok {
				row = "1,Agua,Sabesp,35.90,10/05/2024"
			}
			n, err := imp.Import(context.Background(), "a.csv", strings.NewReader(tt.header+"\n"+row+"\n"))
			require.NoError(t, err)
			assert.Equal(t, 1, n)

			bills := allBills(t, st)
			require.Len(t, bills, 1)
			assert.Equal(t, "Agua", bills[0].Name)
			assert.Equal(t, "Sabesp", bills[0].Description)
			assert.Equal(t, models.NewDate(2024, 5, 10), bills[0].DueDate)
		})
	}
}

func TestImportRejectsWholeFile(t *testing.T) {
	header := "UsuarioId,Nome,Descricao,Valor,DataVencimento\n"
	good := "1,Conta 1,Descricao 1,100.00,01/01/2023\n"

	tests := []struct {
		name string
		body string
	}{
		{"unknown user", header + good + "99,Conta 2,Descricao 2,10.00,02/02/2023\n"},
		{"invalid date", header + good + "1,Conta 2,Descricao 2,10.00,invalid-date\n"},
		{"iso date", header + good + "1,Conta 2,Descricao 2,10.00,2023-02-02\n"},
		{"invalid amount", header + good + "1,Conta 2,Descricao 2,dez,02/02/2023\n"},
		{"negative amount", header + good + "1,Conta 2,Descricao 2,-10,02/02/2023\n"},
		{"invalid user id", header + good + "abc,Conta 2,Descricao 2,10.00,02/02/2023\n"},
		{"missing column", "UsuarioId,Nome,Valor,DataVencimento\n1,Conta,10.00,02/02/2023\n"},
		{"ragged row", header + good + "1,Conta 2\n"},
		{"empty file", ""},
		{"duplicate column", "UsuarioId,Nome,name,Descricao,Valor,DataVencimento\n1,Conta 1,Other,Descricao 1,100.00,01/01/2023\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			imp, st := newImporter(t)
			n, err := imp.Import(context.Background(), "bad.csv", strings.NewReader(tt.body))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrImport)
			assert.Contains(t, err.Error(), "bad.csv")
			assert.Zero(t, n)
			assert.Empty(t, allBills(t, st))
		})
	}
}

func TestImportNamesDuplicateColumn(t *testing.T) {
	imp, _ := newImporter(t)
	_, err := imp.Import(context.Background(), "dup.csv",
		strings.NewReader("UsuarioId,Valor,amount,Nome,Descricao,DataVencimento\n1,10.00,20.00,Conta,Desc,01/01/2023\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate column`)
	assert.Contains(t, err.Error(), `"Valor" and "amount"`)
}

func TestImportHeaderOnly(t *testing.T) {
	imp, st := newImporter(t)
	n, err := imp.Import(context.Background(), "empty.csv", strings.NewReader("UsuarioId,Nome,Descricao,Valor,DataVencimento\n"))
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, allBills(t, st))
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestHandleUpload(t *testing.T) {
	tests := []struct {
		name       string
		field      string
		content    string
		maxBytes   int64
		wantStatus int
		wantBody   string
	}{
		{
			name:       "success",
			field:      "file",
			content:    "UsuarioId,Nome,Descricao,Valor,DataVencimento\n1,Conta 1,Descricao 1,100.00,01/01/2023\n",
			maxBytes:   1 << 20,
			wantStatus: http.StatusOK,
			wantBody:   "file processed successfully and bills created",
		},
		{
			name:       "bad row names the file",
			field:      "file",
			content:    "UsuarioId,Nome,Descricao,Valor,DataVencimento\n99,Conta 1,Descricao 1,100.00,01/01/2023\n",
			maxBytes:   1 << 20,
			wantStatus: http.StatusBadRequest,
			wantBody:   "failed to process file contas.csv",
		},
		{
			name:       "missing file field",
			field:      "other",
			content:    "x",
			maxBytes:   1 << 20,
			wantStatus: http.StatusBadRequest,
			wantBody:   "file must not be null",
		},
		{
			name:       "too large",
			field:      "file",
			content:    strings.Repeat("a", 4096),
			maxBytes:   512,
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			imp, _ := newImporter(t)
			h := NewHandlers(imp, tt.maxBytes, nil)

			body, contentType := multipartBody(t, tt.field, "contas.csv", tt.content)
			req := httptest.NewRequest(http.MethodPost, "/accounts/bills/upload-csv", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()

			h.HandleUpload().ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			if tt.wantStatus == http.StatusOK {
				var resp UploadResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, 1, resp.Imported)
			}
		})
	}
}
