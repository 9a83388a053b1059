package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/pagamentos-go/apperror"
	"github.com/user/pagamentos-go/models"
)

type sampleRequest struct {
	Name  string  `json:"name" validate:"required"`
	Email string  `json:"email" validate:"required,email"`
	Owner *int64  `json:"owner_id" validate:"required"`
	Note  *string `json:"note"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantType apperror.ErrorType
		wantMsg  string
	}{
		{"empty body", "", apperror.ValidationError, "sample must not be null"},
		{"null body", "null", apperror.ValidationError, "sample must not be null"},
		{"broken json", `{"name":`, apperror.BadRequestError, "invalid request body"},
		{"missing fields", `{"name":"x"}`, apperror.ValidationError, "email is required; owner_id is required"},
		{"bad email", `{"name":"x","email":"nope","owner_id":1}`, apperror.ValidationError, "email must be a valid email address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dst sampleRequest
			err := DecodeJSON(r, &dst, "sample")
			require.Error(t, err)
			assert.True(t, apperror.IsType(err, tt.wantType), "got %v", err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}

	t.Run("valid", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x","email":"a@b.com","owner_id":7}`))
		var dst sampleRequest
		require.NoError(t, DecodeJSON(r, &dst, "sample"))
		assert.Equal(t, int64(7), *dst.Owner)
		assert.Nil(t, dst.Note)
	})
}

func TestQueryDate(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?start=2024-01-31&end=31/01/2024", nil)

	start, err := RequiredQueryDate(r, "start")
	require.NoError(t, err)
	assert.Equal(t, models.NewDate(2024, 1, 31), start)

	_, err = RequiredQueryDate(r, "end")
	require.Error(t, err)
	appErr, ok := apperror.FromError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode())
	assert.Equal(t, MalformedDateMessage, appErr.Message)

	missing, err := QueryDate(r, "dueDate")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPager(t *testing.T) {
	p := Pager{DefaultSize: 20, MaxSize: 100}

	tests := []struct {
		query   string
		want    models.PageRequest
		wantErr bool
	}{
		{"", models.PageRequest{Page: 0, Size: 20}, false},
		{"page=2&size=5", models.PageRequest{Page: 2, Size: 5}, false},
		{"size=1000", models.PageRequest{Page: 0, Size: 100}, false},
		{"page=-1", models.PageRequest{}, true},
		{"size=zero", models.PageRequest{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := p.FromRequest(httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPathID(t *testing.T) {
	router := chi.NewRouter()
	var got int64
	var gotErr error
	router.Get("/bills/{id}", func(w http.ResponseWriter, r *http.Request) {
		got, gotErr = PathID(r, "id")
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/bills/42", nil))
	require.NoError(t, gotErr)
	assert.Equal(t, int64(42), got)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/bills/abc", nil))
	assert.True(t, apperror.IsType(gotErr, apperror.BadRequestError))
}

func TestWriteErrorHidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body apperror.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "an unexpected error occurred", body.Error)
}

func TestRecoverer(t *testing.T) {
	h := Recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}
