package csvimport

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/user/pagamentos-go/apperror"
	"github.com/user/pagamentos-go/httputil"
	"github.com/user/pagamentos-go/metrics"
)

// multipartMemory is how much of an upload ParseMultipartForm keeps in memory
// before spilling to a temporary file.
const multipartMemory = 1 << 20

// UploadResponse reports a committed import.
type UploadResponse struct {
	Message  string `json:"message" example:"file processed successfully and bills created"`
	Imported int    `json:"imported" example:"2"`
}

// Handlers serves the CSV upload endpoint.
type Handlers struct {
	importer *Importer
	maxBytes int64
	metrics  *metrics.Metrics
}

// NewHandlers creates Handlers. Uploads above maxBytes are rejected.
func NewHandlers(importer *Importer, maxBytes int64, m *metrics.Metrics) *Handlers {
	return &Handlers{importer: importer, maxBytes: maxBytes, metrics: m}
}

// HandleUpload godoc
// @Summary Import bills from CSV
// @Description Creates one pending bill per row. Expected header: UsuarioId,Nome,Descricao,Valor,DataVencimento (dd/MM/yyyy). Any bad row rejects the whole file.
// @Tags Bills
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CSV file"
// @Success 200 {object} UploadResponse
// @Failure 400 {object} apperror.ErrorResponse "Invalid file"
// @Failure 401 {object} apperror.ErrorResponse
// @Router /accounts/bills/upload-csv [post]
func (h *Handlers) HandleUpload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				httputil.WriteError(w, r, apperror.NewBadRequestError(
					fmt.Sprintf("file exceeds the %d byte limit", h.maxBytes), err))
				return
			}
			httputil.WriteError(w, r, apperror.NewValidationError("file must not be null", err))
			return
		}
		defer r.MultipartForm.RemoveAll()

		file, header, err := r.FormFile("file")
		if err != nil {
			httputil.WriteError(w, r, apperror.NewValidationError("file must not be null", err))
			return
		}
		defer file.Close()

		imported, err := h.importer.Import(r.Context(), header.Filename, file)
		if err != nil {
			h.metrics.ImportFailed()
			httputil.WriteError(w, r, apperror.NewImportError("failed to process file "+header.Filename, err))
			return
		}

		h.metrics.BillsImported(imported)
		httputil.WriteJSON(w, http.StatusOK, UploadResponse{
			Message:  "file processed successfully and bills created",
			Imported: imported,
		})
	}
}
