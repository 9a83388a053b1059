package bills

import (
	"context"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/user/pagamentos-go/httputil"
	"github.com/user/pagamentos-go/metrics"
	"github.com/user/pagamentos-go/models"
	"github.com/user/pagamentos-go/settlement"
)

// Payer settles bills.
type Payer interface {
	Pay(ctx context.Context, billID, payingUserID int64) (decimal.Decimal, error)
}

// Handlers provides HTTP handlers for bills.
type Handlers struct {
	service *Service
	payer   Payer
	pager   httputil.Pager
	metrics *metrics.Metrics
}

// NewHandlers creates new Handlers. m may be nil.
func NewHandlers(service *Service, payer Payer, pager httputil.Pager, m *metrics.Metrics) *Handlers {
	return &Handlers{service: service, payer: payer, pager: pager, metrics: m}
}

// HandleCreateBill godoc
// @Summary Create a bill
// @Description Creates a pending bill for an existing user. Status and payment date in the body are ignored.
// @Tags Bills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param bill body CreateBillRequest true "Bill to create"
// @Success 201 {object} models.Bill
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse "User not found"
// @Router /accounts/bills [post]
func (h *Handlers) HandleCreateBill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateBillRequest
		if err := httputil.DecodeJSON(r, &req, "bill"); err != nil {
			httputil.WriteError(w, r, err)
			return
		}
		bill, err := h.service.Create(r.Context(), req)
		if err != nil {
			httputil.WriteError(w, r, err)
			return
		}
		httputil.WriteJSON(w, http.StatusCreated, bill)
	}
}

// HandleUpdateBill godoc
// @Summary Update a bill
// @Description Overwrites a bill. Without a status the current one is kept.
// @Tags Bills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Bill ID"
// @Param bill body UpdateBillRequest true "New bill data"
// @Success 200 {object} models.Bill
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse "Bill or user not found"
// @Failure 409 {object} apperror.ErrorResponse "Concurrent update"
// @Router /accounts/bills/{id} [put]
func (h *Handlers) HandleUpdateBill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httputil.PathID(r, "id")
		if err != nil {
			httputil.WriteError(w, r, err)
			return
		}
		var req UpdateBillRequest
		if err := httputil.DecodeJSON(r, &req, "bill"); err != nil {
			httputil.WriteError(w, r, err)
			return
		}
		bill, err := h.service.Update(r.Context(), id, req)
		if err != nil {
			httputil.WriteError(w, r, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, bill)
	}
}

// HandlePayBill godoc
// @Summary Pay a bill
// @Description Debits the bill amount from the user's balance and marks the bill paid today.
// @Tags Bills
// @Produce json
// @Security BearerAuth
// @Param id path int true "Bill ID"
// @Param userId path int true "Paying user ID"
// @Success 200 {object} PayResponse
// @Failure 400 {object} apperror.ErrorResponse "Insufficient funds"
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse "Not the owner or already paid"
// @Failure 404 {object} apperror.ErrorResponse "Bill or user not found"
// @Failure 409 {object} apperror.ErrorResponse "Concurrent payment"
// @Router /accounts/bills/{id}/pay/user/{userId} [get]
func (h *Handlers) HandlePayBill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		billID, err := httputil.PathID(r, "id")
		if err != nil {
			httputil.WriteError(w, r, err)
			return
		}
		userID, err := httputil.PathID(r, "userId")
		if err != nil {
			httputil.WriteError(w, r, err)
			return
		}

		balance, err := h.payer.Pay(r.Context(), billID, userID)
		if err != nil {
			h.metrics.PaymentRejected(settlement.RejectionReason(err))
			httputil.WriteError(w, r, err)
			return
		}
		h.metrics.PaymentSettled()
		httputil.WriteJSON(w, http.StatusOK, PayResponse{
			Message: "payment registered successfully",
			Balance: models.NewMoney(balance),
		})
	}
}

// HandleListBills godoc
// @Summary List bills
// @Tags Bills
// @Produce json
// @Security BearerAuth
// @Param page query int false "Zero-based page number"
// @Param size query int false "Page size (default 20)"
// @Success 200 {object} BillPage
// @Failure 401 {object} apperror.ErrorResponse
// @Router /accounts/bills [get]
func (h *Handlers) HandleListBills() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := h.pager.FromRequest(r)
		if err != nil {
			httputil.WriteError(w, r, err)
			return
		}
		result, err := h.service.List(r.Context(), page)
		if err != nil {
			httputil.WriteError(w, r, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, result)
	}
}

// HandleGetBill godoc
// @Summary Get a bill
// @Tags Bills
// @Produce json
// @Security BearerAuth
// @Param id path int true "Bill ID"
// @Success 200 {object} models.Bill
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse "Bill not found"
// @Router /accounts/bills/{id} [get]
func (h *Handlers) HandleGetBill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httputil.PathID(r, "id")
		if err != nil {
			httputil.WriteError(w, r, err)
			return
		}
		bill, err := h.service.FindByID(r.Context(), id)
		if err != nil {
			httputil.WriteError(w, r, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, bill)
	}
}

// HandleDeleteBill godoc
// @Summary Delete a bill
// @Tags Bills
// @Security BearerAuth
// @Param id path int true "Bill ID"
// @Success 204 "Deleted"
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse "Bill not found"
// @Router /accounts/bills/{id} [delete]
func (h *Handlers) HandleDeleteBill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httputil.PathID(r, "id")
		if err != nil {
			httputil.WriteError(w, r, err)
			return
		}
		if err := h.service.Delete(r.Context(), id); err != nil {
			httputil.WriteError(w, r, err)
			return
		}
		httputil.NoContent(w)
	}
}

// HandleListByUser godoc
// @Summary List the bills of a user
// @Tags Bills
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {array} models.Bill
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse "User not found"
// @Router /accounts/bills/user/{userId} [get]
func (h *Handlers) HandleListByUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := httputil.PathID(r, "userId")
		if err != nil {
			httputil.WriteError(w, r, err)
			return
		}
		bills, err := h.service.ListByUser(r.Context(), userID)
		if err != nil {
			httputil.WriteError(w, r, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, bills)
	}
}

// HandleTotalPaid godoc
// @Summary Total paid by a user
// @Description Sums the bills the user paid with a payment date within [start, end].
// @Tags Bills
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Param start query string true "Start date (yyyy-MM-dd)"
// @Param end query string true "End date (yyyy-MM-dd)"
// @Success 200 {object} TotalPaidResponse
// @Failure 400 {object} apperror.ErrorResponse "Malformed date"
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse "User not found"
// @Router /accounts/bills/user/{userId}/total-paid [get]
func (h *Handlers) HandleTotalPaid() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := httputil.PathID(r, "userId")
		if err != nil {
			httputil.WriteError(w, r, err)
			return
		}
		start, end, err := httputil.DateRange(r)
		if err != nil {
			httputil.WriteError(w, r, err)
			return
		}
		total, err := h.service.TotalPaid(r.Context(), start, end, userID)
		if err != nil {
			httputil.WriteError(w, r, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, total)
	}
}

// HandlePending godoc
// @Summary Pending bills
// @Description Lists pending bills of every user due within [start, end].
// @Tags Bills
// @Produce json
// @Security BearerAuth
// @Param start query string true "Start date (yyyy-MM-dd)"
// @Param end query string true "End date (yyyy-MM-dd)"
// @Success 200 {array} models.Bill
// @Failure 400 {object} apperror.ErrorResponse "Malformed date"
// @Failure 401 {object} apperror.ErrorResponse
// @Router /accounts/bills/pending [get]
func (h *Handlers) HandlePending() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, end, err := httputil.DateRange(r)
		if err != nil {
			httputil.WriteError(w, r, err)
			return
		}
		bills, err := h.service.PendingBetween(r.Context(), start, end)
		if err != nil {
			httputil.WriteError(w, r, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, bills)
	}
}

// HandlePendingForUser godoc
// @Summary Pending bills of a user
// @Tags Bills
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Param start query string true "Start date (yyyy-MM-dd)"
// @Param end query string true "End date (yyyy-MM-dd)"
// @Success 200 {array} models.Bill
// @Failure 400 {object} apperror.ErrorResponse "Malformed date"
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse "User not found"
// @Router /accounts/bills/user/{userId}/pending [get]
func (h *Handlers) HandlePendingForUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := httputil.PathID(r, "userId")
		if err != nil {
			httputil.WriteError(w, r, err)
			return
		}
		start, end, err := httputil.DateRange(r)
		if err != nil {
			httputil.WriteError(w, r, err)
			return
		}
		bills, err := h.service.PendingForUser(r.Context(), start, end, userID)
		if err != nil {
			httputil.WriteError(w, r, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, bills)
	}
}

// HandleFilter godoc
// @Summary Filter bills
// @Description Pages through bills with an exact due date and/or a name containing the given text.
// @Tags Bills
// @Produce json
// @Security BearerAuth
// @Param dueDate query string false "Due date (yyyy-MM-dd)"
// @Param name query string false "Substring of the bill name"
// @Param page query int false "Zero-based page number"
// @Param size query int false "Page size (default 20)"
// @Success 200 {object} BillPage
// @Failure 400 {object} apperror.ErrorResponse "Malformed date"
// @Failure 401 {object} apperror.ErrorResponse
// @Router /accounts/bills/filtered [get]
func (h *Handlers) HandleFilter() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dueDate, err := httputil.QueryDate(r, "dueDate")
		if err != nil {
			httputil.WriteError(w, r, err)
			return
		}
		page, err := h.pager.FromRequest(r)
		if err != nil {
			httputil.WriteError(w, r, err)
			return
		}
		name := strings.TrimSpace(r.URL.Query().Get("name"))
		result, err := h.service.Filter(r.Context(), dueDate, name, page)
		if err != nil {
			httputil.WriteError(w, r, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, result)
	}
}
