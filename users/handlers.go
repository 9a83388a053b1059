package users

import (
	"net/http"

	"github.com/user/pagamentos-go/httputil"
)

// UserHandlers provides HTTP handlers for user management.
type UserHandlers struct {
	service *UserService
	pager   httputil.Pager
}

// NewUserHandlers creates new UserHandlers.
func NewUserHandlers(service *UserService, pager httputil.Pager) *UserHandlers {
	return &UserHandlers{service: service, pager: pager}
}

// HandleCreateUser godoc
// @Summary Register a user
// @Description Creates a user. The password is stored as a bcrypt hash.
// @Tags Users
// @Accept json
// @Produce json
// @Param user body CreateUserRequest true "User to create"
// @Success 201 {object} UserResponse
// @Failure 400 {object} apperror.ErrorResponse "Missing or invalid fields"
// @Failure 409 {object} apperror.ErrorResponse "Email already exists"
// @Router /accounts/users [post]
func (h *UserHandlers) HandleCreateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateUserRequest
		if err := httputil.DecodeJSON(r, &req, "user"); err != nil {
			httputil.WriteError(w, r, err)
			return
		}
		user, err := h.service.Create(r.Context(), req)
		if err != nil {
			httputil.WriteError(w, r, err)
			return
		}
		httputil.WriteJSON(w, http.StatusCreated, user)
	}
}

// HandleUpdateUser godoc
// @Summary Update a user
// @Description Replaces name, email, password and balance of a user.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param user body UpdateUserRequest true "New user data"
// @Success 200 {object} UserResponse
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse "User not found"
// @Failure 409 {object} apperror.ErrorResponse "Email already exists or concurrent update"
// @Router /accounts/users/{id} [put]
func (h *UserHandlers) HandleUpdateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httputil.PathID(r, "id")
		if err != nil {
			httputil.WriteError(w, r, err)
			return
		}
		var req UpdateUserRequest
		if err := httputil.DecodeJSON(r, &req, "user"); err != nil {
			httputil.WriteError(w, r, err)
			return
		}
		user, err := h.service.Update(r.Context(), id, req)
		if err != nil {
			httputil.WriteError(w, r, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, user)
	}
}

// HandleListUsers godoc
// @Summary List users
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Zero-based page number"
// @Param size query int false "Page size (default 20)"
// @Success 200 {object} UserPage
// @Failure 401 {object} apperror.ErrorResponse
// @Router /accounts/users [get]
func (h *UserHandlers) HandleListUsers() http.HandlerFunc {
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

// HandleGetUser godoc
// @Summary Get a user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} UserResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse "User not found"
// @Router /accounts/users/{id} [get]
func (h *UserHandlers) HandleGetUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httputil.PathID(r, "id")
		if err != nil {
			httputil.WriteError(w, r, err)
			return
		}
		user, err := h.service.Get(r.Context(), id)
		if err != nil {
			httputil.WriteError(w, r, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, user)
	}
}

// HandleDeleteUser godoc
// @Summary Delete a user
// @Tags Users
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 204 "Deleted"
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse "User not found"
// @Failure 409 {object} apperror.ErrorResponse "User still owns bills"
// @Router /accounts/users/{id} [delete]
func (h *UserHandlers) HandleDeleteUser() http.HandlerFunc {
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
