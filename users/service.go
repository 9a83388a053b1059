// Package users manages account holders: registration, updates, listing and removal.
package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/user/pagamentos-go/apperror"
	"github.com/user/pagamentos-go/auth"
	"github.com/user/pagamentos-go/models"
	"github.com/user/pagamentos-go/store"
)

// UserService provides methods for user management.
type UserService struct {
	store  store.UserRepository
	logger *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(st store.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{store: st, logger: logger}
}

// translate maps store sentinels onto application errors.
func translate(err error, id int64, action string) error {
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		return apperror.NewNotFoundError(fmt.Sprintf("user with ID %d not found", id), err)
	case errors.Is(err, store.ErrEmailTaken):
		return apperror.NewConflictError("email already exists", err)
	case errors.Is(err, store.ErrUserHasBills):
		return apperror.NewConflictError(fmt.Sprintf("user with ID %d still owns bills", id), err)
	case errors.Is(err, store.ErrConflict):
		return apperror.NewConflictError("user was modified concurrently, retry the request", err)
	default:
		return apperror.NewDatabaseError("failed to "+action, err)
	}
}

func checkBalance(balance decimal.Decimal) error {
	if balance.IsNegative() {
		return apperror.NewValidationError("balance must not be negative", nil)
	}
	return nil
}

// Create registers a user, hashing the password before it is stored.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	balance := decimal.Zero
	if req.Balance != nil {
		balance = *req.Balance
	}
	if err := checkBalance(balance); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperror.NewInternalError("failed to hash password", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Balance:      balance,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, translate(err, 0, "create user")
	}

	s.logger.InfoContext(ctx, "user created", "user_id", user.ID)
	resp := toResponse(user)
	return &resp, nil
}

// Update overwrites name, email, balance and password of an existing user.
func (s *UserService) Update(ctx context.Context, id int64, req UpdateUserRequest) (*UserResponse, error) {
	if req.Balance == nil {
		return nil, apperror.NewValidationError("balance is required", nil)
	}
	if err := checkBalance(*req.Balance); err != nil {
		return nil, err
	}

	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, translate(err, id, "get user")
	}

	// TODO: skip rehashing when the submitted password matches the stored hash.
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperror.NewInternalError("failed to hash password", err)
	}

	user.Name = strings.TrimSpace(req.Name)
	user.Email = strings.ToLower(strings.TrimSpace(req.Email))
	user.PasswordHash = hash
	user.Balance = *req.Balance

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, translate(err, id, "update user")
	}
	resp := toResponse(user)
	return &resp, nil
}

// Get returns one user.
func (s *UserService) Get(ctx context.Context, id int64) (*UserResponse, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, translate(err, id, "get user")
	}
	resp := toResponse(user)
	return &resp, nil
}

// List returns a page of users ordered by id.
func (s *UserService) List(ctx context.Context, page models.PageRequest) (*UserPage, error) {
	result, err := s.store.ListUsers(ctx, page)
	if err != nil {
		return nil, translate(err, 0, "list users")
	}
	content := make([]UserResponse, 0, len(result.Content))
	for i := range result.Content {
		content = append(content, toResponse(&result.Content[i]))
	}
	out := models.NewPage(content, page, result.TotalElements)
	return &out, nil
}

// Delete removes a user.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return translate(err, id, "delete user")
	}
	s.logger.InfoContext(ctx, "user deleted", "user_id", id)
	return nil
}
