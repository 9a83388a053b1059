package users

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/user/pagamentos-go/models"
)

// CreateUserRequest is the registration payload.
// Balance is optional and defaults to zero.
type CreateUserRequest struct {
	Name     string           `json:"name" validate:"required" example:"Maria Silva"`
	Email    string           `json:"email" validate:"required,email" example:"maria@example.com"`
	Password string           `json:"password" validate:"required" example:"strongpassword123"`
	Balance  *decimal.Decimal `json:"balance,omitempty" swaggertype:"string" example:"200.00"`
}

// UpdateUserRequest replaces every field of a user. The password is hashed again
// on every update.
type UpdateUserRequest struct {
	Name     string           `json:"name" validate:"required" example:"Maria Silva"`
	Email    string           `json:"email" validate:"required,email" example:"maria@example.com"`
	Password string           `json:"password" validate:"required" example:"strongpassword123"`
	Balance  *decimal.Decimal `json:"balance" validate:"required" swaggertype:"string" example:"150.00"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID        int64        `json:"id" example:"1"`
	Name      string       `json:"name" example:"Maria Silva"`
	Email     string       `json:"email" example:"maria@example.com"`
	Balance   models.Money `json:"balance" swaggertype:"string" example:"200.00"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// UserPage is a page of users.
type UserPage = models.Page[UserResponse]

func toResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Balance:   models.NewMoney(u.Balance),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
