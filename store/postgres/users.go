package postgres

import (
	"context"
	"fmt"

	"github.com/user/pagamentos-go/models"
	"github.com/user/pagamentos-go/store"
)

const userColumns = `id, name, email, password, balance::text, version, created_at, updated_at`

func scanUser(row scanner) (*models.User, error) {
	var u models.User
	var balance string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &balance, &u.Version, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	var err error
	if u.Balance, err = parseDecimal(balance); err != nil {
		return nil, err
	}
	return &u, nil
}

func mapUserWriteError(err error) error {
	if _, ok := isPgError(err, pgUniqueViolation); ok {
		return store.ErrEmailTaken
	}
	return err
}

// CreateUser inserts a user row.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (name, email, password, balance)
              VALUES ($1, $2, $3, $4::numeric)
              RETURNING id, version, created_at, updated_at`
	err := s.q.QueryRow(ctx, query, user.Name, user.Email, user.PasswordHash, user.Balance.String()).
		Scan(&user.ID, &user.Version, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", mapUserWriteError(err))
	}
	return nil
}

// UpdateUser overwrites the row when its version still matches.
func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	query := `UPDATE users
              SET name = $2, email = $3, password = $4, balance = $5::numeric,
                  version = version + 1, updated_at = now()
              WHERE id = $1 AND version = $6
              RETURNING version, created_at, updated_at`
	err := s.q.QueryRow(ctx, query, user.ID, user.Name, user.Email, user.PasswordHash, user.Balance.String(), user.Version).
		Scan(&user.Version, &user.CreatedAt, &user.UpdatedAt)
	if isNoRows(err) {
		return s.missingOrStale(ctx, "users", user.ID, store.ErrUserNotFound)
	}
	if err != nil {
		return fmt.Errorf("update user %d: %w", user.ID, mapUserWriteError(err))
	}
	return nil
}

// missingOrStale tells a deleted row apart from a version mismatch after an UPDATE matched nothing.
func (s *Store) missingOrStale(ctx context.Context, table string, id int64, notFound error) error {
	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, table)
	if err := s.q.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return fmt.Errorf("check %s %d: %w", table, id, err)
	}
	if !exists {
		return notFound
	}
	return store.ErrConflict
}

// GetUser loads one user by id.
func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	u, err := scanUser(s.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if isNoRows(err) {
		return nil, store.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

// GetUserByEmail loads one user by email, ignoring case.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := scanUser(s.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email))
	if isNoRows(err) {
		return nil, store.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// ListUsers returns one page of users ordered by id.
func (s *Store) ListUsers(ctx context.Context, page models.PageRequest) (models.Page[models.User], error) {
	total, err := countRows(ctx, s.q, `SELECT count(*) FROM users`)
	if err != nil {
		return models.Page[models.User]{}, fmt.Errorf("count users: %w", err)
	}

	rows, err := s.q.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id LIMIT $1 OFFSET $2`, page.Size, page.Offset())
	if err != nil {
		return models.Page[models.User]{}, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return models.Page[models.User]{}, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return models.Page[models.User]{}, fmt.Errorf("iterate users: %w", err)
	}
	return models.NewPage(users, page, total), nil
}

// DeleteUser removes a user. Users that still own bills are protected by the foreign key.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if _, ok := isPgError(err, pgForeignKeyViolation); ok {
		return store.ErrUserHasBills
	}
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrUserNotFound
	}
	return nil
}
