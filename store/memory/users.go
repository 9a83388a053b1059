package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/user/pagamentos-go/models"
	"github.com/user/pagamentos-go/store"
)

func (s *Store) emailTaken(email string, exceptID int64) bool {
	for id, u := range s.state.users {
		if id != exceptID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

// CreateUser assigns the next id and stores a copy of user.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emailTaken(user.Email, 0) {
		return store.ErrEmailTaken
	}
	s.state.nextUserID++
	now := s.now()
	user.ID = s.state.nextUserID
	user.Version = 1
	user.CreatedAt = now
	user.UpdatedAt = now
	s.state.users[user.ID] = *user
	return nil
}

// UpdateUser replaces the stored user when the versions match.
func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.state.users[user.ID]
	if !ok {
		return store.ErrUserNotFound
	}
	if current.Version != user.Version {
		return store.ErrConflict
	}
	if s.emailTaken(user.Email, user.ID) {
		return store.ErrEmailTaken
	}
	user.Version++
	user.CreatedAt = current.CreatedAt
	user.UpdatedAt = s.now()
	s.state.users[user.ID] = *user
	return nil
}

// GetUser returns a copy of the user with the given id.
func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.state.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return &u, nil
}

// GetUserByEmail looks a user up by email, ignoring case.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.state.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// ListUsers pages through users ordered by id.
func (s *Store) ListUsers(ctx context.Context, page models.PageRequest) (models.Page[models.User], error) {
	if err := ctx.Err(); err != nil {
		return models.Page[models.User]{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]models.User, 0, len(s.state.users))
	for _, u := range s.state.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return models.NewPage(slicePage(all, page), page, int64(len(all))), nil
}

// DeleteUser removes a user that owns no bills.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.users[id]; !ok {
		return store.ErrUserNotFound
	}
	for _, b := range s.state.bills {
		if b.UserID == id {
			return store.ErrUserHasBills
		}
	}
	delete(s.state.users, id)
	return nil
}

func slicePage[T any](all []T, page models.PageRequest) []T {
	start := page.Offset()
	if start < 0 || start >= len(all) || page.Size <= 0 {
		return []T{}
	}
	end := len(all)
	if page.Size < end-start {
		end = start + page.Size
	}
	return all[start:end]
}
