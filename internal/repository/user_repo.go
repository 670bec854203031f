package repository

import (
	"context"
	"strings"
	"time"

	"github.com/noah-isme/edudocs-api/internal/models"
)

type userInput struct {
	Name string      `validate:"required,max=120"`
	Role models.Role `validate:"required,oneof=student teacher"`
}

// ListUsers returns every user in registration order.
func (r *MemoryRepository) ListUsers(ctx context.Context) (users []models.User, err error) {
	defer func(start time.Time) { observe("list_users", start, err) }(time.Now())

	if err := r.wait(ctx, r.latency.ListUsers); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	users = make([]models.User, len(r.users))
	copy(users, r.users)
	return users, nil
}

// GetUser looks a user up by id.
func (r *MemoryRepository) GetUser(ctx context.Context, id string) (user models.User, found bool, err error) {
	defer func(start time.Time) { observe("get_user", start, err) }(time.Now())

	if err := r.wait(ctx, r.latency.GetUser); err != nil {
		return models.User{}, false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, found = r.findUser(id)
	return user, found, nil
}

// CreateUser registers a new user.
func (r *MemoryRepository) CreateUser(ctx context.Context, name string, role models.Role) (user models.User, err error) {
	defer func(start time.Time) { observe("create_user", start, err) }(time.Now())

	input := userInput{Name: strings.TrimSpace(name), Role: role}
	if err := r.validator.Struct(input); err != nil {
		return models.User{}, translateValidation(err)
	}

	if err := r.wait(ctx, r.latency.CreateUser); err != nil {
		return models.User{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user = models.User{
		ID:   r.nextID("user"),
		Name: input.Name,
		Role: input.Role,
	}
	r.users = append(r.users, user)
	return user, nil
}

// findUser expects the caller to hold the lock.
func (r *MemoryRepository) findUser(id string) (models.User, bool) {
	for _, user := range r.users {
		if user.ID == id {
			return user, true
		}
	}
	return models.User{}, false
}
