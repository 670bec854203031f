package dto

import (
	"strings"

	"github.com/noah-isme/edudocs-api/internal/models"
)

// UserCreateRequest registers a new user.
type UserCreateRequest struct {
	Name string `json:"name" validate:"required,max=120"`
	Role string `json:"role" validate:"required,oneof=student teacher"`
}

// Normalize trims the name and folds the role to its canonical spelling.
func (r *UserCreateRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	role, _ := models.ParseRole(r.Role)
	r.Role = string(role)
}

// LoginRequest selects a user to act as.
type LoginRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// UserResponse is returned to API clients when viewing users.
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	RoleLabel string `json:"role_label"`
}

// NewUserResponse converts a User model into a DTO.
func NewUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Role:      string(user.Role),
		RoleLabel: user.Role.Label(),
	}
}

// NewUserResponseSlice converts user models into DTOs.
func NewUserResponseSlice(users []models.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, NewUserResponse(user))
	}
	return responses
}
