package dto

import "github.com/noah-isme/edudocs-api/internal/service"

// SessionResponse mirrors the coordinator state for API clients. Documents
// are limited to what the current user may see.
type SessionResponse struct {
	CurrentUser *UserResponse      `json:"current_user"`
	Users       []UserResponse     `json:"users"`
	Documents   []DocumentResponse `json:"documents"`
	Loading     bool               `json:"loading"`
	Assistant   bool               `json:"assistant_available"`
}

// NewSessionResponse builds the session payload.
func NewSessionResponse(state service.SessionState, visible []DocumentResponse, assistantAvailable bool) SessionResponse {
	response := SessionResponse{
		Users:     NewUserResponseSlice(state.Users),
		Documents: visible,
		Loading:   state.Loading,
		Assistant: assistantAvailable,
	}
	if state.CurrentUser != nil {
		user := NewUserResponse(*state.CurrentUser)
		response.CurrentUser = &user
	}
	return response
}
