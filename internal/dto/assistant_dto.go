package dto

import "github.com/noah-isme/edudocs-api/internal/models"

// AssistantQueryRequest carries a question for the assistant.
type AssistantQueryRequest struct {
	Query string `json:"query" validate:"required,max=2000"`
}

// AssistantReplyResponse pairs the reply with the updated transcript.
type AssistantReplyResponse struct {
	Reply    string               `json:"reply"`
	Messages []models.ChatMessage `json:"messages"`
}
