package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/edudocs-api/internal/models"
	"github.com/noah-isme/edudocs-api/internal/observability"
	"github.com/noah-isme/edudocs-api/pkg/ai"
)

const (
	// AssistantUnavailableReply is returned when no generator credential is configured.
	AssistantUnavailableReply = "The AI assistant is currently unavailable because the API key is not configured."
	// AssistantFailureReply is returned when the generator could not be reached.
	AssistantFailureReply = "Sorry, something went wrong while processing your request. Please try again later."
	// AssistantEmptyQueryReply is returned for blank questions.
	AssistantEmptyQueryReply = "Please type a question so I can help."

	noDocumentsMarker = "No documents were found for this user."
)

// AssistantService answers questions grounded in a user's documents.
type AssistantService interface {
	// Answer never fails: endpoint problems degrade to a fixed reply.
	// Callers must pass only the documents the user is allowed to see.
	Answer(ctx context.Context, query string, user models.User, documents []models.Document) string
	Available() bool
}

type assistantService struct {
	generator ai.TextGenerator
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewAssistantService constructs the assistant. A nil generator means the
// credential was missing at startup and every answer short-circuits.
func NewAssistantService(generator ai.TextGenerator, logger zerolog.Logger) AssistantService {
	svc := &assistantService{
		generator: generator,
		logger:    logger.With().Str("component", "assistant_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/edudocs-api/internal/service/assistant"),
	}
	if generator == nil {
		svc.logger.Warn().Msg("ai api key not configured, assistant disabled")
	}
	return svc
}

func (s *assistantService) Available() bool {
	return s.generator != nil
}

func (s *assistantService) Answer(ctx context.Context, query string, user models.User, documents []models.Document) string {
	if s.generator == nil {
		observability.AssistantReplies().WithLabelValues("unavailable").Inc()
		return AssistantUnavailableReply
	}

	if strings.TrimSpace(query) == "" {
		observability.AssistantReplies().WithLabelValues("empty").Inc()
		return AssistantEmptyQueryReply
	}

	ctx, span := s.tracer.Start(ctx, "assistant.answer", trace.WithAttributes(
		attribute.String("user.role", string(user.Role)),
		attribute.Int("documents.count", len(documents)),
	))
	defer span.End()

	reply, err := s.generator.Generate(ctx, BuildAssistantPrompt(query, user, documents))
	if err != nil {
		span.RecordError(err)
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("assistant generation failed")
		observability.AssistantReplies().WithLabelValues("failed").Inc()
		return AssistantFailureReply
	}

	observability.AssistantReplies().WithLabelValues("answered").Inc()
	return plainText(reply)
}

// BuildAssistantPrompt renders the role aware instruction prompt.
func BuildAssistantPrompt(query string, user models.User, documents []models.Document) string {
	summary := DocumentContext(documents)
	if summary == "" {
		summary = noDocumentsMarker
	}

	var b strings.Builder
	b.WriteString("You are the AI assistant of EduDocs School, a platform for managing academic documents.\n")
	fmt.Fprintf(&b, "You are helping a user named %s, who is a %s.\n", user.Name, strings.ToLower(user.Role.Label()))
	b.WriteString("Answer questions using only the document information provided below.\n")
	b.WriteString("Be helpful, concise and friendly. If the information is not available, say so politely.\n\n")
	fmt.Fprintf(&b, "Here is the current list of documents for %s:\n", user.Name)
	b.WriteString(summary)
	fmt.Fprintf(&b, "\n\nUser question: %q\n\nYour answer:", query)
	return b.String()
}

// DocumentContext summarises documents one per line. It is empty when there
// are no documents.
func DocumentContext(documents []models.Document) string {
	lines := make([]string, 0, len(documents))
	for _, doc := range documents {
		lines = append(lines, fmt.Sprintf("- Document: %q (Type: %s), Status: %s, Last updated: %s",
			doc.FileName,
			doc.DocumentType.Label(),
			doc.Status.Label(),
			doc.UpdatedAt.Format("2006-01-02"),
		))
	}
	return strings.Join(lines, "\n")
}

// Conversation is the assistant transcript of one session.
type Conversation struct {
	mu       sync.RWMutex
	messages []models.ChatMessage
}

// NewConversation starts a transcript with a greeting for the user.
func NewConversation(user models.User) *Conversation {
	return &Conversation{
		messages: []models.ChatMessage{{
			Sender: models.ChatSenderAssistant,
			Text:   fmt.Sprintf("Hello, %s! How can I help you today?", user.Name),
		}},
	}
}

// Record appends a question and its reply.
func (c *Conversation) Record(question, reply string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.messages = append(c.messages,
		models.ChatMessage{Sender: models.ChatSenderUser, Text: question},
		models.ChatMessage{Sender: models.ChatSenderAssistant, Text: reply},
	)
}

// Messages returns a copy of the transcript.
func (c *Conversation) Messages() []models.ChatMessage {
	c.mu.RLock()
	defer c.mu.RUnlock()

	messages := make([]models.ChatMessage, len(c.messages))
	copy(messages, c.messages)
	return messages
}
