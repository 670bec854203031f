package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edudocs-api/internal/dto"
	"github.com/noah-isme/edudocs-api/internal/service"
	"github.com/noah-isme/edudocs-api/internal/utils"
)

// AssistantHandler exposes the document assistant conversation.
type AssistantHandler struct {
	session   service.SessionCoordinator
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAssistantHandler constructs the handler.
func NewAssistantHandler(session service.SessionCoordinator, validator *validator.Validate, logger zerolog.Logger) *AssistantHandler {
	return &AssistantHandler{
		session:   session,
		validator: validator,
		logger:    logger.With().Str("component", "assistant_handler").Logger(),
	}
}

// Register attaches the transcript endpoint. Asking is rate limited, so the
// router binds Ask itself.
func (h *AssistantHandler) Register(router fiber.Router) {
	router.Get("/messages", h.messages)
}

func (h *AssistantHandler) messages(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "conversation retrieved", h.session.Conversation())
}

// Ask forwards a question to the assistant and returns its reply.
func (h *AssistantHandler) Ask(c *fiber.Ctx) error {
	var payload dto.AssistantQueryRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := h.validator.Struct(payload); err != nil {
		return sendValidationError(c, err)
	}

	reply, err := h.session.Ask(c.UserContext(), payload.Query)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "assistant replied", dto.AssistantReplyResponse{
		Reply:    reply,
		Messages: h.session.Conversation(),
	})
}

func (h *AssistantHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotLoggedIn):
		return utils.SendError(c, fiber.StatusUnauthorized, "login required")
	case errors.Is(err, service.ErrEmptyQuery):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("assistant request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
