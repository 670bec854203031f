package handler

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edudocs-api/internal/dto"
	"github.com/noah-isme/edudocs-api/internal/service"
	"github.com/noah-isme/edudocs-api/internal/utils"
)

// SessionHandler drives login, logout and cache refresh.
type SessionHandler struct {
	session   service.SessionCoordinator
	assistant AvailabilityChecker
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewSessionHandler constructs the handler.
func NewSessionHandler(session service.SessionCoordinator, assistant AvailabilityChecker, validator *validator.Validate, logger zerolog.Logger) *SessionHandler {
	return &SessionHandler{
		session:   session,
		assistant: assistant,
		validator: validator,
		logger:    logger.With().Str("component", "session_handler").Logger(),
	}
}

// Register attaches session endpoints to the router group.
func (h *SessionHandler) Register(router fiber.Router) {
	router.Get("", h.current)
	router.Post("/login", h.login)
	router.Post("/logout", h.logout)
	router.Post("/refresh", h.refresh)
}

func (h *SessionHandler) current(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "session retrieved", h.snapshot())
}

func (h *SessionHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}
	payload.UserID = strings.TrimSpace(payload.UserID)
	if err := h.validator.Struct(payload); err != nil {
		return sendValidationError(c, err)
	}

	_, found, err := h.session.Login(c.UserContext(), payload.UserID)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Str("user_id", payload.UserID).Msg("login failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
	if !found {
		return utils.SendError(c, fiber.StatusNotFound, "user not found")
	}

	return utils.SendSuccess(c, "logged in", h.snapshot())
}

func (h *SessionHandler) logout(c *fiber.Ctx) error {
	h.session.Logout()
	return utils.SendSuccess(c, "logged out", h.snapshot())
}

func (h *SessionHandler) refresh(c *fiber.Ctx) error {
	if err := h.session.Refresh(c.UserContext()); err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("refresh failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to refresh data")
	}
	return utils.SendSuccess(c, "session refreshed", h.snapshot())
}

func (h *SessionHandler) snapshot() dto.SessionResponse {
	available := false
	if h.assistant != nil {
		available = h.assistant.Available()
	}
	visible := dto.NewDocumentResponseSlice(h.session.VisibleDocuments())
	return dto.NewSessionResponse(h.session.State(), visible, available)
}
