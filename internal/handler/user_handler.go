package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edudocs-api/internal/dto"
	"github.com/noah-isme/edudocs-api/internal/models"
	"github.com/noah-isme/edudocs-api/internal/service"
	"github.com/noah-isme/edudocs-api/internal/utils"
)

// UserHandler exposes the user directory and registration.
type UserHandler struct {
	session   service.SessionCoordinator
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewUserHandler constructs the handler.
func NewUserHandler(session service.SessionCoordinator, validator *validator.Validate, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		session:   session,
		validator: validator,
		logger:    logger.With().Str("component", "user_handler").Logger(),
	}
}

// Register attaches user endpoints to the router group.
func (h *UserHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
}

func (h *UserHandler) list(c *fiber.Ctx) error {
	state := h.session.State()
	return utils.SendSuccess(c, "users retrieved", dto.NewUserResponseSlice(state.Users))
}

func (h *UserHandler) create(c *fiber.Ctx) error {
	var payload dto.UserCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}
	payload.Normalize()
	if err := h.validator.Struct(payload); err != nil {
		return sendValidationError(c, err)
	}

	user, err := h.session.Register(c.UserContext(), payload.Name, models.Role(payload.Role))
	if err != nil {
		return h.handleError(c, err)
	}

	requestLogger(h.logger, c).Info().Str("user_id", user.ID).Msg("user registered")
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "user registered", dto.NewUserResponse(user))
}

func (h *UserHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case isValidationError(err):
		return sendValidationError(c, err)
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("user request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
