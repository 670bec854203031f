package handler

import (
	"errors"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edudocs-api/internal/dto"
	"github.com/noah-isme/edudocs-api/internal/models"
	"github.com/noah-isme/edudocs-api/internal/service"
	"github.com/noah-isme/edudocs-api/internal/utils"
)

// MaxUploadBytes caps the size of a submitted document file.
const MaxUploadBytes = 10 << 20

var errUploadTooLarge = errors.New("file exceeds maximum size")

// DocumentHandler exposes submission, listing and review of documents.
type DocumentHandler struct {
	session   service.SessionCoordinator
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewDocumentHandler constructs the handler.
func NewDocumentHandler(session service.SessionCoordinator, validator *validator.Validate, logger zerolog.Logger) *DocumentHandler {
	return &DocumentHandler{
		session:   session,
		validator: validator,
		logger:    logger.With().Str("component", "document_handler").Logger(),
	}
}

// Register attaches read endpoints; role guarded writes are bound by the
// router through Submit and Review.
func (h *DocumentHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/summary", h.summary)
}

func (h *DocumentHandler) list(c *fiber.Ctx) error {
	var filter dto.DocumentFilter
	if err := c.QueryParser(&filter); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}
	filter.Normalize()
	if err := h.validator.Struct(filter); err != nil {
		return sendValidationError(c, err)
	}

	documents := service.FilterDocuments(h.session.VisibleDocuments(), filter.ToServiceFilter())
	return utils.SendSuccess(c, "documents retrieved", dto.NewDocumentResponseSlice(documents))
}

func (h *DocumentHandler) summary(c *fiber.Ctx) error {
	visible := h.session.VisibleDocuments()
	return utils.SendSuccess(c, "summary retrieved", dto.DocumentSummaryResponse{
		Summary:      service.SummarizeDocuments(visible),
		StudentNames: service.StudentNames(visible),
	})
}

// Submit stores a document on behalf of the logged-in student.
func (h *DocumentHandler) Submit(c *fiber.Ctx) error {
	student, ok := h.session.CurrentUser()
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "login required")
	}

	payload := dto.DocumentCreateRequest{
		Description:  c.FormValue("description"),
		DocumentType: c.FormValue("document_type"),
	}
	payload.Normalize()
	if err := h.validator.Struct(payload); err != nil {
		return sendValidationError(c, err)
	}

	blob, err := readUpload(c)
	if err != nil {
		if errors.Is(err, errUploadTooLarge) {
			return utils.SendError(c, fiber.StatusRequestEntityTooLarge, err.Error())
		}
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	doc, err := h.session.SubmitDocument(c.UserContext(), models.NewDocument{
		StudentID:    student.ID,
		StudentName:  student.Name,
		Description:  payload.Description,
		DocumentType: models.DocumentType(payload.DocumentType),
	}, blob)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "document submitted", dto.NewDocumentResponse(doc))
}

// Review moves a document to a new status.
func (h *DocumentHandler) Review(c *fiber.Ctx) error {
	var payload dto.DocumentStatusUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}
	payload.Normalize()
	if err := h.validator.Struct(payload); err != nil {
		return sendValidationError(c, err)
	}

	doc, found, err := h.session.ReviewDocument(c.UserContext(), c.Params("id"), models.DocumentStatus(payload.Status))
	if err != nil {
		return h.handleError(c, err)
	}
	if !found {
		return utils.SendError(c, fiber.StatusNotFound, "document not found")
	}

	return utils.SendSuccess(c, "document status updated", dto.NewDocumentResponse(doc))
}

func (h *DocumentHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case isValidationError(err):
		return sendValidationError(c, err)
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("document request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}

func readUpload(c *fiber.Ctx) (*models.FileBlob, error) {
	header, err := c.FormFile("file")
	if err != nil {
		return nil, errors.New("file is required")
	}
	if header.Size > MaxUploadBytes {
		return nil, errUploadTooLarge
	}

	file, err := header.Open()
	if err != nil {
		return nil, errors.New("failed to read upload")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxUploadBytes+1))
	if err != nil {
		return nil, errors.New("failed to read upload")
	}
	if len(data) > MaxUploadBytes {
		return nil, errUploadTooLarge
	}

	return &models.FileBlob{
		Name: header.Filename,
		Data: data,
	}, nil
}
