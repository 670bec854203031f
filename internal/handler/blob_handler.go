package handler

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edudocs-api/internal/models"
	"github.com/noah-isme/edudocs-api/internal/storage"
	"github.com/noah-isme/edudocs-api/internal/utils"
)

// BlobReader resolves transient blob references.
type BlobReader interface {
	Get(ref string) (storage.Object, []byte, bool)
}

// DocumentViewer lists the documents the session user may see.
type DocumentViewer interface {
	VisibleDocuments() []models.Document
}

// BlobHandler serves uploaded files back to the users allowed to see the
// documents they belong to.
type BlobHandler struct {
	blobs     BlobReader
	documents DocumentViewer
	logger    zerolog.Logger
}

// NewBlobHandler constructs the handler.
func NewBlobHandler(blobs BlobReader, documents DocumentViewer, logger zerolog.Logger) *BlobHandler {
	return &BlobHandler{
		blobs:     blobs,
		documents: documents,
		logger:    logger.With().Str("component", "blob_handler").Logger(),
	}
}

// Register wires blob routes.
func (h *BlobHandler) Register(router fiber.Router) {
	router.Get("/:id", h.download)
}

func (h *BlobHandler) download(c *fiber.Ctx) error {
	ref := storage.BlobScheme + storage.RefID(c.Params("id"))

	// Blobs outside the caller's visible documents are reported as missing.
	if !h.visible(ref) {
		return utils.SendError(c, fiber.StatusNotFound, "file not found")
	}

	object, data, ok := h.blobs.Get(ref)
	if !ok {
		return utils.SendError(c, fiber.StatusNotFound, "file not found")
	}

	requestLogger(h.logger, c).Debug().Str("blob", object.Ref).Int64("size", object.Size).Msg("serving blob")

	contentType := object.ContentType
	if contentType == "" {
		contentType = fiber.MIMEOctetStream
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderXContentTypeOptions, "nosniff")
	c.Set(fiber.HeaderContentLength, strconv.FormatInt(object.Size, 10))
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", object.Name))
	return c.Status(fiber.StatusOK).Send(data)
}

func (h *BlobHandler) visible(ref string) bool {
	for _, doc := range h.documents.VisibleDocuments() {
		if doc.FileURL == ref {
			return true
		}
	}
	return false
}
