package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"todo-tracker-api/internal/response"
	"todo-tracker-api/internal/service"
)

// MaxFileSize defines the maximum allowed file size for uploads (50MB)
const MaxFileSize = 50 * 1024 * 1024

// AttachmentHandler handles attachment-related requests
type AttachmentHandler struct {
	attachmentService service.AttachmentService
	logger            *zap.Logger
}

// NewAttachmentHandler creates a new AttachmentHandler
func NewAttachmentHandler(attachmentService service.AttachmentService, logger *zap.Logger) *AttachmentHandler {
	return &AttachmentHandler{
		attachmentService: attachmentService,
		logger:            logger,
	}
}

// UploadAttachment handles POST /todos/:id/attachments
func (h *AttachmentHandler) UploadAttachment(c *gin.Context) {
	h.upload(c, "id")
}

// UploadAttachmentForTodo handles POST /attachments/todo/:todoId
func (h *AttachmentHandler) UploadAttachmentForTodo(c *gin.Context) {
	h.upload(c, "todoId")
}

func (h *AttachmentHandler) upload(c *gin.Context, param string) {
	todoID, ok := parseUUIDParam(c, param)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Missing multipart field 'file'")
		return
	}

	if fileHeader.Size > MaxFileSize {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation,
			fmt.Sprintf("File exceeds maximum size of %d bytes", MaxFileSize))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Failed to read upload")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Failed to read upload")
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	attachment, err := h.attachmentService.Add(c.Request.Context(), todoID,
		service.NewBufferedUpload(content, fileHeader.Filename, mimeType))
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, attachment)
}

// ListAttachments handles GET /todos/:id/attachments
func (h *AttachmentHandler) ListAttachments(c *gin.Context) {
	h.list(c, "id")
}

// ListAttachmentsForTodo handles GET /attachments/todo/:todoId
func (h *AttachmentHandler) ListAttachmentsForTodo(c *gin.Context) {
	h.list(c, "todoId")
}

func (h *AttachmentHandler) list(c *gin.Context, param string) {
	todoID, ok := parseUUIDParam(c, param)
	if !ok {
		return
	}

	attachments, err := h.attachmentService.List(c.Request.Context(), todoID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, attachments)
}

// GetAttachmentMetadata handles GET /attachments/:id/meta
func (h *AttachmentHandler) GetAttachmentMetadata(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	attachment, err := h.attachmentService.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, attachment)
}

// DownloadAttachment handles GET /attachments/:id. The content is served
// inline with the original filename so browsers can preview it.
func (h *AttachmentHandler) DownloadAttachment(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	content, err := h.attachmentService.Open(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	defer content.Reader.Close()

	extraHeaders := map[string]string{
		"Content-Disposition": fmt.Sprintf(`inline; filename=%q`, content.OriginalFilename),
	}
	c.DataFromReader(http.StatusOK, content.Size, content.MimeType, content.Reader, extraHeaders)
}

// DeleteAttachment handles DELETE /attachments/:id
func (h *AttachmentHandler) DeleteAttachment(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.attachmentService.Remove(c.Request.Context(), id); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, "Attachment deleted successfully", nil)
}
