package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jurisconnect/jurisconnect-api/internal/models"
	"github.com/jurisconnect/jurisconnect-api/internal/services"
)

type AttachmentHandler struct {
	attachmentService *services.AttachmentService
}

func NewAttachmentHandler(attachmentService *services.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService}
}

// Upload stores a multipart file against a demand
func (h *AttachmentHandler) Upload(c *gin.Context) {
	demandID, ok := paramID(c, "id")
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("arquivo")
	if err != nil {
		respondError(c, services.ErrBadRequest)
		return
	}
	defer file.Close()

	attachment, err := h.attachmentService.Upload(c.Request.Context(), demandID, actorFrom(c), file, header)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, "Arquivo enviado com sucesso", attachment.ToResponse())
}

// List returns a demand's attachments
func (h *AttachmentHandler) List(c *gin.Context) {
	demandID, ok := paramID(c, "id")
	if !ok {
		return
	}

	attachments, err := h.attachmentService.List(c.Request.Context(), demandID, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.AttachmentResponse, 0, len(attachments))
	for i := range attachments {
		responses = append(responses, attachments[i].ToResponse())
	}

	respondOK(c, "Anexos recuperados com sucesso", responses)
}

// Download streams a stored file back to an authorized caller
func (h *AttachmentHandler) Download(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	attachment, fullPath, err := h.attachmentService.Download(c.Request.Context(), id, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Type", attachment.TipoMime)
	c.FileAttachment(fullPath, attachment.NomeOriginal)
}

// Delete removes an attachment (uploader or admin)
func (h *AttachmentHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.attachmentService.Delete(c.Request.Context(), id, actorFrom(c)); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Anexo removido com sucesso", nil)
}
