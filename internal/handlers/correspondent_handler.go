package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jurisconnect/jurisconnect-api/internal/models"
	"github.com/jurisconnect/jurisconnect-api/internal/services"
)

type CorrespondentHandler struct {
	correspondentService *services.CorrespondentService
	authService          *services.AuthService
}

func NewCorrespondentHandler(correspondentService *services.CorrespondentService, authService *services.AuthService) *CorrespondentHandler {
	return &CorrespondentHandler{correspondentService: correspondentService, authService: authService}
}

// Create registers a correspondent on behalf of an admin. Unlike
// self-registration, admin-created correspondents skip the approval queue.
func (h *CorrespondentHandler) Create(c *gin.Context) {
	var input services.RegisterCorrespondentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	correspondent, err := h.authService.RegisterCorrespondent(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	approved, err := h.correspondentService.Approve(c.Request.Context(), correspondent.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, "Correspondente criado com sucesso", approved.ToResponse())
}

// Index lists correspondents with search and filters (admin only)
func (h *CorrespondentHandler) Index(c *gin.Context) {
	query := listQueryFrom(c, "status_aprovacao", "is_active")

	correspondents, total, err := h.correspondentService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.CorrespondentResponse, 0, len(correspondents))
	for i := range correspondents {
		responses = append(responses, correspondents[i].ToResponse())
	}

	respondList(c, "Correspondentes recuperados com sucesso", responses, Pagination{
		Page:    query.Page,
		PerPage: query.PerPage,
		Total:   total,
	})
}

// Show fetches a single correspondent
func (h *CorrespondentHandler) Show(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	correspondent, err := h.correspondentService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Correspondente recuperado com sucesso", correspondent.ToResponse())
}

// Update applies a sparse edit to a correspondent's profile
func (h *CorrespondentHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var update services.CorrespondentUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondBindError(c, err)
		return
	}

	correspondent, err := h.correspondentService.Update(c.Request.Context(), id, update)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Correspondente atualizado com sucesso", correspondent.ToResponse())
}

// Available matches active, approved correspondents against comarca terms
func (h *CorrespondentHandler) Available(c *gin.Context) {
	summaries, err := h.correspondentService.FindAvailable(c.Request.Context(), c.Query("comarcas"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Correspondentes disponíveis recuperados com sucesso", summaries)
}

// Pending returns the approval queue, oldest first
func (h *CorrespondentHandler) Pending(c *gin.Context) {
	correspondents, err := h.correspondentService.Pending(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.CorrespondentResponse, 0, len(correspondents))
	for i := range correspondents {
		responses = append(responses, correspondents[i].ToResponse())
	}

	respondOK(c, "Correspondentes pendentes recuperados com sucesso", responses)
}

// Approve marks a correspondent as approved
func (h *CorrespondentHandler) Approve(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	correspondent, err := h.correspondentService.Approve(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Correspondente aprovado com sucesso", correspondent.ToResponse())
}

// Reject marks a correspondent as rejected
func (h *CorrespondentHandler) Reject(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	correspondent, err := h.correspondentService.Reject(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Correspondente reprovado", correspondent.ToResponse())
}

// SetActive toggles a correspondent's active flag
func (h *CorrespondentHandler) SetActive(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	correspondent, err := h.correspondentService.SetActive(c.Request.Context(), id, *req.IsActive)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Status do correspondente atualizado com sucesso", correspondent.ToResponse())
}
