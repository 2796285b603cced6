package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jurisconnect/jurisconnect-api/internal/middleware"
	"github.com/jurisconnect/jurisconnect-api/internal/models"
	"github.com/jurisconnect/jurisconnect-api/internal/services"
)

type DemandHandler struct {
	demandService *services.DemandService
}

func NewDemandHandler(demandService *services.DemandService) *DemandHandler {
	return &DemandHandler{demandService: demandService}
}

// Create opens a new demand for the authenticated client
func (h *DemandHandler) Create(c *gin.Context) {
	var input services.CreateDemandInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	demand, err := h.demandService.Create(c.Request.Context(), input, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, "Demanda criada com sucesso", demand.ToResponse())
}

// Mine lists the demands visible to the caller
func (h *DemandHandler) Mine(c *gin.Context) {
	query := listQueryFrom(c, "status")

	demands, err := h.demandService.ListMine(c.Request.Context(), actorFrom(c), query)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.DemandResponse, 0, len(demands))
	for i := range demands {
		responses = append(responses, demands[i].ToResponse())
	}

	respondOK(c, "Demandas recuperadas com sucesso", responses)
}

// Show fetches a single demand
func (h *DemandHandler) Show(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	demand, err := h.demandService.GetByID(c.Request.Context(), id, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Demanda recuperada com sucesso", demand.ToResponse())
}

// Update applies a sparse edit to a demand
func (h *DemandHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var update services.DemandUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondBindError(c, err)
		return
	}

	demand, err := h.demandService.Update(c.Request.Context(), id, update, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Demanda atualizada com sucesso", demand.ToResponse())
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus transitions a demand's lifecycle status
func (h *DemandHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	demand, err := h.demandService.UpdateStatus(c.Request.Context(), id, req.Status, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Status atualizado com sucesso", demand.ToResponse())
}

type AssignRequest struct {
	CorrespondenteID uint `json:"correspondente_id" binding:"required"`
}

// Assign links a correspondent to a demand (admin only)
func (h *DemandHandler) Assign(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	demand, err := h.demandService.Assign(c.Request.Context(), id, req.CorrespondenteID, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Correspondente atribuído com sucesso", demand.ToResponse())
}

// Logs returns a demand's audit trail, newest first
func (h *DemandHandler) Logs(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	logs, err := h.demandService.Logs(c.Request.Context(), id, actorFrom(c), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Registros de atividade recuperados com sucesso", logs)
}
