package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jurisconnect/jurisconnect-api/internal/services"
)

type FinancialHandler struct {
	financialService *services.FinancialService
}

func NewFinancialHandler(financialService *services.FinancialService) *FinancialHandler {
	return &FinancialHandler{financialService: financialService}
}

// Create registers a ledger entry (admin only)
func (h *FinancialHandler) Create(c *gin.Context) {
	var input services.CreateMovementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	movement, err := h.financialService.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, "Movimentação registrada com sucesso", movement)
}

// Index lists ledger entries filtered by type, status and period
func (h *FinancialHandler) Index(c *gin.Context) {
	query := listQueryFrom(c, "tipo", "status", "data_inicio", "data_fim")

	movements, total, err := h.financialService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	respondList(c, "Movimentações recuperadas com sucesso", movements, Pagination{
		Page:    query.Page,
		PerPage: query.PerPage,
		Total:   total,
	})
}

// Show fetches a single ledger entry
func (h *FinancialHandler) Show(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	movement, err := h.financialService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Movimentação recuperada com sucesso", movement)
}

// Update applies a sparse edit to a ledger entry
func (h *FinancialHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var update services.MovementUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondBindError(c, err)
		return
	}

	movement, err := h.financialService.Update(c.Request.Context(), id, update)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Movimentação atualizada com sucesso", movement)
}

// Delete removes a ledger entry
func (h *FinancialHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.financialService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Movimentação removida com sucesso", nil)
}

// Summary aggregates the ledger totals
func (h *FinancialHandler) Summary(c *gin.Context) {
	summary, err := h.financialService.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Resumo financeiro recuperado com sucesso", summary)
}
