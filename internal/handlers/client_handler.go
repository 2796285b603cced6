package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jurisconnect/jurisconnect-api/internal/models"
	"github.com/jurisconnect/jurisconnect-api/internal/services"
)

type ClientHandler struct {
	clientService *services.ClientService
	authService   *services.AuthService
}

func NewClientHandler(clientService *services.ClientService, authService *services.AuthService) *ClientHandler {
	return &ClientHandler{clientService: clientService, authService: authService}
}

// Create registers a client on behalf of an admin, same payload as
// self-registration
func (h *ClientHandler) Create(c *gin.Context) {
	var input services.RegisterClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	client, err := h.authService.RegisterClient(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, "Cliente criado com sucesso", client.ToResponse())
}

// Index lists clients with search and pagination (admin only)
func (h *ClientHandler) Index(c *gin.Context) {
	query := listQueryFrom(c)

	clients, total, err := h.clientService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.ClientResponse, 0, len(clients))
	for i := range clients {
		responses = append(responses, clients[i].ToResponse())
	}

	respondList(c, "Clientes recuperados com sucesso", responses, Pagination{
		Page:    query.Page,
		PerPage: query.PerPage,
		Total:   total,
	})
}

// Show fetches a single client
func (h *ClientHandler) Show(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	client, err := h.clientService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Cliente recuperado com sucesso", client.ToResponse())
}

// Update applies a sparse edit to a client's profile
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var update services.ClientUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondBindError(c, err)
		return
	}

	client, err := h.clientService.Update(c.Request.Context(), id, update)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Cliente atualizado com sucesso", client.ToResponse())
}

type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// SetActive toggles a client's active flag
func (h *ClientHandler) SetActive(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	client, err := h.clientService.SetActive(c.Request.Context(), id, *req.IsActive)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Status do cliente atualizado com sucesso", client.ToResponse())
}
