package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jurisconnect/jurisconnect-api/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type SignInRequest struct {
	Email string `json:"email" binding:"required,email"`
	Senha string `json:"senha" binding:"required"`
}

// SignIn authenticates against the three account kinds and issues a token
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.authService.SignIn(c.Request.Context(), req.Email, req.Senha)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Login realizado com sucesso", result)
}

// RegisterClient self-registers a client account
func (h *AuthHandler) RegisterClient(c *gin.Context) {
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

	respondCreated(c, "Cadastro realizado com sucesso", client.ToResponse())
}

// RegisterCorrespondent self-registers a correspondent pending approval
func (h *AuthHandler) RegisterCorrespondent(c *gin.Context) {
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

	respondCreated(c, "Cadastro enviado para aprovação", correspondent.ToResponse())
}

// Verify confirms the caller's token is still valid and echoes its identity
func (h *AuthHandler) Verify(c *gin.Context) {
	userID, _ := c.Get("userID")
	email, _ := c.Get("userEmail")
	profile, _ := c.Get("userProfile")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Token válido",
		"data": gin.H{
			"user_id": userID,
			"email":   email,
			"profile": profile,
		},
	})
}
