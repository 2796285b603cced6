package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jurisconnect/jurisconnect-api/internal/middleware"
	"github.com/jurisconnect/jurisconnect-api/internal/policy"
	"github.com/jurisconnect/jurisconnect-api/internal/repository"
	"github.com/jurisconnect/jurisconnect-api/internal/services"
	"github.com/jurisconnect/jurisconnect-api/pkg/logger"
)

// Pagination carries list metadata on paginated responses
type Pagination struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
}

func respondOK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func respondCreated(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func respondList(c *gin.Context, message string, data interface{}, pagination Pagination) {
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    message,
		"data":       data,
		"pagination": pagination,
	})
}

// respondError translates a service error into the HTTP envelope. Errors
// without a known classification become 500s and are forwarded to Sentry.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Erro interno do servidor"

	switch {
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, services.ErrForbidden):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, services.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, services.ErrDuplicate):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, services.ErrFileTooLarge):
		status = http.StatusRequestEntityTooLarge
		message = err.Error()
	case errors.Is(err, services.ErrBadRequest), errors.Is(err, services.ErrInvalidFileType):
		status = http.StatusBadRequest
		message = err.Error()
	default:
		logger.Error("Unhandled service error", "error", err, "path", c.FullPath())
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
	}

	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// respondBindError turns a binding failure into a 400 with per-field errors
// when the payload failed validation
func respondBindError(c *gin.Context, err error) {
	body := gin.H{
		"success": false,
		"message": "Dados inválidos",
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make(map[string]string, len(validationErrs))
		for _, fieldErr := range validationErrs {
			fields[fieldErr.Field()] = validationMessage(fieldErr)
		}
		body["errors"] = fields
	}

	c.JSON(http.StatusBadRequest, body)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Campo obrigatório"
	case "email":
		return "Email inválido"
	case "min":
		return "Valor abaixo do mínimo permitido (" + fe.Param() + ")"
	case "gt":
		return "Deve ser maior que " + fe.Param()
	case "oneof":
		return "Valor deve ser um de: " + fe.Param()
	}
	return "Valor inválido"
}

// actorFrom builds the policy actor from the authenticated request
func actorFrom(c *gin.Context) policy.Actor {
	return policy.Actor{
		ID:      middleware.GetUserID(c),
		Profile: middleware.GetUserProfile(c),
	}
}

// paramID parses the :id path segment
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Identificador inválido",
		})
		return 0, false
	}
	return uint(id), true
}

// listQueryFrom reads the common pagination, search and filter query params
func listQueryFrom(c *gin.Context, filterKeys ...string) *repository.ListQuery {
	query := repository.NewListQuery()

	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		query.Page = page
	}
	if perPage, err := strconv.Atoi(c.Query("per_page")); err == nil && perPage > 0 && perPage <= 100 {
		query.PerPage = perPage
	}
	query.Search = c.Query("search")

	for _, key := range filterKeys {
		if value := c.Query(key); value != "" {
			query.Filters[key] = value
		}
	}

	return query
}
