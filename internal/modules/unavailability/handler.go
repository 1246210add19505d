package unavailability

import (
	"net/http"

	"diligencias/internal/pkg/response"
	"diligencias/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	days := rg.Group("/unavailabilities")
	{
		days.GET("", h.List)
		days.POST("", h.Create)
		days.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters", validator.Fields(err))
		return
	}

	list, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		response.FromError(c, err, "Failed to list unavailabilities")
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	u, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err, "Failed to create unavailability")
		return
	}
	response.Success(c, http.StatusCreated, u)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err, "Failed to delete unavailability")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
