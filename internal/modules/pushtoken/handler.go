package pushtoken

import (
	"net/http"

	"diligencias/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/push-tokens")
	{
		g.POST("", h.Register)
		g.DELETE("/:token", h.Unregister)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Token is required")
		return
	}

	if err := h.service.Register(c.Request.Context(), req); err != nil {
		response.FromError(c, err, "Failed to register push token")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"registered": true})
}

func (h *Handler) Unregister(c *gin.Context) {
	if err := h.service.Unregister(c.Request.Context(), c.Param("token")); err != nil {
		response.FromError(c, err, "Failed to remove push token")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"removed": true})
}
