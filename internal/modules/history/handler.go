package history

import (
	"net/http"
	"strconv"

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
	rg.GET("/logs", h.List)
}

func (h *Handler) List(c *gin.Context) {
	limit := 0
	if s := c.Query("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_LIMIT", "Limit must be a number")
			return
		}
		limit = v
	}

	logs, err := h.service.Recent(c.Request.Context(), limit)
	if err != nil {
		response.FromError(c, err, "Failed to load history")
		return
	}
	response.Success(c, http.StatusOK, logs)
}
