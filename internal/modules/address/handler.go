package address

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
	rg.GET("/cep/:cep", h.Lookup)
}

func (h *Handler) Lookup(c *gin.Context) {
	a, err := h.service.Lookup(c.Request.Context(), c.Param("cep"))
	if err != nil {
		response.FromError(c, err, "Failed to look up CEP")
		return
	}
	response.Success(c, http.StatusOK, a)
}
