package receipt

import (
	"fmt"
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
	receipts := rg.Group("/receipts")
	{
		receipts.GET("", h.List)
		receipts.GET("/summary", h.Summary)
		receipts.GET("/:id", h.Get)
		receipts.GET("/:id/document", h.Document)
	}
}

func (h *Handler) List(c *gin.Context) {
	out, err := h.service.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err, "Failed to list receipts")
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) Get(c *gin.Context) {
	r, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err, "Failed to load receipt")
		return
	}
	response.Success(c, http.StatusOK, r)
}

func (h *Handler) Document(c *gin.Context) {
	r, doc, err := h.service.Document(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err, "Failed to render receipt")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="recibo-%s.html"`, ReceiptNumber(r.ID)))
	c.Data(http.StatusOK, "text/html; charset=utf-8", doc)
}

func (h *Handler) Summary(c *gin.Context) {
	var q SummaryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, ErrInvalidMonth.Code, ErrInvalidMonth.Message)
		return
	}
	now := h.service.clock.Now()
	if q.Year == 0 {
		q.Year = now.Year()
	}
	if q.Month == 0 {
		q.Month = int(now.Month())
	}

	out, err := h.service.Summary(c.Request.Context(), q.Year, q.Month)
	if err != nil {
		response.FromError(c, err, "Failed to summarize receipts")
		return
	}
	response.Success(c, http.StatusOK, out)
}
