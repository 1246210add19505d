package calendar

import (
	"net/http"

	"diligencias/internal/pkg/response"
	"diligencias/internal/schedule"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	clock   *schedule.Clock
}

func NewHandler(service *Service, clock *schedule.Clock) *Handler {
	return &Handler{service: service, clock: clock}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/calendar", h.GetMonth)
}

// GetMonth defaults to the current month. Availability changes by the
// minute, so responses are never cached.
func (h *Handler) GetMonth(c *gin.Context) {
	c.Header("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")

	var q MonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, ErrInvalidMonth.Code, ErrInvalidMonth.Message)
		return
	}
	now := h.clock.Now()
	if q.Year == 0 {
		q.Year = now.Year()
	}
	if q.Month == 0 {
		q.Month = int(now.Month())
	}

	month, err := h.service.ComputeMonth(c.Request.Context(), q.Year, q.Month)
	if err != nil {
		response.FromError(c, err, "Failed to load calendar")
		return
	}
	response.Success(c, http.StatusOK, month)
}
