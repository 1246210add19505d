package booking

import (
	"errors"
	"io"
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
	appointments := rg.Group("/appointments")
	{
		appointments.GET("", h.List)
		appointments.POST("", h.Create)
		appointments.GET("/:id", h.Get)
		appointments.PATCH("/:id/cancel", h.Cancel)
	}

	rg.POST("/receipts", h.Complete)

	driver := rg.Group("/driver")
	{
		driver.GET("/visits", h.DriverVisits)
		driver.POST("/complete", h.Complete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	a, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err, "Failed to create appointment")
		return
	}
	response.Success(c, http.StatusCreated, a)
}

func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	list, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		response.FromError(c, err, "Failed to list appointments")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"appointments": list})
}

func (h *Handler) Get(c *gin.Context) {
	a, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err, "Failed to load appointment")
		return
	}
	response.Success(c, http.StatusOK, a)
}

func (h *Handler) Cancel(c *gin.Context) {
	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	a, err := h.service.CancelBooking(c.Request.Context(), c.Param("id"), req.CancelledBy)
	if err != nil {
		response.FromError(c, err, "Failed to cancel appointment")
		return
	}
	response.Success(c, http.StatusOK, a)
}

func (h *Handler) Complete(c *gin.Context) {
	var req CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	out, err := h.service.CompleteBooking(c.Request.Context(), req.AppointmentID, req.Amount)
	if err != nil {
		response.FromError(c, err, "Failed to complete appointment")
		return
	}
	response.Success(c, http.StatusCreated, out)
}

func (h *Handler) DriverVisits(c *gin.Context) {
	agenda, err := h.service.DriverAgenda(c.Request.Context())
	if err != nil {
		response.FromError(c, err, "Failed to list visits")
		return
	}
	response.Success(c, http.StatusOK, agenda)
}
