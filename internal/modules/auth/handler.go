package auth

import (
	"net/http"
	"time"

	"diligencias/internal/middleware"
	"diligencias/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service      *Service
	cookieSecure bool
}

func NewHandler(service *Service, cookieSecure bool) *Handler {
	return &Handler{service: service, cookieSecure: cookieSecure}
}

// RegisterPublicRoutes mounts login and logout. The limiter guards login
// only; logout needs no session so an expired cookie can still be cleared.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup, limiter gin.HandlerFunc) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/login", limiter, h.Login)
		authGroup.POST("/logout", h.Logout)
	}
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/session", h.Session)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Password is required")
		return
	}

	session, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err, "Failed to login")
		return
	}

	h.setSessionCookie(c, session.Token, int(time.Until(session.ExpiresAt).Seconds()))
	response.Success(c, http.StatusOK, session)
}

func (h *Handler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	response.Success(c, http.StatusOK, gin.H{"logged_out": true})
}

func (h *Handler) Session(c *gin.Context) {
	role, _ := c.Get(middleware.ContextRole)
	expires, _ := c.Get(middleware.ContextExpiresAt)
	out := gin.H{"authenticated": true, "role": role}
	if t, ok := expires.(time.Time); ok {
		out["expires_at"] = t
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, value, maxAge, "/", "", h.cookieSecure, true)
}
