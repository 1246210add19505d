package server

import (
	"context"
	"net/http"
	"time"

	"diligencias/internal/cache"
	"diligencias/internal/config"
	"diligencias/internal/middleware"
	"diligencias/internal/modules/address"
	"diligencias/internal/modules/auth"
	"diligencias/internal/modules/booking"
	"diligencias/internal/modules/calendar"
	"diligencias/internal/modules/history"
	"diligencias/internal/modules/pushtoken"
	"diligencias/internal/modules/receipt"
	"diligencias/internal/modules/unavailability"
	"diligencias/internal/pkg/jwt"
	"diligencias/internal/pkg/response"
	"diligencias/internal/pkg/validator"
	"diligencias/internal/realtime"
	"diligencias/internal/repository"
	"diligencias/internal/schedule"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HolidaySource answers both the booking check and the calendar month.
type HolidaySource interface {
	booking.HolidayChecker
	calendar.HolidayProvider
}

// EventPublisher receives every committed appointment and day change.
type EventPublisher interface {
	booking.EventPublisher
	unavailability.EventPublisher
}

// Deps are the process-wide collaborators built by cmd/api. Holidays and
// Publisher may be left nil to run without holiday checks or side effects.
type Deps struct {
	Config    *config.Config
	DB        *gorm.DB
	Clock     *schedule.Clock
	Cache     cache.Cache
	Holidays  HolidaySource
	Publisher EventPublisher
	Hub       *realtime.Hub
	Log       *zap.Logger
}

// New wires repositories, services and handlers into a gin engine.
func New(d Deps) *gin.Engine {
	validator.RegisterGinTags()
	cfg := d.Config

	appointmentRepo := repository.NewAppointmentRepository(d.DB)
	unavailabilityRepo := repository.NewUnavailabilityRepository(d.DB)
	receiptRepo := repository.NewReceiptRepository(d.DB)
	auditRepo := repository.NewAuditLogRepository(d.DB)
	pushTokenRepo := repository.NewPushTokenRepository(d.DB)

	tokens := jwt.New(cfg.JWTSecret, cfg.SessionTTL)
	limiter := middleware.NewLoginLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow)

	authHandler := auth.NewHandler(
		auth.NewService(cfg.AuthPasswordHash, tokens, d.Log.Named("auth")),
		cfg.CookieSecure,
	)

	bookingService := booking.NewService(
		appointmentRepo,
		unavailabilityRepo,
		receiptRepo,
		auditRepo,
		d.Holidays,
		d.Publisher,
		cfg.Catalog,
		d.Clock,
		d.Log.Named("booking"),
	)
	bookingHandler := booking.NewHandler(bookingService)

	calendarHandler := calendar.NewHandler(
		calendar.NewService(appointmentRepo, unavailabilityRepo, d.Holidays, cfg.Catalog, d.Clock, d.Log.Named("calendar")),
		d.Clock,
	)

	unavailabilityHandler := unavailability.NewHandler(
		unavailability.NewService(unavailabilityRepo, d.Publisher, d.Clock, d.Log.Named("unavailability")),
	)

	receiptHandler := receipt.NewHandler(
		receipt.NewService(
			receiptRepo,
			appointmentRepo,
			receipt.Issuer{Name: cfg.ReceiptIssuer, Client: cfg.ReceiptClient},
			d.Clock,
		),
	)

	historyHandler := history.NewHandler(history.NewService(auditRepo))
	pushTokenHandler := pushtoken.NewHandler(pushtoken.NewService(pushTokenRepo, d.Log.Named("push")))
	addressHandler := address.NewHandler(
		address.NewService(cfg.ViaCEPURL, d.Cache, cfg.UpstreamTimeout, d.Log.Named("address")),
	)

	if cfg.IsProdLike() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.AccessLog(d.Log), middleware.CORS(cfg.AllowedOrigins()))

	r.GET("/health", health(d.DB))

	sessionAuth := middleware.SessionAuth(tokens)
	r.GET("/ws/appointments", sessionAuth, gin.WrapH(d.Hub))

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1, limiter.Middleware(d.Log))

		protected := v1.Group("")
		protected.Use(sessionAuth)
		{
			authHandler.RegisterProtectedRoutes(protected)
			calendarHandler.RegisterRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			unavailabilityHandler.RegisterRoutes(protected)
			receiptHandler.RegisterRoutes(protected)
			historyHandler.RegisterRoutes(protected)
			pushTokenHandler.RegisterRoutes(protected)
			addressHandler.RegisterRoutes(protected)
		}
	}

	return r
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			_ = c.Error(err)
			response.Error(c, http.StatusServiceUnavailable, "DATABASE_UNAVAILABLE", "Database is not reachable")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	}
}
