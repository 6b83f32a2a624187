package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"luxestay/internal/infra/config"
	"luxestay/internal/infra/obs"
)

type Handlers struct {
	Auth           AuthHTTP
	Property       PropertyHTTP
	Booking        BookingHTTP
	Me             MeHTTP
	Admin          AdminHTTP
	Rates          RatesHTTP
	Tilt           TiltHTTP
	AuthMiddleware gin.HandlerFunc
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.AccessLog())
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "Idempotency-Key"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))
	if h.AuthMiddleware != nil {
		router.Use(h.AuthMiddleware)
	}

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Auth != nil {
		api.POST("/auth/register", h.Auth.Register)
		api.POST("/auth/login", h.Auth.Login)
		api.POST("/auth/logout", h.Auth.Logout)
		api.GET("/auth/me", h.Auth.Me)
	}
	if h.Property != nil {
		api.GET("/properties", h.Property.List)
		api.GET("/properties/:id", h.Property.Get)
	}
	if h.Booking != nil {
		api.POST("/bookings/quote", h.Booking.Quote)
		api.POST("/bookings", h.Booking.Create)
		api.POST("/bookings/:id/cancel", h.Booking.Cancel)
	}
	if h.Me != nil || h.Booking != nil {
		meGroup := api.Group("/me")
		if h.Booking != nil {
			meGroup.GET("/trips", h.Booking.Trips)
		}
		if h.Me != nil {
			meGroup.GET("/wishlist", h.Me.Wishlist)
			meGroup.PUT("/wishlist/:propertyID", h.Me.SaveToWishlist)
			meGroup.DELETE("/wishlist/:propertyID", h.Me.RemoveFromWishlist)
			meGroup.GET("/notifications", h.Me.Notifications)
		}
	}
	if h.Admin != nil {
		adminGroup := api.Group("/admin/properties")
		adminGroup.POST("", h.Admin.Create)
		adminGroup.PUT("/:id", h.Admin.Update)
		adminGroup.DELETE("/:id", h.Admin.Delete)
		adminGroup.POST("/:id/photos", h.Admin.UploadPhoto)
	}
	if h.Rates != nil {
		api.GET("/rates", h.Rates.Table)
		api.GET("/rates/convert", h.Rates.Convert)
	}
	if h.Tilt != nil {
		tiltGroup := api.Group("/tilt/sessions")
		tiltGroup.POST("", h.Tilt.Start)
		tiltGroup.POST("/:id/orientation", h.Tilt.Orientation)
		tiltGroup.POST("/:id/pop", h.Tilt.HistoryPop)
		tiltGroup.GET("/:id", h.Tilt.Get)
		tiltGroup.DELETE("/:id", h.Tilt.Stop)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
