package routes

import (
	"net/http"
	"time"

	"github.com/YarKhan02/Workshop-sub000/handlers"
	"github.com/YarKhan02/Workshop-sub000/middleware"
	"github.com/YarKhan02/Workshop-sub000/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Options carries the cross-cutting settings for RegisterRoutes.
type Options struct {
	AllowedOrigins    []string
	MaxRequestsPerMin int
	Metrics           *middleware.ServerMetrics
	Gatherer          prometheus.Gatherer
}

// RegisterAuthRoutes registers login, logout and the current-user endpoint.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/login", hb.Auth.Login)
		api.POST("/logout", hb.Auth.Logout)
		api.GET("/me", middleware.SessionAuth(hb.Sessions), hb.Auth.Me)
	}
}

// RegisterCatalogRoutes registers the public service catalog.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/services")
	{
		api.GET("", hb.Catalog.ListServices)
		api.GET("/:id/time-slots", hb.Catalog.ListTimeSlots)
	}
}

// RegisterVehicleRoutes registers the customer's saved vehicles.
func RegisterVehicleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/vehicles")
	{
		api.Use(middleware.SessionAuth(hb.Sessions))
		api.GET("", hb.Vehicles.ListVehicles)
		api.POST("", hb.Vehicles.CreateVehicle)
	}
}

// RegisterWizardRoutes sets up the booking wizard endpoints.
func RegisterWizardRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	wizardGroup := r.Group("/api/booking/wizard")
	{
		wizardGroup.Use(middleware.SessionAuth(hb.Sessions))
		wizardGroup.POST("", hb.Wizard.Start)
		wizardGroup.GET("/:sessionID", hb.Wizard.Get)
		wizardGroup.PUT("/:sessionID/service", hb.Wizard.SelectService)
		wizardGroup.PUT("/:sessionID/vehicle", hb.Wizard.SetVehicle)
		wizardGroup.PUT("/:sessionID/time-slot", hb.Wizard.SelectTimeSlot)
		wizardGroup.PUT("/:sessionID/notes", hb.Wizard.SetNotes)
		wizardGroup.POST("/:sessionID/advance", hb.Wizard.Advance)
		wizardGroup.POST("/:sessionID/retreat", hb.Wizard.Retreat)
		wizardGroup.POST("/:sessionID/reset", hb.Wizard.Reset)
		wizardGroup.POST("/:sessionID/submit", hb.Wizard.Submit)
		wizardGroup.DELETE("/:sessionID", hb.Wizard.Cancel)
	}
}

// RegisterBookingRoutes sets up the "my bookings" dashboard endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.Use(middleware.SessionAuth(hb.Sessions))
		bookingGroup.GET("", hb.Bookings.ListBookings)
		bookingGroup.GET("/:id", hb.Bookings.GetBooking)
		bookingGroup.GET("/:id/invoice", hb.Bookings.Invoice)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "dependencies": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, opts Options) {
	corsConfig := cors.Config{
		AllowOrigins:     opts.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(opts.AllowedOrigins) == 0 {
		// cors.New panics without any origin rule; allow no cross-origin callers.
		corsConfig.AllowOriginFunc = func(string) bool { return false }
	}
	r.Use(cors.New(corsConfig))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
	}
	if opts.MaxRequestsPerMin > 0 {
		r.Use(middleware.RateLimitMiddleware(opts.MaxRequestsPerMin))
	}

	RegisterHealthRoute(r)
	if opts.Gatherer != nil {
		r.GET("/metrics", middleware.MetricsHandler(opts.Gatherer))
	}
	RegisterAuthRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterVehicleRoutes(r, hb)
	RegisterWizardRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
}
