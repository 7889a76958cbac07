package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lumiere-studio/salon-booking/internal/handlers"
	"github.com/lumiere-studio/salon-booking/internal/middleware"
)

type Deps struct {
	Public      *handlers.PublicHandler
	Admin       *handlers.AdminHandler
	AdminGate   *middleware.AdminGate
	RateLimiter *middleware.RateLimiter
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// PUBLIC
	// ======================================================
	r.GET("/", d.Public.Health)
	r.GET("/calendar", d.Public.Calendar)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	booking := r.Group("/")
	booking.Use(d.RateLimiter.Middleware())
	{
		booking.POST("/create-checkout", d.Public.CreateCheckout)
		booking.POST("/confirm", d.Public.Confirm)
	}

	// ======================================================
	// ADMIN
	// ======================================================
	admin := r.Group("/admin")
	admin.Use(d.AdminGate.Middleware())
	{
		admin.GET("/reservations", d.Admin.Reservations)
		admin.POST("/add-slot", d.Admin.AddSlot)
		admin.POST("/delete-slot", d.Admin.DeleteSlot)
		admin.POST("/export", d.Admin.Export)
	}
}
