package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"hotel-lifecycle-backend/config"
	"hotel-lifecycle-backend/controllers"
	"hotel-lifecycle-backend/middleware"
	"hotel-lifecycle-backend/models"
)

// SetupRouter wires controllers into the gin engine. Guest-facing reads
// and booking submission are public (guest identity comes from the
// external auth provider); everything that mutates lifecycle state is
// staff-only.
func SetupRouter(
	cfg *config.Config,
	rc *controllers.RoomController,
	bc *controllers.BookingController,
	mc *controllers.MaintenanceController,
	ac *controllers.AuthController,
	sc *controllers.StatsController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	origins := cfg.Server.CORSOrigins
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	if cfg.Server.RateLimitPerSec > 0 {
		r.Use(middleware.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	responseCache := gocache.New(cacheTTL, 2*cacheTTL)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", ac.Login)
		}

		rooms := api.Group("/rooms")
		{
			if cacheTTL > 0 {
				rooms.GET("", middleware.Cache(responseCache, cacheTTL), rc.GetRooms)
			} else {
				rooms.GET("", rc.GetRooms)
			}
			rooms.GET("/:id", rc.GetRoom)

			staff := rooms.Group("", middleware.StaffRequired())
			{
				staff.POST("", middleware.RequireRole(models.RoleManager), rc.CreateRoom)
				staff.PATCH("/:id", middleware.RequireRole(models.RoleManager), rc.UpdateRoom)
				staff.DELETE("/:id", middleware.RequireRole(models.RoleManager), rc.DeleteRoom)
				staff.POST("/:id/cleaning/complete", rc.CompleteCleaning)
			}
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("/quote", bc.QuoteBooking)
			bookings.POST("", bc.CreateBooking)
			bookings.GET("", bc.GetBookings)
			bookings.GET("/:id", bc.GetBooking)
			bookings.POST("/:id/cancel", bc.CancelBooking)
			bookings.POST("/:id/payment", bc.CompletePayment)

			staff := bookings.Group("", middleware.StaffRequired())
			{
				staff.PATCH("/:id", bc.UpdateBooking)
				staff.POST("/:id/confirm", bc.ConfirmBooking)
				staff.POST("/:id/checkin", bc.CheckInBooking)
				staff.POST("/:id/checkout", bc.CheckOutBooking)
			}
		}

		maintenance := api.Group("/maintenance", middleware.StaffRequired())
		{
			maintenance.GET("", mc.GetRequests)
			maintenance.GET("/:id", mc.GetRequest)
			maintenance.POST("", mc.CreateRequest)
			maintenance.POST("/:id/start", mc.StartWork)
			maintenance.POST("/:id/resolve", mc.ResolveRequest)
			maintenance.POST("/:id/cancel", mc.CancelRequest)
		}

		stats := api.Group("/stats", middleware.StaffRequired())
		{
			stats.GET("/rooms", sc.GetRoomCounts)
		}
	}

	return r
}
