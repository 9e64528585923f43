package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/condovia/reservation/booking"
	"github.com/condovia/reservation/config/db"
	"github.com/condovia/reservation/controllers/reservation_controller"
	middleware "github.com/condovia/reservation/middlewares"
	"github.com/condovia/reservation/middlewares/auth"
	"github.com/condovia/reservation/unitdir"
)

func RegisterReservationRoutes(router *gin.Engine) {
	store := booking.NewPgStore(db.DB)
	engine := booking.NewEngine(store, unitdir.New(db.DB))
	controller := reservation_controller.NewReservationController(engine)

	protected := router.Group("/reservations")
	protected.Use(auth.AuthMiddleware())
	{
		protected.GET("", controller.ListReservations)
		protected.POST("", middleware.NewRateLimiter("10-1m", "createReservation"), controller.CreateReservation)
		protected.POST("/:reservation_id/cancel", middleware.NewRateLimiter("20-1m", "cancelReservation"), controller.CancelReservation)
		protected.GET("/availability", controller.CheckAvailability)
	}
}
