package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/shakeelviam/salmiya-grand-hotel-new-sub000/controllers"
	"github.com/shakeelviam/salmiya-grand-hotel-new-sub000/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires the controllers onto the gin engine.
func SetupRouter(
	rc *controllers.ReservationController,
	pc *controllers.PaymentController,
	gbc *controllers.GroupBookingController,
	roomc *controllers.RoomController,
	rtc *controllers.RoomTypeController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Actor())

	origins := parseCorsOrigins()
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
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "X-Actor-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		reservations := api.Group("/reservations")
		{
			reservations.GET("", rc.GetReservations)
			reservations.POST("", rc.CreateReservation)
			reservations.GET("/:id", rc.GetReservationByID)
			reservations.POST("/:id/confirm", rc.ConfirmReservation)
			reservations.POST("/:id/check-in", rc.CheckIn)
			reservations.POST("/:id/change-room", rc.ChangeRoom)
			reservations.POST("/:id/check-out", rc.CheckOut)
			reservations.POST("/:id/cancel", rc.CancelReservation)
			reservations.POST("/:id/no-show", rc.MarkNoShow)

			reservations.GET("/:id/payments", pc.ListReservationPayments)
			reservations.POST("/:id/payments", pc.RecordPayment)
		}

		payments := api.Group("/payments")
		{
			payments.GET("", pc.ListPayments)
			payments.POST("/:id/refund", pc.RefundPayment)
		}

		groupBookings := api.Group("/group-bookings")
		{
			groupBookings.GET("", gbc.ListGroupBookings)
			groupBookings.POST("", gbc.CreateGroupBooking)
			groupBookings.GET("/:id", gbc.GetGroupBookingByID)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", roomc.GetRooms)
			rooms.POST("", roomc.CreateRoom)
			rooms.PATCH("/:id/status", roomc.SetRoomStatus)
		}

		roomTypes := api.Group("/room-types")
		{
			roomTypes.GET("", rtc.GetRoomTypes)
			roomTypes.POST("", rtc.CreateRoomType)
			roomTypes.GET("/:id/available-rooms", roomc.GetAvailableRooms)
		}
	}

	return r
}
