package router

import (
	"net/http"

	"github.com/wb-go/wbf/ginext"
)

type Handler interface {
	CreateRoom(c *ginext.Context)
	GetRoom(c *ginext.Context)
	ListRooms(c *ginext.Context)
	UpdateRoom(c *ginext.Context)
	CheckAvailability(c *ginext.Context)
	ListRoomBookings(c *ginext.Context)
	CreateBooking(c *ginext.Context)
	GetBooking(c *ginext.Context)
	ConfirmBooking(c *ginext.Context)
	CancelBooking(c *ginext.Context)
	RescheduleBooking(c *ginext.Context)
	CompleteBooking(c *ginext.Context)
}

func InitRouter(mode string, h Handler, mw ...ginext.HandlerFunc) *ginext.Engine {
	router := ginext.New(mode)
	router.Use(mw...)

	api := router.Group("/api")
	{
		// Rooms
		api.POST("/rooms", h.CreateRoom)
		api.GET("/rooms", h.ListRooms)
		api.GET("/rooms/:id", h.GetRoom)
		api.PATCH("/rooms/:id", h.UpdateRoom)
		api.GET("/rooms/:id/availability", h.CheckAvailability)
		api.GET("/rooms/:id/bookings", h.ListRoomBookings)

		// Bookings
		api.POST("/bookings", h.CreateBooking)
		api.GET("/bookings/:id", h.GetBooking)
		api.POST("/bookings/:id/confirm", h.ConfirmBooking)
		api.POST("/bookings/:id/cancel", h.CancelBooking)
		api.POST("/bookings/:id/reschedule", h.RescheduleBooking)
		api.POST("/bookings/:id/complete", h.CompleteBooking)
	}

	router.GET("/health", func(c *ginext.Context) {
		c.JSON(http.StatusOK, ginext.H{"status": "ok"})
	})

	return router
}
