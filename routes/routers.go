package routes

import (
	"net/http"

	"hotelbooking/constants"
	"hotelbooking/controllers"
	middlewares "hotelbooking/middleware"
	"hotelbooking/services"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "hotelbooking/docs"
)

type Options struct {
	Auth      *middlewares.Authenticator
	RateLimit gin.HandlerFunc

	Hotels    *controllers.HotelController
	Rooms     *controllers.RoomController
	Reviews   *controllers.ReviewController
	Search    *controllers.SearchController
	Bookings  *controllers.BookingController
	Roulette  *controllers.RouletteController
	Users     *controllers.UserController
	Uploads   *controllers.UploadController
	WebSocket *controllers.WebSocketController
}

func SetupRoutes(router *gin.Engine, o Options) {
	auth := o.Auth.AuthMiddleware
	staffOnly := middlewares.RoleMiddleware(services.IsStaff)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if o.WebSocket != nil {
		router.GET("/ws", o.WebSocket.HandleWebSocket)
	}

	v1 := router.Group("/api/v1")
	v1.Use(o.Auth.OptionalAuth())
	if o.RateLimit != nil {
		v1.Use(o.RateLimit)
	}

	v1.GET("/", controllers.APIRoot)

	v1.GET("/hotels", o.Hotels.GetHotels)
	v1.POST("/hotels", auth(), staffOnly, o.Hotels.CreateHotel)
	v1.GET("/hotels/:id", o.Hotels.GetHotelDetail)
	v1.PUT("/hotels/:id", auth(), o.Hotels.UpdateHotel)
	v1.PATCH("/hotels/:id", auth(), o.Hotels.UpdateHotel)
	v1.DELETE("/hotels/:id", auth(), o.Hotels.DeleteHotel)

	v1.GET("/hotels/:id/rooms", o.Rooms.GetAllRooms)
	v1.POST("/hotels/:id/rooms", auth(), staffOnly, o.Rooms.CreateRoom)
	v1.GET("/hotels/:id/rooms/:roomId", o.Rooms.GetRoomDetail)
	v1.PUT("/hotels/:id/rooms/:roomId", auth(), o.Rooms.UpdateRoom)
	v1.PATCH("/hotels/:id/rooms/:roomId", auth(), o.Rooms.UpdateRoom)
	v1.DELETE("/hotels/:id/rooms/:roomId", auth(), o.Rooms.DeleteRoom)

	v1.GET("/hotels/:id/reviews", o.Reviews.GetReviews)
	v1.POST("/hotels/:id/reviews", auth(), o.Reviews.CreateReview)
	v1.GET("/hotels/:id/reviews/:reviewId", o.Reviews.GetReviewDetail)
	v1.PUT("/hotels/:id/reviews/:reviewId", auth(), o.Reviews.UpdateReview)
	v1.PATCH("/hotels/:id/reviews/:reviewId", auth(), o.Reviews.UpdateReview)

	v1.GET("/search", o.Search.SearchHotels)
	v1.GET("/cities", o.Search.SearchCities)

	bookings := v1.Group("/bookings", auth(), middlewares.NotBlocked())
	bookings.GET("", o.Bookings.GetBookings)
	bookings.POST("", o.Bookings.CreateBooking)
	bookings.GET("/:id", o.Bookings.GetBookingDetail)
	bookings.PATCH("/:id", o.Bookings.UpdateBookingStatus)

	v1.GET("/discounts/roulette", auth(), o.Roulette.GetActiveDiscount)
	v1.POST("/discounts/roulette", auth(), o.Roulette.Spin)

	v1.GET("/users", auth(constants.RoleAdmin), o.Users.GetUsers)
	v1.GET("/users/:id", auth(constants.RoleAdmin), o.Users.GetUserByID)
	v1.PATCH("/users/:id/toggle_active", auth(constants.RoleAdmin), o.Users.ToggleActive)
	v1.PATCH("/users/:id/toggle_theme", auth(), o.Users.ToggleTheme)

	v1.POST("/uploads/image", auth(), staffOnly, o.Uploads.UploadImage)
}
