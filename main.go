package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"hotelbooking/config"
	"hotelbooking/controllers"
	"hotelbooking/jobs"
	middlewares "hotelbooking/middleware"
	"hotelbooking/routes"
	"hotelbooking/services"
	"hotelbooking/services/notification"
)

// @title                       Hotel Booking API
// @version                     1.0
// @BasePath                    /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := config.InitApp(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}
	defer app.Close()

	cfg := app.Config
	lg := app.Logger
	cache := services.NewCache(app.Redis, cfg.CacheTTL)
	locker := services.NewLocker(app.Redis, cfg.RoomLockTTL)
	tokens := services.NewTokenParser(cfg.TokenSecret)

	var images services.ImageStore
	if app.Cloudinary != nil {
		images = services.NewCloudinaryStore(app.Cloudinary)
	}

	userService := services.NewUserService(services.UserServiceOptions{DB: app.DB, Logger: lg})
	availability := services.NewAvailabilityService(services.AvailabilityServiceOptions{DB: app.DB, Logger: lg})
	cities := services.NewCityService(services.CityServiceOptions{DB: app.DB, Logger: lg, Cache: cache})
	hotels := services.NewHotelService(services.HotelServiceOptions{
		DB:          app.DB,
		Logger:      lg,
		Cache:       cache,
		Cities:      cities,
		Images:      images,
		ImageFolder: cfg.ImageFolder,
	})
	rooms := services.NewRoomService(services.RoomServiceOptions{
		DB:           app.DB,
		Logger:       lg,
		Availability: availability,
		Images:       images,
		ImageFolder:  cfg.ImageFolder,
		Cache:        cache,
	})
	discounts := services.NewDiscountService(services.DiscountServiceOptions{
		DB:        app.DB,
		Logger:    lg,
		Locker:    locker,
		Publisher: app.Publisher,
		Rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
	})
	bookings := services.NewBookingService(services.BookingServiceOptions{
		DB:           app.DB,
		Logger:       lg,
		Locker:       locker,
		Availability: availability,
		Discounts:    discounts,
	})
	reviews := services.NewReviewService(services.ReviewServiceOptions{
		DB:        app.DB,
		Logger:    lg,
		Publisher: app.Publisher,
		Cache:     cache,
	})
	facade := services.NewBookingFacade(services.BookingFacadeOptions{
		Bookings:  bookings,
		Publisher: app.Publisher,
		Notifier:  notification.NewMelodyService(app.Melody),
		Logger:    lg,
	})
	ws := services.NewWebSocketService(app.Melody, tokens, lg)

	if _, err := jobs.InitCronJobs(app.Cron, jobs.Options{
		RatingSpec:   cfg.RatingCron,
		DiscountSpec: cfg.DiscountCron,
		Ratings:      reviews,
		Discounts:    discounts,
		Bookings:     bookings,
		Logger:       lg,
	}); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}

	router := app.Router
	router.Use(middlewares.RequestID(), middlewares.ErrorHandler())
	routes.SetupRoutes(router, routes.Options{
		Auth:      middlewares.NewAuthenticator(tokens, userService),
		RateLimit: middlewares.RateLimit(cfg.RateLimit, app.Redis, lg),
		Hotels:    controllers.NewHotelController(hotels),
		Rooms:     controllers.NewRoomController(rooms),
		Reviews:   controllers.NewReviewController(reviews),
		Search:    controllers.NewSearchController(availability, cities),
		Bookings:  controllers.NewBookingController(facade),
		Roulette:  controllers.NewRouletteController(discounts),
		Users:     controllers.NewUserController(userService),
		Uploads:   controllers.NewUploadController(images, cfg.ImageFolder),
		WebSocket: controllers.NewWebSocketController(ws, lg),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}
	go func() {
		log.Println("Server starting on port " + cfg.Port + "...")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
