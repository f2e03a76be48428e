package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/shakeelviam/salmiya-grand-hotel-new-sub000/config"
	"github.com/shakeelviam/salmiya-grand-hotel-new-sub000/controllers"
	"github.com/shakeelviam/salmiya-grand-hotel-new-sub000/routes"
	"github.com/shakeelviam/salmiya-grand-hotel-new-sub000/services"
	"github.com/shakeelviam/salmiya-grand-hotel-new-sub000/utils"
)

func main() {
	// .env is optional; the process environment wins either way.
	_ = godotenv.Load()

	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer logger.Sync()

	if err := config.ConnectDatabase(); err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	db := config.DB

	// Initialize services
	authorizer := services.NewPermissionAuthorizer(db)
	roomService := services.NewRoomAssignmentService(db)
	reservationService := services.NewReservationService(db, authorizer)
	paymentService := services.NewPaymentService(db, authorizer)
	groupBookingService := services.NewGroupBookingService(db, authorizer)

	// Initialize controllers
	reservationController := controllers.NewReservationController(reservationService)
	paymentController := controllers.NewPaymentController(paymentService)
	groupBookingController := controllers.NewGroupBookingController(groupBookingService)
	roomController := controllers.NewRoomController(db, roomService)
	roomTypeController := controllers.NewRoomTypeController(db)

	router := routes.SetupRouter(
		reservationController,
		paymentController,
		groupBookingController,
		roomController,
		roomTypeController,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
