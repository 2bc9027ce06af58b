package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/opendining/reservation-service/config"
	"github.com/opendining/reservation-service/internal/handler"
	"github.com/opendining/reservation-service/internal/middleware"
	"github.com/opendining/reservation-service/internal/repository"
	"github.com/opendining/reservation-service/internal/service"
	"github.com/opendining/reservation-service/pkg/database"
	"github.com/opendining/reservation-service/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// The broker is optional: without it the service still serves requests,
	// it just skips domain events.
	var events service.EventPublisher
	if publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL); err != nil {
		log.Printf("rabbitmq unavailable, domain events disabled: %v", err)
	} else {
		defer publisher.Close()
		events = publisher
	}

	// Repositories
	reservationRepo := repository.NewReservationRepository(db)
	tableRepo := repository.NewTableRepository(db)

	// Services
	reservationSvc := service.NewReservationService(reservationRepo, events)
	tableSvc := service.NewTableService(tableRepo, reservationRepo, events)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "reservation-service"})
	})

	handler.NewReservationHandler(reservationSvc).RegisterRoutes(e)
	handler.NewTableHandler(tableSvc).RegisterRoutes(e)

	log.Printf("Reservation Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
