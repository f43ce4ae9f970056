package main

import (
	"rhr/internal/auth"
	reviewhandler "rhr/internal/reviews/handler"
	reviewrepository "rhr/internal/reviews/repository"
	reviewservice "rhr/internal/reviews/service"
	"rhr/internal/rooms/handler"
	"rhr/internal/rooms/repository"
	"rhr/internal/rooms/service"
	"rhr/internal/rooms/validator"
	"rhr/pkg/app"
	"rhr/pkg/config"
	"rhr/pkg/events"
)

const ServiceName = "rhr"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting RHR hotel booking service")

	sessions := auth.NewSessions(cfg.TokenSecret, cfg.TokenTTL)
	publisher := initPublisher(cfg)

	roomService := initRoomService(cfg, publisher)
	reviewService := initReviewService(cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		auth.NewSessionHandler(sessions, cfg.Log),
		handler.NewRoomHandler(roomService, auth.RequireAuth(sessions, cfg.Log), cfg.Log),
		reviewhandler.NewReviewHandler(reviewService, cfg.Log),
	)
	serverApp.OnShutdown(func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close event publisher", "error", err)
		}
	})
	serverApp.Run()
}

func initPublisher(cfg *config.Config) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("No Kafka brokers configured, room events disabled")
		return events.NewNoopPublisher(cfg.Log)
	}

	publisher, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.RoomEventsTopic, ServiceName)
	if err != nil {
		cfg.Log.Fatal("Failed to create room event publisher", "error", err)
	}

	cfg.Log.Info("Room event publisher initialized",
		"brokers", cfg.KafkaBrokers,
		"topic", cfg.RoomEventsTopic,
	)
	return publisher
}

func initRoomService(cfg *config.Config, publisher events.Publisher) service.RoomService {
	bookingValidator := validator.NewBookingValidator(cfg.Log)
	roomRepo := repository.NewMongoRoomRepository(cfg)
	roomService := service.NewRoomService(roomRepo, bookingValidator, publisher, cfg)

	cfg.Log.Info("Room service initialized", "database", cfg.MongoDatabaseName)
	return roomService
}

func initReviewService(cfg *config.Config) reviewservice.ReviewService {
	reviewRepo := reviewrepository.NewMongoReviewRepository(cfg)
	reviewService := reviewservice.NewReviewService(reviewRepo, cfg)

	cfg.Log.Info("Review service initialized", "database", cfg.MongoDatabaseName)
	return reviewService
}
