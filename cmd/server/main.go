package main // Entry point package

import (
	"context" // bounds startup database work
	"log"     // Logging library

	"github.com/joho/godotenv"    // loads .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/travel-planner/internal/config"     // Internal config loader
	"github.com/iliyamo/travel-planner/internal/database"   // MySQL pool, schema and seed
	"github.com/iliyamo/travel-planner/internal/handler"    // HTTP handlers
	"github.com/iliyamo/travel-planner/internal/middleware" // cache and rate limit middleware
	"github.com/iliyamo/travel-planner/internal/queue"      // AMQP booking log consumer
	"github.com/iliyamo/travel-planner/internal/repository" // data access layer
	"github.com/iliyamo/travel-planner/internal/router"     // route registration
	"github.com/iliyamo/travel-planner/internal/service"    // broker notifier
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	ctx := context.Background()
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("schema init failed: %v", err)
	}
	if cfg.SeedSampleData {
		if err := database.SeedCatalog(ctx, db); err != nil {
			log.Printf("catalog seed failed: %v", err)
		}
	}

	// Repositories
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	destinations := repository.NewDestinationRepo(db)
	accommodations := repository.NewAccommodationRepo(db)
	attractions := repository.NewAttractionRepo(db)
	trips := repository.NewTripRepo(db)
	transportations := repository.NewTransportationRepo(db)
	itineraries := repository.NewItineraryRepo(db)
	hotelBookings := repository.NewHotelBookingRepo(db)
	transportBookings := repository.NewTransportBookingRepo(db)
	payments := repository.NewPaymentRepo(db)
	tickets := repository.NewETicketRepo(db)
	reviews := repository.NewReviewRepo(db)
	profiles := repository.NewProfileRepo(db)

	notifier := service.NewAMQPNotifier()

	// Handlers
	authH := handler.NewAuthHandler(cfg, users, tokens)
	publicH := handler.NewPublicCatalogHandler(destinations, accommodations, attractions, reviews)
	adminH := handler.NewAdminCatalogHandler(destinations, accommodations, attractions)
	tripH := handler.NewTripHandler(trips, destinations, accommodations, notifier)
	legH := handler.NewTransportationHandler(trips, transportations)
	dayH := handler.NewItineraryHandler(trips, itineraries, attractions)
	bookingH := handler.NewBookingHandler(trips, accommodations, transportations, hotelBookings, transportBookings)
	paymentH := handler.NewPaymentHandler(trips, accommodations, transportations, hotelBookings, transportBookings, payments, tickets, notifier, cfg.PaymentDelay)
	ticketH := handler.NewTicketHandler(tickets, trips, users, accommodations, transportations, hotelBookings, transportBookings)
	reviewH := handler.NewReviewHandler(reviews, destinations, accommodations, attractions)
	profileH := handler.NewProfileHandler(profiles)

	e := echo.New()

	// Redis-backed rate limiting sits in front of everything; the response
	// cache is applied only to the public catalog reads.
	rdb := config.NewRedisClient()
	if rdb != nil {
		e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	}
	var publicMW []echo.MiddlewareFunc
	if rdb != nil {
		publicMW = append(publicMW, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	}

	router.RegisterRoutes(e) // health check
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublicCatalog(e, publicH, reviewH, publicMW...)
	router.RegisterAdminCatalog(e, adminH, cfg.JWTSecret)
	router.RegisterTraveler(e, tripH, legH, dayH, bookingH, paymentH, ticketH, reviewH, profileH, cfg.JWTSecret)

	// Tail booking.updates into logs/booking.log in the background.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
