package main

import (
	"context"
	"log"
	"net"
	"net/http"

	"go.uber.org/zap"

	"github.com/fareops/catalog-engine/pkg/config"
	"github.com/fareops/catalog-engine/pkg/database"
	"github.com/fareops/catalog-engine/pkg/handlers"
	"github.com/fareops/catalog-engine/pkg/logging"
	"github.com/fareops/catalog-engine/pkg/middleware"
	"github.com/fareops/catalog-engine/pkg/repositories"
	"github.com/fareops/catalog-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("database", logging.SanitizeConnectionString(cfg.Database.URL())))

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg.Database.URL(), cfg.Database.MaxConnections)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.String("error", logging.SanitizeError(err)))
	}
	defer db.Close()

	if err := db.Migrate(cfg.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.String("error", logging.SanitizeError(err)))
	}

	// Repositories
	countryRepo := repositories.NewCountryRepository(db)
	airlineRepo := repositories.NewAirlineRepository(db)
	aircraftRepo := repositories.NewAircraftRepository(db)
	fareCodeRepo := repositories.NewFareBasisCodeRepository(db)
	productRepo := repositories.NewAncillaryProductRepository(db)
	contextRepo := repositories.NewContextAttributesRepository(db)
	offerRepo := repositories.NewPriceOfferRepository(db)
	userRepo := repositories.NewUserRepository(db)

	// Services
	countrySvc := services.NewCountryService(countryRepo, airlineRepo, logger)
	airlineSvc := services.NewAirlineService(airlineRepo, countryRepo, aircraftRepo, fareCodeRepo, userRepo, logger)
	aircraftSvc := services.NewAircraftService(aircraftRepo, airlineRepo, logger)
	fareCodeSvc := services.NewFareBasisCodeService(fareCodeRepo, airlineRepo, offerRepo, logger)
	productSvc := services.NewAncillaryProductService(productRepo, offerRepo, logger)
	contextSvc := services.NewContextAttributesService(contextRepo, offerRepo, logger)
	offerSvc := services.NewPriceOfferService(offerRepo, fareCodeRepo, productRepo, contextRepo, logger)
	userSvc := services.NewUserService(userRepo, airlineRepo, logger)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewCountriesHandler(countrySvc, cfg, logger).RegisterRoutes(mux)
	handlers.NewAirlinesHandler(airlineSvc, cfg, logger).RegisterRoutes(mux)
	handlers.NewFleetHandler(aircraftSvc, cfg, logger).RegisterRoutes(mux)
	handlers.NewFareBasisCodesHandler(fareCodeSvc, cfg, logger).RegisterRoutes(mux)
	handlers.NewAncillaryProductsHandler(productSvc, cfg, logger).RegisterRoutes(mux)
	handlers.NewContextAttributesHandler(contextSvc, cfg, logger).RegisterRoutes(mux)
	handlers.NewPriceOffersHandler(offerSvc, cfg, logger).RegisterRoutes(mux)
	handlers.NewUsersHandler(userSvc, cfg, logger).RegisterRoutes(mux)

	addr := net.JoinHostPort(cfg.BindAddr, cfg.Port)
	logger.Info("Starting catalog-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))

	handler := middleware.RequestLogger(logger)(mux)
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
