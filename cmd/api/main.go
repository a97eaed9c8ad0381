package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/joho/godotenv"

	"github.com/chughjug/ratings-sub000/api/routes"
	"github.com/chughjug/ratings-sub000/internal/config"
	"github.com/chughjug/ratings-sub000/internal/handlers"
	mongorepo "github.com/chughjug/ratings-sub000/internal/repositories/mongodb"
	"github.com/chughjug/ratings-sub000/internal/services"
	"github.com/chughjug/ratings-sub000/pkg/mongodb"
	"github.com/chughjug/ratings-sub000/pkg/uscf"
)

func main() {
	// Load .env file if present
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure logging
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	// Connect to MongoDB
	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelConnect()
	mongoClient, err := mongodb.NewClient(connectCtx, cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			slog.Error("Failed to disconnect from MongoDB", "error", err)
		}
	}()
	db := mongoClient.Database(cfg.MongoDB.Database)

	// Initialize repositories
	tournamentRepo := mongorepo.NewTournamentRepository(db)
	standingsRepo := mongorepo.NewStandingsRepository(db)
	settingsRepo := mongorepo.NewPrizeSettingsRepository(db)
	distributionRepo := mongorepo.NewDistributionRepository(db)
	manualRepo := mongorepo.NewManualPrizeRepository(db)

	// Initialize the US Chess member client
	uscfClient := uscf.NewClient(cfg.USCF.BaseURL, cfg.USCF.Timeout, cfg.USCF.MockLookups)

	// Initialize services
	prizeService := services.NewPrizeService(tournamentRepo, settingsRepo, standingsRepo, distributionRepo, manualRepo, clockwork.NewRealClock())
	standingsService := services.NewStandingsService(standingsRepo, tournamentRepo, uscfClient, cfg.Prizes.SectionCacheSize, cfg.Prizes.SectionCacheTTL)
	tournamentService := services.NewTournamentService(tournamentRepo, standingsRepo, settingsRepo, distributionRepo, manualRepo)

	// Initialize handlers
	handlerDeps := routes.HandlerDependencies{
		TournamentHandler: handlers.NewTournamentHandler(tournamentService),
		StandingsHandler:  handlers.NewStandingsHandler(standingsService),
		PrizeHandler:      handlers.NewPrizeHandler(prizeService),
		PlayerHandler:     handlers.NewPlayerHandler(uscfClient),
	}

	// Setup router
	router := routes.SetupRouter(cfg, handlerDeps)

	// Start the server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Run server in a goroutine so that it doesn't block
	go func() {
		slog.Info("Server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	slog.Info("Server exiting")
}

// parseLogLevel maps a configured level name to a slog level
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
