package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/yungbote/harmonynav-backend/internal/clients/redis"
	"github.com/yungbote/harmonynav-backend/internal/db"
	"github.com/yungbote/harmonynav-backend/internal/handlers"
	"github.com/yungbote/harmonynav-backend/internal/harmony"
	"github.com/yungbote/harmonynav-backend/internal/logger"
	"github.com/yungbote/harmonynav-backend/internal/middleware"
	"github.com/yungbote/harmonynav-backend/internal/observability"
	"github.com/yungbote/harmonynav-backend/internal/repos"
	"github.com/yungbote/harmonynav-backend/internal/server"
	"github.com/yungbote/harmonynav-backend/internal/services"
	"github.com/yungbote/harmonynav-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Tracing
	shutdownOtel := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "harmonynav-backend",
		Environment: utils.GetEnv("APP_ENV", "development", log),
		Version:     utils.GetEnv("APP_VERSION", "dev", log),
	})
	if shutdownOtel != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownOtel(ctx); err != nil {
				log.Warn("otel shutdown failed", "error", err)
			}
		}()
	}

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	port := utils.GetEnv("PORT", "8080", log)

	engineParams := services.DefaultEngineParams()
	engineParams.Alpha = utils.GetEnvAsFloat("SCORE_ALPHA", engineParams.Alpha, log)
	engineParams.RHI.Lambda = utils.GetEnvAsFloat("RHI_LAMBDA", engineParams.RHI.Lambda, log)
	engineParams.RHI.Gamma = utils.GetEnvAsFloat("RHI_GAMMA", engineParams.RHI.Gamma, log)
	engineParams.RHI.Tau = utils.GetEnvAsFloat("RHI_TAU", engineParams.RHI.Tau, log)
	engineParams.RHIWindow = utils.GetEnvAsInt("RHI_WINDOW", engineParams.RHIWindow, log)

	// Database
	dbService, err := db.NewDatabaseService(log)
	if err != nil {
		log.Fatal("Database init failed", "error", err)
	}
	if err = dbService.AutoMigrateAll(); err != nil {
		log.Fatal("Database auto migration failed", "error", err)
	}
	theDB := dbService.DB()

	// Domain catalog
	domains := harmony.DefaultDomainSet()
	recipes := harmony.DefaultRecipes()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(theDB, log)
	userTokenRepo := repos.NewUserTokenRepo(theDB, log)
	recordRepo := repos.NewRecordRepo(theDB, log)

	// Session store (achievement unlock state)
	sessions, err := redis.NewSessionStore(log)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory session store", "error", err)
		sessions = redis.NewMemorySessionStore()
	}
	defer sessions.Close()

	// Services
	log.Info("Setting up Services from main...")
	migrationService := services.NewMigrationService(theDB, log, recordRepo, domains)
	authService := services.NewAuthService(
		theDB,
		log,
		userRepo,
		userTokenRepo,
		migrationService,
		jwtSecretKey,
		time.Duration(accessTokenTTL)*time.Second,
		time.Duration(refreshTokenTTL)*time.Second,
	)
	recordService := services.NewRecordService(theDB, log, recordRepo, userRepo, userTokenRepo, sessions, domains, engineParams)
	analyticsService := services.NewAnalyticsService(log, recordRepo, recordService, domains, recipes, engineParams)

	// Handlers
	log.Info("Setting up Handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	recordHandler := handlers.NewRecordHandler(recordService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	weightsHandler := handlers.NewWeightsHandler(domains)
	achievementHandler := handlers.NewAchievementHandler(sessions)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:        authHandler,
		AuthMiddleware:     authMiddleware,
		RecordHandler:      recordHandler,
		AnalyticsHandler:   analyticsHandler,
		WeightsHandler:     weightsHandler,
		AchievementHandler: achievementHandler,
	})

	log.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
