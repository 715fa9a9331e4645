package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"flicklit/internal/adapter/api"
	"flicklit/internal/adapter/api/handler"
	apimiddleware "flicklit/internal/adapter/api/middleware"
	"flicklit/internal/adapter/api/router"
	"flicklit/internal/adapter/repository"
	"flicklit/internal/infrastructure/firebase"
	"flicklit/internal/infrastructure/metadata"
	"flicklit/internal/infrastructure/ratelimit"
	"flicklit/internal/usecase"
	"flicklit/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption

	// Service account JSON from the environment wins; file path is the
	// local-development fallback.
	serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if serviceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if serviceAccountPath == "" {
			serviceAccountPath = "./service-account.json"
		}

		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}

		log.Printf("Using Firebase service account from file: %s", serviceAccountPath)
		opt = option.WithCredentialsFile(serviceAccountPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	mediaItemRepo := repository.NewFirestoreMediaItemRepository(firestoreClient)
	statsRepo := repository.NewFirestoreStatsRepository(firestoreClient)
	achievementRepo := repository.NewFirestoreAchievementRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)
	tmdbClient := metadata.NewTMDBClient(cfg.TMDBApiKey, cfg.TMDBBaseURL)
	openLibraryClient := metadata.NewOpenLibraryClient(cfg.OpenLibraryURL)

	authUseCase := usecase.NewAuthUseCase(userRepo, firebaseAuthClient)
	statsUseCase := usecase.NewStatsUseCase(statsRepo)
	achievementUseCase := usecase.NewAchievementUseCase(achievementRepo)
	mediaUseCase := usecase.NewMediaItemUseCase(
		mediaItemRepo,
		statsUseCase,
		achievementUseCase,
		tmdbClient,
		openLibraryClient,
		usecase.DebounceDelays{
			Rating: cfg.RatingDebounce,
			Date:   cfg.DateDebounce,
			Note:   cfg.NoteDebounce,
		},
	)
	catalogUseCase := usecase.NewCatalogUseCase(tmdbClient, openLibraryClient)

	handler.Setup(authUseCase, mediaUseCase, statsUseCase, achievementUseCase, catalogUseCase)
	handler.SetupHealthHandler(firebaseAuthClient)

	limiter := ratelimit.NewRateLimiter()
	limiter.StartCleanupRoutine()

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)
	adminMiddleware := apimiddleware.NewAdminMiddleware(userRepo)
	rateLimitMiddleware := apimiddleware.NewRateLimitMiddleware(limiter)

	router.Setup(e, authMiddleware, adminMiddleware, rateLimitMiddleware)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
