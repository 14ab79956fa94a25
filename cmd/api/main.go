package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"deyelegliz/internal/adapter/api"
	"deyelegliz/internal/adapter/api/handler"
	apimiddleware "deyelegliz/internal/adapter/api/middleware"
	"deyelegliz/internal/adapter/api/router"
	"deyelegliz/internal/adapter/repository"
	"deyelegliz/internal/infrastructure/firebase"
	"deyelegliz/internal/infrastructure/ratelimit"
	"deyelegliz/internal/infrastructure/recaptcha"
	"deyelegliz/internal/infrastructure/session"
	"deyelegliz/internal/infrastructure/storage"
	"deyelegliz/internal/infrastructure/websocket"
	"deyelegliz/internal/usecase"
	"deyelegliz/pkg/config"
	"deyelegliz/pkg/logger"
)

func credentials(cfg *config.Config) option.ClientOption {
	if cfg.ServiceAccountJSON != "" {
		logger.Info("Using Firebase service account from environment variable")
		return option.WithCredentialsJSON([]byte(cfg.ServiceAccountJSON))
	}

	path := cfg.ServiceAccountPath
	if path == "" {
		path = "./firebase-service-account.json"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Fatalf("Service account file does not exist: %s", path)
	}
	logger.Info("Using Firebase service account from file: %s", path)
	return option.WithCredentialsFile(path)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Init(logger.Options{
		Mode:       cfg.Environment,
		FileEnable: cfg.LogFileEnable,
		Filename:   cfg.LogFilename,
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opt := credentials(cfg)

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{
		ProjectID:     cfg.FirebaseProject,
		StorageBucket: cfg.StorageBucket,
	}, opt)
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

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, cfg.CORSOrigins, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	phoneClient, err := firebase.NewPhoneAuthClient(ctx, cfg.FirebaseAPIKey)
	if err != nil {
		log.Fatalf("Failed to initialize phone auth: %v", err)
	}

	var challenge usecase.ChallengeVerifier
	if cfg.RecaptchaEnabled {
		assessor, err := recaptcha.NewAssessor(ctx, cfg.FirebaseProject, cfg.RecaptchaSiteKey, cfg.RecaptchaMinScore, opt)
		if err != nil {
			log.Fatalf("Failed to initialize reCAPTCHA Enterprise: %v", err)
		}
		defer assessor.Close()
		challenge = assessor
	}

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	verificationRepo := repository.NewFirestorePhoneVerificationRepository(firestoreClient)
	productRepo := repository.NewFirestoreProductRepository(firestoreClient)
	offerRepo := repository.NewFirestoreOfferRepository(firestoreClient)
	requestRepo := repository.NewFirestoreRequestRepository(firestoreClient)
	proposalRepo := repository.NewFirestoreProposalRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient)

	authUseCase := usecase.NewAuthUseCase(userRepo, verificationRepo, firebaseAuthClient, phoneClient, challenge, usecase.AuthOptions{
		CallingCode:     cfg.CountryCallingCode,
		VerificationTTL: time.Duration(cfg.VerificationTTLMin) * time.Minute,
		VendorTrial:     time.Duration(cfg.VendorTrialDays) * 24 * time.Hour,
	})
	navigationUseCase := usecase.NewNavigationUseCase(userRepo, firebaseAuthClient)
	listingUseCase := usecase.NewListingUseCase(productRepo, requestRepo, userRepo, cfg.PublicBaseURL, cfg.SupportWhatsapp)
	offerUseCase := usecase.NewOfferUseCase(offerRepo, productRepo, userRepo)
	requestUseCase := usecase.NewRequestUseCase(requestRepo, proposalRepo, userRepo, storageClient)
	merchantUseCase := usecase.NewMerchantUseCase(productRepo, offerRepo, userRepo, storageClient)
	liveFeedUseCase := usecase.NewLiveFeedUseCase(productRepo, requestRepo, proposalRepo, offerRepo)
	jobsUseCase := usecase.NewJobsUseCase(userRepo, verificationRepo)

	onboarding := session.NewOnboardingStore(cfg.SessionSecret, cfg.IsProduction())

	handler.Setup(navigationUseCase, authUseCase, listingUseCase, offerUseCase, requestUseCase, merchantUseCase, onboarding)

	limiter := ratelimit.NewRateLimiter(map[string]ratelimit.Rule{
		apimiddleware.ActionSendCode: {PerMinute: int(cfg.SendCodePerMinute), Burst: int(cfg.SendCodePerMinute)},
		apimiddleware.ActionVerify:   {PerMinute: 10, Burst: 10},
		apimiddleware.ActionWrite:    {PerMinute: 30, Burst: 10},
		"subscribe":                  {PerMinute: 60, Burst: 20},
	})
	limiter.StartCleanupRoutine(ctx)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	if err := jobsUseCase.Start(ctx, cfg.SubscriptionSweepSpec, cfg.VerificationCleanupSpec); err != nil {
		log.Fatalf("Failed to schedule background jobs: %v", err)
	}

	handler.SetupHealthHandler(firebaseAuthClient, wsManager.ConnectedCount)

	e := echo.New()
	e.HideBanner = true

	e.Use(apimiddleware.RequestLogger(zap.L()))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
	}))

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(firebaseAuthClient)
	vendorMiddleware := apimiddleware.NewVendorMiddleware(userRepo)
	wsHandler := handler.NewWebSocketHandler(wsManager, authMiddleware, liveFeedUseCase, limiter, cfg.CORSOrigins)

	router.Setup(e, authMiddleware, vendorMiddleware, limiter, wsHandler)

	go func() {
		logger.Info("Starting server on port %s...", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
}
