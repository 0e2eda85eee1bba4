package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"eventcompanion/config"
	_ "eventcompanion/docs"
	"eventcompanion/internal/adapters/auth"
	"eventcompanion/internal/adapters/email"
	"eventcompanion/internal/adapters/images"
	"eventcompanion/internal/adapters/oauth"
	delivery "eventcompanion/internal/delivery/http"
	"eventcompanion/internal/delivery/http/controllers"
	"eventcompanion/internal/delivery/http/middleware"
	"eventcompanion/internal/jobs"
	"eventcompanion/internal/repository/postgres"
	redisrepo "eventcompanion/internal/repository/redis"
	"eventcompanion/internal/services"
)

const serviceTimeout = 5 * time.Second

// @title Event Companion API
// @version 1.0
// @description Backend for the event companion app: line-up, friends, proximity-gated location sharing, and sponsor banners.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	presenceStore := redisrepo.NewStore(cfg.RedisAddr, cfg.RedisPassword, cfg.PresenceTTL)
	defer presenceStore.Close()

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	roleRepo := postgres.NewRoleRepository(db)
	venueRepo := postgres.NewVenueRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	friendshipRepo := postgres.NewFriendshipRepository(db)
	companyRepo := postgres.NewCompanyRepository(db)
	bannerRepo := postgres.NewSponsorBannerRepository(db)

	// Adapters
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	tokenIssuer := auth.NewJWTIssuer(cfg.JWTSecret)
	tokenVerifier := auth.NewJWTVerifier(cfg.JWTSecret)
	google := oauth.NewGoogleExchanger(oauth.GoogleConfig{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
	})
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFrom,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.SESRegion,
			AccessKeyID:        cfg.SESAccessKey,
			SecretAccessKey:    cfg.SESSecretKey,
			InsecureSkipVerify: cfg.SESInsecureTLS,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	imageStore := images.NewS3Store(images.S3Config{
		Region:          cfg.S3Region,
		AccessKeyID:     cfg.S3AccessKey,
		SecretAccessKey: cfg.S3SecretKey,
		Bucket:          cfg.S3Bucket,
		PublicBaseURL:   cfg.S3PublicBaseURL,
	})

	// Services
	emailService := services.NewEmailService(mailer)
	userService := services.NewUserService(userRepo, roleRepo, hasher, tokenIssuer, cfg.TokenExpiry, google, emailService, serviceTimeout)
	eventService := services.NewEventService(eventRepo, venueRepo, logger, serviceTimeout)
	friendshipService := services.NewFriendshipService(friendshipRepo, userRepo, serviceTimeout)
	presenceService := services.NewPresenceService(presenceStore, eventRepo, venueRepo, friendshipService, userRepo, logger, serviceTimeout)
	companyService := services.NewCompanyService(companyRepo, userRepo, emailService, serviceTimeout)
	sponsorService := services.NewSponsorService(bannerRepo, companyRepo, serviceTimeout)

	// Controllers
	router := delivery.NewRouter(delivery.Controllers{
		Auth:       controllers.NewAuthController(logger, userService),
		User:       controllers.NewUserController(logger, userService),
		Admin:      controllers.NewAdminController(logger, userService, companyService),
		Venue:      controllers.NewVenueController(logger, venueRepo),
		Event:      controllers.NewEventController(logger, eventService),
		Friendship: controllers.NewFriendshipController(logger, friendshipService),
		Presence:   controllers.NewPresenceController(logger, presenceService),
		Company:    controllers.NewCompanyController(logger, companyService),
		Sponsor:    controllers.NewSponsorController(logger, sponsorService),
		Image:      controllers.NewImageController(logger, imageStore),
	}, tokenVerifier)

	sweeper := jobs.NewPresenceSweeper(logger, presenceStore, cfg.PresenceTTL)
	if err := sweeper.Start(cfg.PresenceSweepSpec); err != nil {
		logger.Error("failed to start presence sweeper", "err", err)
		os.Exit(1)
	}
	defer sweeper.Stop()

	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.CORSOrigins, router))
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
}
