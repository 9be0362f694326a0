package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"profile-service/internal/config"
	"profile-service/internal/database"
	"profile-service/internal/identity"
	"profile-service/internal/otp"
	postgresrepo "profile-service/internal/repository/postgres"
	"profile-service/internal/service"
	"profile-service/internal/sms"
	"profile-service/internal/transport/http/handlers"
	"profile-service/internal/transport/http/middleware"
)

func main() {
	cfg := config.Load()

	// Schema first; the service is useless without it.
	if err := database.Migrate(cfg.DatabaseURL(), "up"); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	pool, err := database.Connect(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()
	log.Println("Connected to database")

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisURL})
	defer rdb.Close()

	// Repositories
	profileRepo := postgresrepo.NewProfileRepo(pool)
	codeStore := otp.NewRedisStore(rdb)

	var sender sms.Sender = sms.LogSender{}
	if cfg.SMSProvider == "http" {
		sender = sms.NewHTTPSender(cfg.SMSAPIKey, cfg.SMSBaseURL, cfg.SMSSender)
	}

	// Identity resolver is picked once at startup, never per request.
	var resolver identity.Resolver = identity.TrustedResolver{}
	if cfg.AuthRequired {
		resolver = identity.NewTokenResolver(identity.NewJWTVerifier(cfg.JWTSecret), cfg.VerifyTimeout)
	} else {
		log.Println("WARNING auth disabled, trusting caller-supplied phone numbers")
	}

	// Services
	profileService := service.NewProfileService(resolver, profileRepo, cfg.StoreTimeout)
	verifyService := service.NewVerifyService(codeStore, sender, profileRepo, cfg.JWTSecret, cfg.OTPTTL)

	// Handlers
	profileHandler := handlers.NewProfileHandler(profileService)
	verifyHandler := handlers.NewVerifyHandler(verifyService)

	// Routes
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.HandleFunc("POST /auth/verify/start", verifyHandler.Start)
	mux.HandleFunc("POST /auth/verify/check", verifyHandler.Check)
	mux.HandleFunc("GET /me", profileHandler.Me)
	mux.HandleFunc("PUT /me", profileHandler.Update)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: middleware.CORS(cfg.AllowedOrigin)(mux),
	}

	go func() {
		log.Printf("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR shutdown: %v", err)
	}
}
