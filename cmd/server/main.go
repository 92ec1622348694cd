package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"echofeed-backend/internal/ai"
	"echofeed-backend/internal/config"
	"echofeed-backend/internal/database"
	"echofeed-backend/internal/handlers"
	"echofeed-backend/internal/notifier"
	"echofeed-backend/internal/store"

	sentry "github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env (ignore error in production — env vars set directly)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration error")
	}

	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Initialize Sentry (no-op without a DSN)
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.Sentry.DSN,
		Environment: cfg.Env,
	}); err != nil {
		log.Fatal().Err(err).Msg("sentry init failed")
	}
	defer sentry.Flush(2 * time.Second)

	// Select the storage backend once at startup: MongoDB when a URI is
	// configured and reachable, in-memory otherwise. No runtime re-attempt.
	submissionStore, backend := selectStore(cfg.Mongo)

	// AI enrichment is disabled entirely without a credential — every
	// submission then carries the fallback analysis.
	var completer ai.Completer
	if cfg.AI.ApiKey != "" {
		completer, err = ai.NewCompleter(ai.ClientConfig{
			ApiKey: cfg.AI.ApiKey,
			ApiUrl: cfg.AI.ApiUrl,
			Model:  cfg.AI.Model,
		})
		if err != nil {
			sentry.CaptureException(err)
			log.Fatal().Err(err).Msg("failed to create ai client")
		}
	} else {
		log.Warn().Msg("AI_API_KEY not set, enrichment disabled — submissions get the fallback analysis")
	}
	analyzer := ai.NewAnalyzer(completer, ai.NewRetrier(ai.RetryConfig{
		MaxAttempts:  cfg.AI.MaxAttempts,
		InitialDelay: cfg.AI.InitialDelay,
	}))

	var feedbackNotifier notifier.Notifier
	if cfg.Notify.ResendAPIKey != "" {
		feedbackNotifier = notifier.NewEmailNotifier(cfg.Notify.ResendAPIKey, cfg.Notify.FromEmail, cfg.Notify.NotifyEmail)
	} else {
		feedbackNotifier = notifier.NewLogNotifier()
	}

	feedbackHandler := handlers.NewFeedbackHandler(submissionStore, analyzer, feedbackNotifier)

	// Setup chi router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"echofeed-backend","storage":"` + backend + `"}`))
	})

	// Feedback API (consumed by both UI variants)
	r.Route("/api/feedback", func(r chi.Router) {
		r.Get("/", feedbackHandler.ListFeedback)
		r.Post("/", feedbackHandler.SubmitFeedback)
		r.Patch("/{id}", feedbackHandler.PatchFeedback)
	})

	log.Info().Str("port", cfg.Port).Str("storage", backend).Msg("echofeed backend starting")
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		sentry.CaptureException(err)
		log.Fatal().Err(err).Msg("server failed")
	}
}

func selectStore(cfg config.Mongo) (store.Store, string) {
	if cfg.URI == "" {
		log.Warn().Msg("MONGODB_URI not set, using in-memory store — submissions are lost on restart")
		return store.NewMemoryStore(), "memory"
	}

	db, err := database.Connect(cfg.URI, cfg.DBName)
	if err != nil {
		sentry.CaptureException(err)
		log.Warn().Err(err).Msg("MongoDB connection failed, falling back to in-memory store")
		return store.NewMemoryStore(), "memory"
	}

	mongoStore := store.NewMongoStore(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := mongoStore.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to create submission indexes")
	}

	log.Info().Msg("connected to MongoDB")
	return mongoStore, "mongodb"
}
