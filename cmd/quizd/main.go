package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/keedam-ai/quizgen/internal/api/http"
	"github.com/keedam-ai/quizgen/internal/auth"
	"github.com/keedam-ai/quizgen/internal/config"
	"github.com/keedam-ai/quizgen/internal/db"
	"github.com/keedam-ai/quizgen/internal/extract"
	"github.com/keedam-ai/quizgen/internal/quiz"
	"github.com/keedam-ai/quizgen/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	store := quiz.NewSQLStore(dbh, cfg.DBDriver)

	// --- Blob store for uploaded documents ---
	blobs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	// --- Extraction gateway (credential checked here, not mid-quiz) ---
	extractor, err := extract.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("extraction gateway: %v", err)
	}
	defer extractor.Close()

	authSvc := auth.NewAuthService(cfg.AuthSecret, cfg.AdminUser, cfg.AdminPassHash)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc))

	// Upload opens a session; extraction runs inside the request, so no global
	// timeout middleware here — the extract timeout bounds it.
	r.Post("/sessions", api.CreateSessionHandler(store, blobs, extractor, authSvc, cfg.ExtractTimeout, cfg.MaxUploadBytes))

	// Session flow (bearer session token)
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.Timeout(30 * time.Second))
		pr.Use(authSvc.Middleware(auth.RoleSession))
		pr.Get("/session", api.GetSessionHandler(store))
		pr.Post("/session/answer", api.SubmitAnswerHandler(store))
		pr.Post("/session/advance", api.AdvanceHandler(store))
		pr.Post("/session/jump", api.JumpHandler(store))
		pr.Post("/session/reset", api.ResetHandler(store))
	})

	// Admin surface
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.Timeout(30 * time.Second))
		pr.Use(authSvc.Middleware(auth.RoleAdmin))
		pr.Get("/quizzes", api.ListQuizzesHandler(store))
		pr.Delete("/quizzes/{quizID}", api.DeleteQuizHandler(store, blobs))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (db=%s, model=%s)", cfg.HTTPAddr, cfg.DBDriver, cfg.GeminiModel)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
