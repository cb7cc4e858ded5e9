package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mvracar/scribe/internal/auth"
	"github.com/mvracar/scribe/internal/config"
	"github.com/mvracar/scribe/internal/database"
	postgresrepo "github.com/mvracar/scribe/internal/repository/postgres"
	"github.com/mvracar/scribe/internal/service"
	"github.com/mvracar/scribe/internal/transport/http/handlers"
	"github.com/mvracar/scribe/internal/transport/http/middleware"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Database
	pool, err := database.Connect(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()
	logger.Info("connected to database")

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)

	// Services
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	userService := service.NewUserService(userRepo, tokens)

	// Handlers
	userHandler := handlers.NewUserHandler(userService, logger)

	// Routes
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.Identify(tokens))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		// Public
		r.Post("/users", userHandler.Register)
		r.Post("/users/login", userHandler.Login)

		// Protected - current user
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/user", userHandler.Current)
			r.Put("/user", userHandler.Update)
		})
	})

	addr := ":" + cfg.ServerPort
	logger.Info("starting server", "addr", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
