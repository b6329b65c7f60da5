package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/openshelf/openshelf/config"
	"github.com/openshelf/openshelf/internal/db"
	"github.com/openshelf/openshelf/internal/handlers"
	"github.com/openshelf/openshelf/internal/mq"
	"github.com/openshelf/openshelf/internal/services"
	"github.com/openshelf/openshelf/internal/storage"
	"github.com/openshelf/openshelf/internal/store"
	"github.com/openshelf/openshelf/internal/web"
	"go.uber.org/zap"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	events     *mq.MQ
}

// New constructs a Server with basic middleware and defaults.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Server, error) {
	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	objectStore, err := storage.NewFromConfig(ctx, cfg.Storage)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}
	if objectStore != nil {
		if err := objectStore.EnsureBucket(ctx); err != nil {
			_ = dbConn.Close()
			return nil, err
		}
	}

	events, err := mq.NewFromConfig(ctx, cfg.MQ)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	userRepo := store.NewUserRepository(dbConn)
	bookRepo := store.NewBookRepository(dbConn)
	categoryRepo := store.NewCategoryRepository(dbConn)
	loanRepo := store.NewLoanRepository(dbConn)
	statsRepo := store.NewStatsRepository(dbConn)

	userService := services.NewUserService(userRepo)
	bookService := services.NewBookService(bookRepo, objectStore)
	categoryService := services.NewCategoryService(categoryRepo)
	loanService := services.NewLoanService(loanRepo, events, logger)
	statsService := services.NewStatsService(statsRepo)

	jwtSecret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if jwtSecret == "" {
		_ = dbConn.Close()
		return nil, errors.New("JWT_SECRET is required")
	}

	authHandler := handlers.NewAuthHandler(userService, jwtSecret)
	loanHandler := handlers.NewLoanHandler(loanService, userService)
	statsHandler := handlers.NewStatsHandler(statsService)

	pages, err := web.NewHandler(bookService, categoryService, logger)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	auth := authHandler.RequireAuth
	admin := authHandler.RequireAdmin

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	router.Handle("/static/*", web.StaticHandler())
	router.Get("/sanctum/csrf-cookie", authHandler.CSRFCookie)

	router.Route("/api", func(r chi.Router) {
		r.Use(handlers.CSRFProtect)
		handlers.AuthRouter(r, authHandler)
		r.Route("/books", func(r chi.Router) {
			handlers.BookRouter(r, bookService, auth, admin)
		})
		r.Route("/categories", func(r chi.Router) {
			handlers.CategoryRouter(r, categoryService, auth, admin)
		})
		r.Route("/loans", func(r chi.Router) {
			handlers.LoanRouter(r, loanService, userService, auth, admin)
		})
		r.Route("/users", func(r chi.Router) {
			handlers.UserRouter(r, userService, auth, admin)
		})
		r.With(auth).Get("/user/loans", loanHandler.ListMine)
		r.With(auth).Get("/user/stats", statsHandler.User)
		r.With(auth, admin).Get("/admin/stats", statsHandler.Admin)
	})

	router.Group(func(r chi.Router) {
		web.Router(r, pages, cfg.IsDevelopment())
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8000
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		events:     events,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.events != nil {
		_ = s.events.Close()
	}
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Close()
}
