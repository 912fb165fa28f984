package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/danielhkuo/quickly-ask/backend"
	"github.com/danielhkuo/quickly-ask/cliparse"
	"github.com/danielhkuo/quickly-ask/decoy"
	"github.com/danielhkuo/quickly-ask/middleware"
	"github.com/danielhkuo/quickly-ask/questions"
	"github.com/danielhkuo/quickly-ask/router"
)

func main() {
	var err error

	// Load .env before reading configuration
	if err := cliparse.LoadDotEnv(".env"); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to the question backend
	store, closer, err := backend.Open(ctx, cfg)
	if err != nil {
		slog.Error("backend connection failed", "backend", cfg.Backend, "error", err)
		os.Exit(1)
	}
	defer closer.Close()

	svc := questions.NewService(store, cfg.PerPage)

	// Missing collections are logged; the page still serves and reports
	// fetch failures per request
	if err := svc.InitCollections(ctx); err != nil {
		slog.Warn("collection setup incomplete", "error", err)
	}

	registry := decoy.NewRegistry(clockwork.NewRealClock(), cfg.CallerName, decoy.DefaultSessionTTL)
	go registry.Run(ctx)

	// Create router
	mux := router.NewRouter(svc, registry, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	go func() {
		// Wait for Ctrl-C signal
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "backend", cfg.Backend)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
