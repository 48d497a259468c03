package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/movix/backend/internal/catalog"
	"github.com/movix/backend/internal/config"
	"github.com/movix/backend/internal/handler"
	"github.com/movix/backend/internal/handler/chatbot"
	"github.com/movix/backend/internal/service/ai"
	"github.com/movix/backend/internal/service/widget"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Catalog access works without a key; calls fail upstream and readers
	// degrade to empty results, so only warn here.
	if !cfg.Catalog.Enabled() {
		log.Println("warning: TMDB_API_KEY is not set, catalog reads will return empty results")
	}
	reader := catalog.NewReader(catalog.NewClient(cfg.Catalog))

	// The completion credential is optional too: without it the relay
	// reports misconfiguration and the widget answers from its canned pools.
	var responder chatbot.Responder
	if cfg.AI.Enabled() {
		aiService, err := ai.NewService(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize AI service: %v", err)
			log.Println("continuing without AI functionality")
		} else {
			responder = aiService
			log.Println("AI service initialized successfully")
		}
	} else {
		log.Println("OPENAI_API_KEY not configured, skipping AI initialization")
	}

	var widgetResponder widget.Responder
	if responder != nil {
		widgetResponder = responder
	}
	widgetSvc := widget.NewService(widgetResponder)

	router := handler.NewRouter(responder, widgetSvc, reader)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Movix backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
