// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/unclebandit/campaign-studio-backend/internal/config"
	"github.com/unclebandit/campaign-studio-backend/internal/controller"
	"github.com/unclebandit/campaign-studio-backend/internal/db"
	"github.com/unclebandit/campaign-studio-backend/internal/generator"
	"github.com/unclebandit/campaign-studio-backend/internal/handler"
	"github.com/unclebandit/campaign-studio-backend/internal/logger"
	"github.com/unclebandit/campaign-studio-backend/internal/queue"
	"github.com/unclebandit/campaign-studio-backend/internal/repository"
	"github.com/unclebandit/campaign-studio-backend/internal/service"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on OS environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	lg, err := logger.New(cfg.Log.Level, cfg.Log.JSON)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer lg.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gen, err := generator.New(ctx, generator.Config{
		Provider: cfg.Generator.Provider,
		APIKey:   cfg.Generator.APIKey,
		BaseURL:  cfg.Generator.BaseURL,
		Model:    cfg.Generator.Model,
		Timeout:  cfg.Generator.Timeout,
	})
	if err != nil {
		lg.Fatal("failed to create content generator", zap.Error(err))
	}
	lg.Info("content generator ready", zap.String("generator", gen.Name()))

	var batchRepo repository.BatchRepositoryInterface
	if cfg.Redis.URL != "" {
		rdb, err := db.NewRedis(cfg.Redis.URL, lg)
		if err != nil {
			lg.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer rdb.Close()
		batchRepo = &repository.RedisBatchRepository{Client: rdb, TTL: cfg.Batch.TTL}
	} else {
		batchRepo = repository.NewMemoryBatchRepository(cfg.Batch.TTL)
	}

	var q queue.Queue
	if cfg.AMQP.URL != "" {
		aq, err := queue.NewAMQPQueue(cfg.AMQP.URL, lg)
		if err != nil {
			lg.Fatal("failed to connect to rabbitmq", zap.Error(err))
		}
		defer aq.Close()
		q = aq
	} else {
		q = queue.NewInMemoryQueue(lg)
	}
	if err := queue.StartCardsGeneratedSubscriber(q, lg); err != nil {
		lg.Warn("failed to start cards generated subscriber", zap.Error(err))
	}

	cardService := &service.CardService{
		Generator: gen,
		Templates: service.NewTemplateEngine(),
		BatchRepo: batchRepo,
		Queue:     q,
		Logger:    lg,
		Options: service.GenerationOptions{
			Temperature: cfg.Generator.Temperature,
			MaxTokens:   cfg.Generator.MaxTokens,
		},
	}

	cardController := &controller.CampaignCardController{
		CardService: cardService,
		Logger:      lg,
	}
	batchHandler := handler.NewBatchHandler(cardService, lg)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: newRouter(cardController, batchHandler, cfg.Server.AllowedOrigins),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lg.Info("server running", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		lg.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		lg.Error("server stopped with error", zap.Error(err))
	}
}

func newRouter(cards *controller.CampaignCardController, batches *handler.BatchHandler, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
		ExposedHeaders: []string{"X-Batch-Id"},
		MaxAge:         int((12 * time.Hour).Seconds()),
	}))

	r.Get("/healthz", handler.HealthHandler)

	r.Route("/api", func(r chi.Router) {
		// Campaign card routes
		r.Post("/campaign-cards/generate", cards.GenerateCampaignCards)
		r.Get("/campaign-cards/batches/{id}", batches.GetBatchHandler)
		r.Get("/campaign-cards/status", cards.ClassifyStatus)
		r.Get("/campaign-cards/date", cards.ResolveDate)
		r.Post("/brands/resolve", cards.ResolveBrand)
	})

	return r
}
