package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/utafrali/EcommerceSearch/pkg/health"
	pkgkafka "github.com/utafrali/EcommerceSearch/pkg/kafka"

	"github.com/utafrali/EcommerceSearch/internal/config"
	"github.com/utafrali/EcommerceSearch/internal/engine"
	esengine "github.com/utafrali/EcommerceSearch/internal/engine/elasticsearch"
	"github.com/utafrali/EcommerceSearch/internal/engine/memory"
	"github.com/utafrali/EcommerceSearch/internal/engine/noop"
	"github.com/utafrali/EcommerceSearch/internal/event"
	handler "github.com/utafrali/EcommerceSearch/internal/handler/http"
	"github.com/utafrali/EcommerceSearch/internal/service"
)

// App wires together all dependencies and runs the search service.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	producer   *pkgkafka.Producer
	consumers  []*pkgkafka.Consumer
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
// An unreachable Elasticsearch cluster is not fatal: the service starts with
// the no-op engine so catalog events keep flowing and queries return empty
// results until the cluster comes back and the service is restarted.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	eng, esEng := initEngine(cfg, logger)

	producer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)

	searchService := service.NewSearchService(eng, logger, cfg.ProductServiceURL).
		WithPublisher(producer)

	// Kafka consumers for product domain events.
	eventConsumer := event.NewConsumer(searchService, logger)

	topics := []string{
		event.TopicProductCreated,
		event.TopicProductUpdated,
		event.TopicProductDeleted,
	}

	var consumers []*pkgkafka.Consumer
	for _, topic := range topics {
		consumerCfg := pkgkafka.ConsumerConfig{
			Brokers:  cfg.KafkaBrokers,
			GroupID:  "search-service",
			Topic:    topic,
			MinBytes: 1,
			MaxBytes: 10e6, // 10 MB
		}
		c := pkgkafka.NewConsumer(consumerCfg, eventConsumer.Handle, logger)
		consumers = append(consumers, c)
	}
	logger.Info("kafka consumers initialized",
		slog.Any("brokers", cfg.KafkaBrokers),
		slog.Int("topic_count", len(topics)),
	)

	// Health checks.
	healthHandler := health.NewHandler()
	if esEng != nil {
		healthHandler.Register("elasticsearch", esEng.Ping)
	}
	healthHandler.Register("kafka", producer.Ping)

	router := handler.NewRouter(searchService, healthHandler, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		producer:   producer,
		consumers:  consumers,
		httpServer: httpServer,
	}, nil
}

// initEngine selects the search engine implementation from configuration.
// The second return value is non-nil only for the Elasticsearch engine and
// is used to register its health check.
func initEngine(cfg *config.Config, logger *slog.Logger) (engine.SearchEngine, *esengine.Engine) {
	switch cfg.SearchEngine {
	case config.EngineElasticsearch:
		esEng, err := esengine.New(cfg.ElasticsearchURL, cfg.ElasticsearchIndex, logger)
		if err != nil {
			logger.Warn("elasticsearch unavailable, falling back to disabled search",
				slog.String("url", cfg.ElasticsearchURL),
				slog.String("error", err.Error()),
			)
			return noop.New(), nil
		}
		logger.Info("elasticsearch search engine initialized",
			slog.String("url", cfg.ElasticsearchURL),
			slog.String("index", cfg.ElasticsearchIndex),
		)
		return esEng, esEng
	case config.EngineMemory:
		logger.Info("in-memory search engine initialized")
		return memory.New(), nil
	default:
		logger.Info("search disabled, queries will return empty results")
		return noop.New(), nil
	}
}

// Run starts the HTTP server and Kafka consumers, blocking until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1+len(a.consumers))

	for _, c := range a.consumers {
		go func() {
			if err := c.Start(ctx); err != nil {
				errCh <- fmt.Errorf("kafka consumer: %w", err)
			}
		}()
	}

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	for _, c := range a.consumers {
		if err := c.Close(); err != nil {
			a.logger.Error("kafka consumer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
