package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/MichalMitros/catalog-feed-sync/cmd/syncer/config"
	"github.com/MichalMitros/catalog-feed-sync/internal/catalog"
	"github.com/MichalMitros/catalog-feed-sync/internal/decoder"
	"github.com/MichalMitros/catalog-feed-sync/internal/handler"
	"github.com/MichalMitros/catalog-feed-sync/internal/platform/rabbitmq"
	"github.com/MichalMitros/catalog-feed-sync/internal/platform/storage"
	"github.com/MichalMitros/catalog-feed-sync/internal/syncer"
	"github.com/MichalMitros/catalog-feed-sync/pkg/v1/commander"
	"github.com/caarlos0/env/v6"
	_ "github.com/lib/pq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

const (
	// UserAgent is user agent header value used when calling catalog API.
	UserAgent = "catalog-feed-sync/0.1.0"

	reportPublishTimeout = 10 * time.Second
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	var cfg config.Config
	if err := env.Parse(&cfg); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't parse env variables")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't parse log level")
	}
	logger = logger.Level(level)

	strategy, err := syncer.ParseStrategy(cfg.Catalog.StockStrategy)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't parse stock strategy")
	}

	if err := cfg.Validate(); err != nil {
		logger.Fatal().
			Err(err).
			Str("mode", cfg.Mode).
			Msg("invalid configuration")
	}

	pgDB, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open Postgres connection")
	}

	if err = pgDB.PingContext(ctx); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't connect to Postgres")
	}

	var (
		amqpConnection *amqp.Connection
		mq             *rabbitmq.RabbitMQ
	)
	if cfg.RabbitMQ.URL != "" {
		amqpConnection, err = amqp.Dial(cfg.RabbitMQ.URL)
		if err != nil {
			logger.Fatal().
				Err(err).
				Msg("can't open RabbitMQ connection")
		}

		mq, err = rabbitmq.NewRabbitMQ(amqpConnection, cfg.RabbitMQ.Exchange, cfg.RabbitMQ.Prefetch)
		if err != nil {
			logger.Fatal().
				Err(err).
				Msg("can't open RabbitMQ channel")
		}
	}

	catalogClient := catalog.NewClient(
		&http.Client{Timeout: cfg.HTTPTimeout},
		cfg.Catalog.BaseURL,
		UserAgent,
		catalog.WithRetry(cfg.Catalog.RetryAttempts, cfg.Catalog.RetryInterval),
		catalog.WithRateLimit(cfg.Catalog.RateLimit),
	)

	syn := syncer.NewSyncer(
		storage.NewCredentials(pgDB),
		catalogClient,
		decoder.Decoder{PriceType: cfg.Catalog.PriceType},
		storage.NewPostgres(
			pgDB,
			storage.WithStaleRunAfter(cfg.RunStaleAfter),
			storage.WithInsertBatchSize(cfg.BatchSize),
		),
		syncer.WithLogger(&logger),
		syncer.WithStrategy(strategy),
		syncer.WithTokenCheck(cfg.Catalog.VerifyTokens),
		syncer.WithConcurrency(cfg.Concurrency),
	)

	// handle graceful shutdown and context cancellation
	termChan := make(chan os.Signal, 1)
	signal.Notify(termChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-termChan:
			logger.Info().Msg("graceful shutdown start")
			cancel()
		case <-ctx.Done():
		}
	}()

	switch cfg.Mode {
	case config.ModeBatch:
		runBatch(ctx, &cfg, syn, mq, &logger)
	case config.ModeConsumer:
		runConsumer(ctx, &cfg, syn, mq, &logger)
	}

	cancel()

	// close connections
	wg := sync.WaitGroup{}
	wg.Add(2)

	go func() {
		defer wg.Done()
		if err := pgDB.Close(); err != nil {
			logger.Fatal().
				Err(err).
				Msg("can't close Postgres connection")
		}
	}()

	go func() {
		defer wg.Done()
		if amqpConnection == nil {
			return
		}
		if err := amqpConnection.Close(); err != nil {
			logger.Fatal().
				Err(err).
				Msg("can't close RabbitMQ connection")
		}
	}()

	wg.Wait()

	logger.Info().Msg("shutdown successful")
}

// runBatch synchronizes all accounts once and publishes batch report if RabbitMQ is configured.
// Failed accounts don't fail the batch.
func runBatch(
	ctx context.Context,
	cfg *config.Config,
	syn *syncer.Syncer,
	mq *rabbitmq.RabbitMQ,
	logger *zerolog.Logger,
) {
	if cfg.BatchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.BatchTimeout)
		defer cancel()
	}

	report, err := syn.RunBatch(ctx)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't run synchronization batch")
	}

	if mq == nil {
		return
	}

	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), reportPublishTimeout)
	defer cancel()

	publisher := handler.NewReportPublisher(commander.NewRabbitMQSender(mq, cfg.RabbitMQ.ReportRoutingKey))
	if err := publisher.Publish(publishCtx, report); err != nil {
		logger.Error().
			Err(err).
			Msg("can't publish batch report")
	}
}

// runConsumer handles sync commands until ctx is canceled.
func runConsumer(
	ctx context.Context,
	cfg *config.Config,
	syn *syncer.Syncer,
	mq *rabbitmq.RabbitMQ,
	logger *zerolog.Logger,
) {
	if err := mq.DeclareQueue(cfg.RabbitMQ.Queue, cfg.RabbitMQ.CommandKey); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't declare commands queue")
	}

	han := handler.NewHandler(
		mq,
		syn,
		commander.NewRabbitMQSender(mq, cfg.RabbitMQ.OutcomeRoutingKey),
		logger,
	)

	// start consuming and handling messages
	if err := han.Start(ctx, cfg.RabbitMQ.Queue); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't start consuming")
	}

	logger.Info().Msg("catalog feed sync up and running")

	<-ctx.Done()

	// wait for consumer to finish
	<-mq.Done()
}
