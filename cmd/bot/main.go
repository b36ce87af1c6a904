package main

import (
	"context"
	"errors"
	"flag"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"promobot/internal/aggregator"
	"promobot/internal/command"
	"promobot/internal/config"
	"promobot/internal/controller"
	"promobot/internal/events"
	"promobot/internal/gateway/telegram"
	"promobot/internal/logger"
	"promobot/internal/responder"
	"promobot/internal/scheduler"
	"promobot/internal/server"
	"promobot/internal/sheets"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the bot config file")
	flag.Parse()

	log := logger.New()
	defer func() { _ = log.Sync() }()

	if err := run(*configPath, log); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal("bot stopped", zap.Error(err))
	}
	log.Info("bot gracefully stopped")
}

func run(configPath string, log *zap.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	loc, err := time.LoadLocation(cfg.Bot.Timezone)
	if err != nil {
		return err
	}

	schema := sheets.DefaultSchema()
	if err := schema.Validate(); err != nil {
		return err
	}

	store, err := sheets.NewClient(ctx, cfg.CredentialsPath, cfg.SpreadsheetID, schema)
	if err != nil {
		return err
	}

	var producer events.Producer = events.NopProducer{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaProducer := events.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer func() {
			if err := kafkaProducer.Close(); err != nil {
				log.Error("failed to close kafka producer", zap.Error(err))
			}
		}()
		producer = kafkaProducer
	} else {
		log.Warn("KAFKA_BROKERS not set, lifecycle events are dropped")
	}

	parser := command.NewParser(command.Tags{
		Marker:    cfg.Bot.HashtagMarker,
		Request:   cfg.Bot.RequestHashtag,
		Payment:   cfg.Bot.PaymentHashtag,
		Paid:      cfg.Bot.PaidHashtag,
		Feedback:  cfg.Bot.FeedbackHashtag,
		Rejection: cfg.Bot.RejectionHashtag,
		Greeting:  cfg.Bot.GreetingTrigger,
	})

	ctrl := controller.New(store, schema, responder.New(cfg.Bot), producer, cfg.Bot, loc, log.Named("controller"))

	gw, err := telegram.New(cfg.TelegramToken, parser, ctrl, cfg.Bot.HandlePrefix, log.Named("telegram"))
	if err != nil {
		return err
	}

	rollup := aggregator.New(
		store,
		schema,
		cfg.Bot.PaymentsListName,
		cfg.Bot.SummaryListName,
		loc,
		cfg.Bot.RateLimitDelay(),
		log.Named("aggregator"),
	)
	daily := scheduler.NewMidnight(loc, rollup.Run, log.Named("scheduler"))

	metricsSrv := server.New(cfg.MetricsAddr, log.Named("server"))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return gw.Run(gctx) })
	g.Go(func() error { return daily.Run(gctx) })
	g.Go(func() error { return metricsSrv.Run(gctx) })

	log.Info("bot started")
	return g.Wait()
}
