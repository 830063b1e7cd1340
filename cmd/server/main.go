package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	apphandler "warishd/internal/application/handler"
	appservice "warishd/internal/application/service"
	appstore "warishd/internal/application/store/application"
	"warishd/internal/audit"
	auditkafka "warishd/internal/audit/kafka"
	"warishd/internal/platform/config"
	"warishd/internal/platform/httpserver"
	"warishd/internal/platform/logger"
	platformmetrics "warishd/internal/platform/metrics"
	platformpostgres "warishd/internal/platform/postgres"
	platformredis "warishd/internal/platform/redis"
	"warishd/internal/warish/cache"
	warishhandler "warishd/internal/warish/handler"
	warishmetrics "warishd/internal/warish/metrics"
	warishservice "warishd/internal/warish/service"
	heirstore "warishd/internal/warish/store/heir"
)

// main wires stores, services and transports together and owns the process
// lifecycle. Business logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := platformpostgres.Open(cfg.PostgresURL)
	if err != nil {
		log.Error("postgres connection failed", "error", err.Error())
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
	}

	var heirs warishservice.Store
	var apps appservice.Store
	if db != nil {
		heirs = heirstore.NewPostgres(db)
		apps = appstore.NewPostgres(db)
		log.Info("using postgres stores")
	} else {
		heirs = heirstore.NewInMemory()
		apps = appstore.NewInMemory()
		log.Warn("no postgres url configured, using in-memory stores")
	}

	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis connection failed", "error", err.Error())
		os.Exit(1)
	}
	var forests *cache.ForestCache
	if redisClient != nil {
		defer redisClient.Close()
		forests = cache.New(redisClient.Client, cfg.ForestTTL)
		log.Info("forest cache enabled", "ttl", cfg.ForestTTL.String())
	}

	group, groupCtx := errgroup.WithContext(ctx)

	var publisher audit.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, err := auditkafka.New(cfg.KafkaBrokers, cfg.AuditTopic)
		if err != nil {
			log.Error("kafka connection failed", "error", err.Error())
			os.Exit(1)
		}
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Info("audit events published to kafka", "topic", cfg.AuditTopic)
	} else {
		inbox := make(chan audit.Event, 256)
		worker := audit.NewWorker(audit.NewInMemoryStore(), inbox)
		publisher = audit.NewChannelPublisher(inbox)
		group.Go(func() error {
			if err := worker.Run(groupCtx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	appSvc := appservice.New(apps,
		appservice.WithLogger(log),
		appservice.WithAuditPublisher(publisher),
	)
	heirSvc := warishservice.New(heirs,
		warishservice.WithLogger(log),
		warishservice.WithMetrics(warishmetrics.New()),
		warishservice.WithAuditPublisher(publisher),
		warishservice.WithForestCache(forests),
		warishservice.WithApplicationResolver(appSvc),
	)

	httpMetrics := platformmetrics.New()
	router := chi.NewRouter()
	router.Use(httpMetrics.Latency)
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	apphandler.New(appSvc, log).Register(router)
	warishhandler.New(heirSvc, log).Register(router)

	apiServer := httpserver.New(cfg.Addr, router)
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", platformmetrics.Handler())
	metricsServer := httpserver.New(cfg.MetricsAddr, metricsMux)

	group.Go(func() error {
		log.Info("starting api server", "addr", cfg.Addr)
		if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		log.Info("starting metrics server", "addr", cfg.MetricsAddr)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return metricsServer.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server exited with error", "error", err.Error())
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
