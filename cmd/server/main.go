package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/Nixie-Tech-LLC/warden/internal/applier"
	"github.com/Nixie-Tech-LLC/warden/internal/config"
	"github.com/Nixie-Tech-LLC/warden/internal/db"
	"github.com/Nixie-Tech-LLC/warden/internal/notify"
	"github.com/Nixie-Tech-LLC/warden/internal/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	if os.Getenv("APP_ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	conn, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect")
	}
	defer conn.Close()

	if err := db.RunMigrations(conn, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}
	store := db.NewStore(conn)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cache *redis.ScheduleCache
	if cfg.RedisAddress != "" {
		var rdb *goredis.Client
		rdb, err = redis.NewClient(ctx, cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("redis connect")
		}
		defer rdb.Close()
		cache = redis.NewScheduleCache(rdb, cfg.ScheduleCacheTTL, log.Logger.With().Str("component", "schedule_cache").Logger())
		log.Info().Str("address", cfg.RedisAddress).Msg("schedule cache enabled")
	}

	var publisher notify.Publisher = notify.Nop{}
	if cfg.MQTTBrokerURL != "" {
		mqttPublisher, client, err := notify.Connect(cfg.MQTTBrokerURL, cfg.MQTTClientID, cfg.MQTTTopicPrefix)
		if err != nil {
			log.Fatal().Err(err).Msg("mqtt connect")
		}
		defer client.Disconnect(250)
		publisher = mqttPublisher
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	RegisterRoutes(r, cfg, store, cache, publisher)

	srv := &http.Server{Addr: cfg.ServerAddress, Handler: r}
	sched := applier.New(store, publisher, cfg.Timezone, cfg.ApplierSpec,
		log.Logger.With().Str("component", "applier").Logger())

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := sched.Start(); err != nil {
			return err
		}
		<-ctx.Done()
		sched.Stop()
		return nil
	})

	g.Go(func() error {
		log.Info().Str("address", cfg.ServerAddress).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		return
	}
	log.Info().Msg("server stopped")
}
