package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iliyamo/room-booking/internal/config"
	"github.com/iliyamo/room-booking/internal/database"
	"github.com/iliyamo/room-booking/internal/handler"
	"github.com/iliyamo/room-booking/internal/logger"
	"github.com/iliyamo/room-booking/internal/queue"
	"github.com/iliyamo/room-booking/internal/repository"
	"github.com/iliyamo/room-booking/internal/router"
	"github.com/iliyamo/room-booking/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logg := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.DB)
	if err != nil {
		logg.WithError(err).WithField("driver", cfg.DB.Driver).Fatal("error connecting to database")
	}
	defer db.Close()
	logg.WithField("driver", cfg.DB.Driver).Info("connected to database")

	rdb := config.NewRedisClient(ctx)
	if rdb != nil {
		defer rdb.Close()
		logg.Info("connected to redis; response cache and rate limiting enabled")
	} else {
		logg.Warn("redis unavailable; response cache and rate limiting disabled")
	}

	rooms := repository.NewRoomRepo(db)
	bookings := repository.NewBookingRepo(db)
	h := handler.NewBookingHandler(rooms, bookings, service.NewReportService(rooms, bookings), logg)
	h.VerifyRoom = cfg.VerifyRoom
	if cfg.AMQP.Enabled {
		h.Events = service.NewBookingPublisher(cfg.AMQP.URL, logg)
		logg.Info("booking events will be published to rabbitmq")
	}
	consumerDone := make(chan struct{})
	if cfg.AMQP.ConsumerEnabled {
		consumer := queue.NewConsumer(cfg.AMQP.URL, cfg.LogDir, logg)
		go func() {
			defer close(consumerDone)
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logg.WithError(err).Error("booking consumer stopped")
			}
		}()
	} else {
		close(consumerDone)
	}

	e := router.New(router.Deps{
		Bookings:  h,
		Health:    db,
		Redis:     rdb,
		Cache:     config.LoadCacheConfig(),
		RateLimit: config.LoadRateLimitConfig(),
		Log:       logg,
	})

	addr := ":" + cfg.Port
	go func() {
		logg.Infof("server started on port %s (env=%s)", cfg.Port, cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logg.WithError(err).Error("graceful shutdown failed")
	}
	if err := h.WaitForEvents(shutdownCtx); err != nil {
		logg.WithError(err).Warn("in-flight booking events may be lost")
	}
	select {
	case <-consumerDone:
	case <-shutdownCtx.Done():
		logg.Warn("booking consumer did not stop before shutdown timeout")
	}
	logg.Info("server stopped")
}
